package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/matiashmartinez/taller/internal/db"
	"github.com/matiashmartinez/taller/internal/domain"
)

// ServiceRepo is a SQLite implementation of ServiceRepository
type ServiceRepo struct {
	db  *db.DB
	log *slog.Logger
}

// NewServiceRepo creates a new ServiceRepo
func NewServiceRepo(database *db.DB, logger *slog.Logger) *ServiceRepo {
	return &ServiceRepo{db: database, log: logger}
}

const serviceColumns = "id, description, status, entry_date, estimated_date, cost, client_id, inactive"

func scanService(row interface{ Scan(...any) error }) (*domain.Service, error) {
	svc := &domain.Service{}
	var status, entryDate string
	var estimatedDate sql.NullString
	err := row.Scan(
		&svc.ID,
		&svc.Description,
		&status,
		&entryDate,
		&estimatedDate,
		&svc.Cost,
		&svc.ClientID,
		&svc.Inactive,
	)
	if err != nil {
		return nil, err
	}

	svc.Status = domain.Status(status)
	if svc.EntryDate, err = parseDate(entryDate); err != nil {
		return nil, fmt.Errorf("failed to parse entry_date: %w", err)
	}
	if estimatedDate.Valid && estimatedDate.String != "" {
		estimated, err := parseDate(estimatedDate.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse estimated_date: %w", err)
		}
		svc.EstimatedDate = &estimated
	}
	return svc, nil
}

// Create inserts a new service and assigns its generated ID. A service
// must reference a client before anything else is checked.
func (r *ServiceRepo) Create(ctx context.Context, service *domain.Service) error {
	if service.ClientID <= 0 {
		r.log.Warn("service create rejected: no owning client")
		return fmt.Errorf("%w: service requires an owning client", domain.ErrInvalid)
	}
	if err := service.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO services (description, status, entry_date, estimated_date, cost, client_id, inactive)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		service.Description,
		string(service.Status),
		formatDate(service.EntryDate),
		nullDate(service.EstimatedDate),
		service.Cost,
		service.ClientID,
		service.Inactive,
	)
	if err != nil {
		err = translateErr(err)
		if !errors.Is(err, ErrConflict) {
			r.log.Error("create service failed", "error", err)
		}
		return fmt.Errorf("failed to create service: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get service ID: %w", err)
	}

	service.ID = id
	return nil
}

// GetByID retrieves an active service by ID
func (r *ServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE id = ? AND inactive = 0
	`

	svc, err := scanService(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("service %d: %w", id, ErrNotFound)
		}
		r.log.Error("get service failed", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	return svc, nil
}

// List retrieves services in insertion order, optionally including
// deactivated ones
func (r *ServiceRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE inactive = 0 OR ? = 1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, includeInactive)
	if err != nil {
		r.log.Error("list services failed", "error", err)
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	return collectServices(rows)
}

// ListForClient retrieves the services of one client in insertion order
func (r *ServiceRepo) ListForClient(ctx context.Context, clientID int64, includeInactive bool) ([]*domain.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE client_id = ? AND (inactive = 0 OR ? = 1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, clientID, includeInactive)
	if err != nil {
		r.log.Error("list services for client failed", "client_id", clientID, "error", err)
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	return collectServices(rows)
}

// ListByStatus retrieves active services in one state, newest entry first
func (r *ServiceRepo) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Service, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalid, status)
	}

	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE status = ? AND inactive = 0
		ORDER BY entry_date DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		r.log.Error("list services by status failed", "status", status, "error", err)
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	return collectServices(rows)
}

func collectServices(rows *sql.Rows) ([]*domain.Service, error) {
	services := make([]*domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating services: %w", err)
	}
	return services, nil
}

// Update overwrites every field of an existing service, including the
// inactive flag
func (r *ServiceRepo) Update(ctx context.Context, service *domain.Service) error {
	if err := service.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE services
		SET description = ?, status = ?, entry_date = ?, estimated_date = ?, cost = ?, client_id = ?, inactive = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		service.Description,
		string(service.Status),
		formatDate(service.EntryDate),
		nullDate(service.EstimatedDate),
		service.Cost,
		service.ClientID,
		service.Inactive,
		service.ID,
	)
	if err != nil {
		err = translateErr(err)
		if !errors.Is(err, ErrConflict) {
			r.log.Error("update service failed", "id", service.ID, "error", err)
		}
		return fmt.Errorf("failed to update service: %w", err)
	}

	return rowsAffected(result, fmt.Sprintf("service %d", service.ID))
}

// SetStatus moves an active service to a new state. The row is untouched
// when the status is unknown.
func (r *ServiceRepo) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalid, status)
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE services SET status = ? WHERE id = ? AND inactive = 0",
		string(status), id,
	)
	if err != nil {
		r.log.Error("set service status failed", "id", id, "error", err)
		return fmt.Errorf("failed to set service status: %w", err)
	}
	return rowsAffected(result, fmt.Sprintf("service %d", id))
}

// Deactivate marks a service as logically deleted
func (r *ServiceRepo) Deactivate(ctx context.Context, id int64) error {
	return r.setInactive(ctx, id, true)
}

// Reactivate restores a logically deleted service
func (r *ServiceRepo) Reactivate(ctx context.Context, id int64) error {
	return r.setInactive(ctx, id, false)
}

func (r *ServiceRepo) setInactive(ctx context.Context, id int64, inactive bool) error {
	result, err := r.db.ExecContext(ctx, "UPDATE services SET inactive = ? WHERE id = ?", inactive, id)
	if err != nil {
		r.log.Error("set service inactive failed", "id", id, "error", err)
		return fmt.Errorf("failed to change service state: %w", err)
	}
	return rowsAffected(result, fmt.Sprintf("service %d", id))
}

// Delete removes a service row permanently
func (r *ServiceRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM services WHERE id = ?", id)
	if err != nil {
		r.log.Error("delete service failed", "id", id, "error", err)
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return rowsAffected(result, fmt.Sprintf("service %d", id))
}
