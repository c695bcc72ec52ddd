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

// ClientRepo is a SQLite implementation of ClientRepository
type ClientRepo struct {
	db  *db.DB
	log *slog.Logger
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(database *db.DB, logger *slog.Logger) *ClientRepo {
	return &ClientRepo{db: database, log: logger}
}

const clientColumns = "id, first_name, last_name, national_id, phone, inactive"

func scanClient(row interface{ Scan(...any) error }) (*domain.Client, error) {
	client := &domain.Client{}
	var phone sql.NullString
	err := row.Scan(
		&client.ID,
		&client.FirstName,
		&client.LastName,
		&client.NationalID,
		&phone,
		&client.Inactive,
	)
	if err != nil {
		return nil, err
	}
	client.Phone = phone.String
	return client, nil
}

// Create inserts a new client and assigns its generated ID. A duplicate
// national id surfaces as ErrConflict.
func (r *ClientRepo) Create(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO clients (first_name, last_name, national_id, phone, inactive)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		client.FirstName,
		client.LastName,
		client.NationalID,
		client.Phone,
		client.Inactive,
	)
	if err != nil {
		err = translateErr(err)
		if !errors.Is(err, ErrConflict) {
			r.log.Error("create client failed", "error", err)
		}
		return fmt.Errorf("failed to create client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get client ID: %w", err)
	}

	client.ID = id
	return nil
}

// GetByID retrieves an active client by ID
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE id = ? AND inactive = 0
	`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %d: %w", id, ErrNotFound)
		}
		r.log.Error("get client failed", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

// List retrieves clients in insertion order, optionally including
// deactivated ones
func (r *ClientRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE inactive = 0 OR ? = 1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, includeInactive)
	if err != nil {
		r.log.Error("list clients failed", "error", err)
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

func collectClients(rows *sql.Rows) ([]*domain.Client, error) {
	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}
	return clients, nil
}

// Update overwrites every field of an existing client, including the
// inactive flag
func (r *ClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE clients
		SET first_name = ?, last_name = ?, national_id = ?, phone = ?, inactive = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		client.FirstName,
		client.LastName,
		client.NationalID,
		client.Phone,
		client.Inactive,
		client.ID,
	)
	if err != nil {
		err = translateErr(err)
		if !errors.Is(err, ErrConflict) {
			r.log.Error("update client failed", "id", client.ID, "error", err)
		}
		return fmt.Errorf("failed to update client: %w", err)
	}

	return rowsAffected(result, fmt.Sprintf("client %d", client.ID))
}

// Deactivate marks a client as logically deleted
func (r *ClientRepo) Deactivate(ctx context.Context, id int64) error {
	return r.setInactive(ctx, id, true)
}

// Reactivate restores a logically deleted client
func (r *ClientRepo) Reactivate(ctx context.Context, id int64) error {
	return r.setInactive(ctx, id, false)
}

func (r *ClientRepo) setInactive(ctx context.Context, id int64, inactive bool) error {
	result, err := r.db.ExecContext(ctx, "UPDATE clients SET inactive = ? WHERE id = ?", inactive, id)
	if err != nil {
		r.log.Error("set client inactive failed", "id", id, "error", err)
		return fmt.Errorf("failed to change client state: %w", err)
	}
	return rowsAffected(result, fmt.Sprintf("client %d", id))
}

// Delete removes a client row permanently. A client that still owns
// services is protected by the foreign key and yields ErrConflict.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	if err != nil {
		err = translateErr(err)
		if !errors.Is(err, ErrConflict) {
			r.log.Error("delete client failed", "id", id, "error", err)
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return rowsAffected(result, fmt.Sprintf("client %d", id))
}

// Search finds active clients whose field contains value (case-sensitive
// substring match)
func (r *ClientRepo) Search(ctx context.Context, field SearchField, value string) ([]*domain.Client, error) {
	query := fmt.Sprintf(`
		SELECT `+clientColumns+`
		FROM clients
		WHERE %s LIKE ? AND inactive = 0
		ORDER BY id
	`, field.column())

	rows, err := r.db.QueryContext(ctx, query, "%"+value+"%")
	if err != nil {
		r.log.Error("search clients failed", "field", field.String(), "error", err)
		return nil, fmt.Errorf("failed to search clients: %w", err)
	}
	defer rows.Close()

	return collectClients(rows)
}

// MostRecent returns the most recently registered active client
func (r *ClientRepo) MostRecent(ctx context.Context) (*domain.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE inactive = 0
		ORDER BY id DESC
		LIMIT 1
	`

	client, err := scanClient(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no clients registered: %w", ErrNotFound)
		}
		r.log.Error("most recent client failed", "error", err)
		return nil, fmt.Errorf("failed to get most recent client: %w", err)
	}

	return client, nil
}
