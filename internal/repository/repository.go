package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/matiashmartinez/taller/internal/domain"
)

// Failure kinds shared by all repositories. Validation failures wrap
// domain.ErrInvalid; these cover everything else that is not a storage
// fault.
var (
	// ErrNotFound means no active row matched the request.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the store rejected the change: a duplicate
	// national id, or a physical delete blocked by dependent rows.
	ErrConflict = errors.New("conflict")
)

// SearchField is the closed set of client columns exposed to search.
type SearchField int

const (
	SearchFirstName SearchField = iota
	SearchLastName
	SearchNationalID
)

func (f SearchField) String() string {
	return f.column()
}

func (f SearchField) column() string {
	switch f {
	case SearchFirstName:
		return "first_name"
	case SearchLastName:
		return "last_name"
	case SearchNationalID:
		return "national_id"
	}
	panic(fmt.Sprintf("unknown search field %d", int(f)))
}

// ParseSearchField converts user-supplied text into a SearchField.
func ParseSearchField(s string) (SearchField, error) {
	switch s {
	case "first_name":
		return SearchFirstName, nil
	case "last_name":
		return SearchLastName, nil
	case "national_id":
		return SearchNationalID, nil
	}
	return 0, fmt.Errorf("%w: unknown search field %q", domain.ErrInvalid, s)
}

// ClientRepository manages client persistence
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Deactivate(ctx context.Context, id int64) error
	Reactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, field SearchField, value string) ([]*domain.Client, error)
	MostRecent(ctx context.Context) (*domain.Client, error)
}

// ServiceRepository manages service order persistence
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Service, error)
	ListForClient(ctx context.Context, clientID int64, includeInactive bool) ([]*domain.Service, error)
	ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Service, error)
	Update(ctx context.Context, service *domain.Service) error
	SetStatus(ctx context.Context, id int64, status domain.Status) error
	Deactivate(ctx context.Context, id int64) error
	Reactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
