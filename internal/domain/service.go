package domain

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a service order.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Open reports whether the service still represents pending work.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusInProgress
}

// ParseStatus converts user-supplied text into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", invalidf("unknown status %q", s)
	}
	return status, nil
}

// DateLayout is the storage and display format for service dates.
const DateLayout = "2006-01-02"

// Service is a work order performed for a client.
type Service struct {
	ID            int64
	Description   string
	Status        Status
	EntryDate     time.Time
	EstimatedDate *time.Time
	Cost          float64
	ClientID      int64
	Inactive      bool
}

// NewService creates a pending service entered today for the given client.
func NewService(description string, clientID int64) *Service {
	return &Service{
		Description: strings.TrimSpace(description),
		Status:      StatusPending,
		EntryDate:   Today(),
		ClientID:    clientID,
	}
}

// Today returns the current date truncated to day precision.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// Validate returns an error wrapping ErrInvalid if the service is invalid
func (s *Service) Validate() error {
	if strings.TrimSpace(s.Description) == "" {
		return invalidf("description is required")
	}
	if s.ClientID <= 0 {
		return invalidf("client reference is required")
	}
	if !s.Status.Valid() {
		return invalidf("unknown status %q", s.Status)
	}
	if s.Cost < 0 {
		return invalidf("cost cannot be negative")
	}
	if s.EntryDate.IsZero() {
		return invalidf("entry date is required")
	}
	return nil
}

// ToMap serializes the service for the reporting boundary. Dates are
// rendered as YYYY-MM-DD strings, an absent estimated date as nil.
func (s *Service) ToMap() map[string]any {
	var estimated any
	if s.EstimatedDate != nil {
		estimated = s.EstimatedDate.Format(DateLayout)
	}
	var entry any
	if !s.EntryDate.IsZero() {
		entry = s.EntryDate.Format(DateLayout)
	}
	return map[string]any{
		"id":             s.ID,
		"description":    s.Description,
		"status":         string(s.Status),
		"entry_date":     entry,
		"estimated_date": estimated,
		"cost":           s.Cost,
		"client_id":      s.ClientID,
		"inactive":       s.Inactive,
	}
}

// ServiceFromMap rebuilds a service from a ToMap-shaped mapping. Dates may
// arrive as time.Time or YYYY-MM-DD strings, cost as a float, an int, or a
// numeric string; a missing status defaults to PENDING. The entry date is
// never defaulted here, only NewService does that.
func ServiceFromMap(data map[string]any) (*Service, error) {
	svc := &Service{
		ID:          intField(data, "id"),
		Description: stringField(data, "description"),
		Status:      StatusPending,
		ClientID:    intField(data, "client_id"),
		Inactive:    boolField(data, "inactive"),
	}

	if raw := stringField(data, "status"); raw != "" {
		status, err := ParseStatus(raw)
		if err != nil {
			return nil, err
		}
		svc.Status = status
	}

	entry, err := dateField(data, "entry_date")
	if err != nil {
		return nil, err
	}
	if entry != nil {
		svc.EntryDate = *entry
	}

	if svc.EstimatedDate, err = dateField(data, "estimated_date"); err != nil {
		return nil, err
	}
	if svc.Cost, err = costField(data, "cost"); err != nil {
		return nil, err
	}
	return svc, nil
}
