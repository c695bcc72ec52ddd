package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mutecomm/go-sqlcipher/v4"

	"github.com/matiashmartinez/taller/internal/domain"
)

// parseDate parses a stored YYYY-MM-DD date
func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, s)
}

// formatDate renders a date for storage
func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// nullDate renders an optional date for storage, NULL when absent
func nullDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatDate(*t)
}

// translateErr maps driver-level constraint violations to ErrConflict so
// callers never need to import the driver package.
func translateErr(err error) error {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %v", ErrConflict, err)
		}
	}
	return err
}

// rowsAffected reports ErrNotFound when an UPDATE or DELETE matched nothing
func rowsAffected(result sql.Result, what string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
