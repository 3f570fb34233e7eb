package core

import (
	"context"
	"database/sql"
	"fmt"
)

type (
	// DBExecutor is satisfied by *sqlx.DB and *sqlx.Tx.
	DBExecutor interface {
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		Rebind(query string) string
	}
)

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// CheckOrderings makes sure every ordering field is one of `allowed`.
// Ordering fields end up in ORDER BY clauses, so anything else is rejected.
func CheckOrderings(orderings []DBOrdering, allowed map[string]bool) error {
	for _, ord := range orderings {
		if !allowed[ord.Field] {
			return NewValidationError(nil, FieldError{
				Field: "ordering",
				Error: fmt.Sprintf("cannot order by %q", ord.Field),
			})
		}
	}
	return nil
}
