package postgresql

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func joinSet(set []string) string {
	return strings.Join(set, ", ")
}

func joinAnd(conds []string) string {
	return strings.Join(conds, " AND ")
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func intOrNil(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
