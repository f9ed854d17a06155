package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/hr-insights/etl-backend-go/internal/extract"
	"github.com/hr-insights/etl-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const (
	bronzeEmployeesTable  = "bronze_employees"
	bronzeTimesheetsTable = "bronze_timesheets"
)

// bronzeStoreImpl is the landing zone: raw rows verbatim, every column
// TEXT, duplicates and malformed dates included. Fully replaced per run.
type bronzeStoreImpl struct {
	db *database.DB
}

func NewBronzeStore(db *database.DB) *bronzeStoreImpl {
	return &bronzeStoreImpl{db: db}
}

func (s *bronzeStoreImpl) ReplaceEmployees(ctx context.Context, t extract.Table) (int64, error) {
	return s.replace(ctx, bronzeEmployeesTable, t)
}

func (s *bronzeStoreImpl) ReplaceTimesheets(ctx context.Context, t extract.Table) (int64, error) {
	return s.replace(ctx, bronzeTimesheetsTable, t)
}

func (s *bronzeStoreImpl) replace(ctx context.Context, name string, t extract.Table) (int64, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", pgx.Identifier{name}.Sanitize())); err != nil {
		return 0, fmt.Errorf("drop %s: %w", name, err)
	}

	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		defs = append(defs, pgx.Identifier{c}.Sanitize()+" TEXT")
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", pgx.Identifier{name}.Sanitize(), strings.Join(defs, ", "))
	if _, err := tx.Exec(ctx, ddl); err != nil {
		return 0, fmt.Errorf("create %s: %w", name, err)
	}

	rows := make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		vals := make([]any, len(row))
		for j, v := range row {
			vals[j] = v
		}
		rows[i] = vals
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{name}, t.Columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}
