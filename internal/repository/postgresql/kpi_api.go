package postgresql

import (
	"context"
	"fmt"

	"github.com/hr-insights/etl-backend-go/internal/kpi"
	"github.com/hr-insights/etl-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type kpiReadImpl struct {
	db *database.DB
}

func NewKPIReadRepository(db *database.DB) *kpiReadImpl {
	return &kpiReadImpl{db: db}
}

// Rows returns the full contents of one gold table as generic records.
// The table name must come from the fixed catalogue; identifiers cannot be
// parameterized, so the whitelist plus sanitizing is the guard.
func (r *kpiReadImpl) Rows(ctx context.Context, table string) ([]map[string]any, error) {
	if !isKPITable(table) {
		return nil, kpi.ErrUnknownTable
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf("SELECT * FROM %s", pgx.Identifier{table}.Sanitize()))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var records []map[string]any
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		record := make(map[string]any, len(fields))
		for i, f := range fields {
			record[f.Name] = values[i]
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func isKPITable(name string) bool {
	for _, t := range kpi.TableNames {
		if t == name {
			return true
		}
	}
	return false
}
