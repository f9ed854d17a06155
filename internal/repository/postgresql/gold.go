package postgresql

import (
	"fmt"

	"context"

	"github.com/hr-insights/etl-backend-go/internal/kpi"
	"github.com/hr-insights/etl-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type goldStoreImpl struct {
	db *database.DB
}

func NewGoldStore(db *database.DB) kpi.GoldStore {
	return &goldStoreImpl{db: db}
}

// Replace materializes one computed KPI table under its fixed name,
// atomically swapping out any previous run's version.
func (s *goldStoreImpl) Replace(ctx context.Context, table kpi.Table) error {
	defs := make([]string, 0, len(table.Columns))
	names := make([]string, 0, len(table.Columns))
	for _, c := range table.Columns {
		defs = append(defs, pgx.Identifier{c.Name}.Sanitize()+" "+c.Type)
		names = append(names, c.Name)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := replaceWithSwap(ctx, tx, table.Name, defs, names, table.Rows); err != nil {
		return fmt.Errorf("replace %s: %w", table.Name, err)
	}
	return tx.Commit(ctx)
}
