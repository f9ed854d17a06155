package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// replaceWithSwap materializes rows under a staging name and swaps it in
// with a rename, all in one transaction, so concurrent readers never
// observe the table missing. Columns arrive as sanitized "name TYPE" defs.
func replaceWithSwap(ctx context.Context, tx pgx.Tx, name string, columnDefs []string, columnNames []string, rows [][]any) (int64, error) {
	staging := name + "__next"

	if _, err := tx.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", pgx.Identifier{staging}.Sanitize())); err != nil {
		return 0, fmt.Errorf("drop staging %s: %w", staging, err)
	}

	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", pgx.Identifier{staging}.Sanitize(), strings.Join(columnDefs, ", "))
	if _, err := tx.Exec(ctx, ddl); err != nil {
		return 0, fmt.Errorf("create staging %s: %w", staging, err)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{staging}, columnNames, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy into staging %s: %w", staging, err)
	}

	if _, err := tx.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", pgx.Identifier{name}.Sanitize())); err != nil {
		return 0, fmt.Errorf("drop %s: %w", name, err)
	}
	rename := fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		pgx.Identifier{staging}.Sanitize(), pgx.Identifier{name}.Sanitize())
	if _, err := tx.Exec(ctx, rename); err != nil {
		return 0, fmt.Errorf("rename %s: %w", staging, err)
	}

	return n, nil
}
