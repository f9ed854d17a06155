package kpi

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hr-insights/etl-backend-go/internal/domain/employee"
	"github.com/hr-insights/etl-backend-go/internal/domain/timesheet"
)

// Engine materializes the full KPI catalogue. The batch is best-effort:
// each table is computed and replaced independently, and a failure in one
// never aborts the remaining ones.
type Engine struct {
	src  SilverSource
	gold GoldStore
	log  *slog.Logger
}

func NewEngine(src SilverSource, gold GoldStore, log *slog.Logger) *Engine {
	return &Engine{src: src, gold: gold, log: log}
}

// GenerateAll reads the silver rows once and materializes every catalogue
// table, returning a per-table result. The returned error covers only the
// silver read itself; per-KPI failures live in the results.
func (e *Engine) GenerateAll(ctx context.Context) ([]Result, error) {
	emps, err := e.src.Employees(ctx)
	if err != nil {
		return nil, fmt.Errorf("read silver employees: %w", err)
	}
	ts, err := e.src.Timesheets(ctx)
	if err != nil {
		return nil, fmt.Errorf("read silver timesheets: %w", err)
	}

	results := make([]Result, 0, len(builders))
	for _, b := range builders {
		results = append(results, e.generate(ctx, b, emps, ts))
	}
	return results, nil
}

func (e *Engine) generate(ctx context.Context, b builder, emps []employee.Silver, ts []timesheet.Silver) (res Result) {
	res = Result{Table: b.name}
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("kpi %s panicked: %v", b.name, r)
			e.log.Error("kpi computation panicked", "table", b.name, "panic", r)
		}
	}()

	table := b.build(emps, ts)
	if err := e.gold.Replace(ctx, table); err != nil {
		res.Err = fmt.Errorf("materialize %s: %w", b.name, err)
		e.log.Error("kpi materialization failed", "table", b.name, "error", err)
		return res
	}

	res.Rows = len(table.Rows)
	e.log.Info("kpi table materialized", "table", b.name, "rows", res.Rows)
	return res
}
