package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hr-insights/etl-backend-go/internal/config"
	"github.com/hr-insights/etl-backend-go/internal/extract"
	"github.com/hr-insights/etl-backend-go/internal/kpi"
	"github.com/hr-insights/etl-backend-go/internal/pipeline"
	"github.com/hr-insights/etl-backend-go/internal/pkg/database"
	"github.com/hr-insights/etl-backend-go/internal/quality"
	"github.com/hr-insights/etl-backend-go/internal/repository/postgresql"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "etl-insights"),
		slog.String("component", "pipeline"),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		logger.Error("error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	extractor := extract.New(cfg.Pipeline, logger)
	bronzeStore := postgresql.NewBronzeStore(db)
	silverEmployeeStore := postgresql.NewSilverEmployeeStore(db)
	silverTimesheetStore := postgresql.NewSilverTimesheetStore(db)
	goldStore := postgresql.NewGoldStore(db)

	gate := quality.NewGate(postgresql.NewQualityStats(db), logger)
	engine := kpi.NewEngine(postgresql.NewSilverSource(silverEmployeeStore, silverTimesheetStore), goldStore, logger)

	p := pipeline.New(
		extractor,
		bronzeStore,
		silverEmployeeStore,
		silverTimesheetStore,
		gate,
		engine,
		cfg.Pipeline.MaxRetries,
		cfg.Pipeline.RetryDelay,
		logger,
	)

	summary, err := p.Run(context.Background())
	if err != nil {
		logger.Error("pipeline run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("pipeline run finished",
		"run_id", summary.RunID,
		"silver_employees", summary.SilverEmployees,
		"silver_timesheets", summary.SilverTimesheets,
		"dropped_dup_employees", summary.DroppedDupEmployees,
		"dropped_dup_timesheets", summary.DroppedDupTimesheets,
		"quality_warnings", len(summary.Quality.Warnings),
		"failed_kpis", summary.FailedKPIs(),
	)
}
