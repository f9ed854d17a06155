package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/hr-insights/etl-backend-go/internal/config"
	appHTTP "github.com/hr-insights/etl-backend-go/internal/handler/http"
	"github.com/hr-insights/etl-backend-go/internal/pkg/database"
	"github.com/hr-insights/etl-backend-go/internal/pkg/jwt"
	"github.com/hr-insights/etl-backend-go/internal/repository/postgresql"
	analyticsService "github.com/hr-insights/etl-backend-go/internal/service/analytics"
	authService "github.com/hr-insights/etl-backend-go/internal/service/auth"
	employeeService "github.com/hr-insights/etl-backend-go/internal/service/employee"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	if err := cfg.ValidateAPI(); err != nil {
		fmt.Println("Error validating API config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeCRUDRepository(db)
	timesheetRepo := postgresql.NewTimesheetReadRepository(db)
	kpiRepo := postgresql.NewKPIReadRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authSvc := authService.NewAuthService(cfg.API, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	analyticsSvc := analyticsService.NewAnalyticsService(timesheetRepo, kpiRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	analyticsHandler := appHTTP.NewAnalyticsHandler(analyticsSvc)

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		employeeHandler,
		analyticsHandler,
		cfg.API.AllowedOrigins,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.API.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
