package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/hr-insights/etl-backend-go/internal/handler/http/middleware"
	"github.com/hr-insights/etl-backend-go/internal/handler/http/response"
	"github.com/hr-insights/etl-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	analyticsHandler AnalyticsHandler,
	allowedOrigins []string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "etl-insights"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]any{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/token", authHandler.Token)
		})

		// Public reads over silver and gold tables
		r.Get("/employees", employeeHandler.List)
		r.Get("/employees/{id}", employeeHandler.Get)
		r.Get("/timesheets", analyticsHandler.ListTimesheets)
		r.Get("/kpi/{table}", analyticsHandler.KPITable)

		// Writes require authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/employees", employeeHandler.Create)
			r.Put("/employees/{id}", employeeHandler.Update)
			r.Delete("/employees/{id}", employeeHandler.Delete)
		})
	})

	return r
}
