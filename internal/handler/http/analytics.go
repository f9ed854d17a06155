package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hr-insights/etl-backend-go/internal/domain/timesheet"
	"github.com/hr-insights/etl-backend-go/internal/handler/http/response"
	analyticsService "github.com/hr-insights/etl-backend-go/internal/service/analytics"
)

type AnalyticsHandler interface {
	ListTimesheets(w http.ResponseWriter, r *http.Request)
	KPITable(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analyticsService.AnalyticsService
}

func NewAnalyticsHandler(svc analyticsService.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{analyticsService: svc}
}

func (h *analyticsHandlerImpl) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	var filter timesheet.Filter

	if id := r.URL.Query().Get("employee_id"); id != "" {
		filter.ClientEmployeeID = &id
	}
	if s := r.URL.Query().Get("start_date"); s != "" {
		start, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.BadRequest(w, "Invalid start_date, expected YYYY-MM-DD", nil)
			return
		}
		filter.StartDate = &start
	}
	if e := r.URL.Query().Get("end_date"); e != "" {
		end, err := time.Parse("2006-01-02", e)
		if err != nil {
			response.BadRequest(w, "Invalid end_date, expected YYYY-MM-DD", nil)
			return
		}
		filter.EndDate = &end
	}

	results, err := h.analyticsService.ListTimesheets(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *analyticsHandlerImpl) KPITable(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	rows, err := h.analyticsService.KPITable(r.Context(), table)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}
