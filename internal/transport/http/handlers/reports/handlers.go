package reportshandler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"intranet/internal/domain/reports"
	"intranet/internal/transport/http/api"
	"intranet/internal/transport/http/middleware"
	"intranet/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reportes", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/semanal", h.handleWeekly)
		r.Get("/mensual", h.handleMonthly)
	})
}

// scope returns the employee filter: admins see everyone unless they
// narrow with empleadoId, others only themselves.
func scope(r *http.Request) string {
	user, _ := middleware.GetUser(r.Context())
	if user.IsAdmin {
		return r.URL.Query().Get("empleadoId")
	}
	return user.ID
}

func (h *Handler) handleWeekly(w http.ResponseWriter, r *http.Request) {
	ref := time.Now()
	if raw := r.URL.Query().Get("fecha"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "fecha must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
			return
		}
		ref = parsed
	}

	summary, err := h.Service.Weekly(r.Context(), ref, scope(r))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year := now.Year()
	month := int(now.Month())
	if raw := r.URL.Query().Get("anio"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			year = parsed
		}
	}
	if raw := r.URL.Query().Get("mes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 12 {
			api.Fail(w, http.StatusBadRequest, "invalid_month", "mes must be 1..12", middleware.GetRequestID(r.Context()))
			return
		}
		month = parsed
	}

	summary, err := h.Service.Monthly(r.Context(), year, time.Month(month), scope(r))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}
