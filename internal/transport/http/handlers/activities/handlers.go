package activitieshandler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"intranet/internal/domain/activities"
	"intranet/internal/transport/http/api"
	"intranet/internal/transport/http/middleware"
	"intranet/internal/transport/http/shared"
)

type Handler struct {
	Service *activities.Service
}

func NewHandler(service *activities.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/actividades", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/semana", h.handleWeek)
		r.Post("/semana", h.handleSaveWeek)
		r.Get("/mes", h.handleMonth)
		r.Put("/{activityID}", h.handleUpdateDay)
		r.Delete("/{activityID}", h.handleDeleteDay)
	})
}

// targetEmployee resolves whose activities are addressed: admins may pass
// empleadoId, everyone else operates on their own record.
func targetEmployee(r *http.Request) string {
	user, _ := middleware.GetUser(r.Context())
	if user.IsAdmin {
		if id := r.URL.Query().Get("empleadoId"); id != "" {
			return id
		}
	}
	return user.ID
}

func (h *Handler) handleWeek(w http.ResponseWriter, r *http.Request) {
	ref := time.Now()
	if raw := r.URL.Query().Get("fecha"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_date", "fecha must be YYYY-MM-DD", middleware.GetRequestID(r.Context()))
			return
		}
		ref = parsed
	}

	monday, friday := activities.WeekWindow(ref)
	list, err := h.Service.Week(r.Context(), targetEmployee(r), ref)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "activity_list_failed", "failed to load week", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{
		"semana":      activities.FormatWeekRange(monday, friday),
		"desde":       monday.Format("2006-01-02"),
		"hasta":       friday.Format("2006-01-02"),
		"actividades": list,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSaveWeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Entries []activities.DayEntry `json:"dias"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	saved, err := h.Service.SaveWeek(r.Context(), targetEmployee(r), req.Entries)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "activity_save_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]int{"guardados": saved}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMonth(w http.ResponseWriter, r *http.Request) {
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

	list, err := h.Service.Month(r.Context(), targetEmployee(r), year, time.Month(month))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "activity_list_failed", "failed to load month", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateDay(w http.ResponseWriter, r *http.Request) {
	var entry activities.DayEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.UpdateDay(r.Context(), targetEmployee(r), chi.URLParam(r, "activityID"), entry); err != nil {
		api.Fail(w, http.StatusBadRequest, "activity_update_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"updated": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteDay(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteDay(r.Context(), targetEmployee(r), chi.URLParam(r, "activityID")); err != nil {
		api.Fail(w, http.StatusNotFound, "activity_delete_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}
