package vacationshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"intranet/internal/domain/vacations"
	"intranet/internal/transport/http/api"
	"intranet/internal/transport/http/middleware"
	"intranet/internal/transport/http/shared"
)

type Handler struct {
	Service     *vacations.Service
	CompanyName string
}

func NewHandler(service *vacations.Service, companyName string) *Handler {
	return &Handler{Service: service, CompanyName: companyName}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/vacaciones", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleMyRequests)
		r.Post("/", h.handleCreate)
		r.With(middleware.RequireAdmin).Get("/todas", h.handleAll)
		r.With(middleware.RequireAdmin).Get("/pendientes", h.handlePending)
		r.Route("/{requestID}", func(r chi.Router) {
			r.Delete("/", h.handleCancel)
			r.Get("/pdf", h.handlePDF)
			r.With(middleware.RequireAdmin).Post("/aprobar", h.handleApprove)
			r.With(middleware.RequireAdmin).Post("/rechazar", h.handleReject)
		})
	})
}

func (h *Handler) handleMyRequests(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	list, err := h.Service.MyRequests(r.Context(), user.ID, r.URL.Query().Get("estatus"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "vacation_list_failed", "failed to list requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.All(r.Context(), r.URL.Query().Get("estatus"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "vacation_list_failed", "failed to list requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Pending(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "vacation_list_failed", "failed to list requests", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var req struct {
		StartDate     string   `json:"fechaInicio"`
		EndDate       string   `json:"fechaFin"`
		RequestedDays float64  `json:"diasSolicitados"`
		SpecificDays  []string `json:"diasEspecificos"`
		Kind          string   `json:"tipoSolicitud"`
		Reason        string   `json:"motivo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("tipoSolicitud", req.Kind)
	v.Enum("tipoSolicitud", req.Kind, vacations.KindUseDays, vacations.KindVacationBonus, vacations.KindPaternity)
	start, _ := v.Date("fechaInicio", req.StartDate)
	end, _ := v.Date("fechaFin", req.EndDate)
	if !v.Respond(w, middleware.GetRequestID(r.Context())) {
		return
	}

	created, err := h.Service.Create(r.Context(), vacations.Request{
		EmployeeID:    user.ID,
		StartDate:     start,
		EndDate:       end,
		RequestedDays: req.RequestedDays,
		SpecificDays:  req.SpecificDays,
		Kind:          req.Kind,
		Reason:        req.Reason,
	})
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "vacation_create_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

type decisionRequest struct {
	Comment string `json:"comentario"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var req decisionRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	updated, err := h.Service.Approve(r.Context(), chi.URLParam(r, "requestID"), user.ID, req.Comment)
	if err != nil {
		h.failDecision(w, r, err)
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.Reject(r.Context(), chi.URLParam(r, "requestID"), user.ID, req.Comment)
	if err != nil {
		h.failDecision(w, r, err)
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) failDecision(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, vacations.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "request not found", middleware.GetRequestID(r.Context()))
	case errors.Is(err, vacations.ErrAlreadyProcessed):
		api.Fail(w, http.StatusConflict, "already_processed", "request was already processed", middleware.GetRequestID(r.Context()))
	default:
		api.Fail(w, http.StatusBadRequest, "vacation_decision_failed", err.Error(), middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Service.Cancel(r.Context(), chi.URLParam(r, "requestID"), user.ID); err != nil {
		if errors.Is(err, vacations.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "no cancellable request found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "vacation_cancel_failed", "failed to cancel request", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"cancelled": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	requestID := chi.URLParam(r, "requestID")

	if !user.IsAdmin {
		req, err := h.Service.Get(r.Context(), requestID)
		if err != nil || req.EmployeeID != user.ID {
			api.Fail(w, http.StatusNotFound, "not_found", "request not found", middleware.GetRequestID(r.Context()))
			return
		}
	}

	pdf, err := h.Service.RequestForm(r.Context(), requestID, h.CompanyName)
	if err != nil {
		if errors.Is(err, vacations.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "request not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render form", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="solicitud_vacaciones.pdf"`)
	_, _ = w.Write(pdf)
}
