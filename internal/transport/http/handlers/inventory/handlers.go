package inventoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"intranet/internal/domain/employees"
	"intranet/internal/domain/inventory"
	"intranet/internal/transport/http/api"
	"intranet/internal/transport/http/middleware"
)

type Handler struct {
	Service *inventory.Service
}

func NewHandler(service *inventory.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/equipos", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/mios", h.handleMyEquipment)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(employees.RoleInventory))
			r.Get("/", h.handleList)
			r.Get("/estadisticas", h.handleStats)
			r.Post("/", h.handleCreate)
			r.Route("/{equipmentID}", func(r chi.Router) {
				r.Get("/", h.handleGet)
				r.Put("/", h.handleUpdate)
				r.Delete("/", h.handleDelete)
				r.Post("/asignar", h.handleAssign)
				r.Post("/devolver", h.handleUnassign)
				r.Get("/historial", h.handleHistory)
			})
		})
	})
}

func (h *Handler) handleMyEquipment(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	list, err := h.Service.MyEquipment(r.Context(), user.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "equipment_list_failed", "failed to list equipment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context(), r.URL.Query().Get("estado"), r.URL.Query().Get("tipo"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "equipment_list_failed", "failed to list equipment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "equipment_stats_failed", "failed to compute stats", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.Service.Get(r.Context(), chi.URLParam(r, "equipmentID"))
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "equipment not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "equipment_get_failed", "failed to load equipment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, equipment, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var e inventory.Equipment
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	created, err := h.Service.Create(r.Context(), e)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "equipment_create_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var e inventory.Equipment
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	e.ID = chi.URLParam(r, "equipmentID")

	updated, err := h.Service.Update(r.Context(), e)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "equipment not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusBadRequest, "equipment_update_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "equipmentID")); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "equipment not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusBadRequest, "equipment_delete_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAssign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID string `json:"empleadoId"`
		Notes      string `json:"notas"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	equipment, err := h.Service.Assign(r.Context(), chi.URLParam(r, "equipmentID"), req.EmployeeID, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "equipment not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, inventory.ErrAssigned):
			api.Fail(w, http.StatusConflict, "already_assigned", "equipment is not available", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusBadRequest, "equipment_assign_failed", err.Error(), middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, equipment, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUnassign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Notes string `json:"notas"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	equipment, err := h.Service.Unassign(r.Context(), chi.URLParam(r, "equipmentID"), req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrNotFound):
			api.Fail(w, http.StatusNotFound, "not_found", "equipment not found", middleware.GetRequestID(r.Context()))
		case errors.Is(err, inventory.ErrNotAssigned):
			api.Fail(w, http.StatusConflict, "not_assigned", "equipment is not assigned", middleware.GetRequestID(r.Context()))
		default:
			api.Fail(w, http.StatusBadRequest, "equipment_unassign_failed", err.Error(), middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Success(w, equipment, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Service.History(r.Context(), chi.URLParam(r, "equipmentID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "equipment_history_failed", "failed to load history", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, history, middleware.GetRequestID(r.Context()))
}
