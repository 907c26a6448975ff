package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"intranet/internal/domain/employees"
	"intranet/internal/transport/http/api"
	"intranet/internal/transport/http/middleware"
)

type Handler struct {
	Service *employees.Service
}

func NewHandler(service *employees.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/empleados", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.With(middleware.RequireAdmin).Get("/", h.handleList)
		r.With(middleware.RequireAdmin).Post("/", h.handleCreate)
		r.Route("/{employeeID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.With(middleware.RequireAdmin).Put("/", h.handleUpdate)
			r.With(middleware.RequireAdmin).Delete("/", h.handleDeactivate)
		})
	})

	r.Route("/catalogos", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/puestos", h.handleListPositions)
		r.With(middleware.RequireAdmin).Post("/puestos", h.handleCreatePosition)
		r.With(middleware.RequireAdmin).Put("/puestos/{positionID}", h.handleUpdatePosition)
		r.Get("/supervisores", h.handleListSupervisors)
		r.With(middleware.RequireAdmin).Post("/supervisores", h.handleCreateSupervisor)
		r.Get("/ubicaciones", h.handleListLocations)
		r.With(middleware.RequireAdmin).Post("/ubicaciones", h.handleCreateLocation)
		r.Get("/proyectos", h.handleListProjects)
		r.With(middleware.RequireAdmin).Post("/proyectos", h.handleCreateProject)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	includeInactive := r.URL.Query().Get("incluirBajas") == "true"
	list, err := h.Service.List(r.Context(), includeInactive)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	if !user.IsAdmin && user.ID != employeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "admin access required", middleware.GetRequestID(r.Context()))
		return
	}

	detail, err := h.Service.Get(r.Context(), employeeID)
	if err != nil {
		if errors.Is(err, employees.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, detail, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		employees.Employee
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Service.Create(r.Context(), employees.CreateInput{Employee: req.Employee, Password: req.Password})
	if err != nil {
		if errors.Is(err, employees.ErrDuplicateEmail) {
			api.Fail(w, http.StatusConflict, "duplicate_email", "an employee with that email already exists", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusBadRequest, "employee_create_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch employees.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	updated, err := h.Service.Update(r.Context(), chi.URLParam(r, "employeeID"), patch)
	if err != nil {
		if errors.Is(err, employees.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusBadRequest, "employee_update_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Deactivate(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		if errors.Is(err, employees.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "employee_deactivate_failed", "failed to deactivate employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deactivated": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPositions(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Positions(r.Context(), r.URL.Query().Get("incluirInactivos") == "true")
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_list_failed", "failed to list positions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name               string `json:"nombre"`
		AnnualVacationDays int    `json:"diasVacacionesAnuales"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	created, err := h.Service.CreatePosition(r.Context(), req.Name, req.AnnualVacationDays)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "catalog_create_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdatePosition(w http.ResponseWriter, r *http.Request) {
	positionID, err := strconv.Atoi(chi.URLParam(r, "positionID"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_id", "invalid position id", middleware.GetRequestID(r.Context()))
		return
	}
	var req struct {
		Name               string `json:"nombre"`
		AnnualVacationDays int    `json:"diasVacacionesAnuales"`
		Active             bool   `json:"activo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.UpdatePosition(r.Context(), positionID, req.Name, req.AnnualVacationDays, req.Active); err != nil {
		api.Fail(w, http.StatusBadRequest, "catalog_update_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"updated": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListSupervisors(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Supervisors(r.Context(), r.URL.Query().Get("incluirInactivos") == "true")
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_list_failed", "failed to list supervisors", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateSupervisor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"nombre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	created, err := h.Service.CreateSupervisor(r.Context(), req.Name)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "catalog_create_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListLocations(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Locations(r.Context(), r.URL.Query().Get("incluirInactivos") == "true")
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_list_failed", "failed to list locations", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateLocation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"codigo"`
		Name string `json:"nombre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	created, err := h.Service.CreateLocation(r.Context(), req.Code, req.Name)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "catalog_create_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Projects(r.Context(), r.URL.Query().Get("incluirInactivos") == "true")
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "catalog_list_failed", "failed to list projects", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"nombre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	created, err := h.Service.CreateProject(r.Context(), req.Name)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "catalog_create_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}
