package announcementshandler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"intranet/internal/domain/announcements"
	"intranet/internal/transport/http/api"
	"intranet/internal/transport/http/middleware"
	"intranet/internal/transport/http/shared"
)

const maxImageSize = 5 << 20

type Handler struct {
	Service *announcements.Service
}

func NewHandler(service *announcements.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/anuncios", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleActive)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/todos", h.handleAll)
			r.Post("/", h.handleCreate)
			r.Post("/reordenar", h.handleReorder)
			r.Put("/{announcementID}", h.handleUpdate)
			r.Delete("/{announcementID}", h.handleDelete)
		})
	})
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Active(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "announcement_list_failed", "failed to list announcements", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.All(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "announcement_list_failed", "failed to list announcements", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

// parseForm reads the announcement fields and optional image from a
// multipart form.
func (h *Handler) parseForm(r *http.Request) (announcements.Announcement, []byte, string, error) {
	var a announcements.Announcement
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		return a, nil, "", err
	}

	a.Title = r.FormValue("titulo")
	a.Content = r.FormValue("contenido")
	a.Active = r.FormValue("activo") != "false"
	a.Order, _ = strconv.Atoi(r.FormValue("orden"))
	if raw := r.FormValue("fechaInicio"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			return a, nil, "", err
		}
		a.StartDate = &parsed
	}
	if raw := r.FormValue("fechaFin"); raw != "" {
		parsed, err := shared.ParseDate(raw)
		if err != nil {
			return a, nil, "", err
		}
		a.EndDate = &parsed
	}

	file, header, err := r.FormFile("imagen")
	if err != nil {
		return a, nil, "", nil
	}
	defer file.Close()
	image, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		return a, nil, "", err
	}
	return a, image, header.Header.Get("Content-Type"), nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	a, image, imageType, err := h.parseForm(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_form", "invalid multipart form", middleware.GetRequestID(r.Context()))
		return
	}

	created, err := h.Service.Create(r.Context(), a, image, imageType)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "announcement_create_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	a, image, imageType, err := h.parseForm(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_form", "invalid multipart form", middleware.GetRequestID(r.Context()))
		return
	}
	a.ID = chi.URLParam(r, "announcementID")

	updated, err := h.Service.Update(r.Context(), a, image, imageType)
	if err != nil {
		if errors.Is(err, announcements.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "announcement not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusBadRequest, "announcement_update_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, updated, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}
	if err := h.Service.Reorder(r.Context(), req.IDs); err != nil {
		api.Fail(w, http.StatusBadRequest, "announcement_reorder_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"reordered": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "announcementID")); err != nil {
		if errors.Is(err, announcements.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "announcement not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "announcement_delete_failed", "failed to delete announcement", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}
