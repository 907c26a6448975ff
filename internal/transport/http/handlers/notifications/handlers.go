package notificationshandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"intranet/internal/domain/notifications"
	"intranet/internal/platform/config"
	"intranet/internal/platform/email"
	"intranet/internal/transport/http/api"
	"intranet/internal/transport/http/middleware"
)

type Handler struct {
	Service *notifications.Service
	Config  config.Config
}

func NewHandler(service *notifications.Service, cfg config.Config) *Handler {
	return &Handler{Service: service, Config: cfg}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notificaciones", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleMyNotifications)
	})

	r.Route("/plantillas", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/", h.handleListTemplates)
		r.Route("/{code}", func(r chi.Router) {
			r.Get("/", h.handleGetTemplate)
			r.Put("/", h.handleUpdateTemplate)
			r.Post("/restaurar", h.handleRestoreTemplate)
			r.Post("/previsualizar", h.handlePreview)
			r.Post("/probar", h.handleTestSend)
		})
	})

	r.Route("/correo", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/configuracion", h.handleMailConfig)
		r.Post("/probar-conexion", h.handleTestConnection)
	})
}

func (h *Handler) handleMyNotifications(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limite"))

	list, err := h.Service.List(r.Context(), user.ID, limit)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "notification_list_failed", "failed to list notifications", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.Templates(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_list_failed", "failed to list templates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.Service.Template(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, notifications.ErrTemplateNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "template not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "template_get_failed", "failed to load template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tpl, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject string `json:"asunto"`
		Body    string `json:"cuerpo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "invalid request body", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.UpdateTemplate(r.Context(), chi.URLParam(r, "code"), req.Subject, req.Body); err != nil {
		if errors.Is(err, notifications.ErrTemplateNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "template not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusBadRequest, "template_update_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"updated": true}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRestoreTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.Service.RestoreTemplate(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, notifications.ErrTemplateNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "template not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "template_restore_failed", "failed to restore template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tpl, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Values map[string]string `json:"valores"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	subject, body, err := h.Service.Preview(r.Context(), chi.URLParam(r, "code"), req.Values)
	if err != nil {
		if errors.Is(err, notifications.ErrTemplateNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "template not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "template_preview_failed", "failed to render preview", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"asunto": subject, "cuerpo": body}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTestSend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To     string            `json:"para"`
		Values map[string]string `json:"valores"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.To == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_body", "para is required", middleware.GetRequestID(r.Context()))
		return
	}

	result, err := h.Service.TestSend(r.Context(), chi.URLParam(r, "code"), req.To, req.Values)
	if err != nil {
		if errors.Is(err, notifications.ErrTemplateNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "template not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "template_test_failed", "failed to send test email", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

// handleMailConfig reports the SMTP settings without the password.
func (h *Handler) handleMailConfig(w http.ResponseWriter, r *http.Request) {
	cfg := h.Config
	api.Success(w, map[string]any{
		"host":        cfg.SMTPHost,
		"puerto":      cfg.SMTPPort,
		"usuario":     cfg.SMTPUser,
		"usarSSL":     cfg.SMTPUseSSL,
		"remitente":   cfg.EmailFrom,
		"nombre":      cfg.EmailFromName,
		"habilitado":  cfg.EmailEnabled,
		"configurado": cfg.SMTPUser != "" && cfg.SMTPPassword != "",
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	api.Success(w, email.TestConnection(r.Context(), h.Config), middleware.GetRequestID(r.Context()))
}
