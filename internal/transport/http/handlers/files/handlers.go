package fileshandler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"intranet/internal/platform/storage"
	"intranet/internal/transport/http/middleware"
)

// Handler serves stored objects. Receipt PDFs require either an
// authenticated session or a valid signed link; announcement images are
// public.
type Handler struct {
	Store *storage.Postgres
}

func NewHandler(store *storage.Postgres) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/files/*", h.handleGet)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if key == "" || strings.Contains(key, "..") {
		http.NotFound(w, r)
		return
	}

	if !h.allowed(r, key) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	content, contentType, err := h.Store.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=300")
	_, _ = w.Write(content)
}

func (h *Handler) allowed(r *http.Request, key string) bool {
	if strings.HasPrefix(key, "anuncios/") {
		return true
	}

	if exp, sig := r.URL.Query().Get("exp"), r.URL.Query().Get("sig"); exp != "" && sig != "" {
		return h.Store.VerifySignature(key, exp, sig)
	}

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		return false
	}
	if user.IsAdmin {
		return true
	}
	// Receipt keys are namespaced by employee id.
	return strings.HasPrefix(key, user.ID+"/")
}
