package receiptshandler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"intranet/internal/domain/receipts"
	"intranet/internal/transport/http/api"
	"intranet/internal/transport/http/middleware"
)

// maxReceiptSize bounds one uploaded PDF.
const maxReceiptSize = 10 << 20

type Handler struct {
	Service  *receipts.Service
	Importer *receipts.Importer
}

func NewHandler(service *receipts.Service, importer *receipts.Importer) *Handler {
	return &Handler{Service: service, Importer: importer}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/recibos", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleMyReceipts)
		r.Get("/{receiptID}/descargar", h.handleDownload)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/todos", h.handleAll)
			r.Get("/estadisticas", h.handleStats)
			r.Post("/subir", h.handleUpload)
			r.Post("/subir-masivo", h.handleBulkImport)
			r.Delete("/{receiptID}", h.handleDelete)
		})
	})
}

func (h *Handler) handleMyReceipts(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	year, _ := strconv.Atoi(r.URL.Query().Get("anio"))

	list, err := h.Service.MyReceipts(r.Context(), user.ID, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "receipt_list_failed", "failed to list receipts", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleAll(w http.ResponseWriter, r *http.Request) {
	month, _ := strconv.Atoi(r.URL.Query().Get("mes"))
	year, _ := strconv.Atoi(r.URL.Query().Get("anio"))

	list, err := h.Service.All(r.Context(), r.URL.Query().Get("empleadoId"), month, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "receipt_list_failed", "failed to list receipts", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "receipt_stats_failed", "failed to compute stats", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, stats, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_form", "invalid multipart form", middleware.GetRequestID(r.Context()))
		return
	}

	file, header, err := r.FormFile("archivo")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "missing_file", "archivo is required", middleware.GetRequestID(r.Context()))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "read_failed", "failed to read file", middleware.GetRequestID(r.Context()))
		return
	}

	month, _ := strconv.Atoi(r.FormValue("mes"))
	year, _ := strconv.Atoi(r.FormValue("anio"))
	created, err := h.Service.Upload(r.Context(),
		r.FormValue("empleadoId"), r.FormValue("periodo"), month, year,
		header.Filename, content, user.ID, r.FormValue("notas"))
	if err != nil {
		if errors.Is(err, receipts.ErrDuplicate) {
			api.Fail(w, http.StatusConflict, "duplicate_receipt", "receipt for that period already exists", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusBadRequest, "receipt_upload_failed", err.Error(), middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, created, middleware.GetRequestID(r.Context()))
}

// handleBulkImport accepts a multipart batch under the "archivos" field
// and runs the filename-driven importer. HTTP status is 200 even when
// individual files fail; per-file outcomes travel in the payload.
func (h *Handler) handleBulkImport(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_form", "invalid multipart form", middleware.GetRequestID(r.Context()))
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["archivos"]) == 0 {
		api.Fail(w, http.StatusBadRequest, "missing_files", "archivos is required", middleware.GetRequestID(r.Context()))
		return
	}

	var batch []receipts.ImportFile
	for _, header := range r.MultipartForm.File["archivos"] {
		file, err := header.Open()
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "read_failed", "failed to read "+header.Filename, middleware.GetRequestID(r.Context()))
			return
		}
		content, err := io.ReadAll(io.LimitReader(file, maxReceiptSize))
		file.Close()
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "read_failed", "failed to read "+header.Filename, middleware.GetRequestID(r.Context()))
			return
		}
		batch = append(batch, receipts.ImportFile{Name: header.Filename, Content: content})
	}

	summary, err := h.Importer.Run(r.Context(), batch, user.ID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "import_failed", "bulk import failed", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	receiptID := chi.URLParam(r, "receiptID")

	receipt, err := h.Service.Get(r.Context(), receiptID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "receipt not found", middleware.GetRequestID(r.Context()))
		return
	}
	if !user.IsAdmin && receipt.EmployeeID != user.ID {
		api.Fail(w, http.StatusNotFound, "not_found", "receipt not found", middleware.GetRequestID(r.Context()))
		return
	}

	url, err := h.Service.DownloadURL(r.Context(), receiptID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "download_failed", "failed to build download link", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"url": url}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "receiptID")); err != nil {
		if errors.Is(err, receipts.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "receipt not found", middleware.GetRequestID(r.Context()))
			return
		}
		api.Fail(w, http.StatusInternalServerError, "receipt_delete_failed", "failed to delete receipt", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]bool{"deleted": true}, middleware.GetRequestID(r.Context()))
}
