package http

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "salesreport/internal/errors"
	"salesreport/pkg/contracts/domain"
)

// uploadFieldName is the multipart form field carrying the workbook.
const uploadFieldName = "file"

// ReportHandler handles report generation HTTP requests
type ReportHandler struct {
	service        ReportServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewReportHandler creates a new report handler with RFC 7807 error handling
func NewReportHandler(service ReportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *ReportHandler {
	return &ReportHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "report_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Generate)
	r.Post("/preview", h.Preview)
	r.Get("/template", h.Template)

	return r
}

// Generate handles POST /api/reports. It accepts a multipart upload with
// the workbook under the "file" field and responds with the ZIP bundle.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	upload, cleanup, err := h.openUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer cleanup()

	bundle, err := h.service.Generate(r.Context(), upload)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", domain.MimeZIP)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, bundle.Name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(bundle.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(bundle.Data)
}

// Preview handles POST /api/reports/preview. It runs the pipeline up to
// chart rendering and returns the summary and images as JSON; chart
// bytes arrive base64-encoded per encoding/json convention.
func (h *ReportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	upload, cleanup, err := h.openUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	defer cleanup()

	preview, err := h.service.Preview(r.Context(), upload)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, preview)
}

// Template handles GET /api/reports/template, serving the downloadable
// sample workbook with the required columns.
func (h *ReportHandler) Template(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.service.TemplateWorkbook(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", artifact.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, artifact.Name))
	w.WriteHeader(http.StatusOK)
	w.Write(artifact.Data)
}

// openUpload extracts the workbook file from the multipart form,
// enforcing the configured size cap before any parsing happens.
func (h *ReportHandler) openUpload(w http.ResponseWriter, r *http.Request) (multipart.File, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, nil, apierrors.NewProblemDetails(
				http.StatusRequestEntityTooLarge,
				apierrors.TypeTooLarge,
				"Upload Too Large",
				fmt.Sprintf("The uploaded file exceeds the %d byte limit", h.maxUploadBytes),
				r.URL.Path,
			)
		}
		return nil, nil, apierrors.NewProblemDetails(
			http.StatusBadRequest,
			apierrors.TypeValidation,
			"Invalid Upload",
			"The request body is not a valid multipart form",
			r.URL.Path,
		)
	}

	file, _, err := r.FormFile(uploadFieldName)
	if err != nil {
		return nil, nil, apierrors.NewProblemDetails(
			http.StatusBadRequest,
			apierrors.TypeValidation,
			"Missing Upload",
			fmt.Sprintf("The multipart form must contain a %q file field", uploadFieldName),
			r.URL.Path,
		)
	}

	cleanup := func() {
		file.Close()
		r.MultipartForm.RemoveAll()
	}
	return file, cleanup, nil
}
