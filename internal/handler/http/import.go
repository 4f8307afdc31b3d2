package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/importer"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// multipartOverhead leaves room for form boundaries and the session_id field.
const multipartOverhead = 1 << 20

type ImportHandler interface {
	Upload(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateMapping(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	Back(w http.ResponseWriter, r *http.Request)
	Commit(w http.ResponseWriter, r *http.Request)
	Discard(w http.ResponseWriter, r *http.Request)
}

type importHandlerImpl struct {
	importService  importer.ImportService
	maxUploadBytes int64
}

func NewImportHandler(importService importer.ImportService, maxUploadBytes int64) ImportHandler {
	return &importHandlerImpl{
		importService:  importService,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload implements ImportHandler.
func (h *importHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.HandleError(w, importer.ErrFileTooLarge)
			return
		}
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "file is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("Failed to read uploaded file", "error", err)
		response.BadRequest(w, "Failed to read uploaded file", nil)
		return
	}

	result, err := h.importService.Upload(r.Context(), importer.UploadRequest{
		SessionID: r.FormValue("session_id"),
		FileName:  fileHeader.Filename,
		Data:      data,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "File uploaded successfully", result)
}

// Get implements ImportHandler.
func (h *importHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.importService.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMapping implements ImportHandler.
func (h *importHandlerImpl) UpdateMapping(w http.ResponseWriter, r *http.Request) {
	var req importer.UpdateMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateMapping decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.importService.UpdateMapping(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Column mapping updated", result)
}

// Preview implements ImportHandler.
func (h *importHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	result, err := h.importService.Preview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Back implements ImportHandler.
func (h *importHandlerImpl) Back(w http.ResponseWriter, r *http.Request) {
	result, err := h.importService.Back(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Commit implements ImportHandler.
func (h *importHandlerImpl) Commit(w http.ResponseWriter, r *http.Request) {
	var req importer.CommitRequest
	// body is optional
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Commit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.importService.Commit(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import finished", result)
}

// Discard implements ImportHandler.
func (h *importHandlerImpl) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.importService.Discard(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import session discarded", nil)
}
