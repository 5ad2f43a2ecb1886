package handlers

import (
	"context"
	"net/http"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
)

// maxUploadBytes caps the multipart request body.
const maxUploadBytes = 20 << 20

// Uploader defines the storage operation used by the handler.
type Uploader interface {
	Upload(ctx context.Context, input providers.UploadInput) (*providers.StoredObject, error)
}

// UploadHandler relays multipart file uploads to object storage.
type UploadHandler struct {
	service Uploader
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(service Uploader) *UploadHandler {
	return &UploadHandler{service: service}
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	URL      string `json:"url,omitempty"`
	PublicID string `json:"public_id,omitempty"`
}

// Upload handles POST /api/upload. The response shape is a stable
// contract: success with a url, or success=false with a message.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithJSON(w, http.StatusBadRequest, uploadResponse{
			Success: false,
			Message: "No file uploaded",
		})
		return
	}
	defer file.Close()

	stored, err := h.service.Upload(r.Context(), providers.UploadInput{
		Data:     file,
		FileName: header.Filename,
	})
	if err != nil {
		respondWithJSON(w, http.StatusInternalServerError, uploadResponse{
			Success: false,
			Message: "Upload failed",
		})
		return
	}

	respondWithJSON(w, http.StatusOK, uploadResponse{
		Success:  true,
		URL:      stored.URL,
		PublicID: stored.PublicID,
	})
}
