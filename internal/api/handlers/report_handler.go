package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/api/middleware"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/application/services"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
)

// ReportService defines the report operations used by the handler.
type ReportService interface {
	RecordUpload(ctx context.Context, session *entities.UserSession, input services.ReportInput) (*entities.MedicalReport, error)
	RecentReports(ctx context.Context, ownerID string) ([]*entities.MedicalReport, error)
}

// ReportHandler handles medical report records.
type ReportHandler struct {
	service ReportService
}

// NewReportHandler creates a new report handler.
func NewReportHandler(service ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// CreateReport handles POST /api/reports
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	var input services.ReportInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	report, err := h.service.RecordUpload(r.Context(), session, input)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, report)
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	reports, err := h.service.RecentReports(r.Context(), session.ID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
		"count":   len(reports),
	})
}
