package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/repositories"
	apperrors "github.com/arogyamitra/SwasthyaSahayak/backend/pkg/errors"
)

// recentReportsLimit bounds the live report projection.
const recentReportsLimit = 5

// ReportService handles medical report uploads and metadata records.
type ReportService struct {
	repo     repositories.ReportRepository
	storage  providers.StorageProvider
	eventBus providers.EventBus
}

// NewReportService creates a new report service.
func NewReportService(repo repositories.ReportRepository, storage providers.StorageProvider, eventBus providers.EventBus) *ReportService {
	return &ReportService{
		repo:     repo,
		storage:  storage,
		eventBus: eventBus,
	}
}

// Upload relays a file to object storage and returns its public URL.
// No metadata record is written here; that is a separate step so a
// failed record write never leaves the client without the URL.
func (s *ReportService) Upload(ctx context.Context, input providers.UploadInput) (*providers.StoredObject, error) {
	return s.storage.Upload(ctx, input)
}

// ReportInput is the metadata submitted after a successful upload.
type ReportInput struct {
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	FileSize    int64  `json:"fileSize"`
	DownloadURL string `json:"downloadUrl"`
	Description string `json:"description"`
}

// RecordUpload writes a report metadata record. Ownership always comes
// from the session, never from the request body.
func (s *ReportService) RecordUpload(ctx context.Context, session *entities.UserSession, input ReportInput) (*entities.MedicalReport, error) {
	if session == nil || session.ID == "" {
		return nil, apperrors.NewAuthError("sign-in required", nil)
	}
	if strings.TrimSpace(input.FileName) == "" {
		return nil, apperrors.NewValidationError("file name is required")
	}
	if strings.TrimSpace(input.DownloadURL) == "" {
		return nil, apperrors.NewValidationError("download url is required")
	}

	report := &entities.MedicalReport{
		ID:          uuid.New().String(),
		OwnerID:     session.ID,
		FileName:    input.FileName,
		FileType:    input.FileType,
		FileSize:    input.FileSize,
		DownloadURL: input.DownloadURL,
		Description: input.Description,
		UploadedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.publishChange(ctx, session.ID, entities.ChangeEventTypeReportCreated)

	return report, nil
}

// RecentReports returns the owner's newest reports, most recent first.
func (s *ReportService) RecentReports(ctx context.Context, ownerID string) ([]*entities.MedicalReport, error) {
	reports, err := s.repo.RecentByOwner(ctx, ownerID, recentReportsLimit)
	if err != nil {
		return nil, err
	}
	if reports == nil {
		reports = []*entities.MedicalReport{}
	}
	return reports, nil
}

// publishChange notifies live subscribers. Publishing is best effort;
// the record write has already succeeded.
func (s *ReportService) publishChange(ctx context.Context, ownerID string, eventType entities.ChangeEventType) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewChangeEvent(ownerID, eventType)
	if err := s.eventBus.Publish(ctx, providers.GetReportsChannel(ownerID), event); err != nil {
		log.Warn().Err(err).Str("owner_id", ownerID).Msg("Failed to publish report change event")
	}
}
