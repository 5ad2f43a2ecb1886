package repositories

import (
	"context"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
)

// ReportRepository defines persistence for medical report metadata.
// Reads are always scoped to a single owner; filtering happens at the
// data-store query level, before ordering and limiting.
type ReportRepository interface {
	// Create inserts a report record. Records are never updated or deleted.
	Create(ctx context.Context, report *entities.MedicalReport) error

	// RecentByOwner returns the owner's most recent reports, ordered by
	// uploadedAt descending, at most limit records.
	RecentByOwner(ctx context.Context, ownerID string, limit int) ([]*entities.MedicalReport, error)
}
