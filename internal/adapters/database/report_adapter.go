package database

import (
	"context"
	"fmt"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/repositories"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/arogyamitra/SwasthyaSahayak/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
)

const reportsTable = "medical_reports"

// ReportAdapter implements medical report persistence in Postgres.
type ReportAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReportAdapter creates a new report adapter.
func NewReportAdapter(client *postgres.Client) repositories.ReportRepository {
	return &ReportAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a report metadata record.
func (a *ReportAdapter) Create(ctx context.Context, report *entities.MedicalReport) error {
	if report == nil {
		return apperrors.NewInternalError("report is nil", fmt.Errorf("report is nil"))
	}

	record := goqu.Record{
		"id":           report.ID,
		"owner_id":     report.OwnerID,
		"file_name":    report.FileName,
		"file_type":    report.FileType,
		"file_size":    report.FileSize,
		"download_url": report.DownloadURL,
		"description":  report.Description,
		"uploaded_at":  report.UploadedAt,
	}

	query, args, err := a.db.Insert(reportsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build report insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewWriteError("failed to create report record", err)
	}

	return nil
}

// RecentByOwner returns the owner's most recent reports. The owner filter
// is applied before ordering and limiting, at the query level.
func (a *ReportAdapter) RecentByOwner(ctx context.Context, ownerID string, limit int) ([]*entities.MedicalReport, error) {
	ds := a.db.From(reportsTable).
		Select("id", "owner_id", "file_name", "file_type", "file_size", "download_url", "description", "uploaded_at").
		Where(goqu.Ex{"owner_id": ownerID}).
		Order(goqu.I("uploaded_at").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build report query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query reports", err)
	}
	defer rows.Close()

	var reports []*entities.MedicalReport
	for rows.Next() {
		var report entities.MedicalReport
		if err := rows.Scan(
			&report.ID,
			&report.OwnerID,
			&report.FileName,
			&report.FileType,
			&report.FileSize,
			&report.DownloadURL,
			&report.Description,
			&report.UploadedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan report row", err)
		}
		reports = append(reports, &report)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read report rows", err)
	}

	return reports, nil
}
