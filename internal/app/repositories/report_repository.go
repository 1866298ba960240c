package repositories

import (
	"context"

	"github.com/cphunt/backend/internal/app/models"
	"github.com/cphunt/backend/internal/db"
)

// ReportRepository handles database operations for launch reports.
type ReportRepository struct {
	reports db.Pair
}

// NewReportRepository creates a new ReportRepository instance
func NewReportRepository(reports db.Pair) *ReportRepository {
	return &ReportRepository{reports: reports}
}

// Create inserts a report into the versioned collection.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	if _, err := r.reports.Versioned.InsertOne(ctx, report); err != nil {
		return storeErr("creating report", err)
	}
	return nil
}
