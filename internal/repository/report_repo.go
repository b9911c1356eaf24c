package repository

import (
	"github.com/khanonymous/relay-backend/internal/domain"
	"gorm.io/gorm"
)

// ReportRepository append-only abuse report log
type ReportRepository interface {
	Create(receiverID, senderID int64, messageText string) (int64, error)
	ListRecent(limit int) ([]domain.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create appends one report and returns its id
func (r *reportRepository) Create(receiverID, senderID int64, messageText string) (int64, error) {
	report := &domain.Report{
		ReceiverID:  receiverID,
		SenderID:    senderID,
		MessageText: messageText,
	}
	if err := r.db.Create(report).Error; err != nil {
		return 0, err
	}
	return report.ID, nil
}

// ListRecent returns reports most-recent-first
func (r *reportRepository) ListRecent(limit int) ([]domain.Report, error) {
	var reports []domain.Report
	err := r.db.Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&reports).Error
	return reports, err
}
