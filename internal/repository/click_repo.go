package repository

import (
	"time"

	"github.com/khanonymous/relay-backend/internal/domain"
	"gorm.io/gorm"
)

// ClickRepository anonymous-link click log
type ClickRepository interface {
	Create(receiverID, visitorID int64) (int64, error)
	CountByReceiver(receiverID int64) (int64, error)
	CountByReceiverBetween(receiverID int64, from, to time.Time) (int64, error)
}

type clickRepository struct {
	db *gorm.DB
}

// NewClickRepository creates a new ClickRepository
func NewClickRepository(db *gorm.DB) ClickRepository {
	return &clickRepository{db: db}
}

// Create appends one click row and returns its id
func (r *clickRepository) Create(receiverID, visitorID int64) (int64, error) {
	click := &domain.LinkClick{
		ReceiverID: receiverID,
		VisitorID:  visitorID,
	}
	if err := r.db.Create(click).Error; err != nil {
		return 0, err
	}
	return click.ID, nil
}

// CountByReceiver counts all clicks on a user's link
func (r *clickRepository) CountByReceiver(receiverID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.LinkClick{}).
		Where("receiver_id = ?", receiverID).
		Count(&count).Error
	return count, err
}

// CountByReceiverBetween counts clicks within [from, to)
func (r *clickRepository) CountByReceiverBetween(receiverID int64, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.LinkClick{}).
		Where("receiver_id = ? AND created_at >= ? AND created_at < ?", receiverID, from, to).
		Count(&count).Error
	return count, err
}
