package repository

import (
	"github.com/khanonymous/relay-backend/internal/domain"
	"gorm.io/gorm"
)

// CorrelationRepository relay correlation state access
type CorrelationRepository interface {
	Create(senderID, receiverID, receiverMessageID int64, senderMessageID *int64) (int64, error)
	FindByReceiverMessageID(receiverMessageID int64) (*domain.Correlation, error)
}

type correlationRepository struct {
	db *gorm.DB
}

// NewCorrelationRepository creates a new CorrelationRepository
func NewCorrelationRepository(db *gorm.DB) CorrelationRepository {
	return &correlationRepository{db: db}
}

// Create persists one correlation row and returns its id. Called exactly
// once per forwarded message, after the transport confirmed delivery.
func (r *correlationRepository) Create(senderID, receiverID, receiverMessageID int64, senderMessageID *int64) (int64, error) {
	corr := &domain.Correlation{
		SenderID:          senderID,
		ReceiverID:        receiverID,
		ReceiverMessageID: receiverMessageID,
		SenderMessageID:   senderMessageID,
	}
	if err := r.db.Create(corr).Error; err != nil {
		return 0, err
	}
	return corr.ID, nil
}

// FindByReceiverMessageID returns the correlation for a forwarded copy.
// If the transport ever reuses message identifiers the most recent row wins.
func (r *correlationRepository) FindByReceiverMessageID(receiverMessageID int64) (*domain.Correlation, error) {
	var corr domain.Correlation
	err := r.db.Where("receiver_message_id = ?", receiverMessageID).
		Order("id DESC").
		First(&corr).Error
	if err != nil {
		return nil, err
	}
	return &corr, nil
}
