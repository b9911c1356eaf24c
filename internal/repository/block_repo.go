package repository

import (
	"github.com/khanonymous/relay-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BlockRepository directed block edge access
type BlockRepository interface {
	Create(blockerID, blockedUserID int64) error
	Exists(blockerID, blockedUserID int64) (bool, error)
	FindByBlocker(blockerID int64) ([]*domain.Block, error)
}

type blockRepository struct {
	db *gorm.DB
}

// NewBlockRepository creates a new BlockRepository
func NewBlockRepository(db *gorm.DB) BlockRepository {
	return &blockRepository{db: db}
}

// Create adds the directed edge. The pair carries a unique index, so a
// duplicate insert is a single-statement no-op rather than a check-then-insert.
func (r *blockRepository) Create(blockerID, blockedUserID int64) error {
	block := &domain.Block{
		BlockerID:     blockerID,
		BlockedUserID: blockedUserID,
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(block).Error
}

// Exists checks the directed pair
func (r *blockRepository) Exists(blockerID, blockedUserID int64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Block{}).
		Where("blocker_id = ? AND blocked_user_id = ?", blockerID, blockedUserID).
		Count(&count).Error
	return count > 0, err
}

// FindByBlocker returns all blocks created by a user, newest first
func (r *blockRepository) FindByBlocker(blockerID int64) ([]*domain.Block, error) {
	var blocks []*domain.Block
	err := r.db.Where("blocker_id = ?", blockerID).Order("id DESC").Find(&blocks).Error
	return blocks, err
}
