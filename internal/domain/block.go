package domain

import "time"

// Block is a directed edge: blocker refuses messages from blocked.
// Unique per ordered pair; duplicate inserts are no-ops.
type Block struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BlockerID     int64     `gorm:"column:blocker_id;not null;uniqueIndex:idx_block_pair" json:"blocker_id"`
	BlockedUserID int64     `gorm:"column:blocked_user_id;not null;uniqueIndex:idx_block_pair" json:"blocked_user_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Block) TableName() string {
	return "blocked"
}
