package domain

import "time"

// LinkClick records that a visitor opened a user's anonymous link.
// Both sides are ensured to exist as Users before the row is inserted.
type LinkClick struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ReceiverID int64     `gorm:"column:receiver_id;not null;index" json:"receiver_id"`
	VisitorID  int64     `gorm:"column:visitor_id;not null" json:"visitor_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LinkClick) TableName() string {
	return "link_clicks"
}
