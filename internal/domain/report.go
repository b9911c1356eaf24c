package domain

import "time"

// Report is an append-only abuse report. MessageText is a point-in-time
// snapshot, not a reference, so later edits or deletions on the transport
// side do not affect the record.
type Report struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ReceiverID  int64     `gorm:"column:receiver_id;not null;index" json:"receiver_id"`
	SenderID    int64     `gorm:"column:sender_id;not null;index" json:"sender_id"`
	MessageText string    `gorm:"column:message_text;type:text;not null" json:"message_text"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Report) TableName() string {
	return "reports"
}
