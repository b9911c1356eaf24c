package domain

import "time"

// Correlation binds the copy delivered to the receiver back to the original
// sender. It is the only place either identity is stored; the transport
// payload never carries it. Rows are immutable after creation.
type Correlation struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SenderID          int64     `gorm:"column:sender_id;not null;index" json:"sender_id"`
	ReceiverID        int64     `gorm:"column:receiver_id;not null;index" json:"receiver_id"`
	ReceiverMessageID int64     `gorm:"column:receiver_message_id;not null;index" json:"receiver_message_id"`
	SenderMessageID   *int64    `gorm:"column:sender_message_id" json:"sender_message_id,omitempty"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Correlation) TableName() string {
	return "messages"
}
