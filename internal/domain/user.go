package domain

import "time"

// DefaultLanguage is the fallback language code for lazily created users
const DefaultLanguage = "uz"

// User represents a relay participant. Users are created lazily on first
// contact and never deleted.
type User struct {
	UserID    int64     `gorm:"column:user_id;primaryKey" json:"user_id"`
	Language  string    `gorm:"column:language;size:8;not null;default:uz" json:"language"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	IsBanned  bool      `gorm:"column:is_banned;not null;default:false" json:"is_banned"`
}

func (User) TableName() string {
	return "users"
}
