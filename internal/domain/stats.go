package domain

// DailyCounts holds the three independent per-day counters (UTC day)
type DailyCounts struct {
	Date         string `json:"date"`
	NewUsers     int64  `json:"new_users"`
	MessagesSent int64  `json:"messages_sent"`
	ReportsFiled int64  `json:"reports_filed"`
}

// TopEntry is one row of a top-senders or top-receivers board
type TopEntry struct {
	UserID int64 `gorm:"column:user_id" json:"user_id"`
	Count  int64 `gorm:"column:cnt" json:"count"`
}

// Totals holds all-time counters for the admin dashboard
type Totals struct {
	Users    int64 `json:"users"`
	Messages int64 `json:"messages"`
}

// ProfileStats is the composite per-user read behind the profile view
type ProfileStats struct {
	MessagesToday int64 `json:"messages_today"`
	MessagesTotal int64 `json:"messages_total"`
	ClicksToday   int64 `json:"clicks_today"`
	ClicksTotal   int64 `json:"clicks_total"`
	Rank          int64 `json:"rank"`
}

// UserStats is the per-user admin view: profile fields plus send/receive totals
type UserStats struct {
	UserID        int64  `json:"user_id"`
	Language      string `json:"language"`
	CreatedAt     string `json:"created_at"`
	IsBanned      bool   `json:"is_banned"`
	SentCount     int64  `json:"sent_count"`
	ReceivedCount int64  `json:"received_count"`
}
