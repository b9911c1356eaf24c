package repository

import (
	"time"

	"github.com/khanonymous/relay-backend/internal/domain"
	"gorm.io/gorm"
)

// StatsRepository read-only aggregate queries for analytics and ranking.
// All reads run without serializable isolation; stale-by-one-row is fine.
type StatsRepository interface {
	CountUsersBetween(from, to time.Time) (int64, error)
	CountMessagesBetween(from, to time.Time) (int64, error)
	CountReportsBetween(from, to time.Time) (int64, error)
	CountUsers() (int64, error)
	CountMessages() (int64, error)
	CountMessagesBySender(userID int64) (int64, error)
	CountMessagesByReceiver(userID int64) (int64, error)
	CountMessagesByReceiverBetween(userID int64, from, to time.Time) (int64, error)
	TopSenders(limit int) ([]domain.TopEntry, error)
	TopReceivers(limit int) ([]domain.TopEntry, error)
	ReceiverRank(receivedCount int64) (int64, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) CountUsersBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) CountMessagesBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Correlation{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) CountReportsBetween(from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Report{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&domain.User{}).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountMessages() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Correlation{}).Count(&count).Error
	return count, err
}

func (r *statsRepository) CountMessagesBySender(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Correlation{}).
		Where("sender_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) CountMessagesByReceiver(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Correlation{}).
		Where("receiver_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) CountMessagesByReceiverBetween(userID int64, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Correlation{}).
		Where("receiver_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Count(&count).Error
	return count, err
}

// TopSenders returns the heaviest senders. Tie-break is count DESC then
// user_id ASC so the ordering is deterministic.
func (r *statsRepository) TopSenders(limit int) ([]domain.TopEntry, error) {
	var entries []domain.TopEntry
	err := r.db.Model(&domain.Correlation{}).
		Select("sender_id AS user_id, COUNT(*) AS cnt").
		Group("sender_id").
		Order("cnt DESC, sender_id ASC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

// TopReceivers returns the most messaged users, same tie-break as TopSenders
func (r *statsRepository) TopReceivers(limit int) ([]domain.TopEntry, error) {
	var entries []domain.TopEntry
	err := r.db.Model(&domain.Correlation{}).
		Select("receiver_id AS user_id, COUNT(*) AS cnt").
		Group("receiver_id").
		Order("cnt DESC, receiver_id ASC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

// ReceiverRank computes the competition rank for a given received-message
// count: 1 + number of users strictly ahead. Tied users share a rank.
// O(n) over users; the stats service caches the result.
func (r *statsRepository) ReceiverRank(receivedCount int64) (int64, error) {
	var rank int64
	err := r.db.Raw(`
		SELECT COUNT(*) + 1
		FROM users u
		WHERE (
			SELECT COUNT(*) FROM messages m WHERE m.receiver_id = u.user_id
		) > ?`, receivedCount).Scan(&rank).Error
	return rank, err
}
