package service

import (
	"context"
	"errors"
	"time"

	"github.com/khanonymous/relay-backend/internal/common"
	"github.com/khanonymous/relay-backend/internal/domain"
	"github.com/khanonymous/relay-backend/internal/repository"
	"github.com/khanonymous/relay-backend/pkg/cache"
	"gorm.io/gorm"
)

// Top board kinds
const (
	TopKindSender   = "sender"
	TopKindReceiver = "receiver"
)

// StatsService analytics and ranking reads
type StatsService interface {
	CountsFor(ctx context.Context, date time.Time) (*domain.DailyCounts, error)
	TrailingWindow(ctx context.Context, nDays int) ([]domain.DailyCounts, error)
	Top(ctx context.Context, kind string, limit int) ([]domain.TopEntry, error)
	Totals(ctx context.Context) (*domain.Totals, error)
	RankOf(ctx context.Context, userID int64) (int64, error)
	ProfileStats(ctx context.Context, userID int64) (*domain.ProfileStats, error)
	UserStats(ctx context.Context, userID int64) (*domain.UserStats, error)
}

type statsService struct {
	stats        repository.StatsRepository
	clicks       repository.ClickRepository
	users        repository.UserRepository
	cacheService cache.Service
	now          func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(
	stats repository.StatsRepository,
	clicks repository.ClickRepository,
	users repository.UserRepository,
	cacheService cache.Service,
) StatsService {
	return &statsService{
		stats:        stats,
		clicks:       clicks,
		users:        users,
		cacheService: cacheService,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// dayRange returns the UTC day boundaries [from, to) containing t
func dayRange(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 0, 1)
}

// CountsFor returns the three independent counters for one calendar day.
// Each count is answerable even if the others are zero.
func (s *statsService) CountsFor(ctx context.Context, date time.Time) (*domain.DailyCounts, error) {
	from, to := dayRange(date)
	dateKey := from.Format("2006-01-02")

	if s.cacheService != nil {
		var cached domain.DailyCounts
		if err := s.cacheService.GetDaily(ctx, dateKey, &cached); err == nil {
			return &cached, nil
		}
	}

	newUsers, err := s.stats.CountUsersBetween(from, to)
	if err != nil {
		return nil, common.Persistence(err)
	}
	messages, err := s.stats.CountMessagesBetween(from, to)
	if err != nil {
		return nil, common.Persistence(err)
	}
	reports, err := s.stats.CountReportsBetween(from, to)
	if err != nil {
		return nil, common.Persistence(err)
	}

	counts := &domain.DailyCounts{
		Date:         dateKey,
		NewUsers:     newUsers,
		MessagesSent: messages,
		ReportsFiled: reports,
	}

	if s.cacheService != nil {
		_ = s.cacheService.SetDaily(ctx, dateKey, counts)
	}
	return counts, nil
}

// TrailingWindow returns exactly nDays entries, oldest first, today inclusive.
// Days with no activity produce all-zero entries.
func (s *statsService) TrailingWindow(ctx context.Context, nDays int) ([]domain.DailyCounts, error) {
	if nDays <= 0 {
		return nil, common.ErrInvalidInput
	}

	today := s.now()
	window := make([]domain.DailyCounts, 0, nDays)
	for i := nDays - 1; i >= 0; i-- {
		counts, err := s.CountsFor(ctx, today.AddDate(0, 0, -i))
		if err != nil {
			return nil, err
		}
		window = append(window, *counts)
	}
	return window, nil
}

// Top returns the heaviest senders or receivers, descending by count
func (s *statsService) Top(ctx context.Context, kind string, limit int) ([]domain.TopEntry, error) {
	if kind != TopKindSender && kind != TopKindReceiver {
		return nil, common.ErrInvalidInput
	}

	if s.cacheService != nil {
		var cached []domain.TopEntry
		if err := s.cacheService.GetTop(ctx, kind, limit, &cached); err == nil {
			return cached, nil
		}
	}

	var entries []domain.TopEntry
	var err error
	if kind == TopKindSender {
		entries, err = s.stats.TopSenders(limit)
	} else {
		entries, err = s.stats.TopReceivers(limit)
	}
	if err != nil {
		return nil, common.Persistence(err)
	}

	if s.cacheService != nil {
		_ = s.cacheService.SetTop(ctx, kind, limit, entries)
	}
	return entries, nil
}

// Totals returns all-time user and message counts
func (s *statsService) Totals(ctx context.Context) (*domain.Totals, error) {
	users, err := s.stats.CountUsers()
	if err != nil {
		return nil, common.Persistence(err)
	}
	messages, err := s.stats.CountMessages()
	if err != nil {
		return nil, common.Persistence(err)
	}
	return &domain.Totals{Users: users, Messages: messages}, nil
}

// RankOf computes the competition rank: 1 + users strictly ahead by
// received-message count. Tied users share a rank.
func (s *statsService) RankOf(ctx context.Context, userID int64) (int64, error) {
	if s.cacheService != nil {
		if rank, err := s.cacheService.GetRank(ctx, userID); err == nil {
			return rank, nil
		}
	}

	received, err := s.stats.CountMessagesByReceiver(userID)
	if err != nil {
		return 0, common.Persistence(err)
	}
	rank, err := s.stats.ReceiverRank(received)
	if err != nil {
		return 0, common.Persistence(err)
	}

	if s.cacheService != nil {
		_ = s.cacheService.SetRank(ctx, userID, rank)
	}
	return rank, nil
}

// ProfileStats is the composite read behind the profile view; NotFound for
// unknown users
func (s *statsService) ProfileStats(ctx context.Context, userID int64) (*domain.ProfileStats, error) {
	if _, err := s.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.Persistence(err)
	}

	if s.cacheService != nil {
		var cached domain.ProfileStats
		if err := s.cacheService.GetProfile(ctx, userID, &cached); err == nil {
			return &cached, nil
		}
	}

	from, to := dayRange(s.now())

	messagesToday, err := s.stats.CountMessagesByReceiverBetween(userID, from, to)
	if err != nil {
		return nil, common.Persistence(err)
	}
	messagesTotal, err := s.stats.CountMessagesByReceiver(userID)
	if err != nil {
		return nil, common.Persistence(err)
	}
	clicksToday, err := s.clicks.CountByReceiverBetween(userID, from, to)
	if err != nil {
		return nil, common.Persistence(err)
	}
	clicksTotal, err := s.clicks.CountByReceiver(userID)
	if err != nil {
		return nil, common.Persistence(err)
	}
	rank, err := s.stats.ReceiverRank(messagesTotal)
	if err != nil {
		return nil, common.Persistence(err)
	}

	stats := &domain.ProfileStats{
		MessagesToday: messagesToday,
		MessagesTotal: messagesTotal,
		ClicksToday:   clicksToday,
		ClicksTotal:   clicksTotal,
		Rank:          rank,
	}

	if s.cacheService != nil {
		_ = s.cacheService.SetProfile(ctx, userID, stats)
	}
	return stats, nil
}

// UserStats is the per-user admin view
func (s *statsService) UserStats(ctx context.Context, userID int64) (*domain.UserStats, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.Persistence(err)
	}

	sent, err := s.stats.CountMessagesBySender(userID)
	if err != nil {
		return nil, common.Persistence(err)
	}
	received, err := s.stats.CountMessagesByReceiver(userID)
	if err != nil {
		return nil, common.Persistence(err)
	}

	return &domain.UserStats{
		UserID:        user.UserID,
		Language:      user.Language,
		CreatedAt:     user.CreatedAt.Format("2006-01-02 15:04:05"),
		IsBanned:      user.IsBanned,
		SentCount:     sent,
		ReceivedCount: received,
	}, nil
}
