package service

import (
	"context"
	"time"

	"github.com/khanonymous/relay-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Ensure(userID int64, language string) error {
	args := m.Called(userID, language)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(userID int64) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) SetLanguage(userID int64, language string) error {
	args := m.Called(userID, language)
	return args.Error(0)
}

func (m *mockUserRepo) SetBanned(userID int64, banned bool) error {
	args := m.Called(userID, banned)
	return args.Error(0)
}

func (m *mockUserRepo) IsBanned(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ListBanned(limit int) ([]*domain.User, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *mockUserRepo) ListActiveIDs() ([]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type mockBlockRepo struct {
	mock.Mock
}

func (m *mockBlockRepo) Create(blockerID, blockedUserID int64) error {
	args := m.Called(blockerID, blockedUserID)
	return args.Error(0)
}

func (m *mockBlockRepo) Exists(blockerID, blockedUserID int64) (bool, error) {
	args := m.Called(blockerID, blockedUserID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBlockRepo) FindByBlocker(blockerID int64) ([]*domain.Block, error) {
	args := m.Called(blockerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Block), args.Error(1)
}

type mockCorrelationRepo struct {
	mock.Mock
}

func (m *mockCorrelationRepo) Create(senderID, receiverID, receiverMessageID int64, senderMessageID *int64) (int64, error) {
	args := m.Called(senderID, receiverID, receiverMessageID, senderMessageID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCorrelationRepo) FindByReceiverMessageID(receiverMessageID int64) (*domain.Correlation, error) {
	args := m.Called(receiverMessageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Correlation), args.Error(1)
}

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) Create(receiverID, senderID int64, messageText string) (int64, error) {
	args := m.Called(receiverID, senderID, messageText)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReportRepo) ListRecent(limit int) ([]domain.Report, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Report), args.Error(1)
}

type mockClickRepo struct {
	mock.Mock
}

func (m *mockClickRepo) Create(receiverID, visitorID int64) (int64, error) {
	args := m.Called(receiverID, visitorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClickRepo) CountByReceiver(receiverID int64) (int64, error) {
	args := m.Called(receiverID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClickRepo) CountByReceiverBetween(receiverID int64, from, to time.Time) (int64, error) {
	args := m.Called(receiverID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

type mockStatsRepo struct {
	mock.Mock
}

func (m *mockStatsRepo) CountUsersBetween(from, to time.Time) (int64, error) {
	args := m.Called(from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStatsRepo) CountMessagesBetween(from, to time.Time) (int64, error) {
	args := m.Called(from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStatsRepo) CountReportsBetween(from, to time.Time) (int64, error) {
	args := m.Called(from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStatsRepo) CountUsers() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStatsRepo) CountMessages() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStatsRepo) CountMessagesBySender(userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStatsRepo) CountMessagesByReceiver(userID int64) (int64, error) {
	args := m.Called(userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStatsRepo) CountMessagesByReceiverBetween(userID int64, from, to time.Time) (int64, error) {
	args := m.Called(userID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockStatsRepo) TopSenders(limit int) ([]domain.TopEntry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopEntry), args.Error(1)
}

func (m *mockStatsRepo) TopReceivers(limit int) ([]domain.TopEntry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopEntry), args.Error(1)
}

func (m *mockStatsRepo) ReceiverRank(receivedCount int64) (int64, error) {
	args := m.Called(receivedCount)
	return args.Get(0).(int64), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Deliver(ctx context.Context, toUser int64, content string) (int64, error) {
	args := m.Called(ctx, toUser, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGateway) Notify(ctx context.Context, user int64, text string) error {
	args := m.Called(ctx, user, text)
	return args.Error(0)
}
