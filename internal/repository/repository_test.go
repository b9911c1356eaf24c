package repository

import (
	"testing"

	"github.com/khanonymous/relay-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Correlation{},
		&domain.Block{},
		&domain.Report{},
		&domain.LinkClick{},
	))
	return db
}

func TestUserRepository_EnsureIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Ensure(7, "ru"))
	require.NoError(t, repo.Ensure(7, "en"))

	user, err := repo.FindByID(7)
	require.NoError(t, err)
	// The second Ensure is absorbed; the first write wins
	assert.Equal(t, "ru", user.Language)

	var count int64
	db.Model(&domain.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_SetLanguageCreatesUser(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.SetLanguage(7, "en"))

	user, err := repo.FindByID(7)
	require.NoError(t, err)
	assert.Equal(t, "en", user.Language)
}

func TestUserRepository_BanLifecycle(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)

	banned, err := repo.IsBanned(999)
	require.NoError(t, err)
	assert.False(t, banned, "unknown user is not banned")

	require.NoError(t, repo.SetBanned(7, true))
	banned, err = repo.IsBanned(7)
	require.NoError(t, err)
	assert.True(t, banned)

	list, err := repo.ListBanned(10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].UserID)

	require.NoError(t, repo.SetBanned(7, false))
	banned, err = repo.IsBanned(7)
	require.NoError(t, err)
	assert.False(t, banned)
}

func TestBlockRepository_DuplicateAbsorbed(t *testing.T) {
	db := setupDB(t)
	repo := NewBlockRepository(db)

	require.NoError(t, repo.Create(7, 42))
	require.NoError(t, repo.Create(7, 42))

	var count int64
	db.Model(&domain.Block{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBlockRepository_ExistsDirectional(t *testing.T) {
	db := setupDB(t)
	repo := NewBlockRepository(db)

	require.NoError(t, repo.Create(7, 42))

	exists, err := repo.Exists(7, 42)
	require.NoError(t, err)
	assert.True(t, exists)

	reverse, err := repo.Exists(42, 7)
	require.NoError(t, err)
	assert.False(t, reverse, "block is a directed edge")
}

func TestCorrelationRepository_MostRecentMatchWins(t *testing.T) {
	db := setupDB(t)
	repo := NewCorrelationRepository(db)

	// The front-end can recycle message ids; the lookup resolves against
	// the newest row.
	_, err := repo.Create(42, 7, 555, nil)
	require.NoError(t, err)
	_, err = repo.Create(99, 7, 555, nil)
	require.NoError(t, err)

	corr, err := repo.FindByReceiverMessageID(555)
	require.NoError(t, err)
	assert.Equal(t, int64(99), corr.SenderID)
}

func TestCorrelationRepository_SenderMessageIDOptional(t *testing.T) {
	db := setupDB(t)
	repo := NewCorrelationRepository(db)

	senderMsgID := int64(321)
	_, err := repo.Create(42, 7, 556, &senderMsgID)
	require.NoError(t, err)

	corr, err := repo.FindByReceiverMessageID(556)
	require.NoError(t, err)
	require.NotNil(t, corr.SenderMessageID)
	assert.Equal(t, int64(321), *corr.SenderMessageID)
}

func TestReportRepository_ListRecentOrdered(t *testing.T) {
	db := setupDB(t)
	repo := NewReportRepository(db)

	first, err := repo.Create(7, 42, "first")
	require.NoError(t, err)
	second, err := repo.Create(7, 99, "second")
	require.NoError(t, err)

	reports, err := repo.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, second, reports[0].ID)
	assert.Equal(t, first, reports[1].ID)
	assert.Equal(t, "second", reports[0].MessageText)
}

func TestClickRepository_Counts(t *testing.T) {
	db := setupDB(t)
	repo := NewClickRepository(db)

	_, err := repo.Create(7, 42)
	require.NoError(t, err)
	_, err = repo.Create(7, 99)
	require.NoError(t, err)
	_, err = repo.Create(8, 42)
	require.NoError(t, err)

	count, err := repo.CountByReceiver(7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestStatsRepository_TopAndRank(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepository(db)
	corrs := NewCorrelationRepository(db)
	stats := NewStatsRepository(db)

	for _, id := range []int64{1, 2, 3} {
		require.NoError(t, users.Ensure(id, "uz"))
	}

	// user 1 receives 3, user 2 receives 3, user 3 receives 1
	msgID := int64(100)
	seed := []struct{ sender, receiver int64 }{
		{2, 1}, {3, 1}, {3, 1},
		{1, 2}, {3, 2}, {3, 2},
		{1, 3},
	}
	for _, s := range seed {
		msgID++
		_, err := corrs.Create(s.sender, s.receiver, msgID, nil)
		require.NoError(t, err)
	}

	t.Run("top receivers with deterministic tie-break", func(t *testing.T) {
		top, err := stats.TopReceivers(10)
		require.NoError(t, err)
		require.Len(t, top, 3)
		assert.Equal(t, int64(1), top[0].UserID)
		assert.Equal(t, int64(3), top[0].Count)
		assert.Equal(t, int64(2), top[1].UserID)
		assert.Equal(t, int64(3), top[2].UserID)
	})

	t.Run("tied users share a rank", func(t *testing.T) {
		rank, err := stats.ReceiverRank(3)
		require.NoError(t, err)
		assert.Equal(t, int64(1), rank)

		rank, err = stats.ReceiverRank(1)
		require.NoError(t, err)
		assert.Equal(t, int64(3), rank)
	})

	t.Run("top senders", func(t *testing.T) {
		top, err := stats.TopSenders(2)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, int64(3), top[0].UserID)
		assert.Equal(t, int64(4), top[0].Count)
	})
}

func TestStatsRepository_Totals(t *testing.T) {
	db := setupDB(t)
	users := NewUserRepository(db)
	corrs := NewCorrelationRepository(db)
	stats := NewStatsRepository(db)

	require.NoError(t, users.Ensure(1, "uz"))
	require.NoError(t, users.Ensure(2, "uz"))
	_, err := corrs.Create(1, 2, 500, nil)
	require.NoError(t, err)

	userCount, err := stats.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(2), userCount)

	msgCount, err := stats.CountMessages()
	require.NoError(t, err)
	assert.Equal(t, int64(1), msgCount)
}
