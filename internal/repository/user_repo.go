package repository

import (
	"errors"

	"github.com/khanonymous/relay-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository user directory data access
type UserRepository interface {
	Ensure(userID int64, language string) error
	FindByID(userID int64) (*domain.User, error)
	SetLanguage(userID int64, language string) error
	SetBanned(userID int64, banned bool) error
	IsBanned(userID int64) (bool, error)
	ListBanned(limit int) ([]*domain.User, error)
	ListActiveIDs() ([]int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Ensure inserts the user if absent. Single-statement upsert so that
// concurrent identical requests cannot produce duplicate rows.
func (r *userRepository) Ensure(userID int64, language string) error {
	user := &domain.User{UserID: userID, Language: language}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(user).Error
}

// FindByID returns the user or gorm.ErrRecordNotFound
func (r *userRepository) FindByID(userID int64) (*domain.User, error) {
	var user domain.User
	if err := r.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetLanguage ensures the user exists, then updates the language
func (r *userRepository) SetLanguage(userID int64, language string) error {
	if err := r.Ensure(userID, language); err != nil {
		return err
	}
	return r.db.Model(&domain.User{}).
		Where("user_id = ?", userID).
		Update("language", language).Error
}

// SetBanned ensures the user exists, then updates the ban flag.
// Banning does not invalidate outstanding correlations.
func (r *userRepository) SetBanned(userID int64, banned bool) error {
	if err := r.Ensure(userID, domain.DefaultLanguage); err != nil {
		return err
	}
	return r.db.Model(&domain.User{}).
		Where("user_id = ?", userID).
		Update("is_banned", banned).Error
}

// IsBanned returns false for unknown users (not-yet-banned, consistent
// with lazy creation elsewhere)
func (r *userRepository) IsBanned(userID int64) (bool, error) {
	var user domain.User
	err := r.db.Select("is_banned").Where("user_id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsBanned, nil
}

// ListBanned returns banned users, most recently created first
func (r *userRepository) ListBanned(limit int) ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.Where("is_banned = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// ListActiveIDs returns the ids of all non-banned users (broadcast recipients)
func (r *userRepository) ListActiveIDs() ([]int64, error) {
	var ids []int64
	err := r.db.Model(&domain.User{}).
		Where("is_banned = ?", false).
		Pluck("user_id", &ids).Error
	return ids, err
}
