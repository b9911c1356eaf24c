package service

import (
	"errors"

	"github.com/khanonymous/relay-backend/internal/common"
	"github.com/khanonymous/relay-backend/internal/domain"
	"github.com/khanonymous/relay-backend/internal/repository"
	"gorm.io/gorm"
)

// DirectoryService user directory business logic
type DirectoryService interface {
	Ensure(userID int64, language string) error
	Get(userID int64) (*domain.User, error)
	Language(userID int64) string
	SetLanguage(userID int64, language string) error
	SetBanned(userID int64, banned bool) error
	IsBanned(userID int64) (bool, error)
	ListBanned(limit int) ([]*domain.User, error)
	ListActiveIDs() ([]int64, error)
}

type directoryService struct {
	users           repository.UserRepository
	defaultLanguage string
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(users repository.UserRepository, defaultLanguage string) DirectoryService {
	if defaultLanguage == "" {
		defaultLanguage = domain.DefaultLanguage
	}
	return &directoryService{users: users, defaultLanguage: defaultLanguage}
}

// Ensure lazily creates the user; idempotent
func (s *directoryService) Ensure(userID int64, language string) error {
	if language == "" {
		language = s.defaultLanguage
	}
	if err := s.users.Ensure(userID, language); err != nil {
		return common.Persistence(err)
	}
	return nil
}

// Get returns the user or common.ErrNotFound
func (s *directoryService) Get(userID int64) (*domain.User, error) {
	user, err := s.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.Persistence(err)
	}
	return user, nil
}

// Language returns the user's language, falling back to the default for
// unknown users or empty values
func (s *directoryService) Language(userID int64) string {
	user, err := s.users.FindByID(userID)
	if err != nil || user.Language == "" {
		return s.defaultLanguage
	}
	return user.Language
}

// SetLanguage ensures the user exists and updates the language
func (s *directoryService) SetLanguage(userID int64, language string) error {
	if language == "" {
		return common.ErrInvalidInput
	}
	if err := s.users.SetLanguage(userID, language); err != nil {
		return common.Persistence(err)
	}
	return nil
}

// SetBanned ensures the user exists and updates the ban flag
func (s *directoryService) SetBanned(userID int64, banned bool) error {
	if err := s.users.SetBanned(userID, banned); err != nil {
		return common.Persistence(err)
	}
	return nil
}

// IsBanned is false for unknown users
func (s *directoryService) IsBanned(userID int64) (bool, error) {
	banned, err := s.users.IsBanned(userID)
	if err != nil {
		return false, common.Persistence(err)
	}
	return banned, nil
}

// ListBanned returns banned users for the admin surface
func (s *directoryService) ListBanned(limit int) ([]*domain.User, error) {
	users, err := s.users.ListBanned(limit)
	if err != nil {
		return nil, common.Persistence(err)
	}
	return users, nil
}

// ListActiveIDs returns all non-banned user ids
func (s *directoryService) ListActiveIDs() ([]int64, error) {
	ids, err := s.users.ListActiveIDs()
	if err != nil {
		return nil, common.Persistence(err)
	}
	return ids, nil
}
