package memory

import (
	"fmt"
	"sync"
	"time"

	"github.com/VitaminP8/bloggery/internal/storage"
	"github.com/VitaminP8/bloggery/models"
	"github.com/jinzhu/gorm"
)

type UserMemoryStorage struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func NewUserMemoryStorage() *UserMemoryStorage {
	return &UserMemoryStorage{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (s *UserMemoryStorage) Create(username, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return nil, fmt.Errorf("username or email already taken: %w", storage.ErrDuplicateKey)
		}
	}

	user := &models.User{
		Model:        gorm.Model{ID: s.nextID, CreatedAt: time.Now()},
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	s.nextID++
	s.users[user.ID] = user

	cp := *user
	return &cp, nil
}

func (s *UserMemoryStorage) FindByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
}

func (s *UserMemoryStorage) FindByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *UserMemoryStorage) UpdatePassword(id uint, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	u.PasswordHash = passwordHash
	return nil
}

// Count reports the number of stored users (for tests).
func (s *UserMemoryStorage) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}
