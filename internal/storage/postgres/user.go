package postgres

import (
	"fmt"

	"github.com/VitaminP8/bloggery/internal/storage"
	"github.com/VitaminP8/bloggery/models"
	"github.com/jinzhu/gorm"
)

type UserPostgresStorage struct{}

func NewUserPostgresStorage() *UserPostgresStorage {
	return &UserPostgresStorage{}
}

func (s *UserPostgresStorage) Create(username, email, passwordHash string) (*models.User, error) {
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	// The unique indexes on username and email are the source of truth here.
	// A single-record insert either commits or leaves the store unchanged.
	err := DB.Create(user).Error
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, fmt.Errorf("username or email already taken: %w", storage.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	return user, nil
}

func (s *UserPostgresStorage) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("user %s: %w", username, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("could not find user by username: %w", err)
	}
	return &user, nil
}

func (s *UserPostgresStorage) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := DB.First(&user, id).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("could not find user by id: %w", err)
	}
	return &user, nil
}

func (s *UserPostgresStorage) UpdatePassword(id uint, passwordHash string) error {
	res := DB.Model(&models.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if res.Error != nil {
		return fmt.Errorf("could not update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, storage.ErrNotFound)
	}
	return nil
}
