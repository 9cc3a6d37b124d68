package user

import (
	"github.com/VitaminP8/bloggery/models"
)

type UserStorage interface {
	// Create inserts a user with an already-hashed password. Returns
	// storage.ErrDuplicateKey when the username or email is taken; the store
	// is left unchanged in that case.
	Create(username, email, passwordHash string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	UpdatePassword(id uint, passwordHash string) error
}
