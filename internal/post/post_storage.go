package post

import (
	"github.com/VitaminP8/bloggery/models"
)

type PostStorage interface {
	Create(userID uint, title, content string) (*models.Post, error)
	// ListPage returns one page of posts, newest first, plus the total post
	// count. A page past the end yields an empty slice, not an error.
	ListPage(page, size int) ([]models.Post, int, error)
	GetByID(id uint) (*models.Post, error)
	// IncrementViews adds exactly one view. Safe under concurrent callers.
	IncrementViews(id uint) error
}
