package postgres

import (
	"fmt"

	"github.com/VitaminP8/bloggery/internal/storage"
	"github.com/VitaminP8/bloggery/models"
	"github.com/jinzhu/gorm"
)

type PostPostgresStorage struct{}

func NewPostPostgresStorage() *PostPostgresStorage {
	return &PostPostgresStorage{}
}

func (s *PostPostgresStorage) Create(userID uint, title, content string) (*models.Post, error) {
	post := &models.Post{
		Title:   title,
		Content: content,
		UserID:  userID,
	}

	err := DB.Create(post).Error
	if err != nil {
		return nil, fmt.Errorf("could not create post: %w", err)
	}

	return post, nil
}

func (s *PostPostgresStorage) ListPage(page, size int) ([]models.Post, int, error) {
	var total int
	err := DB.Model(&models.Post{}).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not count posts: %w", err)
	}

	if page < 1 {
		return []models.Post{}, total, nil
	}

	var posts []models.Post
	err = DB.Preload("Author").
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&posts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not list posts: %w", err)
	}

	if posts == nil {
		posts = []models.Post{}
	}
	return posts, total, nil
}

func (s *PostPostgresStorage) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := DB.Preload("Author").First(&post, id).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}
	return &post, nil
}

func (s *PostPostgresStorage) IncrementViews(id uint) error {
	// The increment happens in SQL so concurrent views each add exactly one.
	res := DB.Model(&models.Post{}).Where("id = ?", id).
		Update("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return fmt.Errorf("could not increment views: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	return nil
}
