package postgres

import (
	"fmt"

	"github.com/VitaminP8/bloggery/internal/storage"
	"github.com/VitaminP8/bloggery/models"
	"github.com/jinzhu/gorm"
)

type CommentPostgresStorage struct{}

func NewCommentPostgresStorage() *CommentPostgresStorage {
	return &CommentPostgresStorage{}
}

func (s *CommentPostgresStorage) Create(postID uint, displayName, email, content string) (*models.Comment, error) {
	// Every comment must reference an existing post.
	var post models.Post
	err := DB.Select("id").First(&post, postID).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, fmt.Errorf("post %d: %w", postID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("could not get post: %w", err)
	}

	comment := &models.Comment{
		Content:     content,
		DisplayName: displayName,
		Email:       email,
		PostID:      postID,
	}

	err = DB.Create(comment).Error
	if err != nil {
		return nil, fmt.Errorf("could not create comment: %w", err)
	}

	return comment, nil
}

func (s *CommentPostgresStorage) ListPageForPost(postID uint, page, size int) ([]models.Comment, int, error) {
	var total int
	err := DB.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not count comments: %w", err)
	}

	if page < 1 {
		return []models.Comment{}, total, nil
	}

	var comments []models.Comment
	err = DB.Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("could not list comments: %w", err)
	}

	if comments == nil {
		comments = []models.Comment{}
	}
	return comments, total, nil
}
