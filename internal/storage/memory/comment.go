package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VitaminP8/bloggery/internal/storage"
	"github.com/VitaminP8/bloggery/models"
	"github.com/jinzhu/gorm"
)

type CommentMemoryStorage struct {
	mu       sync.Mutex
	comments map[uint]*models.Comment
	posts    *PostMemoryStorage
	nextID   uint
}

func NewCommentMemoryStorage(posts *PostMemoryStorage) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		comments: make(map[uint]*models.Comment),
		posts:    posts,
		nextID:   1,
	}
}

func (s *CommentMemoryStorage) Create(postID uint, displayName, email, content string) (*models.Comment, error) {
	if _, err := s.posts.GetByID(postID); err != nil {
		return nil, fmt.Errorf("post %d: %w", postID, storage.ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	comment := &models.Comment{
		Model:       gorm.Model{ID: s.nextID, CreatedAt: time.Now()},
		Content:     content,
		DisplayName: displayName,
		Email:       email,
		PostID:      postID,
	}
	s.nextID++
	s.comments[comment.ID] = comment

	cp := *comment
	return &cp, nil
}

func (s *CommentMemoryStorage) ListPageForPost(postID uint, page, size int) ([]models.Comment, int, error) {
	s.mu.Lock()
	var all []models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			all = append(all, *c)
		}
	}
	s.mu.Unlock()

	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := len(all)
	if page < 1 {
		return []models.Comment{}, total, nil
	}

	start := (page - 1) * size
	if start >= total {
		return []models.Comment{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

// CountForPost reports the number of comments on a post (for tests).
func (s *CommentMemoryStorage) CountForPost(postID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}
