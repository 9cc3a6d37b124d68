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

type PostMemoryStorage struct {
	mu     sync.Mutex
	posts  map[uint]*models.Post
	users  *UserMemoryStorage
	nextID uint
}

// NewPostMemoryStorage takes the user store so listings can carry author data
// the way the gorm Preload does.
func NewPostMemoryStorage(users *UserMemoryStorage) *PostMemoryStorage {
	return &PostMemoryStorage{
		posts:  make(map[uint]*models.Post),
		users:  users,
		nextID: 1,
	}
}

func (s *PostMemoryStorage) Create(userID uint, title, content string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := &models.Post{
		Model:   gorm.Model{ID: s.nextID, CreatedAt: time.Now()},
		Title:   title,
		Content: content,
		UserID:  userID,
	}
	s.nextID++
	s.posts[post.ID] = post

	cp := *post
	return &cp, nil
}

func (s *PostMemoryStorage) ListPage(page, size int) ([]models.Post, int, error) {
	s.mu.Lock()
	all := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		all = append(all, *p)
	}
	s.mu.Unlock()

	// Newest first, id as tiebreaker for posts created in the same instant.
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	total := len(all)
	if page < 1 {
		return []models.Post{}, total, nil
	}

	start := (page - 1) * size
	if start >= total {
		return []models.Post{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}

	pagePosts := all[start:end]
	s.attachAuthors(pagePosts)
	return pagePosts, total, nil
}

func (s *PostMemoryStorage) GetByID(id uint) (*models.Post, error) {
	s.mu.Lock()
	p, exists := s.posts[id]
	if !exists {
		s.mu.Unlock()
		return nil, fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	cp := *p
	s.mu.Unlock()

	one := []models.Post{cp}
	s.attachAuthors(one)
	return &one[0], nil
}

func (s *PostMemoryStorage) IncrementViews(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, exists := s.posts[id]
	if !exists {
		return fmt.Errorf("post %d: %w", id, storage.ErrNotFound)
	}
	p.Views++
	return nil
}

func (s *PostMemoryStorage) attachAuthors(posts []models.Post) {
	if s.users == nil {
		return
	}
	for i := range posts {
		if u, err := s.users.FindByID(posts[i].UserID); err == nil {
			posts[i].Author = *u
		}
	}
}
