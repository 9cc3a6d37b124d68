package comment

import (
	"github.com/VitaminP8/bloggery/models"
)

type CommentStorage interface {
	// Create inserts a comment for an existing post. Returns
	// storage.ErrNotFound when the post does not exist.
	Create(postID uint, displayName, email, content string) (*models.Comment, error)
	// ListPageForPost returns one page of a post's comments, newest first,
	// plus the total comment count for that post.
	ListPageForPost(postID uint, page, size int) ([]models.Comment, int, error)
}
