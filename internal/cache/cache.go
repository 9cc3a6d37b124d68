package cache

import "fmt"

// Cache is a best-effort read-through cache for rendered pages. Losing every
// entry must never change what a client sees, only how fast it arrives.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	// DeletePrefix drops every key under the prefix. Used to invalidate all
	// cached pages of a route on write.
	DeletePrefix(prefix string)
}

// Keys are "views:<route>:page=<n>" so one write can clear a whole route with
// a single prefix delete.

func IndexKey(page int) string {
	return fmt.Sprintf("%spage=%d", IndexPrefix(), page)
}

func IndexPrefix() string {
	return "views:index:"
}

func PostKey(postID uint, page int) string {
	return fmt.Sprintf("%spage=%d", PostPrefix(postID), page)
}

func PostPrefix(postID uint) string {
	return fmt.Sprintf("views:post:%d:", postID)
}
