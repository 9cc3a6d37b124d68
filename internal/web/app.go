package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/cache"
	"github.com/VitaminP8/bloggery/internal/comment"
	"github.com/VitaminP8/bloggery/internal/config"
	"github.com/VitaminP8/bloggery/internal/logger"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/internal/session"
	"github.com/VitaminP8/bloggery/internal/user"
	"github.com/VitaminP8/bloggery/models"
)

// App wires the stores, cache, session manager and renderer into the request
// handlers. Everything it needs arrives through the constructor.
type App struct {
	cfg      *config.Config
	users    user.UserStorage
	posts    post.PostStorage
	comments comment.CommentStorage
	cache    cache.Cache
	sessions *session.Manager
	renderer Renderer
}

func NewApp(
	cfg *config.Config,
	users user.UserStorage,
	posts post.PostStorage,
	comments comment.CommentStorage,
	c cache.Cache,
	sessions *session.Manager,
	renderer Renderer,
) *App {
	return &App{
		cfg:      cfg,
		users:    users,
		posts:    posts,
		comments: comments,
		cache:    c,
		sessions: sessions,
		renderer: renderer,
	}
}

// HTTPError is what a handler returns instead of letting a failure reach the
// transport layer. Err is the internal cause and is only logged, never shown.
type HTTPError struct {
	Status int
	Err    error
}

// Handler is one user-facing action in the handler pipeline.
type Handler func(w http.ResponseWriter, r *http.Request) *HTTPError

// handle maps a handler's error onto a rendered error page. Store and render
// failures get logged here; the client always sees a generic view.
func (a *App) handle(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e := h(w, r)
		if e == nil {
			return
		}
		if e.Err != nil {
			if e.Status >= http.StatusInternalServerError {
				logger.Error.Printf("%s %s: %v", r.Method, r.URL.Path, e.Err)
			} else {
				logger.Warn.Printf("%s %s: %v", r.Method, r.URL.Path, e.Err)
			}
		}
		a.renderError(w, e.Status)
	})
}

// render buffers the view before writing so a template failure can still
// become a proper error page.
func (a *App) render(w http.ResponseWriter, view string, data interface{}) *HTTPError {
	var buf bytes.Buffer
	if err := a.renderer.Render(&buf, view, data); err != nil {
		return &HTTPError{Status: http.StatusInternalServerError, Err: fmt.Errorf("render %s: %w", view, err)}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
	return nil
}

func (a *App) renderError(w http.ResponseWriter, status int) {
	view := "500.html"
	if status == http.StatusNotFound {
		view = "404.html"
	}

	var buf bytes.Buffer
	if err := a.renderer.Render(&buf, view, nil); err != nil {
		logger.Error.Printf("render %s: %v", view, err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		fmt.Fprintln(w, http.StatusText(status))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// currentUser resolves the authenticated user for the navbar and the
// profile page. Anonymous requests get nil.
func (a *App) currentUser(r *http.Request) *models.User {
	id, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		return nil
	}
	u, err := a.users.FindByID(id)
	if err != nil {
		return nil
	}
	return u
}

// Pagination is the page metadata handed to the views.
type Pagination struct {
	Page       int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

func NewPagination(page, total, size int) Pagination {
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{
		Page:       page,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		PrevPage:   page - 1,
		NextPage:   page + 1,
	}
}
