package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/cache"
	"github.com/VitaminP8/bloggery/internal/forms"
	"github.com/VitaminP8/bloggery/internal/logger"
	"github.com/VitaminP8/bloggery/internal/session"
	"github.com/VitaminP8/bloggery/internal/storage"
	"github.com/VitaminP8/bloggery/models"
	"github.com/gorilla/mux"
)

type IndexData struct {
	Posts      []models.Post
	Pagination Pagination
	Flashes    []string
	User       *models.User
	Notice     string
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) *HTTPError {
	data := IndexData{
		Flashes: session.TakeFlashes(w, r),
		User:    a.currentUser(r),
	}

	page := pageParam(r)
	posts, total, err := a.posts.ListPage(page, a.cfg.PageSize)
	if err != nil {
		// A broken store read degrades to an empty listing with a notice,
		// not an error page.
		logger.Warn.Printf("list posts: %v", err)
		data.Posts = []models.Post{}
		data.Pagination = NewPagination(page, 0, a.cfg.PageSize)
		data.Notice = "Posts are temporarily unavailable. Please try again later."
		return a.render(w, "index.html", data)
	}

	data.Posts = posts
	data.Pagination = NewPagination(page, total, a.cfg.PageSize)
	return a.render(w, "index.html", data)
}

type LoginData struct {
	Form    *forms.LoginForm
	Errors  forms.Errors
	Notice  string
	Flashes []string
	Next    string
}

func (a *App) handleLogin(w http.ResponseWriter, r *http.Request) *HTTPError {
	if _, err := auth.UserIDFromContext(r.Context()); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil
	}

	next := r.URL.Query().Get("next")

	if r.Method == http.MethodGet {
		return a.render(w, "login.html", LoginData{
			Form:    &forms.LoginForm{},
			Errors:  forms.Errors{},
			Flashes: session.TakeFlashes(w, r),
			Next:    next,
		})
	}

	if err := r.ParseForm(); err != nil {
		return &HTTPError{Status: http.StatusBadRequest, Err: err}
	}
	form := forms.ParseLoginForm(r.PostForm)
	if next == "" {
		next = r.PostForm.Get("next")
	}

	data := LoginData{Form: form, Errors: form.Validate(), Next: next}
	if data.Errors.Any() {
		return a.render(w, "login.html", data)
	}

	// One generic message for unknown user and wrong password alike: the
	// response must not reveal which field was wrong.
	const badCredentials = "Invalid username or password"

	u, err := a.users.FindByUsername(form.Username)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return &HTTPError{Status: http.StatusInternalServerError, Err: err}
		}
		data.Notice = badCredentials
		return a.render(w, "login.html", data)
	}

	if !auth.CheckPassword(form.Password, u.PasswordHash) {
		data.Notice = badCredentials
		return a.render(w, "login.html", data)
	}

	if err := a.sessions.Issue(w, u.ID); err != nil {
		return &HTTPError{Status: http.StatusInternalServerError, Err: err}
	}
	http.Redirect(w, r, session.SafeNext(next), http.StatusSeeOther)
	return nil
}

type RegisterData struct {
	Form    *forms.RegisterForm
	Errors  forms.Errors
	Notice  string
	Flashes []string
}

func (a *App) handleRegister(w http.ResponseWriter, r *http.Request) *HTTPError {
	if _, err := auth.UserIDFromContext(r.Context()); err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil
	}

	if r.Method == http.MethodGet {
		return a.render(w, "register.html", RegisterData{
			Form:    &forms.RegisterForm{},
			Errors:  forms.Errors{},
			Flashes: session.TakeFlashes(w, r),
		})
	}

	if err := r.ParseForm(); err != nil {
		return &HTTPError{Status: http.StatusBadRequest, Err: err}
	}
	form := forms.ParseRegisterForm(r.PostForm)

	data := RegisterData{Form: form, Errors: form.Validate()}
	if data.Errors.Any() {
		return a.render(w, "register.html", data)
	}

	hash, err := auth.HashPassword(form.Password, a.cfg.BcryptCost)
	if err != nil {
		return &HTTPError{Status: http.StatusInternalServerError, Err: err}
	}

	if _, err := a.users.Create(form.Username, form.Email, hash); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			// The unique index fired; figure out which field to blame.
			if _, lookupErr := a.users.FindByUsername(form.Username); lookupErr == nil {
				data.Errors["username"] = "That username is already taken"
			} else {
				data.Errors["email"] = "That email is already registered"
			}
			return a.render(w, "register.html", data)
		}
		logger.Warn.Printf("create user: %v", err)
		data.Notice = "Something went wrong. Please try again."
		return a.render(w, "register.html", data)
	}

	session.AddFlash(w, r, "Congratulations, you are now a registered user!")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
	return nil
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) *HTTPError {
	a.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil
}

type ProfileData struct {
	User    *models.User
	Errors  forms.Errors
	Notice  string
	Flashes []string
}

func (a *App) handleProfile(w http.ResponseWriter, r *http.Request) *HTTPError {
	return a.render(w, "profile.html", ProfileData{
		User:    a.currentUser(r),
		Errors:  forms.Errors{},
		Flashes: session.TakeFlashes(w, r),
	})
}

func (a *App) handleChangePassword(w http.ResponseWriter, r *http.Request) *HTTPError {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		return &HTTPError{Status: http.StatusInternalServerError, Err: err}
	}

	if err := r.ParseForm(); err != nil {
		return &HTTPError{Status: http.StatusBadRequest, Err: err}
	}
	form := forms.ParseChangePasswordForm(r.PostForm)

	u, err := a.users.FindByID(userID)
	if err != nil {
		return &HTTPError{Status: http.StatusInternalServerError, Err: err}
	}

	data := ProfileData{User: u, Errors: form.Validate()}
	if data.Errors.Any() {
		return a.render(w, "profile.html", data)
	}

	if !auth.CheckPassword(form.CurrentPassword, u.PasswordHash) {
		data.Notice = "Current password is incorrect"
		return a.render(w, "profile.html", data)
	}

	hash, err := auth.HashPassword(form.NewPassword, a.cfg.BcryptCost)
	if err != nil {
		return &HTTPError{Status: http.StatusInternalServerError, Err: err}
	}
	if err := a.users.UpdatePassword(userID, hash); err != nil {
		return &HTTPError{Status: http.StatusInternalServerError, Err: err}
	}

	session.AddFlash(w, r, "Your password has been updated")
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
	return nil
}

type CreatePostData struct {
	Form    *forms.PostForm
	Errors  forms.Errors
	Notice  string
	Flashes []string
	User    *models.User
}

func (a *App) handleCreatePost(w http.ResponseWriter, r *http.Request) *HTTPError {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		return &HTTPError{Status: http.StatusInternalServerError, Err: err}
	}

	if r.Method == http.MethodGet {
		return a.render(w, "create_post.html", CreatePostData{
			Form:    &forms.PostForm{},
			Errors:  forms.Errors{},
			Flashes: session.TakeFlashes(w, r),
			User:    a.currentUser(r),
		})
	}

	if err := r.ParseForm(); err != nil {
		return &HTTPError{Status: http.StatusBadRequest, Err: err}
	}
	form := forms.ParsePostForm(r.PostForm)

	data := CreatePostData{Form: form, Errors: form.Validate(), User: a.currentUser(r)}
	if data.Errors.Any() {
		return a.render(w, "create_post.html", data)
	}

	p, err := a.posts.Create(userID, form.Title, form.Content)
	if err != nil {
		logger.Warn.Printf("create post: %v", err)
		data.Notice = "Something went wrong. Please try again."
		return a.render(w, "create_post.html", data)
	}

	// New post changes the listing: expire every cached index page now
	// instead of waiting out the TTL.
	a.cache.DeletePrefix(cache.IndexPrefix())

	session.AddFlash(w, r, "Your post has been created!")
	http.Redirect(w, r, fmt.Sprintf("/post/%d", p.ID), http.StatusSeeOther)
	return nil
}

type PostData struct {
	Post        *models.Post
	Comments    []models.Comment
	Pagination  Pagination
	CommentForm *forms.CommentForm
	Errors      forms.Errors
	Flashes     []string
	User        *models.User
}

func (a *App) handleViewPost(w http.ResponseWriter, r *http.Request) *HTTPError {
	id := postIDParam(r)

	p, err := a.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &HTTPError{Status: http.StatusNotFound}
		}
		return &HTTPError{Status: http.StatusInternalServerError, Err: err}
	}

	if err := a.posts.IncrementViews(id); err != nil {
		// The page is still served; the counter catches up on the next view.
		logger.Warn.Printf("increment views for post %d: %v", id, err)
	} else {
		p.Views++
	}

	page := pageParam(r)
	comments, total, err := a.comments.ListPageForPost(id, page, a.cfg.PageSize)
	if err != nil {
		return &HTTPError{Status: http.StatusInternalServerError, Err: err}
	}

	return a.render(w, "post.html", PostData{
		Post:        p,
		Comments:    comments,
		Pagination:  NewPagination(page, total, a.cfg.PageSize),
		CommentForm: &forms.CommentForm{},
		Errors:      forms.Errors{},
		Flashes:     session.TakeFlashes(w, r),
		User:        a.currentUser(r),
	})
}

func (a *App) handleAddComment(w http.ResponseWriter, r *http.Request) *HTTPError {
	id := postIDParam(r)

	p, err := a.posts.GetByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &HTTPError{Status: http.StatusNotFound}
		}
		return &HTTPError{Status: http.StatusInternalServerError, Err: err}
	}

	if err := r.ParseForm(); err != nil {
		return &HTTPError{Status: http.StatusBadRequest, Err: err}
	}
	form := forms.ParseCommentForm(r.PostForm)

	if errs := form.Validate(); errs.Any() {
		// Re-render the post page with field errors; nothing was written.
		page := pageParam(r)
		comments, total, err := a.comments.ListPageForPost(id, page, a.cfg.PageSize)
		if err != nil {
			return &HTTPError{Status: http.StatusInternalServerError, Err: err}
		}
		return a.render(w, "post.html", PostData{
			Post:        p,
			Comments:    comments,
			Pagination:  NewPagination(page, total, a.cfg.PageSize),
			CommentForm: form,
			Errors:      errs,
			User:        a.currentUser(r),
		})
	}

	if _, err := a.comments.Create(id, form.DisplayName, form.Email, form.Content); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &HTTPError{Status: http.StatusNotFound}
		}
		return &HTTPError{Status: http.StatusInternalServerError, Err: err}
	}

	// The cached pages of this post are stale now.
	a.cache.DeletePrefix(cache.PostPrefix(id))

	session.AddFlash(w, r, "Your comment has been added!")
	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
	return nil
}

func postIDParam(r *http.Request) uint {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return uint(id)
}
