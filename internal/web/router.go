package web

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/VitaminP8/bloggery/internal/cache"
	"github.com/VitaminP8/bloggery/internal/session"
	"github.com/gorilla/mux"
)

// Router builds the route table. Per-route pipeline order: session resolve,
// auth gate where required, cache lookup on the two cacheable reads, then the
// handler itself.
func (a *App) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(a.sessions.Middleware)

	r.Handle("/", a.cached(indexCacheKey, a.handle(a.handleIndex))).Methods("GET")
	r.Handle("/login", a.handle(a.handleLogin)).Methods("GET", "POST")
	r.Handle("/register", a.handle(a.handleRegister)).Methods("GET", "POST")
	r.Handle("/logout", session.RequireAuth(a.handle(a.handleLogout))).Methods("GET")
	r.Handle("/profile", session.RequireAuth(a.handle(a.handleProfile))).Methods("GET")
	r.Handle("/change-password", session.RequireAuth(a.handle(a.handleChangePassword))).Methods("POST")
	r.Handle("/create-post", session.RequireAuth(a.handle(a.handleCreatePost))).Methods("GET", "POST")
	r.Handle("/post/{id:[0-9]+}", a.cached(postCacheKey, a.handle(a.handleViewPost))).Methods("GET")
	r.Handle("/post/{id:[0-9]+}/comment", a.handle(a.handleAddComment)).Methods("POST")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		a.renderError(w, http.StatusNotFound)
	})

	return r
}

func indexCacheKey(r *http.Request) string {
	return cache.IndexKey(pageParam(r))
}

func postCacheKey(r *http.Request) string {
	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return cache.PostKey(uint(id), pageParam(r))
}

// pageParam reads ?page=, defaulting to 1 on absence or garbage.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// cached is the read-through wrapper for a GET route. Only anonymous
// requests are served from cache: authenticated pages carry user-specific
// chrome and must not leak between sessions. A miss records the response and
// stores it when the handler answered 200.
func (a *App) cached(keyFn func(r *http.Request) string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.UserIDFromContext(r.Context()); err == nil {
			next.ServeHTTP(w, r)
			return
		}
		if session.HasFlashes(r) {
			next.ServeHTTP(w, r)
			return
		}

		key := keyFn(r)
		if body, ok := a.cache.Get(key); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(body)
			return
		}

		rec := &recordingWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if rec.status == http.StatusOK {
			a.cache.Set(key, rec.buf.Bytes())
		}
	})
}

// recordingWriter tees the response body so it can be cached after the
// handler ran.
type recordingWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *recordingWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}
