package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func issueCookie(t *testing.T, m *Manager, userID uint) *http.Cookie {
	rec := httptest.NewRecorder()
	require.NoError(t, m.Issue(rec, userID))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestManager_IssueAndResolve(t *testing.T) {
	m := NewManager([]byte("test-secret"), time.Hour)

	t.Run("Issued cookie resolves to the same user", func(t *testing.T) {
		cookie := issueCookie(t, m, 7)

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(cookie)

		id, ok := m.UserID(r)
		require.True(t, ok)
		assert.Equal(t, uint(7), id)
	})

	t.Run("Missing cookie means anonymous", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		_, ok := m.UserID(r)
		assert.False(t, ok)
	})

	t.Run("Tampered token means anonymous", func(t *testing.T) {
		cookie := issueCookie(t, m, 7)
		cookie.Value += "x"

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(cookie)

		_, ok := m.UserID(r)
		assert.False(t, ok)
	})

	t.Run("Token signed with a different secret means anonymous", func(t *testing.T) {
		other := NewManager([]byte("other-secret"), time.Hour)
		cookie := issueCookie(t, other, 7)

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(cookie)

		_, ok := m.UserID(r)
		assert.False(t, ok)
	})

	t.Run("Expired token means anonymous", func(t *testing.T) {
		short := NewManager([]byte("test-secret"), -time.Minute)
		cookie := issueCookie(t, short, 7)

		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(cookie)

		_, ok := m.UserID(r)
		assert.False(t, ok)
	})
}

func TestManager_Clear(t *testing.T) {
	m := NewManager([]byte("test-secret"), time.Hour)

	rec := httptest.NewRecorder()
	m.Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestMiddleware(t *testing.T) {
	m := NewManager([]byte("test-secret"), time.Hour)

	var gotID uint
	var gotErr error
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotErr = auth.UserIDFromContext(r.Context())
	})

	t.Run("Authenticated request carries the user id", func(t *testing.T) {
		cookie := issueCookie(t, m, 11)
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(cookie)

		m.Middleware(next).ServeHTTP(httptest.NewRecorder(), r)
		require.NoError(t, gotErr)
		assert.Equal(t, uint(11), gotID)
	})

	t.Run("Anonymous request passes through without a user", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)

		m.Middleware(next).ServeHTTP(httptest.NewRecorder(), r)
		assert.Error(t, gotErr)
	})
}

func TestRequireAuth(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	t.Run("Anonymous request is redirected to login with next", func(t *testing.T) {
		called = false
		r := httptest.NewRequest("GET", "/profile", nil)
		rec := httptest.NewRecorder()

		RequireAuth(next).ServeHTTP(rec, r)

		assert.False(t, called)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login?next=%2Fprofile", rec.Header().Get("Location"))
	})

	t.Run("Authenticated request passes", func(t *testing.T) {
		called = false
		r := httptest.NewRequest("GET", "/profile", nil)
		r = r.WithContext(auth.WithUserID(r.Context(), 3))

		RequireAuth(next).ServeHTTP(httptest.NewRecorder(), r)
		assert.True(t, called)
	})
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/profile", SafeNext("/profile"))
	assert.Equal(t, "/", SafeNext(""))
	assert.Equal(t, "/", SafeNext("https://evil.example"))
	assert.Equal(t, "/", SafeNext("//evil.example"))
}

func TestFlashes(t *testing.T) {
	t.Run("Queued flashes come back once", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		AddFlash(rec, r, "first")

		// Next request carries the cookie the first response set.
		r2 := httptest.NewRequest("GET", "/", nil)
		for _, c := range rec.Result().Cookies() {
			r2.AddCookie(c)
		}
		assert.True(t, HasFlashes(r2))

		rec2 := httptest.NewRecorder()
		messages := TakeFlashes(rec2, r2)
		assert.Equal(t, []string{"first"}, messages)

		// The taking response must drop the cookie.
		cookies := rec2.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("Flashes stack within one response", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/", nil)
		AddFlash(rec, r, "first")

		// Simulate the handler adding another message after the first one
		// already round-tripped into the cookie.
		r2 := httptest.NewRequest("GET", "/", nil)
		for _, c := range rec.Result().Cookies() {
			r2.AddCookie(c)
		}
		rec2 := httptest.NewRecorder()
		AddFlash(rec2, r2, "second")

		r3 := httptest.NewRequest("GET", "/", nil)
		for _, c := range rec2.Result().Cookies() {
			r3.AddCookie(c)
		}
		messages := TakeFlashes(httptest.NewRecorder(), r3)
		assert.Equal(t, []string{"first", "second"}, messages)
	})

	t.Run("No cookie means no flashes", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		assert.False(t, HasFlashes(r))
		assert.Nil(t, TakeFlashes(httptest.NewRecorder(), r))
	})
}
