package session

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/VitaminP8/bloggery/internal/auth"
	"github.com/golang-jwt/jwt/v4"
)

const (
	cookieName = "session"
	defaultTTL = 7 * 24 * time.Hour
)

// Manager issues and verifies the signed session cookie. The token is opaque
// to the rest of the system; handlers only see the user id in the context.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	if ttl == 0 {
		ttl = defaultTTL
	}
	return &Manager{secret: secret, ttl: ttl}
}

// Issue establishes an authenticated session for userID.
func (m *Manager) Issue(w http.ResponseWriter, userID uint) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(m.ttl).Unix(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(m.ttl),
	})
	return nil
}

// Clear drops the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// UserID extracts the authenticated user id from the request's session
// cookie. A missing, expired or tampered cookie means anonymous.
func (m *Manager) UserID(r *http.Request) (uint, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}

	token, err := jwt.Parse(c.Value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}

	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, false
	}

	return uint(idFloat), true
}

// Middleware resolves the session cookie and puts the user id into the
// request context. Anonymous requests pass through untouched.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := m.UserID(r); ok {
			r = r.WithContext(auth.WithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth gates protected routes. Anonymous requests are redirected to
// the login page, remembering the originally requested destination.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := auth.UserIDFromContext(r.Context()); err != nil {
			dest := "/login"
			if r.URL.Path != "" && r.URL.Path != "/login" {
				dest += "?next=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, dest, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SafeNext validates a post-login redirect target. Only same-site paths are
// allowed, anything else falls back to the index.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
