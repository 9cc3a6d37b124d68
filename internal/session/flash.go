package session

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const flashCookie = "flash"

// AddFlash queues a one-shot notice shown on the next rendered page.
// Messages stack until the next TakeFlashes.
func AddFlash(w http.ResponseWriter, r *http.Request, message string) {
	messages := readFlashes(r)
	messages = append(messages, message)

	value := base64.URLEncoding.EncodeToString([]byte(strings.Join(messages, "\n")))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
	})
}

// TakeFlashes returns the queued notices and clears them.
func TakeFlashes(w http.ResponseWriter, r *http.Request) []string {
	messages := readFlashes(r)
	if len(messages) == 0 {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return messages
}

// HasFlashes reports whether the request carries queued notices. Pages about
// to show a one-shot notice must not land in a shared cache.
func HasFlashes(r *http.Request) bool {
	return len(readFlashes(r)) > 0
}

func readFlashes(r *http.Request) []string {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return nil
	}

	decoded, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil || len(decoded) == 0 {
		return nil
	}
	return strings.Split(string(decoded), "\n")
}
