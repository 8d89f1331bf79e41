// Package session provides a small get/set flag store scoped to one browser
// session, used for one-time UI state like the welcome banner.
package session

import "net/http"

// Store reads and writes per-session flags. Implementations decide where
// the flag lives; callers only care about get and set.
type Store interface {
	Get(r *http.Request, key string) string
	Set(w http.ResponseWriter, key, value string)
}

// CookieStore keeps flags in session cookies (no expiry, gone when the
// browser closes). Keys are namespaced with a prefix so the app's cookies
// don't collide with anything else on the host.
type CookieStore struct {
	prefix string
}

func NewCookieStore(prefix string) *CookieStore {
	return &CookieStore{prefix: prefix}
}

func (s *CookieStore) Get(r *http.Request, key string) string {
	c, err := r.Cookie(s.prefix + "_" + key)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *CookieStore) Set(w http.ResponseWriter, key, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.prefix + "_" + key,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
