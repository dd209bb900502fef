package session

import (
	"net/http"
	"time"
)

const CookieName = "X-Session-Token"

// DefaultTTL is used when no session lifetime is configured.
const DefaultTTL = 12 * time.Hour

func SessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
}

// Expiry returns the absolute expiry for a session created now.
func Expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return time.Now().Add(ttl)
}
