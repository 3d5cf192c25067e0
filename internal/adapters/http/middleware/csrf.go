package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"time"

	"recipeauth/internal/config"
)

const csrfCookieName = "csrf_token"

// CSRF implements the double-submit cookie scheme. Safe methods get a
// token cookie issued, mutating methods must echo it back in the
// X-CSRF-Token header.
func CSRF(cfg *config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				if _, err := r.Cookie(csrfCookieName); err != nil {
					issueCSRFCookie(w, cfg)
				}
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(csrfCookieName)
			if err != nil {
				http.Error(w, "Missing CSRF cookie", http.StatusForbidden)
				return
			}

			header := r.Header.Get("X-CSRF-Token")
			if header == "" {
				http.Error(w, "Missing CSRF token header", http.StatusForbidden)
				return
			}

			if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(header)) != 1 {
				http.Error(w, "Invalid CSRF token", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func issueCSRFCookie(w http.ResponseWriter, cfg *config.Config) {
	buf := make([]byte, 32)
	rand.Read(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    base64.URLEncoding.EncodeToString(buf),
		Path:     "/",
		Expires:  time.Now().Add(cfg.JWTExpiry),
		HttpOnly: false,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}
