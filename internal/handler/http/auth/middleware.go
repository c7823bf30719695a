package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"project-board/internal/handler/http/respond"
)

const bearerPrefix = "Bearer "

// Identify resolves the principal from the session cookie or a bearer token
// and stores it in the request context. Requests without a valid token pass
// through anonymously; an unusable cookie is cleared.
func Identify(issuer *TokenIssuer, cookies CookieConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, fromCookie := tokenFromRequest(r, cookies.Name)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			p, err := issuer.Parse(raw)
			if err != nil {
				reason := "invalid"
				if errors.Is(err, ErrTokenExpired) {
					reason = "expired"
				}
				RecordTokenRejected(reason)
				logger.Debug("session token rejected",
					slog.String("reason", reason),
					slog.String("path", r.URL.Path))
				if fromCookie {
					cookies.clear(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func tokenFromRequest(r *http.Request, cookieName string) (token string, fromCookie bool) {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix)), false
	}
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}

// RequireUser rejects anonymous requests. API paths get a 401 JSON error;
// pages are redirected to the login form with a next parameter.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/api/") {
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			return
		}
		target := r.URL.RequestURI()
		if r.Method != http.MethodGet {
			// a form post cannot be replayed, so return to the page it came from
			target = ""
			if ref, err := url.Parse(r.Header.Get("Referer")); err == nil && ref.Path != "" {
				target = ref.RequestURI()
			}
		}
		http.Redirect(w, r, "/login?next="+url.QueryEscape(SafeNext(target)), http.StatusFound)
	})
}

// SafeNext returns next when it is a local absolute path, "/articles" otherwise.
func SafeNext(next string) string {
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" ||
		!strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/articles"
	}
	return next
}
