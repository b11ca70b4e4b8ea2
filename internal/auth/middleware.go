package auth

import (
	"context"
	"net/http"
	"time"

	"club-events/internal/utils"
)

type contextKey string

const clubIDKey contextKey = "club_id"

// TokenFromRequest reads the raw session token from the cookie, or "".
func (s *Service) TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(s.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SetSessionCookie attaches the signed session token. httpOnly and
// SameSite=Lax keep it away from scripts and cross-site posts.
func (s *Service) SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.Secure,
	})
}

// ClearSessionCookie expires the cookie immediately.
func (s *Service) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.Secure,
	})
}

// Middleware rejects requests without a resolvable session and puts the
// session's club id into the request context for downstream handlers. A
// session store failure is a backend outage, not an auth decision, so it
// surfaces as 500 rather than 401.
func (s *Service) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clubID, err := s.resolveClubID(r.Context(), s.TokenFromRequest(r))
			if err != nil {
				utils.WriteError(w, http.StatusInternalServerError, "Session lookup failed")
				return
			}
			if clubID == "" {
				utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			ctx := context.WithValue(r.Context(), clubIDKey, clubID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClubID extracts the authenticated club id set by Middleware.
func ClubID(ctx context.Context) string {
	if id, ok := ctx.Value(clubIDKey).(string); ok {
		return id
	}
	return ""
}
