package api

import (
	"context"
	"net/http"
	"time"
)

type contextKey int

const adminEmailKey contextKey = iota

const adminCookieName = "royalkeys_admin"

// AdminAuthMiddleware authenticates the admin session cookie and stores the
// admin's email on the request context.
func (a *API) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(adminCookieName)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		session, ok := a.admin.Get(cookie.Value)
		if !ok {
			writeError(w, http.StatusUnauthorized, "session expired")
			return
		}

		session.LastAccessedAt = time.Now()
		a.admin.Put(cookie.Value, session)

		ctx := context.WithValue(r.Context(), adminEmailKey, session.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminEmailFromContext returns the authenticated admin's email, if any.
func adminEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(adminEmailKey).(string)
	return email
}

// requestIsSecure reports whether the request arrived over TLS, directly
// or via a forwarding proxy.
func requestIsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return r.Header.Get("X-Forwarded-Proto") == "https"
}

func writeAdminCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteStrictMode,
	})
}

func clearAdminCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteStrictMode,
	})
}
