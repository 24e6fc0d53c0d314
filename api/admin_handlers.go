package api

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/royalkeys/royalkeys/catalog"
)

// clientIP extracts the source IP for rate-limit bookkeeping.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// AdminLogin handles POST /admin/login. Failed attempts feed both the
// per-account and per-IP rate limiters.
func (a *API) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if a.backoffice == nil {
		writeError(w, http.StatusServiceUnavailable, "back-office service not configured")
		return
	}

	ip := clientIP(r)
	if blocked, retryAfter := a.ipLimiter.check(ip); blocked {
		a.audit.logFailure(AuditAdminLoginRateLimited, r, "ip rate limited")
		writeRateLimited(w, retryAfter)
		return
	}
	if blocked, retryAfter := a.rateLimiter.check(req.Email); blocked {
		a.audit.logFailure(AuditAdminLoginRateLimited, r, "account rate limited")
		writeRateLimited(w, retryAfter)
		return
	}

	if err := a.backoffice.SignIn(r.Context(), req.Email, req.Password); err != nil {
		a.rateLimiter.recordFailure(req.Email)
		a.ipLimiter.recordFailure(ip)
		a.audit.logFailure(AuditAdminLoginFailure, r, err.Error(),
			slog.String("email", req.Email))
		mapError(w, err)
		return
	}
	a.rateLimiter.recordSuccess(req.Email)
	a.ipLimiter.recordSuccess(ip)

	token := uuid.NewString()
	expiresAt := time.Now().Add(defaultAdminSessionTTL)
	a.admin.Put(token, AdminSession{
		Email:          req.Email,
		ExpiresAt:      expiresAt,
		LastAccessedAt: time.Now(),
	})
	writeAdminCookie(w, r, token, expiresAt)

	a.audit.logEvent(AuditAdminLoginSuccess, r, req.Email)
	w.WriteHeader(http.StatusNoContent)
}

// AdminLogout handles POST /admin/logout.
func (a *API) AdminLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(adminCookieName); err == nil && cookie.Value != "" {
		a.admin.Delete(cookie.Value)
	}
	clearAdminCookie(w, r)
	a.audit.log(AuditAdminLogout, r)
	w.WriteHeader(http.StatusNoContent)
}

// AdminResetPassword handles POST /admin/reset-password.
func (a *API) AdminResetPassword(w http.ResponseWriter, r *http.Request) {
	var req AdminResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}
	if a.backoffice == nil {
		writeError(w, http.StatusServiceUnavailable, "back-office service not configured")
		return
	}
	if err := a.backoffice.ResetPassword(r.Context(), req.Email); err != nil {
		mapError(w, err)
		return
	}
	a.audit.logEvent(AuditAdminPasswordReset, r, req.Email)
	w.WriteHeader(http.StatusAccepted)
}

// AdminListProducts handles GET /admin/products.
func (a *API) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.backoffice.ListProducts(r.Context())
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AdminListProductsResponse{Products: products})
}

// AdminUpsertProduct handles PUT /admin/products/{productID}.
func (a *API) AdminUpsertProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if !decodeJSON(w, r, &p) {
		return
	}
	p.ID = chi.URLParam(r, "productID")
	if p.Category != "" && !p.Category.Valid() {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}
	if err := a.backoffice.UpsertProduct(r.Context(), p); err != nil {
		mapError(w, err)
		return
	}
	a.audit.logEvent(AuditProductUpserted, r, adminEmailFromContext(r.Context()),
		slog.String("product_id", p.ID))
	writeJSON(w, http.StatusOK, p)
}

// AdminDeleteProduct handles DELETE /admin/products/{productID}.
func (a *API) AdminDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")
	if err := a.backoffice.DeleteProduct(r.Context(), id); err != nil {
		mapError(w, err)
		return
	}
	a.audit.logEvent(AuditProductDeleted, r, adminEmailFromContext(r.Context()),
		slog.String("product_id", id))
	w.WriteHeader(http.StatusNoContent)
}
