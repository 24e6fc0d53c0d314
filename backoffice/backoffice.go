// Package backoffice implements the admin panel's data plane: credential
// sign-in, password reset, and product CRUD against a hosted Supabase
// project, with a local fallback for deployments that run without one.
package backoffice

import (
	"context"
	"errors"

	"github.com/royalkeys/royalkeys/catalog"
)

var (
	// ErrInvalidCredentials is returned when sign-in fails.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAllowed is returned when the email is not on the admin allowlist.
	ErrNotAllowed = errors.New("email not on admin allowlist")
	// ErrNotConfigured is returned by operations the backend cannot serve.
	ErrNotConfigured = errors.New("back-office service not configured")
)

// DefaultAdmins is the built-in admin allowlist.
var DefaultAdmins = []string{
	"owner@royalkeys.io",
	"support@royalkeys.io",
}

// Service is the record-level interface the admin surface consumes.
// Failures are surfaced to the admin user as messages; there is no retry.
type Service interface {
	SignIn(ctx context.Context, email, password string) error
	ResetPassword(ctx context.Context, email string) error
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	UpsertProduct(ctx context.Context, p catalog.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// allowlisted reports whether email appears in admins.
func allowlisted(admins []string, email string) bool {
	for _, a := range admins {
		if a == email {
			return true
		}
	}
	return false
}
