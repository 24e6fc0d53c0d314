package api

import (
	"net/http"
	"strings"
)

// productImageHosts lists the remote origins the catalog's image URLs point
// at. They must be allowed by the CSP or the storefront renders without
// product imagery.
var productImageHosts = []string{
	"https://images.unsplash.com",
}

// SecurityHeaders is middleware that sets standard security response
// headers on every response. It should be placed early in the middleware
// chain.
func SecurityHeaders(next http.Handler) http.Handler {
	imgSrc := strings.Join(append([]string{"'self'", "data:"}, productImageHosts...), " ")
	csp := strings.Join([]string{
		"default-src 'self'",
		"script-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src " + imgSrc,
		"connect-src 'self'",
	}, "; ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		h.Set("Content-Security-Policy", csp)

		if requestIsSecure(r) {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
