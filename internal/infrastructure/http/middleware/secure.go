package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureHeaders returns the security-header middleware for the back office.
// The CSP allows self-hosted assets plus product images inlined as data
// URIs; everything runs same-origin, so framing is denied outright. devMode
// disables enforcement for local work over plain HTTP.
func SecureHeaders(devMode bool) func(next http.Handler) http.Handler {
	s := secure.New(secure.Options{
		IsDevelopment:         devMode,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' data:; frame-ancestors 'none'",
		ReferrerPolicy:        "no-referrer",
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
	})
	return s.Handler
}
