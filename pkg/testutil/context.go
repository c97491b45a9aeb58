package testutil

import (
	"net/http"

	"healthgateway/pkg/requestcontext"
)

// WithAgent adds an authenticated support agent to the request context, as
// RequireAuth would after validating a token.
func WithAgent(req *http.Request, username string, roles ...string) *http.Request {
	ctx := requestcontext.WithAgent(req.Context(), username, roles)
	return req.WithContext(ctx)
}

// WithClientMetadata sets the caller IP and User-Agent the audit trail records.
func WithClientMetadata(req *http.Request, ip, userAgent string) *http.Request {
	ctx := requestcontext.WithClientMetadata(req.Context(), ip, userAgent)
	return req.WithContext(ctx)
}
