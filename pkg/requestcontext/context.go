// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets these values; services read them without importing net/http.
//
//	agent := requestcontext.AgentUsername(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Tests inject values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithAgent(ctx, "support.agent", []string{"SupportUser"})
package requestcontext

import (
	"context"
	"slices"
	"time"
)

type (
	agentUsernameKey struct{}
	agentRolesKey    struct{}
	clientIPKey      struct{}
	userAgentKey     struct{}
	requestIDKey     struct{}
	requestTimeKey   struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyAgentUsername = agentUsernameKey{}
	ContextKeyAgentRoles    = agentRolesKey{}
	ContextKeyClientIP      = clientIPKey{}
	ContextKeyUserAgent     = userAgentKey{}
	ContextKeyRequestID     = requestIDKey{}
	ContextKeyRequestTime   = requestTimeKey{}
)

// -----------------------------------------------------------------------------
// Support agent (authenticated caller)
// -----------------------------------------------------------------------------

// AgentUsername returns the authenticated support agent, or "" when unauthenticated.
func AgentUsername(ctx context.Context) string {
	if u, ok := ctx.Value(ContextKeyAgentUsername).(string); ok {
		return u
	}
	return ""
}

// AgentRoles returns the roles granted to the authenticated agent.
func AgentRoles(ctx context.Context) []string {
	if r, ok := ctx.Value(ContextKeyAgentRoles).([]string); ok {
		return r
	}
	return nil
}

// HasRole reports whether the agent holds role.
func HasRole(ctx context.Context, role string) bool {
	return slices.Contains(AgentRoles(ctx), role)
}

// WithAgent injects the agent identity into the context.
func WithAgent(ctx context.Context, username string, roles []string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyAgentUsername, username)
	return context.WithValue(ctx, ContextKeyAgentRoles, roles)
}

// -----------------------------------------------------------------------------
// Client metadata (IP, User-Agent)
// -----------------------------------------------------------------------------

func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(ContextKeyClientIP).(string); ok {
		return ip
	}
	return ""
}

func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(ContextKeyUserAgent).(string); ok {
		return ua
	}
	return ""
}

// WithClientMetadata injects client IP and User-Agent into a context.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyClientIP, clientIP)
	return context.WithValue(ctx, ContextKeyUserAgent, userAgent)
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() outside HTTP requests (relay worker, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
