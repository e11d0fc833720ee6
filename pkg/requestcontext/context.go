// Package requestcontext carries request-scoped values (request id, client
// address, arrival time) through context.Context so the render pipeline and
// its logs can read them without importing net/http.
//
//	ctx = requestcontext.WithTime(ctx, fixed) // tests pin the clock
package requestcontext

import (
	"context"
	"time"
)

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyClientIP
	keyUserAgent
	keyReceived
)

func stringValue(ctx context.Context, key ctxKey) string {
	v, _ := ctx.Value(key).(string)
	return v
}

// RequestID is the X-Request-ID assigned at the edge, or "".
func RequestID(ctx context.Context) string { return stringValue(ctx, keyRequestID) }

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func ClientIP(ctx context.Context) string { return stringValue(ctx, keyClientIP) }
func UserAgent(ctx context.Context) string { return stringValue(ctx, keyUserAgent) }

// WithClientMetadata records who made the request.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, keyClientIP, clientIP)
	return context.WithValue(ctx, keyUserAgent, userAgent)
}

// Now is the instant the request arrived. Outside a request (CLI, tests
// without WithTime) it is the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(keyReceived).(time.Time); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, keyReceived, t)
}
