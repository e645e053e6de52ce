package pkglog

import "context"

type correlationIDKey struct{}

// GetCorrelationID returns the request correlation id carried by ctx, or ""
// when the request did not pass through the correlation middleware.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	cid, _ := ctx.Value(correlationIDKey{}).(string)
	return cid
}

// SetCorrelationID returns a copy of ctx carrying cid. An empty cid leaves
// ctx unchanged.
func SetCorrelationID(ctx context.Context, cid string) context.Context {
	if cid == "" {
		return ctx
	}
	return context.WithValue(ctx, correlationIDKey{}, cid)
}
