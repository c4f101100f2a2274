package common

import (
	"context"
	"log/slog"
	"time"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeyRequestID contextKey = "request_id"
	ContextKeyPackageID contextKey = "package_id"
)

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// RequestIDFromContext extracts the request ID from context
func RequestIDFromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return requestID
	}
	return ""
}

// WithPackageID adds the id of the package being processed to the context
func WithPackageID(ctx context.Context, packageID string) context.Context {
	return context.WithValue(ctx, ContextKeyPackageID, packageID)
}

// PackageIDFromContext extracts the package ID from context
func PackageIDFromContext(ctx context.Context) string {
	if packageID, ok := ctx.Value(ContextKeyPackageID).(string); ok {
		return packageID
	}
	return ""
}

// LoggerFromContext returns logger annotated with the request and package ids found in ctx.
func LoggerFromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.With("request_id", id)
	}
	if id := PackageIDFromContext(ctx); id != "" {
		logger = logger.With("package_id", id)
	}
	return logger
}

// WithTimeout creates a context with the specified timeout. A non-positive
// timeout returns a cancelable child without a deadline.
func WithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
