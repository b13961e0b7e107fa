package utils

import (
	"context"
)

type contextKey string

const (
	RequestIDKey contextKey = "request_id"
	AdminUserKey contextKey = "admin_user"
)

func SetRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(RequestIDKey)
	if val == nil {
		return "", false
	}

	requestID, ok := val.(string)
	return requestID, ok
}

func SetAdminUserContext(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, AdminUserKey, user)
}

// GetAdminUserFromContext returns the user authenticated by the admin middleware
func GetAdminUserFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(AdminUserKey)
	if val == nil {
		return "", false
	}

	user, ok := val.(string)
	return user, ok
}
