package middleware

import "context"

// contextKey is a private type for context keys defined in this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	lineUserIDKey = contextKey("lineUserID")
)

// GetLineUserIDFromCtx retrieves the authenticated LINE user ID from the
// request context. It returns the ID and a boolean indicating if it was found.
func GetLineUserIDFromCtx(ctx context.Context) (string, bool) {
	val := ctx.Value(lineUserIDKey)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}
