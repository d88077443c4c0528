package appctx

import "context"

// ContextKey is the shared type for all context keys in this codebase.
// Keeping it in a tiny package avoids import cycles (config <-> utils).
type ContextKey string

func (c ContextKey) String() string { return string(c) }

var (
	ContextKeyToken         = ContextKey("Token")
	ContextKeyUsername      = ContextKey("Username")
	ContextKeyUserId        = ContextKey("UserId")
	ContextKeyUserName      = ContextKey("UserName")
	ContextKeyRole          = ContextKey("Role")
	ContextKeyDealerId      = ContextKey("DealerId")
	ContextKeyCorrelationId = ContextKey("CorrelationId")

	// ContextKeyIsManufacturer is true for ADMIN / EVM_STAFF users. Used for dealer-scope bypass.
	ContextKeyIsManufacturer = ContextKey("IsManufacturer")

	// ContextKeySkipDealerScope forces dealer scoping to be disabled for the request.
	// Use sparingly (internal ops only).
	ContextKeySkipDealerScope = ContextKey("SkipDealerScope")
)

func GetString(ctx context.Context, key ContextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	return v, ok
}

func GetBool(ctx context.Context, key ContextKey) (bool, bool) {
	v, ok := ctx.Value(key).(bool)
	return v, ok
}

func GetInt(ctx context.Context, key ContextKey) (int, bool) {
	v, ok := ctx.Value(key).(int)
	return v, ok
}

func Set(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}
