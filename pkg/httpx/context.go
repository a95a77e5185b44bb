package httpx

import "context"

type ctxKey string

// Context keys populated by the authentication middleware once the caller's
// identity has been resolved against storage.
const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyOrgID  ctxKey = "org_id"
	CtxKeyRole   ctxKey = "role"
)

// UserIDFromCtx returns the resolved caller user id, or "" when the request
// is unauthenticated.
func UserIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// OrgIDFromCtx returns the resolved caller organization id, or "".
func OrgIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyOrgID).(string); ok {
		return v
	}
	return ""
}

// RoleFromCtx returns the resolved caller role name, or "".
func RoleFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyRole).(string); ok {
		return v
	}
	return ""
}
