package httpx

import "context"

type ctxKey string

// CtxKeyAccountID carries the authenticated account id once the session
// middleware has verified the token.
const CtxKeyAccountID ctxKey = "account_id"

// AccountIDFromCtx returns the authenticated account id, or "" when the
// request carried no valid session.
func AccountIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyAccountID).(string); ok {
		return v
	}
	return ""
}
