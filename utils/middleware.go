package utils

import (
	"github.com/kataras/iris/v12"

	"hotel-server/models"
)

// RequireRoles rejects callers holding none of roles. It must run after the
// access token verifier.
func RequireRoles(roles ...models.Role) iris.Handler {
	return func(ctx iris.Context) {
		actor := ActorFromContext(ctx)
		for _, role := range roles {
			if actor.Has(role) {
				ctx.Next()
				return
			}
		}
		JSONError(ctx, iris.StatusForbidden, "forbidden", "insufficient role")
	}
}

// RequireStaff lets any hotel staff role through.
func RequireStaff(ctx iris.Context) {
	actor := ActorFromContext(ctx)
	if !actor.IsStaff() {
		JSONError(ctx, iris.StatusForbidden, "forbidden", "staff access required")
		return
	}
	ctx.Next()
}

// CORS answers preflight requests and echoes allowed origins. An empty list
// allows any origin.
func CORS(allowed []string) iris.Handler {
	allow := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		allow[o] = true
	}
	return func(ctx iris.Context) {
		origin := ctx.GetHeader("Origin")
		if origin != "" && (len(allow) == 0 || allow[origin]) {
			ctx.Header("Access-Control-Allow-Origin", origin)
			ctx.Header("Vary", "Origin")
			// credentials only for origins named in the allow-list
			if len(allow) > 0 {
				ctx.Header("Access-Control-Allow-Credentials", "true")
			}
			ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
			ctx.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		}
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
