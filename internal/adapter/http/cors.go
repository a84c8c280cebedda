package httpadapter

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const corsAllowMethods = "GET,POST,OPTIONS"
const corsAllowHeaders = "Content-Type,X-Session-ID"

// applyCORSHeaders allows any origin when origins is empty and otherwise
// echoes the request origin only when listed.
func applyCORSHeaders(ctx *app.RequestContext, origins []string) {
	allow := "*"
	if len(origins) > 0 {
		allow = ""
		reqOrigin := string(ctx.GetHeader("Origin"))
		for _, o := range origins {
			if o == reqOrigin {
				allow = o
				break
			}
		}
		ctx.Response.Header.Set("Vary", "Origin")
	}
	if allow != "" {
		ctx.Response.Header.Set("Access-Control-Allow-Origin", allow)
	}
	ctx.Response.Header.Set("Access-Control-Allow-Methods", corsAllowMethods)
	ctx.Response.Header.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	ctx.Response.Header.Set("Access-Control-Max-Age", "600")
}

func corsMiddleware(origins []string) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		applyCORSHeaders(ctx, origins)
		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}
