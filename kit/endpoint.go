// CLAUDE:SUMMARY Transport-agnostic Endpoint abstraction with composable middleware.
package kit

import "context"

// Endpoint is a transport-agnostic request handler. The same endpoint backs
// CLI invocations, MCP tool calls, and HTTP handlers.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint with cross-cutting behavior.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares outside-in: the first argument is the outermost.
func Chain(mws ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mws) - 1; i >= 0; i-- {
			next = mws[i](next)
		}
		return next
	}
}
