package httpkit

import (
	"net/http"
	"time"

	"canteiro/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	Timeout     time.Duration
	SlowRequest time.Duration
	CORSOrigins []string
}

// CommonStack is the baseline per API scope
// CORS is only added when origins are configured
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	mws := middleware.Defaults(o.Timeout)
	mws = append(mws, middleware.AccessLog(middleware.AccessLogOptions{Slow: o.SlowRequest}))
	if len(o.CORSOrigins) > 0 {
		mws = append(mws, middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}))
	}
	return mws
}
