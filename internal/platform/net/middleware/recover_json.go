package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "canteiro/internal/platform/errors"
	"canteiro/internal/platform/logger"
	pnet "canteiro/internal/platform/net"
	phttp "canteiro/internal/platform/net/http"
)

// RequestContext copies the chi request id into the logger context and echoes it back
// it must run after RequestID
func RequestContext(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		ctx := r.Context()
		if id := pnet.RequestID(ctx); id != "" {
			w.Header().Set("X-Request-ID", id)
			ctx = logger.WithRequest(ctx, id, "")
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RecoverJSON converts panics into the error envelope and logs the stack
// http.ErrAbortHandler is re-panicked so net/http can drop the connection
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			phttp.RespondError(w, r, perr.PanicErrf("internal error"))
		}()
		next.ServeHTTP(w, r)
	})
}
