package httpkit

import (
	"net/http"

	phttp "canteiro/internal/platform/net/http"
)

// PostJSON mounts a JSON handler under POST; the body is bound and validated into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// Get mounts a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.NoBodyHandler(h))
}
