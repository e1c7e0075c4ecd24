// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import phttp "canteiro/internal/platform/net/http"

type (
	// Response lets a handler pick its own status
	Response = phttp.Response

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)
