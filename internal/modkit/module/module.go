// Package module defines the minimal contract for a modkit module
package module

import phttp "canteiro/internal/platform/net/http"

// Module defines the minimal contract used by modkit
// it lives apart from modkit so modules can export ports without import knots
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
