// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "canteiro/internal/modkit"
	"canteiro/internal/modkit/httpkit"
	"canteiro/internal/modkit/swaggerkit"

	metahttp "canteiro/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	built     modkit.Built
	deps      modkit.Deps
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	return &Module{built: b, deps: deps, startedAt: time.Now()}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		d := metahttp.Deps{
			ServiceName: "canteiro-api",
			StartedAt:   m.startedAt,
		}
		// a nil TxRunner must stay an untyped nil so ready reports skipped
		if m.deps.PG != nil {
			d.PG = m.deps.PG
		}
		ops := metahttp.Register(rr, d)
		for i := range ops {
			ops[i].Path = m.built.Prefix + ops[i].Path
		}
		swaggerkit.Register(ops...)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.built.Ports }
