// Package module wires reports into the API using modkit
package module

import (
	modkit "canteiro/internal/modkit"
	"canteiro/internal/modkit/httpkit"
	"canteiro/internal/modkit/swaggerkit"
	"canteiro/internal/services/api/reports/engine"
	reportshttp "canteiro/internal/services/api/reports/http"
	reportsrepo "canteiro/internal/services/api/reports/repo"
	reportssvc "canteiro/internal/services/api/reports/service"
)

// Module implements the reports module
type Module struct {
	built modkit.Built
	svc   reportssvc.Service
	ports any
}

// New constructs the reports module
// tunables come from REPORTS_DEFAULT_LIMIT and REPORTS_MAX_REPLICA_DEPTH under deps.Cfg
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("reports"), modkit.WithPrefix("/reports")}, opts...)...)

	svc := reportssvc.New(deps.PG, reportsrepo.NewPG(),
		reportssvc.WithEngine(engine.FromConfig(deps.Cfg.Prefix("REPORTS_"))),
		reportssvc.WithMetrics(deps.Metrics),
	)

	m := &Module{built: b, svc: svc}
	m.ports = b.Ports
	if m.ports == nil {
		m.ports = adaptReportsPort{svc: svc}
	}
	return m
}

// MountRoutes mounts the report routes and documents them
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		ops := reportshttp.Register(rr, m.svc)
		for i := range ops {
			ops[i].Path = m.built.Prefix + ops[i].Path
		}
		swaggerkit.Register(ops...)
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }
