// Package api composes the HTTP API: meta and reports under /api/v1, plus docs, pprof and metrics
package api

import (
	"canteiro/internal/platform/config"
	"canteiro/internal/platform/logger"
	"canteiro/internal/platform/metrics"
	phttp "canteiro/internal/platform/net/http"
	"canteiro/internal/platform/net/middleware"

	"canteiro/internal/modkit"
	"canteiro/internal/modkit/httpkit"
	"canteiro/internal/modkit/module"
	"canteiro/internal/modkit/repokit"
	"canteiro/internal/modkit/swaggerkit"

	metamod "canteiro/internal/services/api/meta/module"
	reportsmod "canteiro/internal/services/api/reports/module"
)

// Options are the API options
type Options struct {
	// Config is the root view; modules pick their own prefixes from it
	Config  config.Conf
	PG      repokit.TxRunner
	Metrics *metrics.Manager
	Logger  *logger.Logger

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
	Stack          httpkit.StackOptions
}

// OptionsFrom reads the CORE_API_ switches from apiCfg
func OptionsFrom(root, apiCfg config.Conf) Options {
	return Options{
		Config:         root,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		EnableMetrics:  apiCfg.MayBool("METRICS", true),
		Stack: httpkit.StackOptions{
			Timeout:     apiCfg.MayDuration("REQUEST_TIMEOUT", 0),
			SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", 0),
			CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
		},
	}
}

// Mount mounts the API onto r and returns the modules in mount order
func Mount(r phttp.Router, opt Options) []module.Module {
	deps := modkit.Deps{
		Cfg:     opt.Config,
		PG:      opt.PG,
		Metrics: opt.Metrics,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	builders := []modkit.Builder{metamod.New, reportsmod.New}
	mods := make([]module.Module, 0, len(builders))
	for _, build := range builders {
		mods = append(mods, build(deps))
	}

	// must run before any route lands on r
	r.Use(middleware.Heartbeat("/healthz"))

	stack := httpkit.CommonStack(opt.Stack)
	if opt.Metrics != nil {
		stack = append(stack, middleware.Metrics(opt.Metrics))
	}

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// ports are looked up by module name
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics && opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}
	return mods
}
