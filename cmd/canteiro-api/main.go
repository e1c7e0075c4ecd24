// @title         Canteiro Reports API
// @version       0.1.0
// @description   Read only metrics and reports over kaizens and tasks

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"canteiro/internal/modkit/repokit"
	"canteiro/internal/platform/config"
	"canteiro/internal/platform/logger"
	"canteiro/internal/platform/metrics"
	phttp "canteiro/internal/platform/net/http"
	"canteiro/internal/platform/store"

	"canteiro/internal/services/api"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// bring up logging early
	opt := logger.FromEnv()
	if opt.Service == "" {
		opt.Service = "canteiro-api"
	}
	logger.Init(opt)
	l := logger.Get()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")     // http, docs, metrics switches
	pgCfg := root.Prefix("SERVICE_PGSQL_") // postgres

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "canteiro-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayPositiveInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	srv := phttp.NewServer(apiCfg)

	opts := api.OptionsFrom(root, apiCfg)
	opts.PG = st.PG
	opts.Metrics = metrics.Default()
	opts.Logger = l
	mods := api.Mount(srv.Router(), opts)
	for _, m := range mods {
		l.Info().Str("module", m.Name()).Msg("module mounted")
	}

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
