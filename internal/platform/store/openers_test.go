package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"canteiro/internal/platform/store/pg"
	"canteiro/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func fakeOpen(t *testing.T, appName *string) {
	t.Helper()
	testkit.Swap(t, &openPool, func(_ context.Context, cfg pg.Config, _ pg.QueryTracer, mut func(*pgxpool.Config)) (*pg.PG, error) {
		pc, err := pgxpool.ParseConfig("postgres://u:p@h:5432/db?sslmode=disable")
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		mut(pc)
		if appName != nil {
			*appName = pc.ConnConfig.RuntimeParams["application_name"]
		}
		return &pg.PG{SlowMs: cfg.SlowMs}, nil
	})
}

func TestOpenPG_RetriesUntilPing(t *testing.T) {
	testkit.Serial(t)

	var app string
	fakeOpen(t, &app)
	calls := 0
	testkit.Swap(t, &pingPool, func(context.Context, *pg.PG) error {
		calls++
		if calls < 2 {
			return errors.New("not yet")
		}
		return nil
	})

	cfg := Config{AppName: "canteiro-api", PG: PGConfig{Enabled: true, URL: "x", ConnectRetries: 3, PingTimeout: time.Second}}
	txr, err := openPG(context.Background(), cfg, &Store{})
	if err != nil || txr == nil {
		t.Fatalf("open got %v %v", txr, err)
	}
	if calls != 2 || app != "canteiro-api" {
		t.Fatalf("calls=%d app=%q", calls, app)
	}
}

func TestOpenPG_GivesUp(t *testing.T) {
	testkit.Serial(t)

	fakeOpen(t, nil)
	boom := errors.New("refused")
	calls := 0
	testkit.Swap(t, &pingPool, func(context.Context, *pg.PG) error { calls++; return boom })

	_, err := openPG(context.Background(), Config{PG: PGConfig{ConnectRetries: 2}}, &Store{})
	if !errors.Is(err, boom) || calls != 2 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}
}

func TestOpenPG_CanceledContext(t *testing.T) {
	testkit.Serial(t)

	fakeOpen(t, nil)
	testkit.Swap(t, &pingPool, func(context.Context, *pg.PG) error { return errors.New("refused") })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := openPG(ctx, Config{PG: PGConfig{ConnectRetries: 5}}, &Store{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err got %v", err)
	}
}

func TestPGConfig_Defaults(t *testing.T) {
	t.Parallel()

	var c PGConfig
	if c.retries() != 6 || c.pingTimeout() != 5*time.Second {
		t.Fatalf("defaults got %d %v", c.retries(), c.pingTimeout())
	}
	c = PGConfig{ConnectRetries: 2, PingTimeout: time.Second}
	if c.retries() != 2 || c.pingTimeout() != time.Second {
		t.Fatal("explicit values ignored")
	}
}
