package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"debug":    zerolog.DebugLevel,
		" WARN ":   zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"":         zerolog.InfoLevel,
		"nonsense": zerolog.InfoLevel,
		"info":     zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestNew_JSONFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "canteiro-api",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})
	l.Debug().Str("report", "kaizen_counters").Msg("report done")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	for k, want := range map[string]string{"service": "canteiro-api", "build": "test", "report": "kaizen_counters", "level": "debug"} {
		if line[k] != want {
			t.Fatalf("%s got %v want %s", k, line[k], want)
		}
	}
}

func TestNew_LevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(Options{Level: "warn", Writer: &buf})
	l.Info().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info leaked at warn level: %s", buf.String())
	}
}

func TestWithRequest_AndC(t *testing.T) {
	ctx := WithRequest(context.Background(), "req-123", "9d3f6a1e-2b4c-4d8e-9f0a-1b2c3d4e5f60")
	if ctx.Value(keyRequestID) != "req-123" || ctx.Value(keyOrganizationID) != "9d3f6a1e-2b4c-4d8e-9f0a-1b2c3d4e5f60" {
		t.Fatal("ids not stored")
	}
	if RequestID(ctx) != "req-123" || RequestID(context.Background()) != "" {
		t.Fatal("request id accessor")
	}
	if same := WithRequest(context.Background(), "", ""); same != context.Background() {
		t.Fatal("empty ids should leave ctx untouched")
	}
	if C(ctx) == nil || Named("http") == nil || Named("") != Get() {
		t.Fatal("child loggers")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("LOG_SERVICE", "canteiro-report")
	t.Setenv("LOG_CALLER", "yes")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "console" || opt.Service != "canteiro-report" || !opt.WithCaller {
		t.Fatalf("got %+v", opt)
	}
}
