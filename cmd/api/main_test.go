package main

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/tbourn/vehicle-insurance-api/internal/config"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"serve", "migrate"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("missing %s command: %v", name, err)
		}
	}
	if root.Version == "" {
		t.Fatalf("empty version")
	}
}

func TestVersion_Fallbacks(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = ""
	t.Setenv("APP_VERSION", "")
	if got := version(); got != "dev" {
		t.Fatalf("version=%q", got)
	}
	t.Setenv("APP_VERSION", "1.4.0")
	if got := version(); got != "1.4.0" {
		t.Fatalf("version=%q", got)
	}
	Version = "2.0.0"
	if got := version(); got != "2.0.0" {
		t.Fatalf("version=%q", got)
	}
}

func TestMigrateCmd_SQLite(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "app.db"))

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"migrate"})
	if err := root.Execute(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if out.String() != "ok\n" {
		t.Fatalf("out=%q", out.String())
	}
}

func TestMigrateCmd_BadConfig(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "oracle")

	root := newRootCmd()
	root.SetArgs([]string{"migrate"})
	if err := root.Execute(); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "app.db"))
	t.Setenv("PORT", "0")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.ShutdownTimeout = time.Second

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, 10*time.Millisecond) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not return after cancel")
	}
}

func TestRootCmd_ServesByDefault(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "app.db"))
	t.Setenv("PORT", "0")
	t.Setenv("GIN_MODE", "test")
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCmd()
	if root.Flags().Lookup("purge-interval") == nil {
		t.Fatalf("root is missing the serve flags")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	root.SetArgs([]string{"--purge-interval", "0"})
	if err := root.ExecuteContext(ctx); err != nil {
		t.Fatalf("bare invocation: %v", err)
	}
}

func TestUpstreamClient_TransportDefaults(t *testing.T) {
	hc := upstreamClient()
	if hc.Timeout != 0 {
		t.Fatalf("client timeout = %v", hc.Timeout)
	}
	if hc.Transport != http.DefaultTransport {
		t.Fatalf("unexpected transport %T", hc.Transport)
	}
}
