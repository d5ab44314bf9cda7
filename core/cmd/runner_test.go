package cmd

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	coreconfig "github.com/hustlex/hustlexbot/core/config"
	coretelegram "github.com/hustlex/hustlexbot/core/telegram"
)

type carrier struct{ cfg *coreconfig.Config }

func (c carrier) CoreConfig() *coreconfig.Config { return c.cfg }

type app struct{ stopped *bool }

func (a app) TelegramRunOptions() (coretelegram.RunOptions, error) {
	return coretelegram.RunOptions{
		OnStop: func(context.Context, coretelegram.Runtime) error {
			*a.stopped = true
			return nil
		},
	}, nil
}

func TestRunWiresLifecycleHooks(t *testing.T) {
	t.Setenv("TEST_CONFIG_PATH", "config.test.yaml")
	stopped := false
	var loadedPath string

	err := Run(Options{
		ConfigEnvVar: "TEST_CONFIG_PATH",
		LoadConfig: func(path string) (ConfigCarrier, error) {
			loadedPath = path
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return app{stopped: &stopped}, nil
		},
		ShutdownLogger: func() error { return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if loadedPath != "config.test.yaml" {
		t.Fatalf("config path = %q", loadedPath)
	}
	if !stopped {
		t.Fatal("application OnStop hook was not chained")
	}
}

func TestRunRequiresConfigPath(t *testing.T) {
	t.Setenv("TEST_CONFIG_PATH", "")
	err := Run(Options{
		ConfigEnvVar: "TEST_CONFIG_PATH",
		LoadConfig:   func(string) (ConfigCarrier, error) { return nil, nil },
		Bootstrap:    func(context.Context, ConfigCarrier) (TelegramApp, error) { return nil, nil },
	})
	if err == nil {
		t.Fatal("expected error without config path")
	}
}

func TestRunBootstrapError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(string) (ConfigCarrier, error) {
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap:      func(context.Context, ConfigCarrier) (TelegramApp, error) { return nil, boom },
		ShutdownLogger: func() error { return nil },
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected bootstrap error, got %v", err)
	}
}

type summarizingApp struct {
	app
	calls *int
}

func (s summarizingApp) Summary() []slog.Attr {
	*s.calls++
	return []slog.Attr{slog.Int("sessions", 0)}
}

func TestRunLogsAppSummaryOnReadyAndShutdown(t *testing.T) {
	stopped := false
	calls := 0
	err := Run(Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(string) (ConfigCarrier, error) {
			return carrier{cfg: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(context.Context, ConfigCarrier) (TelegramApp, error) {
			return summarizingApp{app: app{stopped: &stopped}, calls: &calls}, nil
		},
		ShutdownLogger: func() error { return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 2 || !stopped {
		t.Fatalf("summary calls = %d, stopped = %v", calls, stopped)
	}
}

func TestConfigPathPrefersEnv(t *testing.T) {
	t.Setenv("TEST_CONFIG_PATH", "")
	if p, err := configPath(Options{ConfigEnvVar: "TEST_CONFIG_PATH", DefaultConfigPath: "fallback.yaml"}); err != nil || p != "fallback.yaml" {
		t.Fatalf("configPath = %q, %v", p, err)
	}
	t.Setenv("TEST_CONFIG_PATH", "env.yaml")
	if p, _ := configPath(Options{ConfigEnvVar: "TEST_CONFIG_PATH", DefaultConfigPath: "fallback.yaml"}); p != "env.yaml" {
		t.Fatalf("configPath = %q", p)
	}
}
