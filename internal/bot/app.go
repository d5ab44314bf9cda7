// Package bot wires the HustleX profile wizard, menus and jobs browser onto
// the Telegram runtime.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	tele "gopkg.in/telebot.v4"

	"github.com/hustlex/hustlexbot/core/bootstrap"
	"github.com/hustlex/hustlexbot/core/logger"
	"github.com/hustlex/hustlexbot/core/metrics"
	tg "github.com/hustlex/hustlexbot/core/telegram"
	"github.com/hustlex/hustlexbot/core/telegram/commands"
	"github.com/hustlex/hustlexbot/core/telegram/router"
	"github.com/hustlex/hustlexbot/core/telegram/sender"
	"github.com/hustlex/hustlexbot/core/telegram/state"
	"github.com/hustlex/hustlexbot/internal/config"
	"github.com/hustlex/hustlexbot/internal/jobs"
	"github.com/hustlex/hustlexbot/internal/profile"
)

// App holds everything the bot needs at runtime.
type App struct {
	cfg      *config.Config
	infra    *bootstrap.Result
	store    *profile.Store
	metrics  *metrics.Recorder
	registry *tg.Registry
	wizard   *Wizard
	handlers *Handlers

	metricsDone chan error
}

// Bootstrap initialises logging and the optional database, then builds the App.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, error) {
	var seeders []bootstrap.Seeder
	if cfg.Jobs.SeedDemo {
		seeders = append(seeders, jobs.DemoSeeder())
	}
	infra, err := bootstrap.Run(ctx, bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
		Seeders:  seeders,
	})
	if err != nil {
		return nil, err
	}
	app := New(cfg, infra.DB)
	app.infra = infra
	return app, nil
}

// New builds the App. db may be nil, in which case /jobs shows the static listing.
func New(cfg *config.Config, db *sqlx.DB) *App {
	store := profile.NewStore()
	rec := metrics.New(store.Len)

	var repo jobs.Repository
	if db != nil {
		repo = jobs.NewPostgresRepository(db)
	}

	wizard := NewWizard(store, rec)
	a := &App{
		cfg:      cfg,
		store:    store,
		metrics:  rec,
		registry: tg.NewRegistry(),
		wizard:   wizard,
		handlers: &Handlers{
			store:        store,
			wizard:       wizard,
			jobs:         jobs.NewService(repo, cfg.Jobs.Limit, cfg.Jobs.Timeout),
			platform:     cfg.Platform.Name,
			website:      cfg.Platform.ClientURL,
			supportEmail: cfg.Platform.SupportEmail,
		},
	}
	a.register()
	return a
}

// Summary describes the running bot for the ready and shutdown log lines.
func (a *App) Summary() []slog.Attr {
	st := a.store.Stats()
	return []slog.Attr{
		slog.String("platform", a.cfg.Platform.Name),
		slog.Bool("jobs_db", a.handlers.jobs.Enabled()),
		slog.Int("jobs_limit", a.cfg.Jobs.Limit),
		slog.String("metrics_listen", a.cfg.Metrics.Listen),
		slog.Int("sessions", st.Sessions),
		slog.Int("completed", st.Completed),
		slog.Int("in_wizard", st.InWizard),
	}
}

// Store exposes the session store.
func (a *App) Store() *profile.Store { return a.store }

// Registry exposes the command and callback registry.
func (a *App) Registry() *tg.Registry { return a.registry }

func (a *App) register() {
	h := a.handlers
	reg := a.registry

	reg.RegisterCommand("/start", commands.Command{Handler: h.Start, Description: "Start the bot and show main menu"})
	reg.RegisterCommand("/help", commands.Command{Handler: h.Help, Description: "Show help"})
	reg.RegisterCommand("/profile", commands.Command{Handler: h.Profile, Description: "View your profile", Aliases: []string{LabelViewProfile}})
	reg.RegisterCommand("/setup", commands.Command{Handler: h.Setup, Description: "Set up your profile", Aliases: []string{LabelProfileSetup}})
	reg.RegisterCommand("/jobs", commands.Command{Handler: h.Jobs, Description: "Browse the latest jobs", Aliases: []string{LabelBrowseJobs}})
	reg.RegisterCommand("/about", commands.Command{Handler: h.About, Description: "About HustleX", Aliases: []string{LabelAbout}})
	reg.RegisterCommand("/stats", commands.Command{Handler: h.Stats, Description: "Session statistics", AdminOnly: true, Hidden: true})

	for key, fn := range map[string]tele.HandlerFunc{
		CallbackSkip:     a.wizard.Skip,
		CallbackCancel:   a.wizard.Cancel,
		CallbackComplete: a.wizard.Complete,
	} {
		if err := reg.RegisterCallback(key, fn); err != nil {
			logger.TWire.Warn("callback not registered",
				slog.String("event", "register.callback"),
				slog.String("key", key),
				slog.String("err", err.Error()),
			)
		}
	}

	fb := Fallbacks{}
	reg.SetCallbackNotFound(fb.UnknownCallback())
}

// TelegramRunOptions assembles routes, middleware and lifecycle hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	if a.cfg == nil {
		return tg.RunOptions{}, fmt.Errorf("bot: nil config")
	}
	router.SetMetrics(a.metrics)
	fb := Fallbacks{}

	routes := router.CommandRoutes(a.registry, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
		OnAdminReject: func(c tele.Context) error {
			return c.Send(msgAdminOnly)
		},
	})
	routes = append(routes, router.CallbackRoute(a.registry, router.CallbackOptions{NotFound: fb.UnknownCallback()}))
	routes = append(routes, router.TextRoutes(a.wizard, a.registry, router.FallbackOptions(fb))...)

	mws := tg.DefaultMiddlewares(a.cfg.CoreConfig(), a.metrics, onLimited)
	mws = append(mws, tg.Middleware{
		Name: "session",
		Use: state.WithSession(a.store.Sessions(), state.SessionOptions[profile.Record]{
			Seed:    sessionSeed,
			Refresh: sessionRefresh,
		}),
	})

	return tg.RunOptions{
		Config:   a.cfg.CoreConfig(),
		Registry: a.registry,
		DispatcherOptions: sender.Options{
			Workers:    a.cfg.Sender.Workers,
			QueueSize:  a.cfg.Sender.QueueSize,
			MaxRetries: a.cfg.Sender.MaxRetries,
			OnFailure:  a.metrics.SendFailure,
		},
		Middlewares:    mws,
		Routes:         routes,
		AllowedUpdates: []string{"message", "callback_query"},
		OnStart:        a.onStart,
		OnStop:         a.onStop,
	}, nil
}

func onLimited(c tele.Context) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: msgSlowDown})
	}
	return nil
}

func (a *App) onStart(ctx context.Context, _ tg.Runtime) error {
	addr := a.cfg.Metrics.Listen
	if addr == "" {
		return nil
	}
	srv := metrics.NewServer(addr, a.metrics)
	done := make(chan error, 1)
	a.metricsDone = done
	go func() {
		err := metrics.Serve(ctx, srv)
		if err != nil {
			logger.Metrics.Error("metrics server failed",
				slog.String("event", "serve"),
				slog.String("err", err.Error()),
			)
		}
		done <- err
	}()
	return nil
}

func (a *App) onStop(ctx context.Context, _ tg.Runtime) error {
	if a.metricsDone != nil {
		select {
		case <-a.metricsDone:
		case <-ctx.Done():
		}
	}
	// sessions live in memory only
	if st := a.store.Stats(); st.InWizard > 0 {
		logger.SVCProfiles.Warn("unfinished wizards dropped",
			slog.String("event", "shutdown.drop"),
			slog.Int("in_wizard", st.InWizard),
		)
	}
	if err := a.infra.Close(); err != nil {
		return fmt.Errorf("bot: close database: %w", err)
	}
	return nil
}
