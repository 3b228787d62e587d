package app

import (
	"context"

	"github.com/matheus3301/tchat/internal/bus"
	"github.com/matheus3301/tchat/internal/clock"
	"github.com/matheus3301/tchat/internal/config"
	"github.com/matheus3301/tchat/internal/logging"
	"github.com/matheus3301/tchat/internal/source"
	"github.com/matheus3301/tchat/internal/store"
	"github.com/matheus3301/tchat/internal/transport"
	"github.com/matheus3301/tchat/internal/tui"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Params holds the resolved startup configuration passed to the fx module.
type Params struct {
	ConfigPath string
}

// Module returns the fx module for the application, composing all providers
// and lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("tchat",
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideLogger,
			provideBus,
			provideScheduler,
			provideSource,
			provideTransport,
			provideStore,
			provideApp,
		),
		fx.Invoke(registerLifecycle),
	)
}

func provideConfig(p Params) (*config.Config, error) {
	return config.Load(p.ConfigPath)
}

func provideLogger() (*zap.Logger, error) {
	return logging.New(config.LogPath())
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideScheduler() clock.Scheduler {
	return clock.NewSystem()
}

func provideSource(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*source.DataSource, error) {
	ds, err := source.New(cfg.Seed, cfg.User.ID, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return ds.Close()
		},
	})
	return ds, nil
}

func provideTransport(cfg *config.Config, sched clock.Scheduler, logger *zap.Logger) *transport.Simulator {
	return transport.New(cfg.Transport, sched, logger)
}

func provideStore(cfg *config.Config, ds *source.DataSource, tr *transport.Simulator, b *bus.Bus, logger *zap.Logger) *store.Store {
	return store.New(cfg.User.ID, ds, tr, b, logger)
}

func provideApp(cfg *config.Config, st *store.Store, tr *transport.Simulator, b *bus.Bus, logger *zap.Logger) *tui.App {
	return tui.NewApp(cfg, st, tr, b, logger)
}

func registerLifecycle(lc fx.Lifecycle, shutdowner fx.Shutdowner, a *tui.App, st *store.Store, tr *transport.Simulator, logger *zap.Logger) {
	var unsubMsg, unsubStatus func()

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			tr.Connect()

			// Transport events feed the store; the store's bus events drive
			// the TUI repaint loop.
			unsubMsg = tr.OnMessage(st.AddIncomingMessage)
			unsubStatus = tr.OnStatusChange(st.UpdateMessageStatus)

			go st.FetchChats(context.Background())

			go func() {
				if err := a.Run(); err != nil {
					logger.Error("tui exited with error", zap.Error(err))
				}
				_ = shutdowner.Shutdown()
			}()

			logger.Info("application started")
			return nil
		},
		OnStop: func(_ context.Context) error {
			a.Stop()
			if unsubMsg != nil {
				unsubMsg()
			}
			if unsubStatus != nil {
				unsubStatus()
			}
			tr.Disconnect()
			logger.Info("application stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
