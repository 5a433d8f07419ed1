package main

import (
	"context"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matst80/slask-table/pkg/common"
	"github.com/matst80/slask-table/pkg/config"
	"github.com/matst80/slask-table/pkg/messaging"
	"github.com/matst80/slask-table/pkg/server"
	"github.com/matst80/slask-table/pkg/tracking"
)

type app struct {
	cfg      *config.Config
	web      *server.WebServer
	cache    *server.Cache
	tracking *tracking.RabbitTracking
}

func (a *app) connectCache(ctx context.Context) {
	if a.cfg.Redis.Url == "" {
		return
	}
	cache := server.NewCache(a.cfg.Redis.Url, a.cfg.Redis.Password, a.cfg.Redis.DB)
	if err := cache.Ping(ctx); err != nil {
		zap.L().Warn("redis not reachable, serving without cache", zap.String("addr", a.cfg.Redis.Url), zap.Error(err))
		cache.Close()
		return
	}
	a.cache = cache
	a.web.WithCache(cache, a.cfg.CacheTTL())
	zap.L().Info("response cache enabled", zap.String("addr", a.cfg.Redis.Url))
}

func (a *app) connectTracking() {
	if a.cfg.Rabbit.Url == "" {
		return
	}
	trk, err := tracking.NewRabbitTracking(messaging.RabbitConfig{Url: a.cfg.Rabbit.Url, Prefix: a.cfg.Rabbit.Prefix}, a.cfg.Rabbit.Country)
	if err != nil {
		zap.L().Warn("rabbitmq not reachable, tracking disabled", zap.Error(err))
		return
	}
	a.tracking = trk
	a.web.Tracking = trk
	zap.L().Info("tracking enabled", zap.String("prefix", a.cfg.Rabbit.Prefix))
}

func (a *app) shutdownHooks() []common.ShutdownHook {
	return []common.ShutdownHook{
		func(ctx context.Context) error {
			if a.tracking == nil {
				return nil
			}
			return a.tracking.Close()
		},
		func(ctx context.Context) error {
			if a.cache == nil {
				return nil
			}
			return a.cache.Close()
		},
	}
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the table page and JSON api",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			defer setupLogging(cfg)()

			tbl, err := loadTable(cfg)
			if err != nil {
				return err
			}
			a := &app{cfg: cfg, web: server.NewWebServer(tbl)}
			a.connectCache(cmd.Context())
			a.connectTracking()

			timeouts := cfg.TimeoutConfig()
			client := common.NewServerWithTimeouts(&http.Server{Addr: cfg.ListenAddress, Handler: a.web.ClientHandler()}, timeouts)
			servers := []*http.Server{client}
			if cfg.DebugAddress != "" {
				servers = append(servers, common.NewServerWithTimeouts(&http.Server{Addr: cfg.DebugAddress, Handler: server.DebugHandler()}, timeouts))
			}
			common.RunServerWithShutdown(servers, "datatable", timeouts.Shutdown, timeouts.Hook, a.shutdownHooks()...)
			return nil
		},
	}
}
