// Package app — композиция зависимостей и жизненный цикл сервиса.
package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/zhivlux/storefront/config"
	"github.com/zhivlux/storefront/internal/cache/upstash"
	"github.com/zhivlux/storefront/internal/gateway/midtrans"
	"github.com/zhivlux/storefront/internal/ports"
	"github.com/zhivlux/storefront/internal/repo/xata"
	transport "github.com/zhivlux/storefront/internal/transport/http"
	"github.com/zhivlux/storefront/internal/usecase"
	"github.com/zhivlux/storefront/pkg/logger"
	"github.com/zhivlux/storefront/pkg/metrics"
	"github.com/zhivlux/storefront/pkg/telemetry"
	"github.com/zhivlux/storefront/pkg/validate"
)

// App — собранный сервис: http-сервер и функции корректного завершения.
type App struct {
	cfg    config.Config
	log    ports.Logger
	server *http.Server

	cleanups []func() error
}

// New — сборка всех слоёв: логгер, метрики, трейсинг, кэш, репозитории,
// шлюз, юзкейсы, роутер.
func New(cfg config.Config) (*App, error) {
	zapLog, logCleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: zapLog}
	a.cleanups = append(a.cleanups, logCleanup)

	metrics.MustRegister()
	applyGinMode(cfg.HTTP.GinMode)

	ctx := context.Background()
	if cfg.Tracing.Enabled {
		shutdown, err := telemetry.SetupTracing(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			return nil, err
		}
		a.cleanups = append(a.cleanups, func() error { return shutdown(context.Background()) })
	}

	cache := upstash.New(cfg.Cache, zapLog)

	if !cfg.Backend.IsConfigured() {
		zapLog.Warnf(ctx, "app: backend not configured, catalog reads will fall back to placeholders")
	}
	backend := xata.NewClient(cfg.Backend)
	games := xata.NewGameRepository(backend, zapLog)
	banners := xata.NewBannerRepository(backend, zapLog)
	orders := xata.NewOrderRepository(backend, zapLog)

	gateway := midtrans.New(cfg.Midtrans, zapLog)

	loader := usecase.NewCatalogLoader(cache, games, banners, cfg.Loader, cfg.Cache.SchemaVersion, zapLog)
	gameSvc := usecase.NewGameService(games, zapLog)
	paymentSvc := usecase.NewPaymentService(orders, gateway, validate.NewPaymentValidator(), cfg.Midtrans, zapLog)

	handler := transport.NewHandler(loader, gameSvc, paymentSvc, zapLog)
	router := transport.NewRouter(handler, zapLog, transport.RouterOptions{
		TracingEnabled: cfg.Tracing.Enabled,
		ServiceName:    cfg.Tracing.ServiceName,
	})

	a.server = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}
	return a, nil
}

// Run — запуск сервера до SIGINT/SIGTERM, затем graceful shutdown.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof(ctx, "app: listening on %s", a.cfg.HTTP.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Infof(context.Background(), "app: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.GracefulTimeout)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

// Cleanup — закрытие ресурсов в обратном порядке создания.
func (a *App) Cleanup() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		if err := a.cleanups[i](); err != nil {
			a.log.Warnf(context.Background(), "app: cleanup: %v", err)
		}
	}
}

func applyGinMode(mode string) {
	switch mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		gin.SetMode(mode)
	default:
		gin.SetMode(gin.DebugMode)
	}
}
