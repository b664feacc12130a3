package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jaekimandy/devops-demo/config"
	"github.com/jaekimandy/devops-demo/domain"
	"github.com/jaekimandy/devops-demo/infrastructure/cache"
	"github.com/jaekimandy/devops-demo/infrastructure/monitoring"
	"github.com/jaekimandy/devops-demo/infrastructure/storage/inmemory"
	"github.com/jaekimandy/devops-demo/internal/adapters/tracing"
	"github.com/jaekimandy/devops-demo/internal/application/heartbeat"
	"github.com/jaekimandy/devops-demo/internal/application/profiling"
	"github.com/jaekimandy/devops-demo/internal/application/report"
	"github.com/jaekimandy/devops-demo/internal/logger"
	"github.com/jaekimandy/devops-demo/internal/ports/http_api"
	"github.com/jaekimandy/devops-demo/internal/ports/http_middleware"
	"github.com/jaekimandy/devops-demo/pkg/version"
)

const serviceName = "devops-demo"

func main() {
	// Load never fails: malformed values fall back to defaults and
	// Validate catches what is left. The logger is built before
	// validation so the failure itself is logged structured.
	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.Monitoring.LogLevel, cfg.Monitoring.StructuredLogging)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	store := inmemory.NewStore()
	reporter := report.NewReporter(store, version.Version, cfg.Environment)

	requestMetrics, err := monitoring.NewRequestMetrics()
	if err != nil {
		log.Error("failed to build metrics collectors", "error", err)
		os.Exit(1)
	}

	infoCache := cache.NewMemo(cfg.Cache.DefaultTimeout, func() []byte {
		payload, _ := json.Marshal(reporter.AppInfo())
		return payload
	})

	var slowSink domain.SlowRequestSink
	if cfg.Monitoring.ProfilingEnabled {
		slowSink = profiling.NewTrigger(log, profiling.Options{})
	}

	server := http_api.NewServer(http_api.Dependencies{
		Reporter:   reporter,
		InfoCache:  infoCache,
		Exposition: requestMetrics.Handler(),
		Logger:     log,
	})

	handler := http_middleware.RequestID(
		http_middleware.Instrument(store, requestMetrics, slowSink, log)(
			http_middleware.SecurityHeaders(
				http_middleware.Recover(log)(server.Router()),
			),
		),
	)

	if cfg.Monitoring.TracingEnabled {
		tp, err := tracing.Setup(tracing.NewLogExporter(log), serviceName, version.Version)
		if err != nil {
			log.Error("failed to set up tracing", "error", err)
			os.Exit(1)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(flushCtx); err != nil {
				log.Error("failed to shut down tracer provider", "error", err)
			}
		}()
		handler = tracing.Wrap(handler, serviceName)
	}

	stopHeartbeat := heartbeat.Start(store, log, cfg.Monitoring.HealthCheckInterval)
	defer stopHeartbeat()

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.App.Timeout,
		WriteTimeout: cfg.App.Timeout,
		IdleTimeout:  cfg.App.Timeout,
	}

	go func() {
		log.Info("server listening",
			"addr", addr,
			"version", version.Version,
			"config", cfg.Redacted(),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen and serve failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown did not complete cleanly", "error", err)
	}
	log.Info("server stopped")
}
