package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adxyz/yieldplan/pkg/api"
	"github.com/adxyz/yieldplan/pkg/archive"
	"github.com/adxyz/yieldplan/pkg/config"
	"github.com/adxyz/yieldplan/pkg/engine"
	"github.com/adxyz/yieldplan/pkg/log"
	"github.com/adxyz/yieldplan/pkg/metric"
)

var (
	cfgFile = flag.String("config", "", "Path to yaml config file")
	addr    = flag.String("addr", "", "Listen address override (e.g. :8080)")
	env     = flag.String("env", "", "Environment override (development/production)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}
	if *env != "" {
		cfg.Environment = *env
	}

	logger := log.NewWithLevel(cfg.LogLevel)
	defer logger.Sync()

	metrics := metric.NewMetrics()

	handler := &api.Handler{
		Engine:  engine.New(logger),
		Archive: archive.New(cfg.ArchiveCapacity),
		Metrics: metrics,
		Log:     logger,
	}

	router := api.NewRouter(handler, cfg.AllowedOrigins, cfg.Production())

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", log.Error(err))
		}
	}()

	logger.Info("🚀 yieldplan server started",
		log.String("addr", cfg.ListenAddr),
		log.String("env", cfg.Environment),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", log.Error(err))
	}

	logger.Info("server exiting")
}
