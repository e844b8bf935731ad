package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/medistock/internal/events"
	"github.com/Skotchmaster/medistock/internal/httpserver"
	"github.com/Skotchmaster/medistock/internal/index"
	"github.com/Skotchmaster/medistock/internal/repo"
	"github.com/Skotchmaster/medistock/internal/service"
	"github.com/Skotchmaster/medistock/internal/sweeper"
	"github.com/Skotchmaster/medistock/pkg/authclient"
	"github.com/Skotchmaster/medistock/pkg/config"
	"github.com/Skotchmaster/medistock/pkg/db"
	"github.com/Skotchmaster/medistock/pkg/logging"
	loggingmw "github.com/Skotchmaster/medistock/pkg/middleware/logging"
)

func main() {
	config.LoadEnvFile(".env")
	cfg := config.LoadService()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db init error: %v", err)
	}
	r := &repo.GormRepo{DB: gdb}
	if err := r.AutoMigrate(initCtx); err != nil {
		cancel()
		log.Fatalf("db migrate error: %v", err)
	}

	var publisher events.Publisher = events.Nop{}
	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
		publisher = producer
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	medicines := &service.MedicineService{Repo: r}
	if cfg.ESURL != "" {
		es, err := index.NewClient(initCtx, index.Config{URL: cfg.ESURL, User: cfg.ESUser, Password: cfg.ESPassword})
		if err != nil {
			logger.Warn("es_disabled", "error", err)
		} else {
			medicines.Index = index.NewMedicineIndex(es, cfg.ESIndex)
		}
	}
	cancel()

	orders := &service.OrderService{Repo: r, Events: publisher, Index: medicines.Index}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.Secure())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(middleware.CORS())
	httpserver.Configure(e)

	deps := &httpserver.Deps{
		StoreHandler:    &httpserver.StoreHTTP{Svc: &service.StoreService{Repo: r, DefaultRadiusKm: cfg.DefaultRadiusKm}},
		MedicineHandler: &httpserver.MedicineHTTP{Svc: medicines},
		OrderHandler:    &httpserver.OrderHTTP{Svc: orders},
		VaultHandler:    &httpserver.VaultHTTP{Svc: &service.VaultService{Repo: r}},
		BillHandler:     &httpserver.BillHTTP{Svc: &service.BillService{Repo: r}},
		ReviewHandler:   &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: r}},
		JWTSecret:       cfg.JWTAccessSecret,
		DB:              r,
	}
	if cfg.AuthHTTPURL != "" {
		deps.AuthClient = authclient.NewClient(cfg.AuthHTTPURL)
	}
	httpserver.Register(e, deps)

	runCtx, stopRun := context.WithCancel(context.Background())
	sweepDone := make(chan struct{})
	if cfg.OrderExpiryPolicy == config.ExpiryPolicyAutoCancel {
		sw := &sweeper.Sweeper{Orders: orders, Interval: cfg.OrderSweepInterval, Logger: logger}
		go func() {
			defer close(sweepDone)
			sw.Run(runCtx)
		}()
	} else {
		close(sweepDone)
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		logger.Info("server_starting", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("echo start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting_down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}

	stopRun()
	<-sweepDone

	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka_close_error", "error", err)
		}
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}

	logger.Info("shutdown_complete")
}
