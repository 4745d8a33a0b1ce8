// Package main is the worktime API server entry point.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hfappmaker/worktime/internal/api"
	"github.com/hfappmaker/worktime/internal/config"
	"github.com/hfappmaker/worktime/internal/db"
	"github.com/hfappmaker/worktime/internal/db/migrations"
	"github.com/hfappmaker/worktime/internal/dbpool"
	"github.com/hfappmaker/worktime/internal/guard"
	"github.com/hfappmaker/worktime/internal/service"
	"github.com/hfappmaker/worktime/internal/store"
	"github.com/hfappmaker/worktime/internal/ws"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("loading config")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warn("invalid log level, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value())
	if err != nil {
		log.WithError(err).Fatal("connecting to database")
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		log.WithError(err).Fatal("running migrations")
	}

	base := store.Base{Pool: pool, Log: log}
	auditStore := store.NewAuditStore(base)
	sessions := store.NewSessionStore(base)

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	publisher := service.NewAuditPublisher(auditStore, hub, log)

	registry := guard.Init(guard.Stores{
		Users:          store.NewUserStore(base),
		Clients:        store.NewClientStore(base),
		Contracts:      store.NewContractStore(base),
		WorkReports:    store.NewWorkReportStore(base),
		EmailTemplates: store.NewEmailTemplateStore(base),
		AuditLog:       auditStore,
	}, publisher, guard.FromContext, log)

	clientSvc := service.NewClientService(registry.Clients, log)
	contractSvc := service.NewContractService(registry.Contracts, log)
	reportSvc := service.NewWorkReportService(registry.WorkReports, log)
	templateSvc := service.NewEmailTemplateService(registry.EmailTemplates, registry.Contracts, registry.Clients, log)
	auditSvc := service.NewAuditService(registry.AuditLog, auditStore, log)

	retention := service.NewAuditRetention(auditSvc, cfg.AuditRetentionDays, cfg.AuditPurgeInterval, log)
	go retention.Run(ctx)

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:                 log,
		Pool:                pool,
		Hub:                 hub,
		Clients:             clientSvc,
		Contracts:           contractSvc,
		WorkReports:         reportSvc,
		EmailTemplates:      templateSvc,
		Audit:               auditSvc,
		SessionLookup:       sessions,
		CORSOrigins:         cfg.CORSOrigins,
		Version:             config.Version,
		AuditRetentionDays:  cfg.AuditRetentionDays,
		SessionCacheTTL:     cfg.SessionCacheTTL,
		SessionCacheEntries: cfg.SessionCacheEntries,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"addr": cfg.Addr(), "version": config.Version}).Info("starting server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}

	hub.Shutdown()
	cancel()

	log.Info("server stopped")
}
