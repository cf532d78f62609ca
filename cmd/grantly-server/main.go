package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"github.com/grantlyhq/grantly/internal/config"
	dbpkg "github.com/grantlyhq/grantly/internal/db"
	"github.com/grantlyhq/grantly/internal/grantly/service"
	sqlitestore "github.com/grantlyhq/grantly/internal/grantly/store/sqlite"
	"github.com/grantlyhq/grantly/internal/httpapi"
)

func main() {
	// .env is optional; env vars win either way.
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "grantly-server ", log.LstdFlags|log.LUTC)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatalf("invalid GRANTLY_TIMEZONE %q: %v", cfg.Timezone, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := dbpkg.Open(ctx, dbpkg.Config{Path: cfg.DBPath, Env: cfg.Env})
	if err != nil {
		logger.Fatalf("open db: %v", err)
	}
	defer conn.Close()

	if cfg.Env == "dev" {
		if err := dbpkg.SeedDev(ctx, conn, dbpkg.SeedDevOptions{Holidays: cfg.Holidays}); err != nil {
			logger.Fatalf("seed dev data: %v", err)
		}
	}

	writer := dbpkg.NewWriter(conn)
	defer writer.Close()

	clock := clockwork.NewRealClock()

	// Stores
	calendarStore := sqlitestore.NewCalendarStore(conn, writer)
	auditStore := sqlitestore.NewAuditStore(conn, writer)
	appStore := sqlitestore.NewApplicationStore(conn, writer)

	// Services
	gate := service.NewMutationGate(calendarStore, auditStore, clock, loc)
	appSvc := service.NewApplicationService(appStore, gate)
	eligSvc := service.NewEligibilityService(appStore)
	auditSvc := service.NewAuditQueryService(auditStore, clock)
	calSvc := service.NewCalendarService(calendarStore, loc)

	// Seed configured holidays in prod too; AddDates is idempotent.
	if err := calSvc.AddDates(ctx, cfg.Holidays); err != nil {
		logger.Fatalf("seed holidays: %v", err)
	}

	pruner := service.NewAuditPruner(auditStore, service.PrunerConfig{
		RetentionDays: cfg.AuditRetentionDays,
		IntervalHours: cfg.PruneIntervalHours,
	}, clock, logger)
	pruner.Start(ctx)
	defer pruner.Stop()

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:       logger,
		Addr:         cfg.HTTPAddr,
		Applications: appSvc,
		Eligibility:  eligSvc,
		Audit:        auditSvc,
		Calendar:     calSvc,
	})

	go func() {
		logger.Printf("listening on %s (tz=%s)", cfg.HTTPAddr, loc)
		if err := srv.Start(); err != nil {
			logger.Printf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
