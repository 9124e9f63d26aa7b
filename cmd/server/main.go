package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"biblio/internal/audit"
	catalogservice "biblio/internal/catalog/service"
	catalogstore "biblio/internal/catalog/store"
	circmetrics "biblio/internal/circulation/metrics"
	circservice "biblio/internal/circulation/service"
	circstore "biblio/internal/circulation/store"
	"biblio/internal/fees"
	"biblio/internal/payments"
	"biblio/internal/payments/translog"
	"biblio/internal/platform/config"
	"biblio/internal/platform/httpserver"
	"biblio/internal/platform/logger"
	platformredis "biblio/internal/platform/redis"
	"biblio/internal/report"
	"biblio/internal/storage"
	httptransport "biblio/internal/transport/http"
	"biblio/pkg/platform/circuit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx := context.Background()

	// Persistence. Without DATABASE_URL everything runs from memory, which is
	// how local development works.
	var (
		bookStore interface {
			catalogservice.BookStore
			circservice.BookCatalog
			payments.BookDirectory
		}
		loanStore interface {
			circservice.LoanStore
			fees.LoanHistory
			report.LoanStore
		}
	)
	if cfg.Database.URL != "" {
		if err := storage.Migrate(cfg.Database.URL, log); err != nil {
			log.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		db, err := storage.Open(ctx, cfg.Database.URL)
		if err != nil {
			log.Error("postgres unavailable", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		bookStore = catalogstore.NewPostgres(db)
		loanStore = circstore.NewPostgres(db)
	} else {
		memCatalog := catalogstore.NewInMemory()
		bookStore = memCatalog
		loanStore = circstore.NewInMemory(memCatalog)
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	// Transaction log: redis when configured, memory otherwise.
	var txnLog translog.Log = translog.NewInMemory()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		txnLog = translog.NewRedis(redisClient.Client)
	}

	auditPub := audit.NewPublisher(audit.NewInMemoryStore(),
		audit.WithAsyncBuffer(cfg.Circulation.AuditBuffer),
		audit.WithLogger(log),
	)
	defer auditPub.Close()

	catalogSvc, err := catalogservice.New(bookStore, catalogservice.WithLogger(log))
	if err != nil {
		log.Error("catalog service init failed", "error", err)
		os.Exit(1)
	}
	loanSvc, err := circservice.New(loanStore, bookStore,
		circservice.WithLogger(log),
		circservice.WithMetrics(circmetrics.New()),
		circservice.WithAuditPublisher(auditPub),
		circservice.WithLoanPeriod(time.Duration(cfg.Circulation.LoanPeriodDays)*24*time.Hour),
		circservice.WithBorrowLimit(cfg.Circulation.BorrowLimit),
	)
	if err != nil {
		log.Error("circulation service init failed", "error", err)
		os.Exit(1)
	}
	resolver, err := fees.NewResolver(loanStore, fees.WithLogger(log))
	if err != nil {
		log.Error("fee resolver init failed", "error", err)
		os.Exit(1)
	}
	reporter, err := report.New(loanStore, report.WithLogger(log))
	if err != nil {
		log.Error("report service init failed", "error", err)
		os.Exit(1)
	}

	gateway := payments.NewSimulatedGateway(txnLog,
		payments.WithTransactionLimit(cfg.Payments.TransactionLimit),
		payments.WithGatewayLogger(log),
	)
	paymentSvc, err := payments.New(resolver, bookStore, gateway,
		payments.WithLogger(log),
		payments.WithMetrics(payments.NewMetrics()),
		payments.WithAuditPublisher(auditPub),
		payments.WithBreaker(circuit.New("payment-gateway")),
	)
	if err != nil {
		log.Error("payment service init failed", "error", err)
		os.Exit(1)
	}

	handler := httptransport.NewHandler(catalogSvc, loanSvc, reporter, resolver, paymentSvc, gateway, log)
	srv := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(handler))

	log.Info("starting biblio", "addr", cfg.Server.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
