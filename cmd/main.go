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
	"sync"
	"syscall"
	"time"

	"github.com/facegate/facegate/internal/api"
	"github.com/facegate/facegate/internal/clients/door"
	"github.com/facegate/facegate/internal/clients/recognizer"
	"github.com/facegate/facegate/internal/repository"
	"github.com/facegate/facegate/internal/service"
	"github.com/facegate/facegate/pkg/broker"
	"github.com/facegate/facegate/pkg/config"
	"github.com/facegate/facegate/pkg/logger"
	"github.com/facegate/facegate/pkg/postgres"
	"github.com/facegate/facegate/pkg/vectorcrypt"
)

const (
	ReadTimeout       = 10 * time.Second
	WriteTimeout      = 30 * time.Second
	IdleTimeout       = 60 * time.Second
	ReadHeaderTimeout = 1 * time.Second
)

//nolint:funlen
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	l := logger.New(logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(l)

	pool, err := postgres.ConnectToPostgres(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
	panicOnErr("connect to postgres", err)

	defer pool.Close()

	err = postgres.UpMigrations(cfg.PostgresDSN)
	panicOnErr("up migrations", err)

	cipher, err := vectorcrypt.NewFromBase64(cfg.VectorKey)
	panicOnErr("load vector encryption key", err)

	rec, err := recognizer.New(cfg.Matcher.ModelsDir)
	panicOnErr("load face recognizer", err)

	defer rec.Close()

	templateRepo := repository.NewTemplateRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	areaRepo := repository.NewAreaRepository(pool)
	accessRepo := repository.NewAccessRepository(pool)

	doorClient := door.NewClient(cfg)

	producer := broker.NewProducer(l, cfg.KafkaBrokers, cfg.KafkaSecurityTopic)
	defer producer.Close()

	s := service.NewService(cfg, templateRepo, employeeRepo, areaRepo, accessRepo, cipher, rec, doorClient, producer)

	h := api.NewHandler(s)

	mw, err := api.NewMiddleware(cfg.JWTPublicKey)
	panicOnErr("init middleware", err)

	router := api.NewRouter(h, mw)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		l.Info("http server started", "port", cfg.HTTPPort)

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}

		l.Debug("http server stopped")
	}()

	wg.Add(1)

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(cfg.TemplateAuditInterval)
		defer ticker.Stop()

		l := l.With("job", "template_audit")
		for {
			l.Debug("job started")

			anomalies, err := s.AuditTemplates(ctx)
			if err != nil {
				l.Error(fmt.Sprintf("job failed: %s", err))
			} else {
				l.Debug("job finished", "anomalies", anomalies)
			}

			select {
			case <-ctx.Done():
				l.Debug("job stopped by ctx")
				return
			case <-ticker.C:
			}
		}
	}()

	waitSignal(l, cancel, server)
	wg.Wait()
}

func waitSignal(l *slog.Logger, cancel context.CancelFunc, server *http.Server) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	sig := <-ch

	l.Info("got OS signal", "signal", sig.String())

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		l.Error("server shutdown", "error", err)
	}
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
