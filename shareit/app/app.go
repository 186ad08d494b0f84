package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Astemirdum/shareit-service/pkg/kafka"
	"github.com/Astemirdum/shareit-service/pkg/logger"
	"github.com/Astemirdum/shareit-service/pkg/postgres"
	"github.com/Astemirdum/shareit-service/shareit/config"
	"github.com/Astemirdum/shareit-service/shareit/internal/events"
	"github.com/Astemirdum/shareit-service/shareit/internal/handler"
	"github.com/Astemirdum/shareit-service/shareit/internal/repository"
	"github.com/Astemirdum/shareit-service/shareit/internal/server"
	"github.com/Astemirdum/shareit-service/shareit/internal/service"
	"github.com/Astemirdum/shareit-service/shareit/migrations"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "shareit")
	defer log.Sync() //nolint:errcheck

	var (
		repo    repository.Repository
		closers []func() error
	)
	switch cfg.Storage {
	case config.StorageMemory:
		repo = repository.NewMemory()
		log.Warn("in-memory storage, data is lost on restart")
	default:
		db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
		if err != nil {
			return fmt.Errorf("db init %v", err)
		}
		closers = append(closers, db.Close)
		pgRepo, err := repository.NewRepository(db, log)
		if err != nil {
			return fmt.Errorf("repo init %v", err)
		}
		repo = pgRepo
	}

	opts := make([]service.Option, 0, 1)
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer %v", err)
		}
		pub := events.NewPublisher(producer, cfg.Kafka.Breaker, log)
		closers = append(closers, pub.Close)
		opts = append(opts, service.WithNotifier(pub))
	}

	matcher := service.NewRequestMatcher(repo, log, opts...)
	h := handler.New(
		service.NewUserService(repo, log),
		service.NewItemService(repo, matcher, log, opts...),
		service.NewBookingService(repo, log, opts...),
		matcher,
		log,
	)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Error("close", zap.Error(err))
		}
	}
	log.Info("Graceful shutdown finished")
	return nil
}
