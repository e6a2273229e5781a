package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warehouse/cmd"
	httpadapter "warehouse/internal/adapters/in/http"
	"warehouse/internal/adapters/out/eventbus"
	"warehouse/internal/adapters/out/kafka"
	"warehouse/internal/adapters/out/mongodb"
	"warehouse/internal/adapters/out/mongodb/cartrepo"
	pgadapter "warehouse/internal/adapters/out/postgres"
	"warehouse/internal/adapters/out/websocket"
	"warehouse/internal/auth"
	"warehouse/internal/core/ports"
	"warehouse/internal/jobs"

	"github.com/labstack/gommon/log"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.SlogLevel()}))
	logger.Info("starting warehouse service", "config", config.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := pgadapter.Open(ctx, config.DSN(), logger)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	if err := pgadapter.Migrate(gormDB); err != nil {
		log.Fatalf("migrate postgres: %v", err)
	}

	mongoClient, err := mongodb.Connect(ctx, config.MongoURI)
	if err != nil {
		log.Fatalf("%v", err)
	}
	carts := cartrepo.NewMongoCartRepository(mongoClient.Database(config.MongoDB))
	if err := carts.EnsureIndexes(ctx); err != nil {
		log.Fatalf("ensure cart indexes: %v", err)
	}

	hub := websocket.NewHub(logger, config.AllowedOrigins()...)
	go hub.Run(ctx)

	publishers := []ports.EventPublisher{hub}
	var producer *kafka.OrderChangedProducer
	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		producer, err = kafka.NewOrderChangedProducer(brokers, config.KafkaOrderChangedTopic, logger)
		if err != nil {
			log.Fatalf("%v", err)
		}
		publishers = append(publishers, producer)
	} else {
		logger.Warn("KAFKA_HOST is empty, order events are only broadcast over websocket")
	}

	app := cmd.NewCompositionRoot(gormDB, eventbus.NewFanout(publishers...), carts, logger)

	tokens, err := auth.NewTokenParser(config.JWTSecret)
	if err != nil {
		log.Fatalf("%v", err)
	}
	doc, err := httpadapter.LoadOpenAPI(ctx)
	if err != nil {
		log.Fatalf("%v", err)
	}
	server, err := httpadapter.NewServer(app.Handlers(), tokens, doc, hub, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	jobManager := jobs.NewJobManager(app.CreateReconcileDriversCommandHandler(), config.ReconcileSchedule, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("%v", err)
	}

	e := server.Echo()
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	jobManager.StopAll()
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("close kafka producer", "error", err)
		}
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Error("disconnect mongodb", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
