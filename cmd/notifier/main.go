package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"roomly/internal/bookings/events"
	"roomly/internal/directory"
	"roomly/internal/notifier"
	"roomly/pkg/config"
	"roomly/pkg/kafka"
	kafka_config "roomly/pkg/kafka/config"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg := kafka_config.Load()

	topics := []string{
		events.TopicBookingCreated,
		events.TopicBookingUpdated,
		events.TopicBookingCancelled,
	}

	consumers := make([]*kafka.Consumer, 0, len(topics))
	for _, topic := range topics {
		consumer, err := kafka.NewConsumer(kafkaCfg, topic, cfg.Log)
		if err != nil {
			cfg.Log.Fatal("Failed to create consumer", "topic", topic, "error", err)
		}
		consumers = append(consumers, consumer)
	}

	worker := notifier.NewWorker(consumers, directory.NewMongoEntityLookup(cfg), cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Notifier started", "topics", topics, "brokers", kafkaCfg.Brokers)

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Notifier stopped with error", "error", err)
	}

	if err := worker.Close(); err != nil {
		cfg.Log.Error("Failed to close consumers", "error", err)
	}
	cfg.Log.Info("Notifier stopped")
}
