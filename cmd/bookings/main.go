package main

import (
	"roomly/internal/bookings/events"
	"roomly/internal/bookings/handler"
	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/service"
	"roomly/internal/bookings/validator"
	"roomly/internal/directory"
	"roomly/pkg/app"
	"roomly/pkg/config"
	"roomly/pkg/kafka"
	kafka_config "roomly/pkg/kafka/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	bookingService := initServices(cfg, publisher)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		handler.NewBookingHandler(bookingService, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.Publisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewRoomLockRepository(cfg)
	lookup := directory.NewMongoEntityLookup(cfg)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		lookup,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Booking events disabled")
		return events.NoopPublisher{}
	}

	kafkaCfg := kafka_config.Load()

	created, err := kafka.NewProducer(kafkaCfg, events.TopicBookingCreated)
	if err != nil {
		cfg.Log.Fatal("Failed to create producer", "topic", events.TopicBookingCreated, "error", err)
	}
	updated, err := kafka.NewProducer(kafkaCfg, events.TopicBookingUpdated)
	if err != nil {
		cfg.Log.Fatal("Failed to create producer", "topic", events.TopicBookingUpdated, "error", err)
	}
	cancelled, err := kafka.NewProducer(kafkaCfg, events.TopicBookingCancelled)
	if err != nil {
		cfg.Log.Fatal("Failed to create producer", "topic", events.TopicBookingCancelled, "error", err)
	}

	cfg.Log.Info("Booking event publisher initialized", "brokers", kafkaCfg.Brokers)
	return events.NewKafkaPublisher(created, updated, cancelled, cfg.Log)
}
