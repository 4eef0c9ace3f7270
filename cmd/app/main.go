package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"marketplace/cmd"
	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/notify"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/restaurantrepo"
	"marketplace/internal/adapters/out/postgres/riderrepo"
	"marketplace/internal/core/ports"
	"marketplace/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultStalePendingThreshold = 10 * time.Minute

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	dsn := postgresDsn(configs)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&riderrepo.RiderDTO{},
		&restaurantrepo.RestaurantDTO{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	if err := postgres.EnsureOrderChangeTrigger(gormDB); err != nil {
		log.Fatalf("Error installing order change trigger: %v", err)
	}

	dispatcher := buildDispatcher(configs, logger)

	app := cmd.NewCompositionRoot(gormDB, dispatcher, logger)

	jobManager := jobs.NewJobManager(
		app.CreateRemindStalePendingCommandHandler(),
		staleThreshold(configs, logger),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	relay := buildOrderChangeRelay(dsn, logger)
	if relay != nil {
		defer relay.Close()
	}

	startWebServer(app, configs, relay)
}

func getConfigs() cmd.Config {
	// A missing .env file is fine when the variables come from the real
	// environment, as they do in containers.
	_ = godotenv.Load(".env")

	return cmd.Config{
		HTTPPort:              os.Getenv("HTTP_PORT"),
		BaseURL:               os.Getenv("BASE_URL"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             os.Getenv("DB_SSLMODE"),
		AmqpURL:               os.Getenv("AMQP_URL"),
		StalePendingThreshold: os.Getenv("STALE_PENDING_THRESHOLD"),
	}
}

func postgresDsn(configs cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)
}

// buildDispatcher prefers the AMQP dispatcher and falls back to plain log
// output when no broker is configured or reachable. The marketplace stays
// usable either way.
func buildDispatcher(configs cmd.Config, logger *slog.Logger) ports.NotificationDispatcher {
	if configs.AmqpURL == "" {
		logger.Info("AMQP_URL not set, notifications go to the log")
		return notify.NewLogDispatcher(logger)
	}

	conn, err := amqp.Dial(configs.AmqpURL)
	if err != nil {
		logger.Warn("AMQP broker unreachable, notifications go to the log", "error", err)
		return notify.NewLogDispatcher(logger)
	}

	ch, err := conn.Channel()
	if err != nil {
		logger.Warn("AMQP channel failed, notifications go to the log", "error", err)
		return notify.NewLogDispatcher(logger)
	}

	dispatcher, err := notify.NewAmqpDispatcher(ch)
	if err != nil {
		logger.Warn("AMQP exchange declare failed, notifications go to the log", "error", err)
		return notify.NewLogDispatcher(logger)
	}

	return dispatcher
}

func buildOrderChangeRelay(dsn string, logger *slog.Logger) *httpin.OrderChangeRelay {
	listener, err := postgres.NewOrderChangeListener(dsn, logger)
	if err != nil {
		logger.Warn("order change feed unavailable, live updates disabled", "error", err)
		return nil
	}

	return httpin.NewOrderChangeRelay(listener, logger)
}

func staleThreshold(configs cmd.Config, logger *slog.Logger) time.Duration {
	if configs.StalePendingThreshold == "" {
		return defaultStalePendingThreshold
	}

	threshold, err := time.ParseDuration(configs.StalePendingThreshold)
	if err != nil || threshold <= 0 {
		logger.Warn("STALE_PENDING_THRESHOLD invalid, using default",
			"value", configs.StalePendingThreshold, "default", defaultStalePendingThreshold)
		return defaultStalePendingThreshold
	}

	return threshold
}

func startWebServer(app cmd.CompositionRoot, configs cmd.Config, relay *httpin.OrderChangeRelay) {
	server := httpin.NewServer(
		configs.BaseURL,
		app.CreateCheckoutCommandHandler(),
		app.CreateConfirmOrderCommandHandler(),
		app.CreateMarkOrderReadyCommandHandler(),
		app.CreateDeclineOrderCommandHandler(),
		app.CreateClaimOrderCommandHandler(),
		app.CreateCompleteDeliveryCommandHandler(),
		app.CreateGetFeeQuoteQueryHandler(),
		app.CreateGetOrderTrackingQueryHandler(),
		app.CreateGetAvailableDeliveriesQueryHandler(),
		app.CreateGetRestaurantOrdersQueryHandler(),
		app.CreateGetCustomerRewardsQueryHandler(),
		app.CreateGetRiderDeliveriesQueryHandler(),
		relay,
	)

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
