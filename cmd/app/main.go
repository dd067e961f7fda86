package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"marketplace/cmd"
	marketplacehttp "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/payment"
	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/couponrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := createDatabaseIfNotExists(configs); err != nil {
		log.Fatalf("Failed to ensure database exists: %v", err)
	}

	gormDB, err := openGorm(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	deliveryFee, err := kernel.NewMoneyFromString(configs.DeliveryFee)
	if err != nil {
		log.Fatalf("Invalid DELIVERY_FEE: %v", err)
	}

	publisher, err := kafka.NewOrderChangedPublisher(configs.KafkaHost, configs.KafkaOrderChangedTopic)
	if err != nil {
		log.Fatalf("Failed to create Kafka publisher: %v", err)
	}
	defer publisher.Close()

	app := cmd.NewCompositionRoot(
		configs,
		gormDB,
		services.NewPricingService(deliveryFee),
		payment.NewHTTPGateway(configs.PaymentGatewayURL),
		publisher,
		logger,
	)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		KafkaHost:              goDotEnvVariable("KAFKA_HOST"),
		KafkaOrderChangedTopic: goDotEnvVariable("KAFKA_ORDER_CHANGED_TOPIC"),
		PaymentGatewayURL:      goDotEnvVariable("PAYMENT_GATEWAY_URL"),
		DeliveryFee:            goDotEnvVariable("DELIVERY_FEE"),
		CartTTLHours:           intEnvVariable("CART_TTL_HOURS"),
		CourierMultiDelivery:   goDotEnvVariable("COURIER_MULTI_DELIVERY") == "true",
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func intEnvVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer", key)
	}
	return value
}

// createDatabaseIfNotExists connects to the maintenance database and creates
// the application database when it is missing.
func createDatabaseIfNotExists(configs cmd.Config) error {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBSslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", configs.DBName).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = db.Exec(fmt.Sprintf("CREATE DATABASE %q", configs.DBName))
	return err
}

func openGorm(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = gormDB.AutoMigrate(
		&cartrepo.CartDTO{},
		&cartrepo.CartItemDTO{},
		&couponrepo.CouponDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.HistoryEntryDTO{},
	)
	if err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := marketplacehttp.NewServer(
		app.CreateAddCartItemCommandHandler(),
		app.CreateApplyCouponCommandHandler(),
		app.CreateCheckoutCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreatePendingForBusinessQueryHandler(),
		app.CreateActiveForCourierQueryHandler(),
		app.CreateCustomerHistoryQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
