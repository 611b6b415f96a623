package main

import (
	"fmt"
	"log/slog"
	"os"

	"rateshop/cmd"
	httpin "rateshop/internal/adapters/in/http"
	"rateshop/internal/adapters/out/postgres/queuerepo"
	"rateshop/internal/core/application/usecases/commands"
	"rateshop/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	fetchHandler, err := app.CreateFetchOrdersCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create fetch handler: %v", err)
	}
	drainHandler, err := app.CreateDrainQueueCommandHandler()
	if err != nil {
		log.Fatalf("Failed to create drain handler: %v", err)
	}

	jobManager := jobs.NewJobManager(fetchHandler, drainHandler, jobs.Schedules{
		BatchFetch: configs.BatchFetchSchedule,
		QueueDrain: configs.QueueDrainSchedule,
	}, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(fetchHandler, drainHandler, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		ShipStationBaseURL:   goDotEnvVariable("SHIPSTATION_BASE_URL"),
		ShipStationAPIKey:    goDotEnvVariable("SHIPSTATION_API_KEY"),
		ShipStationAPISecret: goDotEnvVariable("SHIPSTATION_API_SECRET"),
		UPSBaseURL:           goDotEnvVariable("UPS_BASE_URL"),
		UPSClientID:          goDotEnvVariable("UPS_CLIENT_ID"),
		UPSClientSecret:      goDotEnvVariable("UPS_CLIENT_SECRET"),
		BatchFetchSchedule:   goDotEnvVariable("BATCH_FETCH_SCHEDULE"),
		QueueDrainSchedule:   goDotEnvVariable("QUEUE_DRAIN_SCHEDULE"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&queuerepo.QueuedOrderDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(
	fetchHandler commands.FetchOrdersCommandHandler,
	drainHandler commands.DrainQueueCommandHandler,
	port string,
) {
	e := echo.New()
	httpin.NewServer(fetchHandler, drainHandler).RegisterRoutes(e)
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
