package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"workflow/cmd"
	httpadapter "workflow/internal/adapters/in/http"
	"workflow/internal/adapters/out/ollama"
	"workflow/internal/adapters/out/postgres/convrepo"
	"workflow/internal/adapters/out/postgres/orderrepo"
	"workflow/internal/jobs"
	"workflow/internal/seeding"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultStaleClaimThresholdMins = 30

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := openDatabase(configs)

	chatClient, err := ollama.NewClient(ollama.Config{
		Host:   configs.OllamaHost,
		APIKey: configs.OllamaAPIKey,
		Model:  configs.OllamaModel,
	})
	if err != nil {
		log.Fatalf("Failed to create chat client: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db, chatClient)

	if configs.SeedDemoData {
		seedDemoData(&app, logger)
	}

	jobManager := jobs.NewJobManager(
		app.CreateGetWorkQueueQueryHandler(),
		app.CreateGetWipSummaryQueryHandler(),
		time.Duration(configs.StaleClaimThresholdMins)*time.Minute,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Infof("No .env file found, relying on process environment")
	}

	config := cmd.Config{
		HTTPPort:                envOrDefault("HTTP_PORT", "8080"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  os.Getenv("DB_PORT"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               envOrDefault("DB_SSLMODE", "disable"),
		AuthUsers:               os.Getenv("AUTH_USERS"),
		SeedDemoData:            os.Getenv("SEED_DEMO_DATA") == "true",
		StaleClaimThresholdMins: envIntOrDefault("STALE_CLAIM_THRESHOLD_MINUTES", defaultStaleClaimThresholdMins),
		OllamaHost:              envOrDefault("OLLAMA_HOST", "http://localhost:11434"),
		OllamaAPIKey:            os.Getenv("OLLAMA_API_KEY"),
		OllamaModel:             envOrDefault("OLLAMA_MODEL", "llama3"),
	}
	return config
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s value %q: %v", key, raw, err)
	}
	return value
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.StageStatusDTO{},
		&convrepo.ConversationDTO{},
		&convrepo.MessageDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

func seedDemoData(app *cmd.CompositionRoot, logger *slog.Logger) {
	seeder := seeding.NewSeeder(seeding.Handlers{
		CreateOrder:   app.CreateCreateOrderCommandHandler(),
		ClaimStage:    app.CreateClaimStageCommandHandler(),
		CompleteStage: app.CreateCompleteStageCommandHandler(),
		FlagException: app.CreateFlagExceptionCommandHandler(),
		ApproveSkip:   app.CreateApproveSkipCommandHandler(),
		RequestRework: app.CreateRequestReworkCommandHandler(),
	}, app.OrderRepository(), logger)

	if err := seeder.Seed(context.Background()); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	users, err := httpadapter.ParseUsers(configs.AuthUsers)
	if err != nil {
		log.Fatalf("Invalid AUTH_USERS: %v", err)
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        app.CreateCreateOrderCommandHandler(),
		ClaimStage:         app.CreateClaimStageCommandHandler(),
		CompleteStage:      app.CreateCompleteStageCommandHandler(),
		FlagException:      app.CreateFlagExceptionCommandHandler(),
		ApproveSkip:        app.CreateApproveSkipCommandHandler(),
		RequestRework:      app.CreateRequestReworkCommandHandler(),
		UpdatePriority:     app.CreateUpdatePriorityCommandHandler(),
		StartConversation:  app.CreateStartConversationCommandHandler(),
		SendMessage:        app.CreateSendMessageCommandHandler(),
		DeleteConversation: app.CreateDeleteConversationCommandHandler(),
		GetOrder:           app.CreateGetOrderQueryHandler(),
		GetAllOrders:       app.CreateGetAllOrdersQueryHandler(),
		GetWorkQueue:       app.CreateGetWorkQueueQueryHandler(),
		GetWipSummary:      app.CreateGetWipSummaryQueryHandler(),
		GetConversations:   app.CreateGetConversationsQueryHandler(),
		GetConversation:    app.CreateGetConversationQueryHandler(),
	})

	e := echo.New()
	server.RegisterRoutes(e, httpadapter.NewAuthenticator(users))

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
