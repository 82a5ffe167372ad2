package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"smartassist/internal/api"
	"smartassist/internal/api/handlers"
	"smartassist/internal/repository"
	"smartassist/internal/service"
	"smartassist/pkg/config"
	"smartassist/pkg/email"
	"smartassist/pkg/logger"
	"smartassist/pkg/postgres"

	"go.uber.org/zap"
)

// @title CSIS SmartAssist API
// @version 1.0
// @description University department chatbot: document Q&A, resource bookings, announcements
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting SmartAssist service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to ensure database schema", zap.Error(err))
	}

	// Initialize repositories
	chunkRepo := repository.NewChunkRepository(db, appLogger)
	bookingRepo := repository.NewBookingRepository(db, appLogger)
	annRepo := repository.NewAnnouncementRepository(db, appLogger)

	// Initialize model clients. One embedder instance serves both ingestion
	// and queries so index and query share one embedding space.
	gateway := service.NewOllamaGateway(&cfg.Ollama, appLogger)
	embedder := service.NewOllamaEmbedder(&cfg.Ollama, appLogger)

	// Initialize services
	ingestService := service.NewIngestService(chunkRepo, embedder, &cfg.RAG, appLogger)
	retriever := service.NewRetrieverService(chunkRepo, embedder, &cfg.RAG, appLogger)

	intentService := service.NewIntentService(gateway, appLogger)
	extractorService := service.NewExtractorService(gateway, appLogger)
	answerService := service.NewAnswerService(retriever, gateway, cfg.RAG.TopK, appLogger)
	chatService := service.NewChatService(intentService, extractorService, answerService, appLogger)

	mailer := email.NewSender(&cfg.SMTP, appLogger)
	bookingService := service.NewBookingService(bookingRepo, mailer, service.NoopCalendar{},
		cfg.Server.BaseURL, cfg.SMTP.AdminEmail, appLogger)

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(chatService, appLogger)
	docHandler := handlers.NewDocumentHandler(ingestService, cfg.RAG.UploadDir, appLogger)
	bookingHandler := handlers.NewBookingHandler(bookingService, appLogger)
	annHandler := handlers.NewAnnouncementHandler(annRepo, appLogger)

	// Setup router
	app := api.SetupRouter(chatHandler, docHandler, bookingHandler, annHandler)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
