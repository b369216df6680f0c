package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	openai "github.com/sashabaranov/go-openai"

	"whatsapp-agent/internal/config"
	"whatsapp-agent/internal/domain/interfaces/repository"
	Iservices "whatsapp-agent/internal/domain/interfaces/services"
	"whatsapp-agent/internal/infra/handlers"
	"whatsapp-agent/internal/infra/logger"
	"whatsapp-agent/internal/infra/provider"
	infrarepo "whatsapp-agent/internal/infra/repository"
	"whatsapp-agent/internal/infra/routes"
	"whatsapp-agent/internal/infra/services"
	"whatsapp-agent/internal/middleware"
	client "whatsapp-agent/internal/pkg"
)

func main() {
	config.LoadEnv()

	ctx := context.Background()
	log := logger.NewLogger(ctx, true)

	var history repository.HistoryRepository
	switch backend := config.GetEnvDefault("STORAGE_BACKEND", "mongo"); backend {
	case "mongo":
		mongoClient := client.MongoClient()
		history = infrarepo.NewMongoHistoryRepository(mongoClient.Database("Conversations"))
	case "redis":
		history = infrarepo.NewRedisHistoryRepository(client.RedisClient())
	case "memory":
		history = infrarepo.NewMemoryHistoryRepository()
	default:
		log.Fatal(fmt.Sprintf("Unknown STORAGE_BACKEND %q, expected mongo, redis or memory", backend))
	}

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	// External calls carry a timeout so a stalled collaborator cannot pin an
	// actor forever.
	httpClient := &http.Client{Timeout: 30 * time.Second}

	openaiConfig := openai.DefaultConfig(config.GetEnv("OPENAI_API_KEY"))
	openaiConfig.HTTPClient = httpClient
	generator := services.NewOpenAIGenerator(
		log,
		openai.NewClientWithConfig(openaiConfig),
		config.GetEnvDefault("OPENAI_MODEL", openai.GPT4oMini),
		config.GetEnvDefault("SYSTEM_PROMPT", services.DefaultSystemPrompt),
	)

	whatsAppProvider := provider.NewGraphWhatsAppProvider(
		log,
		httpClient,
		config.GetEnvDefault("GRAPH_API_URL", "https://graph.facebook.com"),
		config.GetEnvDefault("GRAPH_API_VERSION", "v21.0"),
		config.GetEnv("WHATSAPP_PHONE_NUMBER_ID"),
		config.GetEnv("WHATSAPP_ACCESS_TOKEN"),
	)

	var dispatcher Iservices.IDispatcher = services.NewDispatcher(log, history, generator, whatsAppProvider)

	verifyToken := config.GetEnv("WEBHOOK_VERIFY_TOKEN")
	httpHandlers := handlers.NewHttpHandlers(log, verifyToken, dispatcher)

	routes := routes.NewRoutes(router, httpHandlers)
	routes.Init()

	port := config.GetEnvDefault("PORT", "8080")
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}
}
