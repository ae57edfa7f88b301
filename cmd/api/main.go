package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "smartinvoice/api/swagger" // swagger docs
	"smartinvoice/internal/assistant"
	"smartinvoice/internal/config"
	"smartinvoice/internal/database"
	"smartinvoice/internal/handler"
	"smartinvoice/internal/middleware"
	"smartinvoice/internal/render"
	"smartinvoice/internal/repository"
	"smartinvoice/internal/service"
	"smartinvoice/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Smart Invoice API
// @version         1.0
// @description     Invoice drafting, history, export and assistant API.
// @host            localhost:8080
// @BasePath        /
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Printf("Connected to %s database successfully.", cfg.Database.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run(ctx)

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	invoiceStore := repository.NewInvoiceStore(repository.NewKeyValueRepository(db), txManager)
	sequenceRepo := repository.NewSequenceRepository(db, txManager)

	sessions := newSessions(ctx, cfg.Assistant)
	autosaver := service.NewAutosaver(invoiceStore, wsHub, cfg.Autosave.Debounce)
	invoiceService := service.NewInvoiceService(invoiceStore, sequenceRepo, autosaver, wsHub, service.WithSessionCleanup(sessions))
	exportService := service.NewExportService(invoiceStore, cfg.Capacity(), render.NewPDFRenderer(), render.NewHTMLRenderer())
	assistantService := service.NewAssistantService(sessions, wsHub)

	// Initialize Handlers
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	exportHandler := handler.NewExportHandler(exportService)
	assistantHandler := handler.NewAssistantHandler(assistantService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", "Accept-Language"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", handler.FallbackHeader}
	router.Use(cors.New(corsConfig))
	router.Use(middleware.Prefs(cfg.Locale.Default))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c)
	})

	// API Routing
	invoiceHandler.RegisterRoutes(router.Group(""))
	exportHandler.RegisterRoutes(router.Group(""))
	assistantHandler.RegisterRoutes(router.Group(""))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	// Pending history writes must land before the process exits.
	if err := autosaver.Flush(shutdownCtx); err != nil {
		log.Printf("Error flushing autosave: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// newSessions wires the assistant to Gemini. Without credentials every request fails as a
// transport error and the rest of the API keeps working.
func newSessions(ctx context.Context, cfg config.AssistantConfig) *assistant.Sessions {
	var gen assistant.Generator
	gemini, err := assistant.NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model)
	if err != nil {
		log.Printf("WARNING: assistant disabled: %v", err)
		gen = assistant.Unavailable{Err: err}
	} else {
		gen = gemini
	}
	return assistant.NewSessions(assistant.New(gen, assistant.WithTimeout(cfg.Timeout)))
}
