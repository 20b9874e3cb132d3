package routes

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"

	_ "quotedraft/docs" // This will be auto-generated
	"quotedraft/internal/adapter/http/handlers"
	"quotedraft/internal/adapter/persistence/repository"
	"quotedraft/internal/domain/lineitems"
	"quotedraft/internal/infrastructure/ai"
	"quotedraft/internal/infrastructure/customers"
	"quotedraft/internal/infrastructure/database"
	"quotedraft/internal/infrastructure/rendering"
	"quotedraft/internal/usecase"
	"quotedraft/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	sessionRepo := repository.NewSessionDynamoRepository(ddb)

	var extractor interfaces.IDetailExtractor
	geminiExtractor, err := ai.NewGeminiExtractor(context.Background(), os.Getenv("GEMINI_API_KEY"), os.Getenv("GEMINI_MODEL"))
	if err != nil {
		log.Printf("Gemini extractor not configured: %v", err)
	} else if geminiExtractor == nil {
		log.Printf("Gemini extractor disabled: GEMINI_API_KEY not set")
	} else {
		extractor = geminiExtractor
	}

	directory := customers.NewHTTPDirectory(os.Getenv("CUSTOMER_API_URL"))

	var renderer interfaces.IDocumentRenderer
	httpRenderer, err := rendering.NewHTTPRenderer(os.Getenv("RENDERER_URL"))
	if err != nil {
		log.Printf("Document renderer not configured: %v", err)
	} else {
		renderer = httpRenderer
	}

	conversationUseCase := usecase.NewConversationUseCase(
		sessionRepo,
		extractor,
		directory,
		renderer,
		lineitems.Options{KeepUnpriced: envBool("KEEP_UNPRICED_ITEMS")},
	)

	conversationHandler := handlers.NewConversationHandler(conversationUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addConversationRoutes(v1, conversationHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
