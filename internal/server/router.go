package server

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wayfarer-ai/wayfarer/internal/app/domain/chat"
	"github.com/wayfarer-ai/wayfarer/internal/app/domain/planner"
	"github.com/wayfarer-ai/wayfarer/internal/app/genai"
	"github.com/wayfarer-ai/wayfarer/internal/app/handlers"
	"github.com/wayfarer-ai/wayfarer/internal/app/middleware"
	"github.com/wayfarer-ai/wayfarer/internal/app/session"
	"github.com/wayfarer-ai/wayfarer/internal/pkg/config"
)

// SetupRouter configures and returns the Gin router with all middleware and routes
func SetupRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Create Gin router
	r := gin.New()

	// Setup middleware
	r.Use(ginzap.GinzapWithConfig(logger, &ginzap.Config{
		UTC:        true,
		TimeFormat: time.RFC3339,
		Context:    zapContextFunc(),
	}))
	r.Use(ginzap.RecoveryWithZap(logger, true))
	r.Use(middleware.OTELGinMiddleware("wayfarer"))
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityMiddleware())

	sessions := session.NewStore(0)
	r.Use(middleware.SessionMiddleware(sessions))

	// Wire services and handlers
	aiClient := genai.NewClient(genai.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	}, logger)

	plannerHandlers := handlers.NewPlannerHandlers(planner.NewService(aiClient, logger), logger)
	chatHandlers := handlers.NewChatHandlers(chat.NewService(aiClient, logger), logger)

	r.GET("/", plannerHandlers.HandleIndex)
	r.POST("/itinerary/generate", plannerHandlers.HandleGenerate)
	r.GET("/itinerary/pdf", plannerHandlers.HandleDownloadPDF)
	r.POST("/chat/message", chatHandlers.HandleMessage)
	r.POST("/chat/toggle", chatHandlers.HandleToggle)

	return r
}

// zapContextFunc returns the Zap context function for logging
func zapContextFunc() ginzap.Fn {
	return func(c *gin.Context) []zapcore.Field {
		fields := []zapcore.Field{}

		// Request ID (from header; customize key if needed)
		if requestID := c.Writer.Header().Get("X-Request-Id"); requestID != "" {
			fields = append(fields, zap.String("request_id", requestID))
		}

		// OTEL trace/span IDs (from context)
		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			fields = append(fields,
				zap.String("trace_id", span.SpanContext().TraceID().String()),
				zap.String("span_id", span.SpanContext().SpanID().String()),
			)
		}

		return fields
	}
}
