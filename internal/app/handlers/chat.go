package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wayfarer-ai/wayfarer/internal/app/domain/chat"
	"github.com/wayfarer-ai/wayfarer/internal/app/middleware"
	"github.com/wayfarer-ai/wayfarer/internal/app/models"
	"github.com/wayfarer-ai/wayfarer/internal/app/views"
	"github.com/wayfarer-ai/wayfarer/internal/observability/metrics"
)

// chatApology is shown when an exchange fails. It is never recorded into the
// conversation, so the user can retry against unchanged history.
const chatApology = "Sorry, I'm having a little trouble right now. Please try again."

type ChatHandlers struct {
	chat   *chat.Service
	logger *zap.Logger
}

func NewChatHandlers(chatService *chat.Service, logger *zap.Logger) *ChatHandlers {
	return &ChatHandlers{chat: chatService, logger: logger}
}

// HandleMessage runs one chat exchange and returns the user bubble followed
// by the assistant bubble.
func (h *ChatHandlers) HandleMessage(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)

	message := strings.TrimSpace(c.PostForm("message"))
	if message == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	h.logger.Info("Chat request",
		zap.String("session", sess.ID),
		zap.Int("length", len(message)))
	metrics.Get().ChatRequestsTotal.Add(c.Request.Context(), 1)

	now := time.Now().Format("3:04 PM")
	userMsg := models.ChatMessage{Role: models.RoleUser, Content: message, Timestamp: now}

	reply, err := h.chat.Ask(c.Request.Context(), sess, message)
	if err != nil {
		metrics.Get().ChatFailuresTotal.Add(c.Request.Context(), 1)
		apology := chatApology
		if errors.Is(err, models.ErrNotConfigured) {
			apology = "The chatbot is disabled. Please configure the GEMINI_API_KEY environment variable."
		}
		render(c, http.StatusOK, views.ChatExchange(userMsg,
			models.ChatMessage{Role: models.RoleModel, Content: apology, Timestamp: now}))
		return
	}

	render(c, http.StatusOK, views.ChatExchange(userMsg,
		models.ChatMessage{Role: models.RoleModel, Content: reply, Timestamp: now}))
}

// HandleToggle flips the chat panel between open and closed.
func (h *ChatHandlers) HandleToggle(c *gin.Context) {
	sess := middleware.GetSessionFromContext(c)
	open := sess.ToggleChat()
	render(c, http.StatusOK, views.ChatWidget(open, sess.ConversationSnapshot()))
}
