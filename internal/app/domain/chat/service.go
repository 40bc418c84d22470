// Package chat is the conversational follow-up flow scoped to the current
// itinerary.
package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wayfarer-ai/wayfarer/internal/app/models"
	"github.com/wayfarer-ai/wayfarer/internal/app/session"
)

// assistantPrompt keeps the assistant on-topic and multilingual: it must
// reply in the language the question was asked in.
const assistantPrompt = `You are a friendly and helpful multilingual travel assistant.
Your goal is to answer user questions concisely and accurately.
If the user asks a question in a specific language, you MUST respond in that same language.
You have access to the user's current travel itinerary. Use it as context to provide relevant answers. If the itinerary is not available, inform the user that they need to generate one first to ask specific questions about it.
Keep your answers helpful and to the point.`

// contextPrefix labels the serialized itinerary inside the system instruction.
const contextPrefix = "Current Itinerary Context: "

// CompletionClient is the slice of the genai client the chat flow needs.
type CompletionClient interface {
	ChatCompletion(ctx context.Context, history []models.ChatMessage, userMessage string, systemParts []string) (string, error)
}

// Service runs chat exchanges against a session's conversation.
type Service struct {
	ai     CompletionClient
	logger *zap.Logger
}

// NewService creates a new chat service.
func NewService(ai CompletionClient, logger *zap.Logger) *Service {
	return &Service{ai: ai, logger: logger}
}

// Ask sends the full conversation so far plus userMessage. The system
// instruction carries the assistant prompt and the serialized current
// itinerary, or an explicit not-available marker so the assistant knows no
// plan exists yet.
//
// Only a successful exchange is recorded: one user turn then one model turn.
// On failure the conversation is left untouched and the caller shows an
// apology that is never part of the history, so a retry runs against the
// same state.
func (s *Service) Ask(ctx context.Context, sess *session.Session, userMessage string) (string, error) {
	history := sess.ConversationSnapshot()
	contextText := models.ItineraryContext(sess.CurrentItinerary())

	reply, err := s.ai.ChatCompletion(ctx, history, userMessage, []string{
		assistantPrompt,
		contextPrefix + contextText,
	})
	if err != nil {
		s.logger.Warn("Chat exchange failed",
			zap.String("session", sess.ID),
			zap.Int("history", len(history)),
			zap.Error(err))
		return "", err
	}

	now := time.Now().Format("3:04 PM")
	sess.AppendExchange(
		models.ChatMessage{Role: models.RoleUser, Content: userMessage, Timestamp: now},
		models.ChatMessage{Role: models.RoleModel, Content: reply, Timestamp: now},
	)
	return reply, nil
}
