// Package planner owns the itinerary generation flow: prompt construction,
// the completion call and strict parsing of the structured response.
package planner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wayfarer-ai/wayfarer/internal/app/models"
)

// systemPrompt establishes the assistant's role and pins the output schema.
// Any response that does not decode against models.Itinerary is a hard
// failure; there is no repair pass.
const systemPrompt = `You are an expert travel planner. Your task is to create a detailed, personalized travel itinerary.
The user will provide a destination, duration, interests, and budget.
You MUST respond with a valid JSON object that follows this exact schema. Do not include any text, notes, or markdown formatting before or after the JSON object.

JSON Schema:
{
  "tripTitle": "string",
  "summary": "string (A brief, engaging 2-3 sentence summary of the trip)",
  "days": [
    {
      "day": "number",
      "title": "string (A creative title for the day, e.g., 'Ancient Temples & Modern Marvels')",
      "theme": "string (e.g., 'History', 'Adventure', 'Relaxation')",
      "activities": [
        {
          "time": "string (e.g., 'Morning', '9:00 AM', 'Afternoon', 'Evening')",
          "description": "string (What to do)",
          "location": "string (Name of the place, if applicable)",
          "details": "string (A short, helpful tip or more info)"
        }
      ]
    }
  ]
}`

// TripParams are the form inputs read on submit.
type TripParams struct {
	Destination  string
	DurationDays int
	Interests    string
	Budget       string
}

// CompletionClient is the slice of the genai client the planner needs.
type CompletionClient interface {
	GenerateContent(ctx context.Context, systemPrompt, userQuery string, jsonOutput bool) (string, error)
}

// Service provides business logic for itinerary generation.
type Service struct {
	ai     CompletionClient
	logger *zap.Logger
}

// NewService creates a new planner service.
func NewService(ai CompletionClient, logger *zap.Logger) *Service {
	return &Service{ai: ai, logger: logger}
}

// Generate builds the prompt from the trip parameters, calls the completion
// endpoint and parses the returned itinerary. Destination must be non-empty
// and the duration a positive day count; nothing else is validated before
// sending.
func (s *Service) Generate(ctx context.Context, p TripParams) (*models.Itinerary, error) {
	if p.Destination == "" {
		return nil, fmt.Errorf("%w: destination is required", models.ErrValidation)
	}
	if p.DurationDays < 1 {
		return nil, fmt.Errorf("%w: duration must be a positive number of days", models.ErrValidation)
	}

	userQuery := fmt.Sprintf("Generate an itinerary for a trip to %s for %d days.\nMy interests are: %s.\nMy budget is: %s.",
		p.Destination, p.DurationDays, p.Interests, p.Budget)

	responseText, err := s.ai.GenerateContent(ctx, systemPrompt, userQuery, true)
	if err != nil {
		s.logger.Warn("Itinerary generation failed",
			zap.String("destination", p.Destination),
			zap.Int("duration", p.DurationDays),
			zap.Error(err))
		return nil, err
	}

	itinerary, err := parseItineraryFromResponse(responseText)
	if err != nil {
		s.logger.Warn("Itinerary response did not match schema",
			zap.String("destination", p.Destination),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Itinerary generated",
		zap.String("destination", p.Destination),
		zap.String("title", itinerary.TripTitle),
		zap.Int("days", len(itinerary.Days)))
	return itinerary, nil
}
