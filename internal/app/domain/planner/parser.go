package planner

import (
	"encoding/json"
	"strings"

	"github.com/wayfarer-ai/wayfarer/internal/app/models"
)

// parseItineraryFromResponse decodes the model's text payload against the
// itinerary schema. Despite the responseMimeType directive some models still
// wrap the object in markdown fences, so those are stripped first. Any
// deviation from the schema surfaces as models.ErrMalformedResponse.
//
// The day count is deliberately NOT checked against the requested duration:
// the sequence is trusted as received.
func parseItineraryFromResponse(responseText string) (*models.Itinerary, error) {
	cleaned := cleanJSONResponse(responseText)
	if cleaned == "" {
		return nil, models.ErrMalformedResponse
	}

	var itinerary models.Itinerary
	if err := json.Unmarshal([]byte(cleaned), &itinerary); err != nil {
		return nil, models.ErrMalformedResponse
	}
	if itinerary.TripTitle == "" && len(itinerary.Days) == 0 {
		return nil, models.ErrMalformedResponse
	}
	return &itinerary, nil
}

// cleanJSONResponse removes markdown code blocks and cleans up the JSON response.
func cleanJSONResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}
