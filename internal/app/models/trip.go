package models

import "encoding/json"

// Itinerary is the structured travel plan returned by the generative model.
// JSON tags mirror the schema the model is instructed to produce, so the
// response text can be unmarshalled directly.
type Itinerary struct {
	TripTitle string `json:"tripTitle"`
	Summary   string `json:"summary"`
	Days      []Day  `json:"days"`
}

// Day is one day of the plan. The model is asked to number days starting at 1;
// the value is trusted as received.
type Day struct {
	Day        int        `json:"day"`
	Title      string     `json:"title"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
}

// Activity is a single entry in a day's schedule. Time is free text, not a
// timestamp ("Morning", "9:00 AM", ...). Location and Details may be empty.
type Activity struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Details     string `json:"details"`
}

// ItineraryContextMissing is sent to the assistant when no plan has been
// generated yet, so it can tell the user to generate one first.
const ItineraryContextMissing = "Not available."

// ItineraryContext serializes an itinerary for use as chat context text.
func ItineraryContext(it *Itinerary) string {
	if it == nil {
		return ItineraryContextMissing
	}
	b, err := json.Marshal(it)
	if err != nil {
		return ItineraryContextMissing
	}
	return string(b)
}
