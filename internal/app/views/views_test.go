package views

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-ai/wayfarer/internal/app/models"
)

func renderToString(t *testing.T, component templ.Component) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, component.Render(context.Background(), &b))
	return b.String()
}

func sampleItinerary() *models.Itinerary {
	return &models.Itinerary{
		TripTitle: "3 Days in Kyoto",
		Summary:   "Temples, gardens and food.",
		Days: []models.Day{
			{Day: 1, Title: "Arrival", Theme: "Culture", Activities: []models.Activity{
				{Time: "Morning", Description: "Visit Fushimi Inari", Location: "Fushimi Inari Taisha", Details: "Go early."},
			}},
			{Day: 2, Title: "Old Town", Theme: "History", Activities: []models.Activity{
				{Time: "Afternoon", Description: "Walk Gion"},
			}},
			{Day: 3, Title: "Departure", Theme: "Relaxation", Activities: []models.Activity{
				{Time: "9:00 AM", Description: "Tea ceremony"},
			}},
		},
	}
}

func TestItineraryResult_RendersAllDaysInOrder(t *testing.T) {
	out := renderToString(t, ItineraryResult(sampleItinerary()))

	assert.Contains(t, out, "3 Days in Kyoto")
	assert.Contains(t, out, "Temples, gardens and food.")

	d1 := strings.Index(out, "Day 1: Arrival")
	d2 := strings.Index(out, "Day 2: Old Town")
	d3 := strings.Index(out, "Day 3: Departure")
	require.NotEqual(t, -1, d1)
	require.NotEqual(t, -1, d2)
	require.NotEqual(t, -1, d3)
	assert.Less(t, d1, d2)
	assert.Less(t, d2, d3)

	assert.Contains(t, out, "Morning: Visit Fushimi Inari")
	assert.Contains(t, out, "Fushimi Inari Taisha")
	assert.Contains(t, out, "Go early.")
	assert.Contains(t, out, `id="download-pdf-btn"`)
	assert.Contains(t, out, `href="/itinerary/pdf"`)
}

func TestItineraryResult_OmitsEmptyOptionalFields(t *testing.T) {
	it := &models.Itinerary{
		TripTitle: "Quick Trip",
		Days: []models.Day{{Day: 1, Title: "Only Day", Activities: []models.Activity{
			{Time: "Noon", Description: "Lunch"},
		}}},
	}
	out := renderToString(t, ItineraryResult(it))

	assert.Contains(t, out, "Noon: Lunch")
	assert.NotContains(t, out, "text-gray-500 font-medium\"></p>")
}

func TestItineraryResult_IsDeterministic(t *testing.T) {
	it := sampleItinerary()
	first := renderToString(t, ItineraryResult(it))
	second := renderToString(t, ItineraryResult(it))
	assert.Equal(t, first, second)
}

func TestItineraryResult_EscapesModelText(t *testing.T) {
	it := &models.Itinerary{
		TripTitle: `<script>alert("x")</script>`,
		Days: []models.Day{{Day: 1, Title: "<b>bold</b>", Activities: []models.Activity{
			{Time: "Morning", Description: "a & b"},
		}}},
	}
	out := renderToString(t, ItineraryResult(it))

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "&lt;b&gt;bold&lt;/b&gt;")
	assert.Contains(t, out, "a &amp; b")
}

func TestErrorPanel(t *testing.T) {
	out := renderToString(t, ErrorPanel("API Error: quota exceeded"))
	assert.Contains(t, out, `id="error-message"`)
	assert.Contains(t, out, "API Error: quota exceeded")

	escaped := renderToString(t, ErrorPanel("<img src=x>"))
	assert.NotContains(t, escaped, "<img")
}

func TestPlaceholder(t *testing.T) {
	out := renderToString(t, Placeholder())
	assert.Contains(t, out, `id="placeholder"`)
	assert.Contains(t, out, "Your itinerary will appear here")
}

func TestChatExchange_UserThenModel(t *testing.T) {
	out := renderToString(t, ChatExchange(
		models.ChatMessage{Role: models.RoleUser, Content: "What should I pack?", Timestamp: "3:04 PM"},
		models.ChatMessage{Role: models.RoleModel, Content: "Light layers.", Timestamp: "3:04 PM"},
	))

	userIdx := strings.Index(out, "What should I pack?")
	modelIdx := strings.Index(out, "Light layers.")
	require.NotEqual(t, -1, userIdx)
	require.NotEqual(t, -1, modelIdx)
	assert.Less(t, userIdx, modelIdx)

	assert.Contains(t, out, "justify-end")
	assert.Contains(t, out, "bg-blue-600")
	assert.Contains(t, out, "bg-gray-100")
	assert.Contains(t, out, "3:04 PM")
}

func TestChatBubble_EscapesContent(t *testing.T) {
	out := renderToString(t, ChatBubble(models.ChatMessage{Role: models.RoleModel, Content: "<svg onload=x>"}))
	assert.NotContains(t, out, "<svg")
}

func TestChatWidget_OpenAndClosed(t *testing.T) {
	closed := renderToString(t, ChatWidget(false, nil))
	assert.Contains(t, closed, `id="chat-widget"`)
	assert.Contains(t, closed, "hidden")
	assert.Contains(t, closed, `hx-post="/chat/toggle"`)

	conversation := []models.ChatMessage{
		{Role: models.RoleUser, Content: "hi"},
		{Role: models.RoleModel, Content: "hello"},
	}
	open := renderToString(t, ChatWidget(true, conversation))
	assert.NotContains(t, open, `class="hidden`)
	assert.Contains(t, open, "hi")
	assert.Contains(t, open, "hello")
	assert.Contains(t, open, `hx-post="/chat/message"`)
	assert.Contains(t, open, `hx-swap="beforeend"`)
}

func TestIndexPage_ContainsFormAndPanels(t *testing.T) {
	out := renderToString(t, IndexPage())

	assert.Contains(t, out, `id="itinerary-form"`)
	assert.Contains(t, out, `hx-post="/itinerary/generate"`)
	assert.Contains(t, out, `hx-target="#plan-panel"`)
	assert.Contains(t, out, `hx-disabled-elt="#generate-btn"`)
	assert.Contains(t, out, `name="destination"`)
	assert.Contains(t, out, `name="duration"`)
	assert.Contains(t, out, `name="interests"`)
	assert.Contains(t, out, `name="budget"`)
	assert.Contains(t, out, `id="plan-panel"`)
	assert.Contains(t, out, `id="placeholder"`)
	assert.Contains(t, out, `id="chat-widget"`)
}
