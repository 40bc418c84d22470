// Package views renders HTML fragments for the planner page. Every function
// is a pure transform of its input: rendering the same value twice produces
// identical markup. Model-supplied text is always escaped.
package views

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/wayfarer-ai/wayfarer/internal/app/models"
)

// Placeholder is the idle state of the plan panel.
func Placeholder() templ.Component {
	return templ.Raw(placeholderHTML())
}

func placeholderHTML() string {
	return `
		<div id="placeholder" class="text-center text-gray-500 py-16">
			<p class="text-lg font-medium">Your itinerary will appear here</p>
			<p class="mt-2 text-sm">Fill in the form and generate a personalized travel plan.</p>
		</div>`
}

// ErrorPanel replaces the result area when a generation fails.
func ErrorPanel(message string) templ.Component {
	return templ.Raw(fmt.Sprintf(`
		<div id="error" class="bg-red-50 border border-red-200 rounded-lg p-6 text-center">
			<p class="text-red-700 font-semibold">Something went wrong</p>
			<p id="error-message" class="mt-2 text-sm text-red-600">%s</p>
		</div>`, html.EscapeString(message)))
}

// ItineraryResult renders the full plan: header, one block per day, and the
// PDF download control. Day and activity ordering is preserved exactly as
// received.
func ItineraryResult(it *models.Itinerary) templ.Component {
	var b strings.Builder

	b.WriteString(`<div id="itinerary-result">`)
	fmt.Fprintf(&b, `
		<div class="mb-8">
			<h2 class="text-3xl font-bold text-gray-900">%s</h2>
			<p class="mt-2 text-gray-600">%s</p>
		</div>`,
		html.EscapeString(it.TripTitle), html.EscapeString(it.Summary))

	b.WriteString(`<div class="itinerary-content">`)
	for _, day := range it.Days {
		b.WriteString(renderDay(day))
	}
	b.WriteString(`</div>`)

	b.WriteString(`
		<a id="download-pdf-btn" href="/itinerary/pdf"
			class="mt-8 w-full bg-green-600 text-white font-semibold py-3 px-4 rounded-lg hover:bg-green-700 flex items-center justify-center transition-all duration-200">
			Download Itinerary as PDF
		</a>`)
	b.WriteString(`</div>`)

	return templ.Raw(b.String())
}

func renderDay(day models.Day) string {
	var b strings.Builder

	fmt.Fprintf(&b, `
		<div class="mb-6">
			<div class="flex items-center mb-4">
				<span class="bg-blue-100 text-blue-800 text-xs font-semibold mr-2 px-2.5 py-0.5 rounded-full">%s</span>
			</div>
			<h3 class="text-2xl font-semibold mb-4 text-blue-700">Day %d: %s</h3>
			<ol>`,
		html.EscapeString(day.Theme), day.Day, html.EscapeString(day.Title))

	for _, activity := range day.Activities {
		b.WriteString(renderActivity(activity))
	}

	b.WriteString(`</ol></div>`)
	return b.String()
}

func renderActivity(activity models.Activity) string {
	var b strings.Builder

	fmt.Fprintf(&b, `
		<li>
			<div class="ml-4 mb-4">
				<h4 class="font-semibold text-lg text-gray-800">%s: %s</h4>`,
		html.EscapeString(activity.Time), html.EscapeString(activity.Description))

	if activity.Location != "" {
		fmt.Fprintf(&b, `<p class="text-sm text-gray-500 font-medium">%s</p>`, html.EscapeString(activity.Location))
	}
	if activity.Details != "" {
		fmt.Fprintf(&b, `<p class="mt-1 text-gray-600">%s</p>`, html.EscapeString(activity.Details))
	}

	b.WriteString(`</div></li>`)
	return b.String()
}
