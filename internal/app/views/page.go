package views

import (
	"strings"

	"github.com/a-h/templ"
)

// IndexPage is the full planner page in its initial state: empty form,
// placeholder panel, closed chat widget. Reloading always starts over.
func IndexPage() templ.Component {
	var b strings.Builder

	b.WriteString(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="UTF-8"/>
	<meta name="viewport" content="width=device-width, initial-scale=1.0"/>
	<title>Wayfarer - AI Travel Planner</title>
	<script src="https://unpkg.com/htmx.org@1.9.12"></script>
	<script src="https://cdn.tailwindcss.com"></script>
	<link rel="stylesheet" href="/assets/css/styles.css"/>
</head>
<body class="bg-gray-50 text-gray-900">
	<main class="max-w-6xl mx-auto px-4 py-10 grid grid-cols-1 lg:grid-cols-5 gap-8">
		<section class="lg:col-span-2">
			<h1 class="text-2xl font-bold mb-1">Plan your trip</h1>
			<p class="text-sm text-gray-500 mb-6">Tell us where you are going and we will draft the days for you.</p>
			<form id="itinerary-form" hx-post="/itinerary/generate" hx-target="#plan-panel" hx-swap="innerHTML"
				hx-indicator="#loading" hx-disabled-elt="#generate-btn"
				class="bg-white rounded-lg shadow p-6 space-y-4">
				<div>
					<label for="destination" class="block text-sm font-medium mb-1">Destination</label>
					<input id="destination" name="destination" type="text" required placeholder="e.g. Kyoto"
						class="w-full border border-gray-300 rounded-lg px-3 py-2 focus:outline-none focus:ring-2 focus:ring-blue-500"/>
				</div>
				<div>
					<label for="duration" class="block text-sm font-medium mb-1">Duration (days)</label>
					<input id="duration" name="duration" type="number" min="1" required value="3"
						class="w-full border border-gray-300 rounded-lg px-3 py-2 focus:outline-none focus:ring-2 focus:ring-blue-500"/>
				</div>
				<div>
					<label for="interests" class="block text-sm font-medium mb-1">Interests</label>
					<input id="interests" name="interests" type="text" placeholder="e.g. temples, food, hiking"
						class="w-full border border-gray-300 rounded-lg px-3 py-2 focus:outline-none focus:ring-2 focus:ring-blue-500"/>
				</div>
				<div>
					<label for="budget" class="block text-sm font-medium mb-1">Budget</label>
					<select id="budget" name="budget"
						class="w-full border border-gray-300 rounded-lg px-3 py-2 focus:outline-none focus:ring-2 focus:ring-blue-500">
						<option>Budget</option>
						<option selected>Moderate</option>
						<option>Luxury</option>
					</select>
				</div>
				<button id="generate-btn" type="submit"
					class="w-full bg-blue-600 text-white font-semibold py-3 px-4 rounded-lg hover:bg-blue-700 transition-all duration-200">
					Generate Itinerary
				</button>
				<div id="loading" class="htmx-indicator flex items-center justify-center text-sm text-gray-500">
					<span class="animate-spin rounded-full h-4 w-4 border-b-2 border-blue-600 mr-2"></span>
					Generating&#8230;
				</div>
			</form>
		</section>
		<section class="lg:col-span-3">
			<div id="plan-panel" class="bg-white rounded-lg shadow p-8 min-h-[24rem]">`)

	b.WriteString(placeholderHTML())

	b.WriteString(`</div>
		</section>
	</main>`)

	b.WriteString(chatWidgetHTML(false, nil))

	b.WriteString(`
</body>
</html>`)

	return templ.Raw(b.String())
}
