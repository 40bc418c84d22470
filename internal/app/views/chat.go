package views

import (
	"fmt"
	"html"
	"strings"

	"github.com/a-h/templ"

	"github.com/wayfarer-ai/wayfarer/internal/app/models"
)

// ChatExchange renders one round trip: the user bubble followed by the
// assistant bubble. The fragment is appended to the chat container.
func ChatExchange(userMsg, modelMsg models.ChatMessage) templ.Component {
	return templ.Raw(renderChatMessage(userMsg) + renderChatMessage(modelMsg))
}

// ChatBubble renders a single message bubble.
func ChatBubble(msg models.ChatMessage) templ.Component {
	return templ.Raw(renderChatMessage(msg))
}

// ChatWidget renders the chat panel, open or closed, with the conversation
// so far. Toggling re-renders the whole widget.
func ChatWidget(open bool, conversation []models.ChatMessage) templ.Component {
	return templ.Raw(chatWidgetHTML(open, conversation))
}

func chatWidgetHTML(open bool, conversation []models.ChatMessage) string {
	panelClass := "hidden"
	if open {
		panelClass = "flex"
	}

	var messages strings.Builder
	for _, msg := range conversation {
		messages.WriteString(renderChatMessage(msg))
	}

	markup := fmt.Sprintf(`
<div id="chat-widget" class="fixed bottom-6 right-6 z-50">
	<button id="chat-toggle" hx-post="/chat/toggle" hx-target="#chat-widget" hx-swap="outerHTML"
		class="bg-blue-600 text-white rounded-full w-14 h-14 shadow-lg hover:bg-blue-700 flex items-center justify-center">&#128172;</button>
	<div id="chat-panel" class="%s mt-2 w-96 bg-white rounded-lg shadow-xl border border-gray-200 flex-col">
		<div class="flex items-center justify-between p-4 border-b border-gray-200">
			<p class="font-semibold text-gray-800">Travel Assistant</p>
			<button id="chat-close" hx-post="/chat/toggle" hx-target="#chat-widget" hx-swap="outerHTML"
				class="text-gray-400 hover:text-gray-600">&times;</button>
		</div>
		<div id="chat-container" class="flex-1 overflow-y-auto p-4 h-80">%s</div>
		<form id="chat-form" hx-post="/chat/message" hx-target="#chat-container" hx-swap="beforeend"
			hx-indicator="#chat-loading" hx-on::after-request="this.reset()"
			class="p-4 border-t border-gray-200 flex gap-2">
			<input id="chat-input" name="message" type="text" autocomplete="off" required
				placeholder="Ask about your trip..."
				class="flex-1 border border-gray-300 rounded-lg px-3 py-2 text-sm focus:outline-none focus:ring-2 focus:ring-blue-500"/>
			<button type="submit" class="bg-blue-600 text-white px-4 py-2 rounded-lg text-sm font-semibold hover:bg-blue-700">Send</button>
		</form>
		<div id="chat-loading" class="htmx-indicator px-4 pb-3 text-xs text-gray-400">Thinking&#8230;</div>
	</div>
</div>`, panelClass, messages.String())

	return markup
}

// renderChatMessage builds a message bubble: user messages sit on the right
// in blue, assistant messages on the left in gray.
func renderChatMessage(msg models.ChatMessage) string {
	isUser := msg.Role == models.RoleUser

	wrapperClass := ""
	bubbleClass := "bg-gray-100 text-gray-800 rounded-e-xl rounded-es-xl"
	if isUser {
		wrapperClass = " justify-end"
		bubbleClass = "bg-blue-600 text-white rounded-s-xl rounded-es-xl"
	}

	timestamp := ""
	if msg.Timestamp != "" {
		timestampClass := "text-gray-500"
		if isUser {
			timestampClass = "text-blue-100"
		}
		timestamp = fmt.Sprintf(`<p class="text-xs mt-2 %s">%s</p>`, timestampClass, html.EscapeString(msg.Timestamp))
	}

	return fmt.Sprintf(`
<div class="flex items-start gap-2.5 mb-4%s">
	<div class="flex flex-col gap-1 w-full max-w-[320px]">
		<div class="leading-1.5 p-3 %s">
			<p class="text-sm font-normal">%s</p>
			%s
		</div>
	</div>
</div>`, wrapperClass, bubbleClass, html.EscapeString(msg.Content), timestamp)
}
