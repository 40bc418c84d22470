// Package session holds per-browser-session state: the current itinerary,
// the conversation, and the panel visibility states. Everything here lives in
// memory only and expires with the session.
package session

import (
	"sync"

	"github.com/wayfarer-ai/wayfarer/internal/app/models"
)

// Session is the state shared between the generation, export and chat flows.
// The generation flow is the only writer of the itinerary and the chat flow
// the only writer of the conversation; the mutex covers the case of both
// flows being in flight at once for the same browser.
type Session struct {
	ID string

	mu           sync.Mutex
	itinerary    *models.Itinerary
	conversation []models.ChatMessage
	panel        PanelState
	chatOpen     bool
}

// NewSession returns an empty session in the idle/closed state.
func NewSession(id string) *Session {
	return &Session{ID: id, panel: PanelIdle}
}

// Reset returns the session to its initial state: no itinerary, empty
// conversation, idle panel, closed chat. Invoked on a full page load, since
// every variable resets on reload.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itinerary = nil
	s.conversation = nil
	s.panel = PanelIdle
	s.chatOpen = false
}

// BeginGeneration marks a generation as in flight. It fails with
// models.ErrGenerationInFlight when one already is.
func (s *Session) BeginGeneration() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.panel.Transition(EventSubmit)
	if err != nil {
		return err
	}
	s.panel = next
	return nil
}

// CompleteGeneration replaces the current itinerary wholesale. The caller
// must hold the in-flight generation started by BeginGeneration.
func (s *Session) CompleteGeneration(it *models.Itinerary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next, err := s.panel.Transition(EventSucceed); err == nil {
		s.panel = next
	}
	s.itinerary = it
}

// FailGeneration clears the current itinerary. A failed generation never
// leaves a stale plan behind.
func (s *Session) FailGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next, err := s.panel.Transition(EventFail); err == nil {
		s.panel = next
	}
	s.itinerary = nil
}

// CurrentItinerary returns the active plan, or nil when none is current.
func (s *Session) CurrentItinerary() *models.Itinerary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itinerary
}

// Panel returns the generation panel state.
func (s *Session) Panel() PanelState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel
}

// ConversationSnapshot returns a copy of the conversation so far.
func (s *Session) ConversationSnapshot() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]models.ChatMessage, len(s.conversation))
	copy(snapshot, s.conversation)
	return snapshot
}

// AppendExchange records one successful chat round trip: the user turn, then
// the model turn. Failed exchanges are never recorded, so a retry sees the
// same history.
func (s *Session) AppendExchange(userMsg, modelMsg models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation = append(s.conversation, userMsg, modelMsg)
}

// ToggleChat flips the chat panel and reports the new state.
func (s *Session) ToggleChat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatOpen = !s.chatOpen
	return s.chatOpen
}

// ChatOpen reports whether the chat panel is open.
func (s *Session) ChatOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatOpen
}
