package chat

import "github.com/aadinq/catty/backend/internal/model/mood"

// State is the snapshot of conversation state handed to clients. The
// orchestrator owns the live copy; this struct is always a value copy.
type State struct {
	Transcript   []Message `json:"transcript"`
	CurrentMood  mood.Mood `json:"currentMood"`
	Pending      bool      `json:"pending"`
	VoiceEnabled bool      `json:"voiceEnabled"`
	Listening    bool      `json:"listening"`
	Draft        string    `json:"draft,omitempty"`
}
