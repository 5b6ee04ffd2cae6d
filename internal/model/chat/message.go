package chat

import (
	"time"

	"github.com/aadinq/catty/backend/internal/model/mood"
)

// Sender identifies which side of the conversation authored a message.
const (
	SenderUser = "user"
	SenderCat  = "cat"
)

// Message is a single transcript entry. Immutable once appended; the only
// post-append mutation the orchestrator performs is attaching synthesized
// audio to a cat message it just created.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Mood      mood.Mood `json:"mood,omitempty"`
	AudioData string    `json:"audioData,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Turn is the reduced {text, sender} view of a message sent to the
// generation provider. Mood and audio are stripped before transmission.
type Turn struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// AsTurn strips a message down to what the model needs.
func (m Message) AsTurn() Turn {
	return Turn{Text: m.Text, Sender: m.Sender}
}
