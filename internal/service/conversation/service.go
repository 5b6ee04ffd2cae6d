// Package conversation owns the Catty chat state machine: the transcript,
// the current mood, the at-most-one-in-flight send guard, and coordination
// of the roast, voice and playback collaborators.
package conversation

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aadinq/catty/backend/internal/analysis/reaction"
	"github.com/aadinq/catty/backend/internal/audio"
	"github.com/aadinq/catty/backend/internal/model/chat"
	"github.com/aadinq/catty/backend/internal/model/mood"
	"github.com/aadinq/catty/backend/internal/sensor"
	"github.com/aadinq/catty/backend/internal/service/roast"
	"github.com/aadinq/catty/backend/internal/service/voice"
)

var (
	// ErrEmptyMessage rejects blank sends before they touch any state.
	ErrEmptyMessage = errors.New("message text is empty")
	// ErrBusy drops a send while another exchange is in flight. Dropped,
	// never queued.
	ErrBusy = errors.New("a response is already in flight")
	// ErrStaleReply marks a reply that arrived after the transcript it
	// belonged to was reset.
	ErrStaleReply = errors.New("reply arrived after reset and was dropped")
)

// Service is the conversation orchestrator. All state transitions run under
// one mutex; the two network round trips (roast, voice) happen with the lock
// released.
type Service struct {
	mu sync.Mutex

	roaster roast.Roaster
	voice   voice.Synthesizer
	player  *audio.Player
	haptics sensor.Haptics

	transcript   []chat.Message
	currentMood  mood.Mood
	pending      bool
	voiceEnabled bool
	listening    bool
	draft        string

	// epoch stamps each send; Reset bumps it so late replies are detected
	// and dropped instead of undoing the reset.
	epoch uint64

	pokeIndex   int
	subscribers map[string]chan Event
}

// NewService seeds a fresh conversation. A nil roaster degrades to the
// credentials-missing canned roast; nil haptics degrade to no-ops.
func NewService(roaster roast.Roaster, synth voice.Synthesizer, player *audio.Player, haptics sensor.Haptics) *Service {
	if roaster == nil {
		roaster = roast.Disabled()
	}
	if haptics == nil {
		haptics = sensor.NopHaptics{}
	}

	s := &Service{
		roaster:     roaster,
		voice:       synth,
		player:      player,
		haptics:     haptics,
		subscribers: make(map[string]chan Event),
	}
	s.transcript = []chat.Message{newCatMessage(seedText, seedMood)}
	s.currentMood = seedMood
	return s
}

// Send runs one exchange: append the user message, call the roast client
// with a pre-append history snapshot, append the reply, then best-effort
// voice. Returns the cat message.
func (s *Service) Send(ctx context.Context, text string) (chat.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return chat.Message{}, ErrEmptyMessage
	}

	// Deterministic override layer: trigger phrases short-circuit before
	// any network call, every send.
	if canned, ok := triggerFor(trimmed); ok {
		return s.sendCanned(trimmed, canned)
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return chat.Message{}, ErrBusy
	}

	// History snapshot is taken before the outgoing message is appended,
	// so a message never sees itself in its own history.
	history := snapshotTurns(s.transcript)
	userMsg := newUserMessage(trimmed)
	s.transcript = append(s.transcript, userMsg)
	s.draft = ""
	s.pending = true
	s.currentMood = reaction.For(trimmed)
	epoch := s.epoch
	s.publish(Event{Kind: EventMessage, Mood: s.currentMood, Message: &userMsg})
	s.mu.Unlock()

	s.haptics.Pulse(sensor.PulseSend)

	result := s.roaster.Generate(ctx, trimmed, history)

	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		log.Printf("[conversation] dropping reply for stale epoch %d", epoch)
		return chat.Message{}, ErrStaleReply
	}
	catMsg := newCatMessage(result.Reply, result.Mood)
	s.transcript = append(s.transcript, catMsg)
	s.currentMood = result.Mood
	s.pending = false
	s.publish(Event{Kind: EventMessage, Mood: result.Mood, Message: &catMsg})
	s.mu.Unlock()

	s.haptics.Pulse(sensor.PulseReply)

	// Voice is decorative and runs after pending is cleared: new sends are
	// accepted while synthesis is still outstanding.
	if encoded := s.synthesize(ctx, result.Reply); encoded != "" {
		catMsg.AudioData = s.attachAudio(catMsg.ID, epoch, encoded)
	}

	return catMsg, nil
}

// Poke appends a canned angry reply without touching the pending guard: it
// must not corrupt an in-flight exchange, and poke replies are appended, not
// inserted ahead of a pending reply.
func (s *Service) Poke() chat.Message {
	s.mu.Lock()
	reply := pokeReplies[s.pokeIndex%len(pokeReplies)]
	s.pokeIndex++
	catMsg := newCatMessage(reply, mood.Angry)
	s.transcript = append(s.transcript, catMsg)
	s.currentMood = mood.Angry
	s.publish(Event{Kind: EventMessage, Mood: mood.Angry, Message: &catMsg})
	s.mu.Unlock()

	s.haptics.Pulse(sensor.PulsePoke)
	return catMsg
}

// Reset collapses the transcript to a single fresh seed message. In-flight
// replies carry the old epoch and are dropped on arrival.
func (s *Service) Reset() chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	seed := newCatMessage(resetText, resetMood)
	s.transcript = []chat.Message{seed}
	s.currentMood = resetMood
	s.pending = false
	s.draft = ""
	s.publish(Event{Kind: EventReset, Mood: resetMood, Message: &seed})
	return seed
}

// sendCanned appends the user message and the fixed reply with no network
// round trip. Still subject to the Idle guard like any other send.
func (s *Service) sendCanned(text string, canned cannedReply) (chat.Message, error) {
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return chat.Message{}, ErrBusy
	}

	userMsg := newUserMessage(text)
	catMsg := newCatMessage(canned.Reply, canned.Mood)
	s.transcript = append(s.transcript, userMsg, catMsg)
	s.draft = ""
	s.currentMood = canned.Mood
	s.publish(Event{Kind: EventMessage, Mood: canned.Mood, Message: &userMsg})
	s.publish(Event{Kind: EventMessage, Mood: canned.Mood, Message: &catMsg})
	s.mu.Unlock()

	s.haptics.Pulse(sensor.PulseSend)
	s.haptics.Pulse(sensor.PulseReply)
	return catMsg, nil
}

func (s *Service) synthesize(ctx context.Context, reply string) string {
	s.mu.Lock()
	enabled := s.voiceEnabled
	s.mu.Unlock()
	if !enabled || s.voice == nil {
		return ""
	}
	return s.voice.Synthesize(ctx, reply)
}

// attachAudio attaches synthesized audio to the message it was generated
// for, then starts playback. A reset between append and synthesis leaves the
// audio unattached and unplayed.
func (s *Service) attachAudio(messageID string, epoch uint64, encoded string) string {
	s.mu.Lock()
	if s.epoch != epoch {
		s.mu.Unlock()
		return ""
	}
	attached := false
	for i := range s.transcript {
		if s.transcript[i].ID == messageID {
			s.transcript[i].AudioData = encoded
			attached = true
			break
		}
	}
	s.mu.Unlock()

	if !attached {
		return ""
	}
	if s.player != nil {
		if _, err := s.player.Play(encoded); err != nil {
			log.Printf("[conversation] playback rejected clip for message %s: %v", messageID, err)
		}
	}
	return encoded
}

// SetVoiceEnabled toggles voice synthesis for future replies.
func (s *Service) SetVoiceEnabled(enabled bool) {
	s.mu.Lock()
	s.voiceEnabled = enabled
	s.mu.Unlock()
}

// SetListening mirrors the speech-capture state into the snapshot.
func (s *Service) SetListening(listening bool) {
	s.mu.Lock()
	s.listening = listening
	s.mu.Unlock()
}

// SetDraft stores recognized (or typed-but-unsent) text in the input buffer.
func (s *Service) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

// Transcript returns a copy of the message log in insertion order.
func (s *Service) Transcript() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]chat.Message, len(s.transcript))
	copy(copied, s.transcript)
	return copied
}

// State returns a full snapshot for the UI.
func (s *Service) State() chat.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]chat.Message, len(s.transcript))
	copy(copied, s.transcript)
	return chat.State{
		Transcript:   copied,
		CurrentMood:  s.currentMood,
		Pending:      s.pending,
		VoiceEnabled: s.voiceEnabled,
		Listening:    s.listening,
		Draft:        s.draft,
	}
}

// CurrentMood returns the mood driving the avatar right now.
func (s *Service) CurrentMood() mood.Mood {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentMood
}

func newUserMessage(text string) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    chat.SenderUser,
		CreatedAt: time.Now().UTC(),
	}
}

func newCatMessage(text string, m mood.Mood) chat.Message {
	return chat.Message{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    chat.SenderCat,
		Mood:      m,
		CreatedAt: time.Now().UTC(),
	}
}

func snapshotTurns(messages []chat.Message) []chat.Turn {
	turns := make([]chat.Turn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, msg.AsTurn())
	}
	return turns
}
