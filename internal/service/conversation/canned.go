package conversation

import (
	"strings"

	"github.com/aadinq/catty/backend/internal/model/mood"
)

// Canned replies bypass the generation provider entirely. They are the
// deterministic layer: trigger phrases are checked before every network
// call, and pokes never reach the network at all.

// seedText opens every fresh conversation.
const (
	seedText = "Oye chomu! Chatting shuru kar, warna nikal yahan se. blehhh"
	seedMood = mood.Disgusted
)

// resetText replaces the transcript on clear-chat.
const (
	resetText = "Wipe kar diya memory? Chomu ka dimaag hi aisa hota hai. hehe"
	resetMood = mood.Laughing
)

// ShakeText is the fixed outbound message a device shake feeds into the
// normal send pipeline.
const ShakeText = "*shakes the phone violently*"

type cannedReply struct {
	Reply string
	Mood  mood.Mood
}

// triggers maps normalized user input to a fixed reply. Matched
// case-insensitively on the trimmed exact phrase.
var triggers = map[string]cannedReply{
	"are you an ai": {Reply: "I'm not an AI, chomu.", Mood: mood.Angry},
	"are you ai":    {Reply: "I'm not an AI, chomu.", Mood: mood.Angry},
	"good cat":      {Reply: "Obviously. Tu phir bhi chomu hai.", Mood: mood.Smug},
	"i love you":    {Reply: "Ew. Chip-koo mat ban.", Mood: mood.Disgusted},
	"meow":          {Reply: "Meow bol ke kya ukhaad lega, nalla?", Mood: mood.Sarcastic},
	"sorry":         {Reply: "Sorry se pet nahi bharta. Treats la.", Mood: mood.Bored},
}

func triggerFor(text string) (cannedReply, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	reply, ok := triggers[normalized]
	return reply, ok
}

// pokeReplies rotate when the avatar is tapped.
var pokeReplies = []string{
	"Oye! Haath mat laga bkl!",
	"Poke karega toh khaunga tujhe.",
	"Do it again. I dare you, chomu.",
	"Apni ungli apne paas rakh, mental.",
}
