package mood

import "strings"

// Mood is the closed set of emotional states Catty can be in. It doubles as
// the sentiment tag on cat messages and as the lookup key for avatar
// presentation parameters.
type Mood string

const (
	Neutral    Mood = "NEUTRAL"
	Roasting   Mood = "ROASTING"
	Laughing   Mood = "LAUGHING"
	Disgusted  Mood = "DISGUSTED"
	Bored      Mood = "BORED"
	Angry      Mood = "ANGRY"
	Smug       Mood = "SMUG"
	Surprised  Mood = "SURPRISED"
	Sleepy     Mood = "SLEEPY"
	HappySmile Mood = "HAPPY_SMILE"
	EvilSmile  Mood = "EVIL_SMILE"
	Curious    Mood = "CURIOUS"
	Annoyed    Mood = "ANNOYED"
	Plotting   Mood = "PLOTTING"
	Sarcastic  Mood = "SARCASTIC"
	Thinking   Mood = "THINKING"
	Silly      Mood = "SILLY"
	Playful    Mood = "PLAYFUL"
)

// All lists every member in catalog order.
func All() []Mood {
	return []Mood{
		Neutral, Roasting, Laughing, Disgusted, Bored, Angry, Smug,
		Surprised, Sleepy, HappySmile, EvilSmile, Curious, Annoyed,
		Plotting, Sarcastic, Thinking, Silly, Playful,
	}
}

// Parse normalizes raw model output into a Mood. Unknown values resolve to
// Neutral with ok=false so callers can apply the default without branching
// on errors.
func Parse(raw string) (Mood, bool) {
	normalized := Mood(strings.ToUpper(strings.TrimSpace(raw)))
	switch normalized {
	case Neutral, Roasting, Laughing, Disgusted, Bored, Angry, Smug,
		Surprised, Sleepy, HappySmile, EvilSmile, Curious, Annoyed,
		Plotting, Sarcastic, Thinking, Silly, Playful:
		return normalized, true
	default:
		return Neutral, false
	}
}

// Valid reports whether m is a member of the closed set.
func (m Mood) Valid() bool {
	_, ok := Parse(string(m))
	return ok
}
