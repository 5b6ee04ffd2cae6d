// Package reaction picks the cosmetic interim mood shown while a roast
// request is in flight. Pure heuristics over the outgoing text; the real
// mood always comes from the generation reply and overwrites this one.
package reaction

import (
	"strings"

	"github.com/aadinq/catty/backend/internal/model/mood"
)

var keywordBuckets = map[mood.Mood][]string{
	mood.Curious: {
		"why", "how", "what", "kya", "kaise", "kyun", "?", "explain", "batao",
	},
	mood.Annoyed: {
		"stupid", "dumb", "bad cat", "shut up", "chup", "bakwas", "useless",
		"nalla", "boring",
	},
	mood.Smug: {
		"please", "sorry", "help", "cute", "love you", "good cat", "pyara",
		"sweet",
	},
	mood.Surprised: {
		"what!", "no way", "seriously", "sach", "omg", "really", "arre",
	},
	mood.Playful: {
		"play", "game", "joke", "funny", "haha", "lol", "khel", "masti",
	},
	mood.Bored: {
		"hi", "hello", "hey", "hmm", "ok", "okay", "yo", "sup",
	},
}

var punctuationBoost = map[mood.Mood]int{
	mood.Surprised: 3,
	mood.Playful:   2,
}

// For scores the outgoing utterance against the keyword buckets and returns
// the interim mood to display. Long rambling inputs read as boring to a cat;
// everything unmatched lands on Thinking, the generic "request in flight"
// face.
func For(text string) mood.Mood {
	normalized := strings.TrimSpace(strings.ToLower(text))
	if normalized == "" {
		return mood.Thinking
	}

	scores := make(map[mood.Mood]int)
	for m, keywords := range keywordBuckets {
		for _, word := range keywords {
			if strings.Contains(normalized, word) {
				scores[m] += 3
			}
		}
	}

	exclamations := strings.Count(text, "!")
	if exclamations > 0 {
		scores[mood.Surprised] += exclamations * punctuationBoost[mood.Surprised]
		if exclamations == 1 {
			scores[mood.Playful] += punctuationBoost[mood.Playful]
		}
	}

	if len(normalized) > 160 {
		scores[mood.Bored] += 4
	}

	best := mood.Thinking
	bestScore := 0
	for m, s := range scores {
		if s > bestScore {
			bestScore = s
			best = m
		}
	}

	if bestScore == 0 {
		return mood.Thinking
	}
	return best
}
