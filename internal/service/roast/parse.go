package roast

import (
	"encoding/json"
	"strings"

	"github.com/aadinq/catty/backend/internal/model/mood"
)

// maxRawReply bounds how much raw model prose is promoted into a reply when
// JSON recovery fails entirely.
const maxRawReply = 160

type replyPayload struct {
	Reply string `json:"reply"`
	Mood  string `json:"mood"`
}

// decodeRoast turns raw model output into a valid Result. Recovery is
// two-tier: direct JSON parse, then the first balanced {...} substring (some
// providers wrap the object in prose despite instructions), then the raw
// text itself truncated and tagged Neutral. Never fails.
func decodeRoast(content string) Result {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Fallback()
	}

	payload := &replyPayload{}
	if err := json.Unmarshal([]byte(trimmed), payload); err != nil {
		fragment, ok := firstBalancedObject(trimmed)
		if !ok || json.Unmarshal([]byte(fragment), payload) != nil {
			return Result{Reply: truncateReply(trimmed), Mood: mood.Neutral}
		}
	}

	reply := strings.TrimSpace(payload.Reply)
	if reply == "" {
		reply = emptyReplyText
	}

	m, _ := mood.Parse(payload.Mood)
	return Result{Reply: reply, Mood: m}
}

// firstBalancedObject extracts the first brace-balanced substring, tracking
// string literals so braces inside reply text do not break the scan.
func firstBalancedObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func truncateReply(s string) string {
	runes := []rune(s)
	if len(runes) <= maxRawReply {
		return s
	}
	return string(runes[:maxRawReply])
}
