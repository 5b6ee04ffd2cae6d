package roast

import (
	"testing"

	"google.golang.org/genai"

	"github.com/aadinq/catty/backend/internal/model/chat"
)

func TestStructuredContentsRolesAndLabels(t *testing.T) {
	history := []chat.Turn{
		{Text: "hi", Sender: chat.SenderUser},
		{Text: "Nikal chomu", Sender: chat.SenderCat},
	}

	contents := structuredContents("kaise ho", history)

	if len(contents) != 3 {
		t.Fatalf("expected history plus utterance, got %d contents", len(contents))
	}

	if contents[0].Role != genai.RoleUser {
		t.Fatalf("expected user role for user turn, got %q", contents[0].Role)
	}
	if got := contents[0].Parts[0].Text; got != "User: hi" {
		t.Fatalf("unexpected user turn text: %q", got)
	}

	if contents[1].Role != genai.RoleModel {
		t.Fatalf("expected model role for cat turn, got %q", contents[1].Role)
	}
	if got := contents[1].Parts[0].Text; got != "Catty: Nikal chomu" {
		t.Fatalf("unexpected cat turn text: %q", got)
	}

	if contents[2].Role != genai.RoleUser {
		t.Fatalf("expected user role for the new utterance, got %q", contents[2].Role)
	}
	if got := contents[2].Parts[0].Text; got != "User: kaise ho" {
		t.Fatalf("unexpected utterance text: %q", got)
	}
}

func TestStructuredContentsEmptyHistory(t *testing.T) {
	contents := structuredContents("Roast me!", nil)

	if len(contents) != 1 {
		t.Fatalf("expected a single content, got %d", len(contents))
	}
	if contents[0].Role != genai.RoleUser || contents[0].Parts[0].Text != "User: Roast me!" {
		t.Fatalf("unexpected content: role=%q text=%q", contents[0].Role, contents[0].Parts[0].Text)
	}
}
