package roast

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/aadinq/catty/backend/internal/config"
	"github.com/aadinq/catty/backend/internal/model/chat"
	"github.com/aadinq/catty/backend/internal/model/mood"
)

// Result is the validated reply contract from the generation collaborator.
type Result struct {
	Reply string    `json:"reply"`
	Mood  mood.Mood `json:"mood"`
}

// Fallback is the fixed result returned when the provider is unreachable or
// its payload cannot be repaired. The chat must always show something.
func Fallback() Result {
	return Result{
		Reply: "Internet hag raha hai ya teri kismat chomu. Phirse try kar bsdk.",
		Mood:  mood.Annoyed,
	}
}

const (
	emptyReplyText = "Kuch samajh nahi aaya, dhang se bol bsdk."
	keyMissingText = "API Key missing hai bsdk!"
)

// Roaster is the narrow dependency the orchestrator holds. Implementations
// must be total: any failure is converted to an in-band Result.
type Roaster interface {
	Generate(ctx context.Context, utterance string, history []chat.Turn) Result
}

// Client calls the generation provider with conversation context and repairs
// its structured output. Two strategies are wired: a direct Gemini call in
// JSON response mode (preferred when the gemini provider is configured) and
// an eino prompt-template chain with the JSON contract carried in the system
// instruction.
type Client struct {
	cfg        config.AIConfig
	chain      compose.Runnable[map[string]any, *schema.Message]
	structured *genai.Client
}

// NewClient compiles the generation chain for the configured provider.
func NewClient(ctx context.Context, cfg config.AIConfig) (*Client, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile roast chain: %w", err)
	}

	client := &Client{cfg: cfg, chain: runnable}

	if cfg.Provider == config.ProviderGemini {
		structured, err := cfg.NewGenAIClient(ctx)
		if err != nil {
			return nil, err
		}
		client.structured = structured
	}

	return client, nil
}

// Generate produces a Result for the utterance plus a bounded history
// window. It never returns an error: transport and payload failures resolve
// to the fixed fallback.
func (c *Client) Generate(ctx context.Context, utterance string, history []chat.Turn) Result {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		utterance = "Roast me!"
	}
	history = c.boundHistory(history)

	if c.structured != nil {
		if result, err := c.generateStructured(ctx, utterance, history); err == nil {
			return result
		} else {
			log.Printf("[roast] structured generation failed, trying chain: %v", err)
		}
	}

	response, err := c.chain.Invoke(ctx, map[string]any{
		"system":  systemInstruction(),
		"history": historyMessages(history),
		"query":   utterance,
	})
	if err != nil || response == nil {
		log.Printf("[roast] chain invoke failed: %v", err)
		return Fallback()
	}

	result := decodeRoast(response.Content)
	log.Printf("[roast] generated reply mood=%s length=%d", result.Mood, len(result.Reply))
	return result
}

// generateStructured asks Gemini for a schema-constrained JSON body, the way
// the web client originally did.
func (c *Client) generateStructured(ctx context.Context, utterance string, history []chat.Turn) (Result, error) {
	temperature := float32(0.95)
	if c.cfg.Temperature != nil {
		temperature = float32(*c.cfg.Temperature)
	}

	response, err := c.structured.Models.GenerateContent(ctx, c.cfg.Model, structuredContents(utterance, history), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction(), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr(temperature),
	})
	if err != nil {
		return Result{}, err
	}

	text := response.Text()
	if strings.TrimSpace(text) == "" {
		return Result{}, fmt.Errorf("empty response body")
	}

	return decodeRoast(text), nil
}

// structuredContents renders the history window plus the new utterance as
// labeled Gemini contents. History turns keep their original role so the
// model sees a real dialogue, not one flattened prompt.
func structuredContents(utterance string, history []chat.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		role := genai.Role(genai.RoleUser)
		label := "User"
		if turn.Sender == chat.SenderCat {
			role = genai.Role(genai.RoleModel)
			label = "Catty"
		}
		contents = append(contents, genai.NewContentFromText(fmt.Sprintf("%s: %s", label, turn.Text), role))
	}
	return append(contents, genai.NewContentFromText(fmt.Sprintf("User: %s", utterance), genai.RoleUser))
}

// boundHistory trims to the most recent configured window. Callers already
// snapshot before appending the outgoing message, so a message never sees
// itself here.
func (c *Client) boundHistory(history []chat.Turn) []chat.Turn {
	limit := c.cfg.HistoryLimit
	if limit <= 0 {
		limit = 4
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history
}

func historyMessages(history []chat.Turn) []*schema.Message {
	if len(history) == 0 {
		return nil
	}

	messages := make([]*schema.Message, 0, len(history))
	for _, turn := range history {
		switch turn.Sender {
		case chat.SenderUser:
			messages = append(messages, schema.UserMessage(turn.Text))
		case chat.SenderCat:
			messages = append(messages, schema.AssistantMessage(turn.Text, nil))
		}
	}
	return messages
}

// Disabled returns a Roaster for deployments without provider credentials:
// every call resolves to the key-missing roast so the UI stays in character.
func Disabled() Roaster {
	return disabledRoaster{}
}

type disabledRoaster struct{}

func (disabledRoaster) Generate(context.Context, string, []chat.Turn) Result {
	return Result{Reply: keyMissingText, Mood: mood.Angry}
}
