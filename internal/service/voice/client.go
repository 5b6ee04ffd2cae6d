// Package voice wraps the speech-synthesis collaborator. Synthesis is
// decorative: every failure path collapses to "no audio this turn" and the
// conversation pipeline carries on.
package voice

import (
	"context"
	"encoding/base64"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/aadinq/catty/backend/internal/config"
)

// Synthesizer is the narrow dependency the orchestrator holds. Returns the
// base64-encoded PCM payload or "" when voice is unavailable; never errors.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) string
}

// Client synthesizes speech through the Gemini TTS model. Output is base64
// little-endian 16-bit PCM mono at the configured sample rate.
type Client struct {
	cfg    config.VoiceConfig
	client *genai.Client
}

// NewClient builds the TTS client, or returns nil (not an error) when voice
// is disabled so callers can wire it straight into the orchestrator.
func NewClient(ctx context.Context, cfg config.VoiceConfig) (*Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, err
	}

	return &Client{cfg: cfg, client: client}, nil
}

// SampleRate reports the PCM sample rate of synthesized payloads.
func (c *Client) SampleRate() int {
	return c.cfg.SampleRate
}

// Synthesize requests spoken audio for the reply text. Any failure is logged
// and converted to "", which callers treat as skip-voice.
func (c *Client) Synthesize(ctx context.Context, text string) string {
	if c == nil || c.client == nil {
		return ""
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	timeout := time.Duration(c.cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	response, err := c.client.Models.GenerateContent(ctx, c.cfg.Model,
		genai.Text(text),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{string(genai.ModalityAudio)},
			SpeechConfig: &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: c.cfg.Voice},
				},
			},
		})
	if err != nil {
		log.Printf("[voice] synthesis failed: %v", err)
		return ""
	}

	data := inlineAudio(response)
	if len(data) == 0 {
		log.Printf("[voice] synthesis returned no audio data")
		return ""
	}

	return base64.StdEncoding.EncodeToString(data)
}

func inlineAudio(response *genai.GenerateContentResponse) []byte {
	if response == nil {
		return nil
	}
	for _, candidate := range response.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData.Data
			}
		}
	}
	return nil
}
