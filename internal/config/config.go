package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// Config aggregates every setting the service reads.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Voice  VoiceConfig
	Sensor SensorConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	voice, err := loadVoiceConfig(ai)
	if err != nil {
		return nil, err
	}

	sensor, err := loadSensorConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Voice: voice, Sensor: sensor}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// Providers understood by AIConfig.
const (
	ProviderArk    = "ark"
	ProviderGemini = "gemini"
)

// AIConfig describes the generation model. The same credentials drive both
// roast generation and, for the gemini provider, the schema-constrained
// JSON response mode.
type AIConfig struct {
	Provider     string
	APIKey       string
	AccessKey    string
	SecretKey    string
	Model        string
	BaseURL      string
	Region       string
	Temperature  *float64
	TopP         *float64
	MaxTokens    *int
	HistoryLimit int
}

// Enabled reports whether the required credentials were provided.
func (c AIConfig) Enabled() bool {
	if c.Model == "" {
		return false
	}
	switch c.Provider {
	case ProviderGemini:
		return c.APIKey != ""
	default:
		return c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != "")
	}
}

// NewChatModel builds an eino chat model for the configured provider.
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("AI credentials or model missing: set CATTY_AI_PROVIDER plus ARK_API_KEY/AK+SK or GEMINI_API_KEY and CATTY_MODEL")
	}

	switch c.Provider {
	case ProviderGemini:
		client, err := c.NewGenAIClient(ctx)
		if err != nil {
			return nil, err
		}
		return gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  c.Model,
		})
	default:
		var temperature *float32
		if c.Temperature != nil {
			val := float32(*c.Temperature)
			temperature = &val
		}

		var topP *float32
		if c.TopP != nil {
			val := float32(*c.TopP)
			topP = &val
		}

		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			BaseURL:     c.BaseURL,
			Region:      c.Region,
			APIKey:      c.APIKey,
			AccessKey:   c.AccessKey,
			SecretKey:   c.SecretKey,
			Model:       c.Model,
			MaxTokens:   c.MaxTokens,
			Temperature: temperature,
			TopP:        topP,
		})
	}
}

// NewGenAIClient builds the raw Gemini client used for schema-constrained
// generation and speech synthesis.
func (c AIConfig) NewGenAIClient(ctx context.Context) (*genai.Client, error) {
	if c.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{APIKey: c.APIKey})
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("CATTY_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("CATTY_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("CATTY_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	historyLimit := 4
	if override, err := parseOptionalIntEnv("CATTY_HISTORY_LIMIT"); err != nil {
		return AIConfig{}, err
	} else if override != nil && *override >= 1 {
		historyLimit = *override
	}

	provider := strings.ToLower(getEnvOrDefault("CATTY_AI_PROVIDER", ProviderGemini))
	if provider != ProviderArk && provider != ProviderGemini {
		return AIConfig{}, fmt.Errorf("invalid CATTY_AI_PROVIDER value: %q", provider)
	}

	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if provider == ProviderArk || apiKey == "" {
		if arkKey := strings.TrimSpace(os.Getenv("ARK_API_KEY")); arkKey != "" {
			apiKey = arkKey
		}
	}

	defaultModel := "gemini-2.0-flash"
	if provider == ProviderArk {
		defaultModel = ""
	}

	return AIConfig{
		Provider:     provider,
		APIKey:       apiKey,
		AccessKey:    strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:    strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:        getEnvOrDefault("CATTY_MODEL", defaultModel),
		BaseURL:      getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:       getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:  temperature,
		TopP:         topP,
		MaxTokens:    maxTokens,
		HistoryLimit: historyLimit,
	}, nil
}

// VoiceConfig describes the TTS collaborator. Synthesis is best-effort: when
// disabled or failing, replies simply ship without audio.
type VoiceConfig struct {
	Enabled    bool
	APIKey     string
	Model      string
	Voice      string
	SampleRate int
	Timeout    int
}

func loadVoiceConfig(ai AIConfig) (VoiceConfig, error) {
	timeout := 30
	if override, err := parseOptionalIntEnv("CATTY_VOICE_TIMEOUT"); err != nil {
		return VoiceConfig{}, err
	} else if override != nil && *override > 0 {
		timeout = *override
	}

	sampleRate := 24000
	if override, err := parseOptionalIntEnv("CATTY_VOICE_SAMPLE_RATE"); err != nil {
		return VoiceConfig{}, err
	} else if override != nil && *override > 0 {
		sampleRate = *override
	}

	enabled, err := parseBoolEnv("CATTY_VOICE_ENABLED", true)
	if err != nil {
		return VoiceConfig{}, err
	}

	apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if apiKey == "" {
		// Voice rides on the same Gemini project as generation.
		apiKey = ai.APIKey
	}

	return VoiceConfig{
		Enabled:    enabled && apiKey != "",
		APIKey:     apiKey,
		Model:      getEnvOrDefault("CATTY_VOICE_MODEL", "gemini-2.5-flash-preview-tts"),
		Voice:      getEnvOrDefault("CATTY_VOICE_NAME", "Puck"),
		SampleRate: sampleRate,
		Timeout:    timeout,
	}, nil
}

// SensorConfig tunes the ambient input channels.
type SensorConfig struct {
	ShakeThreshold  float64
	ShakeCooldownMS int
}

func loadSensorConfig() (SensorConfig, error) {
	threshold := 15.0
	if override, err := parseOptionalFloatEnv("CATTY_SHAKE_THRESHOLD"); err != nil {
		return SensorConfig{}, err
	} else if override != nil && *override > 0 {
		threshold = *override
	}

	cooldown := 1500
	if override, err := parseOptionalIntEnv("CATTY_SHAKE_COOLDOWN_MS"); err != nil {
		return SensorConfig{}, err
	} else if override != nil && *override > 0 {
		cooldown = *override
	}

	return SensorConfig{ShakeThreshold: threshold, ShakeCooldownMS: cooldown}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
