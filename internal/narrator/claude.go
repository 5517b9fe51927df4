package narrator

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// APIKeyEnv is the environment variable holding the text-generation API key.
const APIKeyEnv = "ANTHROPIC_API_KEY"

// Options configures the Claude-backed narrator.
type Options struct {
	// Model is the model identifier, e.g. "claude-3-5-haiku-latest".
	Model string
	// MaxTokens bounds each narration response.
	MaxTokens int
	// Timeout bounds each service call; combat never waits longer than this.
	Timeout time.Duration
}

// Claude narrates events through the Anthropic Messages API.
type Claude struct {
	client anthropic.Client
	opts   Options
	logger *zap.Logger
}

// NewClaude creates a Claude narrator with the given API key.
//
// Precondition: apiKey must be non-empty; logger must be non-nil.
func NewClaude(apiKey string, opts Options, logger *zap.Logger) *Claude {
	return &Claude{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		opts:   opts,
		logger: logger,
	}
}

// New returns a Claude narrator when enabled and an API key is present in the
// environment, and the Disabled narrator otherwise. A missing key downgrades
// with a warning instead of failing startup.
func New(enabled bool, opts Options, logger *zap.Logger) Narrator {
	if !enabled {
		return Disabled{}
	}
	apiKey := os.Getenv(APIKeyEnv)
	if apiKey == "" {
		logger.Warn("narration disabled: no API key configured", zap.String("env", APIKeyEnv))
		return Disabled{}
	}
	return NewClaude(apiKey, opts, logger)
}

// Narrate sends the event prompt to the service and returns the generated
// prose. Service errors, timeouts, and empty responses are logged at warn
// level and reported as no narration; they never propagate.
func (c *Claude) Narrate(ctx context.Context, ev Event) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.opts.Model),
		MaxTokens: int64(c.opts.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(Prompt(ev))),
		},
	})
	if err != nil {
		c.logger.Warn("narration failed", zap.Error(err))
		return "", false
	}

	var b strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		c.logger.Warn("narration returned no text")
		return "", false
	}
	return text, true
}
