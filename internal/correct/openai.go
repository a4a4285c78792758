package correct

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-promptcraft/internal/apierr"
)

// OpenAI configuration.
const (
	defaultOpenAIModel = openai.GPT4oMini

	// A correction echo never needs more than a short paragraph.
	defaultOpenAIMaxTokens = 512

	proofreadPrompt = `You are a proofreader. Correct the spelling and grammar of the user's text.
Keep the meaning, the language, and the wording as close to the original as possible.
Reply with the corrected text only, as a single paragraph, without quotes or commentary.`
)

// chatCompleter is the subset of *openai.Client used here.
// It allows injecting mocks in tests.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance checks.
var (
	_ Corrector     = (*OpenAICorrector)(nil)
	_ chatCompleter = (*openai.Client)(nil)
)

// OpenAICorrector asks an OpenAI chat model for a corrected echo of the text.
// It makes exactly one request per call.
type OpenAICorrector struct {
	client chatCompleter
	model  string
}

// OpenAIOption configures an OpenAICorrector.
type OpenAIOption func(*OpenAICorrector)

// WithOpenAIModel sets the chat model. Empty keeps the default.
func WithOpenAIModel(model string) OpenAIOption {
	return func(c *OpenAICorrector) {
		if model != "" {
			c.model = model
		}
	}
}

// withChatCompleter sets a custom chat completer (for testing).
func withChatCompleter(cc chatCompleter) OpenAIOption {
	return func(c *OpenAICorrector) {
		c.client = cc
	}
}

// NewOpenAICorrector creates a corrector backed by client.
func NewOpenAICorrector(client *openai.Client, opts ...OpenAIOption) *OpenAICorrector {
	c := &OpenAICorrector{
		client: client,
		model:  defaultOpenAIModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewOpenAICorrectorFromKey builds the client from an API key.
// Returns ErrEmptyAPIKey if apiKey is empty.
func NewOpenAICorrectorFromKey(apiKey string, opts ...OpenAIOption) (*OpenAICorrector, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	return NewOpenAICorrector(openai.NewClient(apiKey), opts...), nil
}

// Correct returns the model's corrected text.
// Whitespace-only input is returned as is without a request.
// Errors wrap apierr sentinels; unusable replies wrap apierr.ErrMalformedResponse.
func (c *OpenAICorrector) Correct(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	req := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: defaultOpenAIMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: proofreadPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: 0,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response: %w", apierr.ErrMalformedResponse)
	}
	return validateEcho(text, resp.Choices[0].Message.Content)
}

// validateEcho rejects replies that cannot be a corrected copy of input:
// empty, several paragraphs, or much longer than the input.
func validateEcho(input, output string) (string, error) {
	out := strings.TrimSpace(output)
	if len(out) >= 2 && strings.HasPrefix(out, `"`) && strings.HasSuffix(out, `"`) {
		out = strings.TrimSpace(out[1 : len(out)-1])
	}

	switch {
	case out == "":
		return "", fmt.Errorf("empty correction: %w", apierr.ErrMalformedResponse)
	case strings.Contains(out, "\n\n"):
		return "", fmt.Errorf("multi-paragraph correction: %w", apierr.ErrMalformedResponse)
	case len(out) > 2*len(input)+64:
		return "", fmt.Errorf("correction of %d bytes for %d bytes of input: %w",
			len(out), len(input), apierr.ErrMalformedResponse)
	}
	return out, nil
}

// classifyOpenAIError maps go-openai errors to apierr sentinels.
func classifyOpenAIError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apierr.FromStatus(apiErr.HTTPStatusCode, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return apierr.FromStatus(reqErr.HTTPStatusCode, reqErr.Error())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", apierr.ErrTimeout)
	}

	return err
}
