package correct_test

// Notes:
// - OpenAICorrector is exercised through a real go-openai client pointed at
//   an httptest.Server, plus a chatCompleter mock to inspect requests.
// - LanguageToolCorrector uses httptest.Server for the /v2/check endpoint.

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-promptcraft/internal/apierr"
	"github.com/alnah/go-promptcraft/internal/correct"
)

// ---------------------------------------------------------------------------
// Helpers - OpenAI mock server and chat completer
// ---------------------------------------------------------------------------

func chatResponse(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func newOpenAIServer(t *testing.T, status int, body any) *openai.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return openai.NewClientWithConfig(cfg)
}

type mockChatCompleter struct {
	mu       sync.Mutex
	response openai.ChatCompletionResponse
	err      error
	captured []openai.ChatCompletionRequest
}

func (m *mockChatCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.captured = append(m.captured, req)
	return m.response, m.err
}

func (m *mockChatCompleter) calls() []openai.ChatCompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]openai.ChatCompletionRequest(nil), m.captured...)
}

// ---------------------------------------------------------------------------
// TestOpenAICorrector
// ---------------------------------------------------------------------------

func TestOpenAICorrector_Success(t *testing.T) {
	t.Parallel()

	client := newOpenAIServer(t, http.StatusOK, chatResponse("I need help."))
	c := correct.NewOpenAICorrector(client)

	got, err := c.Correct(context.Background(), "i nneed heelp")
	if err != nil {
		t.Fatalf("Correct() unexpected error: %v", err)
	}
	if got != "I need help." {
		t.Errorf("Correct() = %q, want %q", got, "I need help.")
	}
}

func TestOpenAICorrector_Request(t *testing.T) {
	t.Parallel()

	mock := &mockChatCompleter{response: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: `"fixed text"`}}},
	}}
	c := correct.NewOpenAICorrector(nil, correct.WithChatCompleter(mock), correct.WithOpenAIModel("gpt-test"))

	got, err := c.Correct(context.Background(), "fixd text")
	if err != nil {
		t.Fatalf("Correct() unexpected error: %v", err)
	}
	if got != "fixed text" {
		t.Errorf("Correct() = %q, surrounding quotes should be stripped", got)
	}

	calls := mock.calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly 1 request (no retries), got %d", len(calls))
	}
	req := calls[0]
	if req.Model != "gpt-test" {
		t.Errorf("model = %q, want gpt-test", req.Model)
	}
	if req.Temperature != 0 {
		t.Errorf("temperature = %v, want 0", req.Temperature)
	}
	if len(req.Messages) != 2 ||
		req.Messages[0].Role != openai.ChatMessageRoleSystem ||
		req.Messages[1].Role != openai.ChatMessageRoleUser ||
		req.Messages[1].Content != "fixd text" {
		t.Errorf("unexpected messages: %+v", req.Messages)
	}
}

func TestOpenAICorrector_BlankInputSkipsRequest(t *testing.T) {
	t.Parallel()

	mock := &mockChatCompleter{}
	c := correct.NewOpenAICorrector(nil, correct.WithChatCompleter(mock))

	got, err := c.Correct(context.Background(), "   ")
	if err != nil || got != "   " {
		t.Errorf("Correct(blank) = %q, %v", got, err)
	}
	if n := len(mock.calls()); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestOpenAICorrector_Errors(t *testing.T) {
	t.Parallel()

	apiError := func(msg string) map[string]any {
		return map[string]any{"error": map[string]any{"message": msg, "type": "invalid_request_error"}}
	}

	tests := []struct {
		name   string
		status int
		body   any
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, apiError("Incorrect API key provided"), apierr.ErrAuthFailed},
		{"rate limit", http.StatusTooManyRequests, apiError("Rate limit reached"), apierr.ErrRateLimit},
		{"quota", http.StatusTooManyRequests, apiError("You exceeded your current quota"), apierr.ErrQuotaExceeded},
		{"server error", http.StatusInternalServerError, apiError("server error"), apierr.ErrTimeout},
		{"empty reply", http.StatusOK, chatResponse("   "), apierr.ErrMalformedResponse},
		{"multi-paragraph reply", http.StatusOK, chatResponse("Sure!\n\nHere it is: x"), apierr.ErrMalformedResponse},
		{"no choices", http.StatusOK, map[string]any{"id": "x", "choices": []any{}}, apierr.ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := correct.NewOpenAICorrector(newOpenAIServer(t, tt.status, tt.body))
			_, err := c.Correct(context.Background(), "some text")
			if !errors.Is(err, tt.want) {
				t.Errorf("Correct() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewOpenAICorrectorFromKey_Empty(t *testing.T) {
	t.Parallel()

	if _, err := correct.NewOpenAICorrectorFromKey(""); !errors.Is(err, correct.ErrEmptyAPIKey) {
		t.Errorf("error = %v, want ErrEmptyAPIKey", err)
	}
	if c, err := correct.NewOpenAICorrectorFromKey("sk-test"); err != nil || c == nil {
		t.Errorf("NewOpenAICorrectorFromKey(key) = %v, %v", c, err)
	}
}

func TestValidateEcho(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		output  string
		want    string
		wantErr bool
	}{
		{"plain", "teh cat", "The cat.", "The cat.", false},
		{"trimmed", "x", "  y \n", "y", false},
		{"quoted", "x", `"y"`, "y", false},
		{"empty", "x", "", "", true},
		{"only quotes", "x", `""`, "", true},
		{"two paragraphs", "x", "a\n\nb", "", true},
		{"runaway", "abc", strings.Repeat("a", 2*3+65), "", true},
		{"at the limit", "abc", strings.Repeat("a", 2*3+64), strings.Repeat("a", 70), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := correct.ValidateEcho(tt.input, tt.output)
			if tt.wantErr {
				if !errors.Is(err, apierr.ErrMalformedResponse) {
					t.Errorf("error = %v, want ErrMalformedResponse", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ValidateEcho() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLanguageToolCorrector
// ---------------------------------------------------------------------------

type ltMatch struct {
	Offset       int                 `json:"offset"`
	Length       int                 `json:"length"`
	Replacements []map[string]string `json:"replacements"`
}

func match(offset, length int, values ...string) ltMatch {
	m := ltMatch{Offset: offset, Length: length}
	for _, v := range values {
		m.Replacements = append(m.Replacements, map[string]string{"value": v})
	}
	return m
}

func newLanguageToolServer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()

	var mu sync.Mutex
	var texts []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v2/check" {
			http.NotFound(w, r)
			return
		}
		mu.Lock()
		texts = append(texts, r.FormValue("text")+"|"+r.FormValue("language"))
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &texts
}

func matchesBody(t *testing.T, matches ...ltMatch) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{"matches": matches})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}

func TestLanguageToolCorrector_AppliesFromTheEnd(t *testing.T) {
	t.Parallel()

	text := "i nneed heelp"
	body := matchesBody(t,
		match(0, 1, "I"),
		match(2, 5, "need", "kneed"),
		match(8, 5, "help"),
		match(8, 1), // no replacements: ignored
	)
	srv, texts := newLanguageToolServer(t, http.StatusOK, body)

	c := correct.NewLanguageToolCorrector(correct.WithLanguageToolURL(srv.URL+"/"), correct.WithLanguage("en-GB"))
	got, err := c.Correct(context.Background(), text)
	if err != nil {
		t.Fatalf("Correct() unexpected error: %v", err)
	}
	if got != "I need help" {
		t.Errorf("Correct() = %q, want %q", got, "I need help")
	}
	if len(*texts) != 1 || (*texts)[0] != text+"|en-GB" {
		t.Errorf("server saw %v", *texts)
	}
}

func TestLanguageToolCorrector_UTF16Offsets(t *testing.T) {
	t.Parallel()

	// The emoji takes two UTF-16 code units, so "teh" starts at offset 3.
	srv, _ := newLanguageToolServer(t, http.StatusOK, matchesBody(t, match(3, 3, "the")))

	c := correct.NewLanguageToolCorrector(correct.WithLanguageToolURL(srv.URL))
	got, err := c.Correct(context.Background(), "😀 teh end")
	if err != nil {
		t.Fatalf("Correct() unexpected error: %v", err)
	}
	if got != "😀 the end" {
		t.Errorf("Correct() = %q, want %q", got, "😀 the end")
	}
}

func TestLanguageToolCorrector_OverlapSkipped(t *testing.T) {
	t.Parallel()

	srv, _ := newLanguageToolServer(t, http.StatusOK, matchesBody(t, match(0, 5, "AAAAA"), match(3, 4, "B")))

	c := correct.NewLanguageToolCorrector(correct.WithLanguageToolURL(srv.URL))
	got, err := c.Correct(context.Background(), "abcdefg")
	if err != nil {
		t.Fatalf("Correct() unexpected error: %v", err)
	}
	if got != "abcB" {
		t.Errorf("Correct() = %q, want %q", got, "abcB")
	}
}

func TestLanguageToolCorrector_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"bad json", http.StatusOK, "{not json", apierr.ErrMalformedResponse},
		{"offset out of range", http.StatusOK, `{"matches":[{"offset":40,"length":2,"replacements":[{"value":"x"}]}]}`, apierr.ErrMalformedResponse},
		{"negative length", http.StatusOK, `{"matches":[{"offset":0,"length":-1,"replacements":[{"value":"x"}]}]}`, apierr.ErrMalformedResponse},
		{"server error", http.StatusInternalServerError, "oops", apierr.ErrTimeout},
		{"bad request", http.StatusBadRequest, "missing language", apierr.ErrBadRequest},
		{"rate limited", http.StatusTooManyRequests, "too many", apierr.ErrRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := newLanguageToolServer(t, tt.status, tt.body)
			c := correct.NewLanguageToolCorrector(correct.WithLanguageToolURL(srv.URL))

			_, err := c.Correct(context.Background(), "short text")
			if !errors.Is(err, tt.want) {
				t.Errorf("Correct() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLanguageToolCorrector_CanceledContext(t *testing.T) {
	t.Parallel()

	srv, _ := newLanguageToolServer(t, http.StatusOK, `{"matches":[]}`)
	c := correct.NewLanguageToolCorrector(correct.WithLanguageToolURL(srv.URL), correct.WithHTTPClient(srv.Client()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Correct(ctx, "text")
	if !errors.Is(err, apierr.ErrTimeout) {
		t.Errorf("Correct() error = %v, want ErrTimeout", err)
	}
}
