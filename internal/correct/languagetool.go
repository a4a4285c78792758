package correct

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/alnah/go-promptcraft/internal/apierr"
)

// LanguageTool configuration.
const (
	defaultLanguageToolURL      = "https://api.languagetool.org"
	defaultLanguageToolLanguage = "en-US"
	defaultLanguageToolTimeout  = 10 * time.Second

	// Response size limit to prevent OOM from malformed responses (1MB).
	maxResponseSize = 1 << 20
)

// httpDoer abstracts the HTTP client for testing.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Compile-time interface compliance check.
var _ Corrector = (*LanguageToolCorrector)(nil)

// LanguageToolCorrector checks text against a LanguageTool-compatible
// /v2/check endpoint and applies the first suggested replacement of every
// match.
type LanguageToolCorrector struct {
	baseURL    string
	language   string
	httpClient httpDoer
}

// LanguageToolOption configures a LanguageToolCorrector.
type LanguageToolOption func(*LanguageToolCorrector)

// WithLanguageToolURL sets the server base URL (self-hosted or tests).
func WithLanguageToolURL(u string) LanguageToolOption {
	return func(c *LanguageToolCorrector) {
		if u != "" {
			c.baseURL = strings.TrimSuffix(u, "/")
		}
	}
}

// WithLanguage sets the LanguageTool language code, e.g. "en-GB".
func WithLanguage(code string) LanguageToolOption {
	return func(c *LanguageToolCorrector) {
		if code != "" {
			c.language = code
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client httpDoer) LanguageToolOption {
	return func(c *LanguageToolCorrector) {
		c.httpClient = client
	}
}

// NewLanguageToolCorrector creates a LanguageTool corrector.
func NewLanguageToolCorrector(opts ...LanguageToolOption) *LanguageToolCorrector {
	c := &LanguageToolCorrector{
		baseURL:  defaultLanguageToolURL,
		language: defaultLanguageToolLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: defaultLanguageToolTimeout}
	}
	return c
}

// languageToolResponse is the subset of the /v2/check reply we use.
type languageToolResponse struct {
	Matches []languageToolMatch `json:"matches"`
}

type languageToolMatch struct {
	Offset       int `json:"offset"`
	Length       int `json:"length"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
}

// Correct sends text to the server and applies its suggestions.
func (c *LanguageToolCorrector) Correct(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	matches, err := c.check(ctx, text)
	if err != nil {
		return "", err
	}
	return applyMatches(text, matches)
}

func (c *LanguageToolCorrector) check(ctx context.Context, text string) (_ []languageToolMatch, err error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request timed out: %v: %w", err, apierr.ErrTimeout)
		}
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", closeErr)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.FromStatus(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result languageToolResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v: %w", err, apierr.ErrMalformedResponse)
	}
	return result.Matches, nil
}

// applyMatches applies the first replacement of each match from the end of
// the text backwards, so earlier offsets stay valid. Offsets are UTF-16 code
// units, as reported by LanguageTool. Overlapping matches are skipped.
func applyMatches(text string, matches []languageToolMatch) (string, error) {
	units := utf16.Encode([]rune(text))

	sorted := make([]languageToolMatch, 0, len(matches))
	for _, m := range matches {
		if m.Offset < 0 || m.Length < 0 || m.Offset+m.Length > len(units) {
			return "", fmt.Errorf("match [%d,+%d] outside text of length %d: %w",
				m.Offset, m.Length, len(units), apierr.ErrMalformedResponse)
		}
		if len(m.Replacements) == 0 {
			continue
		}
		sorted = append(sorted, m)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset > sorted[j].Offset
	})

	limit := len(units)
	for _, m := range sorted {
		end := m.Offset + m.Length
		if end > limit {
			continue
		}
		repl := utf16.Encode([]rune(m.Replacements[0].Value))
		out := make([]uint16, 0, len(units)-m.Length+len(repl))
		out = append(out, units[:m.Offset]...)
		out = append(out, repl...)
		out = append(out, units[end:]...)
		units = out
		limit = m.Offset
	}
	return string(utf16.Decode(units)), nil
}
