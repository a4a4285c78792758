package cli

// Notes:
// - The generator is the real local pipeline; only config, store and
//   factories are mocked.
// - History is inspected through the shared in-memory store after the
//   command closed its session.

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/config"
	"github.com/alnah/go-promptcraft/internal/history"
	"github.com/alnah/go-promptcraft/internal/kvstore"
	"github.com/alnah/go-promptcraft/internal/pipeline"
	"github.com/alnah/go-promptcraft/internal/questions"
	"github.com/alnah/go-promptcraft/internal/tone"
)

func generateOpts(t *testing.T, cat, tn string, answers ...string) generateOptions {
	t.Helper()
	opts, err := parseGenerateOptions(cat, tn, answers)
	if err != nil {
		t.Fatalf("parseGenerateOptions(%q, %q, %q) unexpected error: %v", cat, tn, answers, err)
	}
	return opts
}

func storedRecords(t *testing.T, m *testMocks) []history.Record {
	t.Helper()
	return history.New(m.store.store.MemoryStore).List(context.Background())
}

// ---------------------------------------------------------------------------
// Unit tests for parsing helpers
// ---------------------------------------------------------------------------

func TestParseAnswers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pairs   []string
		want    map[string]string
		wantErr bool
	}{
		{"none", nil, nil, false},
		{"single", []string{"level=Advanced"}, map[string]string{"level": "Advanced"}, false},
		{"value keeps equals", []string{"goal=a=b"}, map[string]string{"goal": "a=b"}, false},
		{"later wins", []string{"level=x", "level=y"}, map[string]string{"level": "y"}, false},
		{"id is trimmed", []string{" level =x"}, map[string]string{"level": "x"}, false},
		{"missing equals", []string{"level"}, nil, true},
		{"empty id", []string{"=x"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseAnswers(tt.pairs)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAnswer) {
					t.Fatalf("ParseAnswers(%q) error = %v, want ErrInvalidAnswer", tt.pairs, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAnswers(%q) unexpected error: %v", tt.pairs, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseAnswers(%q) = %v, want %v", tt.pairs, got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("ParseAnswers(%q)[%q] = %q, want %q", tt.pairs, k, got[k], v)
				}
			}
		})
	}
}

func TestParseGenerateOptions_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cat, tn string
		want    error
	}{
		{"unknown category", "poetry", tone.Friendly, category.ErrUnknown},
		{"unknown tone", "", "angry", tone.ErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseGenerateOptions(tt.cat, tt.tn, nil)
			if !errors.Is(err, tt.want) {
				t.Errorf("parseGenerateOptions(%q, %q) error = %v, want %v", tt.cat, tt.tn, err, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Tests for runGenerate
// ---------------------------------------------------------------------------

func TestRunGenerate_Text(t *testing.T) {
	t.Parallel()

	env, m := testEnv()
	err := RunGenerate(testCmd(context.Background()), env, "i need 2 days leave for vacation", generateOpts(t, "", tone.Formal))
	if err != nil {
		t.Fatalf("RunGenerate() unexpected error: %v", err)
	}

	out := m.stdout.String()
	if !strings.HasPrefix(out, "System:\n") || !strings.Contains(out, "\n\nPrompt:\n") {
		t.Errorf("stdout = %q, want System and Prompt blocks", out)
	}
	if !strings.Contains(out, "2 days of leave") {
		t.Errorf("stdout missing rewritten problem:\n%s", out)
	}
	if got := m.stderr.String(); !strings.Contains(got, "Category: Leave Request, tone: Formal") {
		t.Errorf("stderr = %q, want category and tone summary", got)
	}

	records := storedRecords(t, m)
	if len(records) != 1 {
		t.Fatalf("history has %d records, want 1", len(records))
	}
	if records[0].Problem != "i need 2 days leave for vacation" {
		t.Errorf("recorded Problem = %q, want raw input", records[0].Problem)
	}
	if records[0].Category != category.Leave || records[0].Tone != tone.Formal {
		t.Errorf("recorded %s/%s, want leave/formal", records[0].Category, records[0].Tone)
	}
	if !records[0].Timestamp.Equal(testNow) {
		t.Errorf("recorded Timestamp = %v, want %v", records[0].Timestamp, testNow)
	}
	if got := m.store.store.Closes(); got != 1 {
		t.Errorf("store closed %d times, want 1", got)
	}
}

func TestRunGenerate_JSON(t *testing.T) {
	t.Parallel()

	env, m := testEnv()
	opts := generateOpts(t, "coding", tone.Technical)
	opts.asJSON = true

	if err := RunGenerate(testCmd(context.Background()), env, "fix my func", opts); err != nil {
		t.Fatalf("RunGenerate() unexpected error: %v", err)
	}

	var got resultJSON
	if err := json.Unmarshal([]byte(m.stdout.String()), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, m.stdout.String())
	}
	if got.Category != category.Coding || got.Tone != tone.Technical {
		t.Errorf("JSON category/tone = %s/%s, want coding/technical", got.Category, got.Tone)
	}
	if got.Type != category.CodingCategory.Label() {
		t.Errorf("JSON type = %q, want %q", got.Type, category.CodingCategory.Label())
	}
	if got.System == "" || got.Prompt == "" {
		t.Errorf("JSON = %+v, want system and prompt", got)
	}
	if m.stderr.String() != "" {
		t.Errorf("stderr = %q, want empty in JSON mode", m.stderr.String())
	}
}

func TestRunGenerate_PromptOnly(t *testing.T) {
	t.Parallel()

	env, m := testEnv()
	opts := generateOpts(t, "", tone.Friendly)
	opts.promptOnly = true

	if err := RunGenerate(testCmd(context.Background()), env, "write a blog about go", opts); err != nil {
		t.Fatalf("RunGenerate() unexpected error: %v", err)
	}
	if strings.Contains(m.stdout.String(), "System:") {
		t.Errorf("stdout = %q, want prompt only", m.stdout.String())
	}
	if !strings.Contains(m.stdout.String(), tone.FriendlyTone.Instruction()) {
		t.Errorf("stdout missing tone instruction:\n%s", m.stdout.String())
	}
}

func TestRunGenerate_EmptyProblem(t *testing.T) {
	t.Parallel()

	env, m := testEnv()
	if err := RunGenerate(testCmd(context.Background()), env, "   \n", generateOpts(t, "", tone.Friendly)); err != nil {
		t.Fatalf("RunGenerate() unexpected error: %v", err)
	}

	if !strings.Contains(m.stderr.String(), "Nothing to improve") {
		t.Errorf("stderr = %q, want guard notice", m.stderr.String())
	}
	if !strings.Contains(m.stdout.String(), "Prompt:") {
		t.Errorf("stdout = %q, want the guard pair", m.stdout.String())
	}
	if got := storedRecords(t, m); len(got) != 0 {
		t.Errorf("history has %d records, want none for empty input", len(got))
	}
	if m.store.OpenCalls() != 0 {
		t.Errorf("store opened %d times, want 0", m.store.OpenCalls())
	}
}

func TestRunGenerate_NoHistory(t *testing.T) {
	t.Parallel()

	env, m := testEnv()
	opts := generateOpts(t, "", tone.Friendly)
	opts.noHistory = true

	if err := RunGenerate(testCmd(context.Background()), env, "fix my resume", opts); err != nil {
		t.Fatalf("RunGenerate() unexpected error: %v", err)
	}
	if m.store.OpenCalls() != 0 {
		t.Errorf("store opened %d times, want 0 with --no-history", m.store.OpenCalls())
	}
}

func TestRunGenerate_Truncates(t *testing.T) {
	t.Parallel()

	env, m := testEnv()
	long := strings.Repeat("word ", 150)

	if err := RunGenerate(testCmd(context.Background()), env, long, generateOpts(t, "", tone.Friendly)); err != nil {
		t.Fatalf("RunGenerate() unexpected error: %v", err)
	}
	if !strings.Contains(m.stderr.String(), "truncated to 500") {
		t.Errorf("stderr = %q, want truncation warning", m.stderr.String())
	}
	records := storedRecords(t, m)
	if len(records) != 1 {
		t.Fatalf("history has %d records, want 1", len(records))
	}
	if n := len([]rune(records[0].Problem)); n > pipeline.MaxProblemLength {
		t.Errorf("recorded problem has %d runes, want at most %d", n, pipeline.MaxProblemLength)
	}
}

func TestRunGenerate_Answers(t *testing.T) {
	t.Parallel()

	t.Run("valid answers are appended", func(t *testing.T) {
		t.Parallel()
		env, m := testEnv()
		opts := generateOpts(t, "", tone.Formal, "duration=3 days", "reason=vacation")

		if err := RunGenerate(testCmd(context.Background()), env, "i need leave", opts); err != nil {
			t.Fatalf("RunGenerate() unexpected error: %v", err)
		}
		out := m.stdout.String()
		if !strings.Contains(out, "Additional context:") {
			t.Fatalf("stdout missing context block:\n%s", out)
		}
		if !strings.Contains(out, "- What is the reason for your leave? Vacation") {
			t.Errorf("stdout missing canonical select answer:\n%s", out)
		}
	})

	tests := []struct {
		name    string
		problem string
		answers []string
		want    error
	}{
		{"unknown question", "i need leave", []string{"colour=blue"}, questions.ErrUnknownQuestion},
		{"invalid option", "i need leave", []string{"reason=boredom"}, questions.ErrInvalidOption},
		{"no questions for category", "fix my func", []string{"level=Advanced"}, questions.ErrUnknownQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, m := testEnv()
			err := RunGenerate(testCmd(context.Background()), env, tt.problem, generateOpts(t, "", tone.Friendly, tt.answers...))
			if !errors.Is(err, tt.want) {
				t.Fatalf("RunGenerate() error = %v, want %v", err, tt.want)
			}
			if m.stdout.String() != "" {
				t.Errorf("stdout = %q, want nothing on invalid answers", m.stdout.String())
			}
		})
	}
}

func TestRunGenerate_SetupErrors(t *testing.T) {
	t.Parallel()

	t.Run("config", func(t *testing.T) {
		t.Parallel()
		env, m := testEnv()
		m.configLoader.LoadFunc = func() (config.Config, error) {
			return config.Config{}, config.ErrInvalidValue
		}
		err := RunGenerate(testCmd(context.Background()), env, "hello", generateOpts(t, "", tone.Friendly))
		if !errors.Is(err, config.ErrInvalidValue) {
			t.Errorf("RunGenerate() error = %v, want ErrInvalidValue", err)
		}
		if m.generator.Calls() != 0 {
			t.Errorf("generator built %d times, want 0", m.generator.Calls())
		}
	})

	t.Run("generator", func(t *testing.T) {
		t.Parallel()
		env, m := testEnv(withTestGetenv(staticEnv(map[string]string{EnvOpenAIAPIKey: "sk-test"})))
		m.generator.NewGeneratorFunc = func(config.Config, string) (*pipeline.Generator, error) {
			return nil, ErrAPIKeyMissing
		}
		err := RunGenerate(testCmd(context.Background()), env, "hello", generateOpts(t, "", tone.Friendly))
		if !errors.Is(err, ErrAPIKeyMissing) {
			t.Errorf("RunGenerate() error = %v, want ErrAPIKeyMissing", err)
		}
		if got := m.generator.LastKey(); got != "sk-test" {
			t.Errorf("generator got key %q, want the environment key", got)
		}
	})
}

// errStoreReadOnly stands in for a store that cannot be created.
var errStoreReadOnly = errors.New("create store directory: read-only file system")

// warnConfig is the default test configuration with warnings logged.
func warnConfig() (config.Config, error) {
	return config.Config{Corrector: "variant", Remote: config.RemoteNone, Store: "file", LogLevel: "warn"}, nil
}

func TestRunGenerate_StoreUnavailable(t *testing.T) {
	t.Parallel()

	env, m := testEnv()
	m.configLoader.LoadFunc = warnConfig
	m.store.OpenFunc = func(config.Config) (kvstore.Store, error) { return nil, errStoreReadOnly }

	err := RunGenerate(testCmd(context.Background()), env, "i need 2 days leave for vacation", generateOpts(t, "", tone.Formal))
	if err != nil {
		t.Fatalf("RunGenerate() error = %v, want nil when the store cannot be opened", err)
	}
	if !strings.Contains(m.stdout.String(), "2 days of leave") {
		t.Errorf("stdout missing the prompt:\n%s", m.stdout.String())
	}
	stderr := m.stderr.String()
	if !strings.Contains(stderr, "prompt not saved to history") || !strings.Contains(stderr, "read-only file system") {
		t.Errorf("stderr = %q, want the store warning", stderr)
	}
	if m.store.OpenCalls() != 1 {
		t.Errorf("store opened %d times, want 1", m.store.OpenCalls())
	}
}

// ---------------------------------------------------------------------------
// Tests for GenerateCmd (Cobra integration)
// ---------------------------------------------------------------------------

func TestGenerateCmd_ReadsStdin(t *testing.T) {
	t.Parallel()

	env, m := testEnv(withTestStdin("write a blog about go\n"))
	if err := execute(GenerateCmd(env), "--prompt-only", "--no-history"); err != nil {
		t.Fatalf("generate unexpected error: %v", err)
	}
	if !strings.Contains(m.stdout.String(), tone.FriendlyTone.Instruction()) {
		t.Errorf("stdout = %q, want a prompt generated from stdin", m.stdout.String())
	}
}

func TestGenerateCmd_FlagErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"json with prompt-only", []string{"--json", "--prompt-only", "x"}, nil},
		{"bad tone", []string{"-t", "angry", "x"}, tone.ErrUnknown},
		{"bad category", []string{"-c", "poetry", "x"}, category.ErrUnknown},
		{"bad answer", []string{"-a", "oops", "x"}, ErrInvalidAnswer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, _ := testEnv()
			err := execute(GenerateCmd(env), tt.args...)
			if err == nil {
				t.Fatalf("generate %v expected error, got nil", tt.args)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("generate %v error = %v, want %v", tt.args, err, tt.want)
			}
		})
	}
}
