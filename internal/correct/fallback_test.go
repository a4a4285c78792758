package correct_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alnah/go-promptcraft/internal/apierr"
	"github.com/alnah/go-promptcraft/internal/correct"
)

// stubRemote is a Corrector with a scripted outcome.
type stubRemote struct {
	out   string
	err   error
	delay time.Duration
	panic bool
	calls atomic.Int32
}

func (s *stubRemote) Correct(ctx context.Context, _ string) (string, error) {
	s.calls.Add(1)
	if s.panic {
		panic("remote exploded")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.out, s.err
}

// markLocal is a Local that marks its output so tests can tell which path ran.
type markLocal struct{}

func (markLocal) Apply(text string) string { return "local:" + text }
func (u markLocal) Correct(_ context.Context, text string) (string, error) {
	return u.Apply(text), nil
}

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestFallback_RemoteSuccess(t *testing.T) {
	t.Parallel()

	logger, logs := observed()
	remote := &stubRemote{out: "remote text"}
	f := correct.NewFallback(remote, markLocal{}, time.Second, logger)

	got, err := f.Correct(context.Background(), "input")
	if err != nil {
		t.Fatalf("Correct() error = %v, want nil", err)
	}
	if got != "remote text" {
		t.Errorf("Correct() = %q, want remote result", got)
	}
	if n := logs.FilterLevelExact(zapcore.WarnLevel).Len(); n != 0 {
		t.Errorf("expected no warnings, got %d", n)
	}
}

func TestFallback_FallsBackOnFailure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		remote *stubRemote
	}{
		{"api error", &stubRemote{err: fmt.Errorf("slow down: %w", apierr.ErrRateLimit)}},
		{"malformed", &stubRemote{err: apierr.ErrMalformedResponse}},
		{"timeout", &stubRemote{out: "too late", delay: time.Second}},
		{"panic", &stubRemote{panic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			logger, logs := observed()
			f := correct.NewFallback(tt.remote, markLocal{}, 20*time.Millisecond, logger)

			got, err := f.Correct(context.Background(), "input")
			if err != nil {
				t.Fatalf("Correct() error = %v, want nil", err)
			}
			if got != "local:input" {
				t.Errorf("Correct() = %q, want local fallback", got)
			}
			if n := tt.remote.calls.Load(); n != 1 {
				t.Errorf("remote called %d times, want exactly 1 (no retries)", n)
			}

			warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
			if len(warns) != 1 {
				t.Fatalf("expected 1 warning, got %d", len(warns))
			}
			if _, ok := warns[0].ContextMap()["error"]; !ok {
				t.Error("warning should carry the error field")
			}
		})
	}
}

func TestFallback_NilRemoteAndDefaults(t *testing.T) {
	t.Parallel()

	f := correct.NewFallback(nil, markLocal{}, 0, nil)

	got, err := f.Correct(context.Background(), "x")
	if err != nil || got != "local:x" {
		t.Errorf("Correct() = %q, %v; want local path", got, err)
	}
	if got := f.Apply("y"); got != "local:y" {
		t.Errorf("Apply() = %q, want local path", got)
	}
}
