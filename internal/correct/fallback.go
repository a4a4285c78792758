package correct

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultRemoteTimeout bounds a single remote correction attempt.
const DefaultRemoteTimeout = 3 * time.Second

// Compile-time interface compliance check.
var _ Local = (*Fallback)(nil)

// Fallback tries a remote corrector once under a timeout and falls back to
// a local strategy on any failure. It never returns an error.
type Fallback struct {
	remote  Corrector
	local   Local
	timeout time.Duration
	logger  *zap.Logger
}

// NewFallback pairs remote with local. A nil remote always uses local.
// A non-positive timeout uses DefaultRemoteTimeout; a nil logger discards.
func NewFallback(remote Corrector, local Local, timeout time.Duration, logger *zap.Logger) *Fallback {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{
		remote:  remote,
		local:   local,
		timeout: timeout,
		logger:  logger,
	}
}

// Correct returns the remote correction, or local.Apply(text) if the remote
// call fails, times out, panics or returns malformed data. No retries.
// The returned error is always nil.
func (f *Fallback) Correct(ctx context.Context, text string) (string, error) {
	if f.remote == nil {
		return f.local.Apply(text), nil
	}

	start := time.Now()
	out, err := f.tryRemote(ctx, text)
	if err != nil {
		f.logger.Warn("remote correction failed, using local corrector",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)),
			zap.Duration("timeout", f.timeout),
			zap.Int("length", len(text)),
		)
		return f.local.Apply(text), nil
	}

	f.logger.Debug("remote correction applied",
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("changed", out != text),
	)
	return out, nil
}

// Apply is the local path only.
func (f *Fallback) Apply(text string) string {
	return f.local.Apply(text)
}

func (f *Fallback) tryRemote(ctx context.Context, text string) (out string, err error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("remote corrector panicked: %v", r)
		}
	}()
	return f.remote.Correct(ctx, text)
}
