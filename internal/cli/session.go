package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alnah/go-promptcraft/internal/config"
	"github.com/alnah/go-promptcraft/internal/history"
	"github.com/alnah/go-promptcraft/internal/kvstore"
	"github.com/alnah/go-promptcraft/internal/logging"
	"github.com/alnah/go-promptcraft/internal/pipeline"
	"github.com/alnah/go-promptcraft/internal/theme"
)

// session carries the per-command configuration, logger and lazily opened
// store. Commands that never touch storage never open it.
type session struct {
	env    *Env
	cfg    config.Config
	logger *zap.Logger

	kv kvstore.Store
}

// verboseFlag reports the root --verbose flag, if registered.
func verboseFlag(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	f := cmd.Flags().Lookup("verbose")
	return f != nil && f.Value.String() == "true"
}

// openSession loads configuration and builds the logger.
func openSession(env *Env, verbose bool) (*session, error) {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.WarnLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	return &session{
		env:    env,
		cfg:    cfg,
		logger: logging.New(level, env.Stderr),
	}, nil
}

func (s *session) store() (kvstore.Store, error) {
	if s.kv != nil {
		return s.kv, nil
	}
	kv, err := s.env.StoreFactory.Open(s.cfg)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("store opened", zap.String("kind", s.cfg.Store))
	s.kv = kv
	return kv, nil
}

// storeOrMemory opens the configured store, or an in-memory one when it
// cannot be opened. Later history and theme calls use whichever it returned.
func (s *session) storeOrMemory() kvstore.Store {
	kv, err := s.store()
	if err == nil {
		return kv
	}
	s.logger.Warn("store unavailable, keeping history in memory",
		zap.String("kind", s.cfg.Store), zap.Error(err))
	s.kv = kvstore.NewMemoryStore(0)
	return s.kv
}

// history opens the prompt history.
func (s *session) history() (*history.Store, error) {
	kv, err := s.store()
	if err != nil {
		return nil, err
	}
	return history.New(kv,
		history.WithLogger(s.logger),
		history.WithClock(s.env.Now),
	), nil
}

// theme opens the theme preference.
func (s *session) theme(opts ...theme.Option) (*theme.Store, error) {
	kv, err := s.store()
	if err != nil {
		return nil, err
	}
	return theme.NewStore(kv, append([]theme.Option{theme.WithLogger(s.logger)}, opts...)...), nil
}

// generator builds the prompt generator from configuration.
func (s *session) generator() (*pipeline.Generator, error) {
	return s.env.GeneratorFactory.NewGenerator(s.cfg, s.env.Getenv(EnvOpenAIAPIKey), s.logger)
}

// Close closes the store if it was opened and flushes the logger.
func (s *session) Close() {
	if s.kv != nil {
		if err := s.kv.Close(); err != nil {
			s.logger.Warn("closing store", zap.Error(err))
		}
	}
	_ = s.logger.Sync()
}
