package cli

import "errors"

// EnvOpenAIAPIKey is the environment variable holding the OpenAI key.
// It is never read from the config file.
const EnvOpenAIAPIKey = "OPENAI_API_KEY"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrAPIKeyMissing indicates OPENAI_API_KEY environment variable is not set.
	ErrAPIKeyMissing = errors.New("OPENAI_API_KEY environment variable not set")

	// ErrEmptyInput indicates no problem text was given.
	ErrEmptyInput = errors.New("no problem text given")

	// ErrInvalidAnswer indicates an --answer flag not of the form id=value.
	ErrInvalidAnswer = errors.New("invalid answer format")

	// ErrInvalidFormat indicates an unsupported export format.
	ErrInvalidFormat = errors.New("invalid export format")

	// ErrFileNotFound indicates the specified input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrOutputExists indicates the output file already exists.
	ErrOutputExists = errors.New("output file already exists")
)
