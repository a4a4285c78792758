package correct

import "github.com/agnivade/levenshtein"

// Exports for testing. These allow black-box tests to inject dependencies
// without modifying the public API.

var WithChatCompleter = withChatCompleter

var (
	Levenshtein  = levenshtein.ComputeDistance
	ValidateEcho = validateEcho
)
