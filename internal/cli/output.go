package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-promptcraft/internal/pipeline"
)

// resultJSON is the machine-readable form of a generation.
type resultJSON struct {
	Problem  string `json:"problem"`
	Category string `json:"category"`
	Type     string `json:"type"`
	Tone     string `json:"tone"`
	System   string `json:"system"`
	Prompt   string `json:"prompt"`
	Changed  bool   `json:"changed"`
}

func toJSON(r pipeline.Result) resultJSON {
	return resultJSON{
		Problem:  r.Problem,
		Category: r.Category.String(),
		Type:     r.Category.Label(),
		Tone:     r.Tone.String(),
		System:   r.System,
		Prompt:   r.Prompt,
		Changed:  r.Changed,
	}
}

// writeResult prints a result as text, prompt only, or one JSON object.
func writeResult(w io.Writer, r pipeline.Result, asJSON, promptOnly bool) error {
	switch {
	case asJSON:
		return json.NewEncoder(w).Encode(toJSON(r))
	case promptOnly:
		_, err := fmt.Fprintln(w, r.Prompt)
		return err
	default:
		_, err := fmt.Fprintf(w, "System:\n%s\n\nPrompt:\n%s\n", r.System, r.Prompt)
		return err
	}
}

// warnExtensionMismatch writes a warning to w if path has an extension
// that does not match the export format.
func warnExtensionMismatch(w io.Writer, path string, format exportFormat) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != "" && !format.accepts(ext) {
		_, _ = fmt.Fprintf(w, "Warning: output is %s regardless of %s extension\n", format.label(), ext)
	}
}

// writeFileAtomic writes content to path atomically.
// It fails if the file already exists (O_EXCL), preventing accidental overwrites.
// On write failure, the partial file is removed.
func writeFileAtomic(path, content string) error {
	// #nosec G302 G304 -- user-specified output file with standard permissions
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("output file already exists: %s: %w", path, ErrOutputExists)
		}
		return fmt.Errorf("cannot create output file: %w", err)
	}

	writeErr := func() error {
		defer func() { _ = f.Close() }()
		if _, err := f.WriteString(content); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}()

	if writeErr != nil {
		_ = os.Remove(path)
		return writeErr
	}

	return nil
}

// readInput reads the problem text from args, a file, or stdin ("-").
func readInput(env *Env, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(env.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
