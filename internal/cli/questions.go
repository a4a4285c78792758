package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/pipeline"
	"github.com/alnah/go-promptcraft/internal/questions"
	"github.com/alnah/go-promptcraft/internal/tone"
)

// QuestionsCmd creates the questions command.
// The env parameter provides injectable dependencies for testing.
func QuestionsCmd(env *Env) *cobra.Command {
	var (
		cat    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "questions [problem...]",
		Short: "List follow-up questions for a problem",
		Long: `List the follow-up questions offered for a problem.

Leave, learning and blog requests get extra questions whose answers can be
passed to "promptcraft generate" with --answer id=value. Required questions
are marked with *.`,
		Example: `  promptcraft questions "i need 3 days leave"
  promptcraft questions -c blog "gardening tips" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var hint category.Category
			if cat != "" {
				var err error
				if hint, err = category.Parse(cat); err != nil {
					return err
				}
			}
			problem, err := readInput(env, args)
			if err != nil {
				return err
			}
			return runQuestions(env, problem, hint, asJSON)
		},
	}

	cmd.Flags().StringVarP(&cat, "category", "c", "", "Category hint")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print sections as JSON")

	return cmd
}

// runQuestions handles the "questions" command. The category is resolved
// with the local pipeline only.
func runQuestions(env *Env, problem string, hint category.Category, asJSON bool) error {
	resolved := pipeline.New().GeneratePrompt(problem, hint, tone.FriendlyTone).Category
	sections := questions.For(problem, resolved)

	if asJSON {
		if sections == nil {
			sections = []questions.Section{}
		}
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sections)
	}
	return writeSections(env.Stdout, sections, resolved)
}

func writeSections(w io.Writer, sections []questions.Section, c category.Category) error {
	if len(sections) == 0 {
		_, err := fmt.Fprintf(w, "No follow-up questions for a %s request.\n", c.Label())
		return err
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", s.Title)
		for _, q := range s.Questions {
			mark := ""
			if q.Required {
				mark = " *"
			}
			fmt.Fprintf(&b, "  %s%s\n    id: %s\n", q.Text, mark, q.ID)
			switch {
			case q.Kind == questions.KindSelect:
				fmt.Fprintf(&b, "    options: %s\n", strings.Join(q.Options, " | "))
			case q.Placeholder != "":
				fmt.Fprintf(&b, "    %s\n", q.Placeholder)
			}
			if sugg := questions.Suggestions(q.ID); len(sugg) > 0 {
				fmt.Fprintf(&b, "    suggestions: %s\n", strings.Join(sugg, ", "))
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
