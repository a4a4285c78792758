package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alnah/go-promptcraft/internal/category"
	"github.com/alnah/go-promptcraft/internal/tone"
)

// CategoriesCmd creates the categories command.
func CategoriesCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories and tones",
		Long: `List the categories accepted by --category and the tones accepted by --tone.

Categories are hints: the problem text may reclassify a request, for example
a leave request is detected even when the hint is general.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(env)
		},
	}
}

// runCategories handles the "categories" command.
func runCategories(env *Env) error {
	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "CATEGORY\tLABEL")
	for _, c := range category.All() {
		fmt.Fprintf(tw, "%s\t%s\n", c, c.Label())
	}
	fmt.Fprintln(tw, "")
	fmt.Fprintln(tw, "TONE\tDESCRIPTION")
	for _, t := range tone.All() {
		fmt.Fprintf(tw, "%s\t%s\n", t, t.Description())
	}
	return tw.Flush()
}
