package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zchrono/internal/generation"
)

func newGenerationsCommand() *cobra.Command {
	var (
		showSources bool
		reverse     bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "generations",
		Short: "list generational cohorts and their sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if showSources {
				sources := generation.SortSources(reverse)
				if asJSON {
					return printJSON(w, sources)
				}
				printSources(w, sources)
				return nil
			}

			cohorts := generation.SortCohorts(!reverse)
			if asJSON {
				return printJSON(w, cohorts)
			}
			printCohorts(w, cohorts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSources, "sources", false, "list the sources behind the labels")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "oldest cohort first (sources Z to A)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func printCohorts(w io.Writer, cohorts []generation.Cohort) {
	fmt.Fprintf(w, "  %-13s %-24s %-11s %s\n", "nickname", "name", "born", "trait")
	for _, c := range cohorts {
		fmt.Fprintf(w, "  %-13s %-24s %d-%d  %s\n", c.Nickname, c.Name, c.StartYear, c.EndYear, c.Trait)
	}
}

func printSources(w io.Writer, sources []generation.Source) {
	fmt.Fprintf(w, "  %-28s %-22s %s\n", "source", "examples", "role")
	for _, s := range sources {
		fmt.Fprintf(w, "  %-28s %-22s %s\n", s.Type, s.Examples, s.Role)
	}
}
