package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zchrono/internal/roster"
	"github.com/zarlcorp/zchrono/internal/watch"
)

func newWatchCommand(opts Options) *cobra.Command {
	var ordering roster.Ordering

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "redraw the grid whenever a roster file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			return watch.New(args[0]).Run(cmd.Context(), func(f roster.File, err error) {
				drawWatched(w, opts, ordering, f, err)
			})
		},
	}

	cmd.Flags().BoolVarP(&ordering.ByGeneration, "by-generation", "g", false, "group rows by generation")
	cmd.Flags().BoolVar(&ordering.Descending, "desc", false, "newest generation first (with --by-generation)")
	return cmd
}

func drawWatched(w io.Writer, opts Options, o roster.Ordering, f roster.File, err error) {
	now := opts.Now()
	fmt.Fprintf(w, "-- %s %s\n", now.Format("15:04:05"), displayOrBlank(f.Name))
	if err != nil {
		fmt.Fprintf(w, "  %v\n", err)
		return
	}

	people := roster.ResolveAll(f.Persons(), now)
	reportInvalid(w, people)

	g, ok := roster.NewGrid(roster.Arrange(people, o))
	if !ok {
		fmt.Fprintf(w, "  %v\n", errTooFew)
		return
	}
	if err := renderGrid(w, g); err != nil {
		fmt.Fprintf(w, "  %v\n", err)
	}
}
