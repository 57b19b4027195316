package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/zarlcorp/zchrono/internal/roster"
)

var errTooFew = errors.New("enter at least two people with valid names and dates of birth to see the grid")

func newGridCommand(opts Options) *cobra.Command {
	var (
		src      source
		ordering roster.Ordering
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   `grid ["Name, DOB"...]`,
		Short: "show pairwise age differences",
		Long: `Show the matrix of pairwise age differences in years.

People come from --file, --share, --group, arguments of the form
"Name, DOB", or piped lines of the same form. With none of these the
sample group is shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := src.load(cmd, opts, args)
			if err != nil {
				return err
			}
			reportInvalid(cmd.ErrOrStderr(), people)

			g, ok := roster.NewGrid(roster.Arrange(people, ordering))
			if !ok {
				return errTooFew
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), g)
			}
			return renderGrid(cmd.OutOrStdout(), g)
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVarP(&ordering.ByGeneration, "by-generation", "g", false, "group rows by generation")
	cmd.Flags().BoolVar(&ordering.Descending, "desc", false, "newest generation first (with --by-generation)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

// renderGrid writes the grid as aligned plain text: labels down the left,
// the same labels across the top, numbers right-aligned under each label.
func renderGrid(w io.Writer, g roster.Grid) error {
	first := 0
	widths := make([]int, len(g.Labels))
	for i, l := range g.Labels {
		widths[i] = lipgloss.Width(l)
		first = max(first, widths[i])
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", first))
	for _, l := range g.Labels {
		b.WriteString("  " + l)
	}
	b.WriteString("\n")

	for i, row := range g.Cells {
		b.WriteString(padRight(g.Labels[i], first))
		for j, cell := range row {
			b.WriteString("  " + padLeft(cell, widths[j]))
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	if err != nil {
		return fmt.Errorf("write grid: %w", err)
	}
	return nil
}

func padRight(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}
