package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zchrono/internal/roster"
)

// New builds the zchrono command tree.
func New(version string, opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "zchrono",
		Short:         "ages, generations and age gaps for a group",
		Long:          "zchrono computes ages and generational cohorts for a group of people\nand shows the pairwise age differences between them.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newVersionCommand(version),
		newAgeCommand(opts),
		newGridCommand(opts),
		newGenerationsCommand(),
		newAffiliationsCommand(opts),
		newShareCommand(opts),
		newGroupsCommand(opts),
		newSaveCommand(opts),
		newForgetCommand(opts),
		newWatchCommand(opts),
	)
	return cmd
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "zchrono %s\n", version)
		},
	}
}

// source selects where a command reads its people from. Positional
// arguments are "Name, DOB" entries.
type source struct {
	file  string
	share string
	group string
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "read people from a YAML roster file")
	cmd.Flags().StringVar(&s.share, "share", "", "read people from a share token or link")
	cmd.Flags().StringVar(&s.group, "group", "", "read people from a saved group id")
}

// load resolves the people for a command: flags first, then arguments,
// then piped stdin, then the sample group.
func (s source) load(cmd *cobra.Command, opts Options, args []string) ([]roster.Person, error) {
	var people []roster.Person
	var err error

	switch {
	case s.file != "":
		var f roster.File
		f, err = roster.ReadFile(s.file)
		people = f.Persons()
	case s.share != "":
		people, err = roster.DecodeShare(s.share)
	case s.group != "":
		people, err = loadGroup(opts, s.group)
	case len(args) > 0:
		people, err = roster.ParseBulk(strings.Join(args, "\n"))
	default:
		people, err = readPiped(cmd.InOrStdin())
		if errors.Is(err, roster.ErrEmptyBulk) {
			people, err = roster.Defaults(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	return roster.ResolveAll(people, opts.Now()), nil
}

func readPiped(r io.Reader) ([]roster.Person, error) {
	if isTerminal(r) {
		return nil, roster.ErrEmptyBulk
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return roster.ParseBulk(string(b))
}

func loadGroup(opts Options, id string) ([]roster.Person, error) {
	gs, err := opts.OpenStore()
	if err != nil {
		return nil, err
	}
	defer gs.Close()

	g, err := gs.Groups.Get(id)
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", id, err)
	}
	return g.People, nil
}

// reportInvalid lists people whose DOB failed to parse.
func reportInvalid(w io.Writer, people []roster.Person) {
	for _, p := range people {
		if p.Err != "" {
			fmt.Fprintf(w, "  %s: %s (%q)\n", displayOrBlank(p.Name), p.Err, p.DOB)
		}
	}
}

func displayOrBlank(name string) string {
	if name == "" {
		return "(no name)"
	}
	return name
}
