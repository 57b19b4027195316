package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zchrono/internal/roster"
)

func newGroupsCommand(opts Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "list saved groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gs, err := opts.OpenStore()
			if err != nil {
				return err
			}
			defer gs.Close()

			groups, err := gs.Groups.List()
			if err != nil {
				return fmt.Errorf("list groups: %w", err)
			}
			sortGroups(groups)

			if asJSON {
				return printJSON(cmd.OutOrStdout(), groups)
			}
			printGroups(cmd.OutOrStdout(), groups)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func newSaveCommand(opts Options) *cobra.Command {
	var (
		src  source
		name string
	)

	cmd := &cobra.Command{
		Use:   `save ["Name, DOB"...]`,
		Short: "save a group to the encrypted store",
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := src.load(cmd, opts, args)
			if err != nil {
				return err
			}

			gs, err := opts.OpenStore()
			if err != nil {
				return err
			}
			defer gs.Close()

			g := roster.NewGroup(name, people, opts.Now())
			if err := gs.Groups.Put(g.ID, g); err != nil {
				return fmt.Errorf("save group: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d people)\n", g.ID, len(g.People))
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&name, "name", "n", "", "group name")
	return cmd
}

func newForgetCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <id>",
		Short: "delete a saved group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gs, err := opts.OpenStore()
			if err != nil {
				return err
			}
			defer gs.Close()

			if _, err := gs.Groups.Get(args[0]); err != nil {
				return fmt.Errorf("group %s: %w", args[0], err)
			}
			if err := gs.Groups.Delete(args[0]); err != nil {
				return fmt.Errorf("delete group: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "forgot %s\n", args[0])
			return nil
		},
	}
}

// sortGroups orders groups most recently updated first.
func sortGroups(groups []roster.Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].UpdatedAt.After(groups[j].UpdatedAt)
	})
}

func printGroups(w io.Writer, groups []roster.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(w, "no saved groups")
		return
	}
	for _, g := range groups {
		fmt.Fprintf(w, "  %s  %-24s %2d people  %s\n",
			g.ID, displayOrBlank(g.Name), len(g.People), g.UpdatedAt.Format("2006-01-02 15:04"))
	}
}
