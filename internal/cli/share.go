package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zchrono/internal/roster"
)

func newShareCommand(opts Options) *cobra.Command {
	var (
		src    source
		base   string
		decode string
		name   string
		out    string
	)

	cmd := &cobra.Command{
		Use:   `share ["Name, DOB"...]`,
		Short: "encode a group as a share token or link, or decode one",
		Long: `Encode a group as a share token. With --base the token is appended to
that URL as ?data=. With --decode a token or link is turned back into a
YAML roster, printed or written to --out.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if decode != "" {
				people, err := roster.DecodeShare(decode)
				if err != nil {
					return err
				}
				f := roster.FileFrom(name, people)
				if out == "" {
					return f.Encode(w)
				}
				if err := roster.WriteFile(out, f); err != nil {
					return err
				}
				fmt.Fprintf(w, "wrote %s (%d people)\n", out, len(f.People))
				return nil
			}

			people, err := src.load(cmd, opts, args)
			if err != nil {
				return err
			}

			if base == "" {
				fmt.Fprintln(w, roster.EncodeShare(people))
				return nil
			}
			link, err := roster.ShareURL(base, people)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, link)
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&base, "base", "", "base URL for a share link")
	cmd.Flags().StringVar(&decode, "decode", "", "decode a share token or link to YAML")
	cmd.Flags().StringVar(&name, "name", "", "roster name when decoding")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the decoded roster to this file")
	return cmd
}
