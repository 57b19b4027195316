package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zchrono/internal/affiliation"
	"github.com/zarlcorp/zchrono/internal/roster"
)

// apiKeyEnv is consulted when --api-key is not given.
const apiKeyEnv = "GEMINI_API_KEY"

func newAffiliationsCommand(opts Options) *cobra.Command {
	var (
		src source
		cfg affiliation.Config
	)

	cmd := &cobra.Command{
		Use:   `affiliations ["Name, DOB"...]`,
		Short: "ask Gemini what the group might have in common",
		Long: `Send the group's birth dates to Gemini and print its guess at shared
affiliations: graduation years, formative events, age brackets.

The API key comes from --api-key or $GEMINI_API_KEY.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := src.load(cmd, opts, args)
			if err != nil {
				return err
			}
			reportInvalid(cmd.ErrOrStderr(), people)

			if cfg.APIKey == "" {
				cfg.APIKey = opts.Getenv(apiKeyEnv)
			}
			gen, err := opts.NewGenerator(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			out, err := affiliation.NewFinder(gen).Find(cmd.Context(), birthDates(people))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&cfg.APIKey, "api-key", "", "Gemini API key")
	cmd.Flags().StringVar(&cfg.Model, "model", affiliation.DefaultModel, "Gemini model")
	return cmd
}

// birthDates returns the canonical DOBs of the valid people.
func birthDates(people []roster.Person) []string {
	var out []string
	for _, p := range people {
		if p.Valid() {
			out = append(out, p.DOB)
		}
	}
	return out
}
