package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/zarlcorp/zchrono/internal/dob"
	"github.com/zarlcorp/zchrono/internal/generation"
)

// ageResult is the JSON form of one age lookup.
type ageResult struct {
	Input      string             `json:"input"`
	DOB        string             `json:"dob,omitempty"`
	Age        *int               `json:"age,omitempty"`
	Year       int                `json:"year,omitempty"`
	Generation *generation.Cohort `json:"generation,omitempty"`
	Error      string             `json:"error,omitempty"`
}

func newAgeCommand(opts Options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "age <dob>...",
		Short: "compute age and generation for dates of birth",
		Long: `Compute age and generation for each date of birth.

Accepted forms: yyyy-mm-dd, mm/dd/yyyy and mm/dd/yy (either - or /).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := opts.Now()
			results := make([]ageResult, 0, len(args))
			invalid := 0
			for _, a := range args {
				r := ageResult{Input: a}
				b, err := dob.Parse(a, now)
				if err != nil {
					r.Error = err.Error()
					invalid++
				} else {
					age := b.Age
					r.DOB, r.Age, r.Year = b.Formatted, &age, b.Year
					if c, ok := generation.Classify(b.Year); ok {
						r.Generation = &c
					}
				}
				results = append(results, r)
			}

			if asJSON {
				if err := printJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			} else {
				printAges(cmd.OutOrStdout(), results)
			}

			if invalid > 0 {
				return fmt.Errorf("%d of %d dates invalid", invalid, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	return cmd
}

func printAges(w io.Writer, results []ageResult) {
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(w, "  %-12s %s\n", r.Input, r.Error)
			continue
		}
		gen := "-"
		if r.Generation != nil {
			gen = r.Generation.Nickname + " (" + r.Generation.Name + ")"
		}
		fmt.Fprintf(w, "  %-12s age %-4d %s\n", r.DOB, *r.Age, gen)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
