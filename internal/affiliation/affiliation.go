// Package affiliation asks a language model to speculate about shared
// experiences within a group, given only their birth dates.
package affiliation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
)

var (
	// ErrNoDates is returned when there is nothing to analyze.
	ErrNoDates = errors.New("no birth dates to analyze")
	// ErrNotConfigured is returned when no API key is available.
	ErrNotConfigured = errors.New("gemini api key not configured")
)

// Generator turns a prompt into free text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

var promptTmpl = template.Must(template.New("affiliations").Parse(`Analyze the following list of birth dates and identify any potential group affiliations based on age ranges and common experiences.

Birth Dates:
{{range .}}- {{.}}
{{end}}
Consider age brackets and potential shared life events (e.g., graduation years, significant historical events during their formative years). Provide a concise summary of potential affiliations. If no affiliations are apparent, state that.
`))

// Prompt renders the analysis prompt for the given dates.
func Prompt(dobs []string) string {
	var b strings.Builder
	// the template has no failure modes for a []string
	_ = promptTmpl.Execute(&b, dobs)
	return b.String()
}

// Finder runs affiliation analysis through a Generator.
type Finder struct {
	gen Generator
	log *slog.Logger
}

// NewFinder creates a finder backed by gen.
func NewFinder(gen Generator) *Finder {
	return &Finder{gen: gen, log: slog.Default()}
}

// Find returns the model's summary of likely affiliations for the dates.
// Blank dates are ignored.
func (f *Finder) Find(ctx context.Context, dobs []string) (string, error) {
	var clean []string
	for _, d := range dobs {
		if d = strings.TrimSpace(d); d != "" {
			clean = append(clean, d)
		}
	}
	if len(clean) == 0 {
		return "", ErrNoDates
	}

	out, err := f.gen.Generate(ctx, Prompt(clean))
	if err != nil {
		f.log.Error("find affiliations", "dates", len(clean), "err", err)
		return "", fmt.Errorf("find affiliations: %w", err)
	}
	return strings.TrimSpace(out), nil
}
