package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/zchrono/internal/affiliation"
	"github.com/zarlcorp/zchrono/internal/roster"
)

var testNow = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

var trio = []string{"A, 1990-01-01", "B, 2000-06-15", "C, 1960-03-03"}

type fakeGenerator struct {
	prompt string
	reply  string
	err    error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func testOptions(t *testing.T) Options {
	t.Helper()
	fsys := zfilesystem.NewMemFS()
	return Options{
		Now:    func() time.Time { return testNow },
		Getenv: func(string) string { return "" },
		OpenStore: func() (GroupStore, error) {
			return OpenGroups(fsys, "test")
		},
		NewGenerator: func(context.Context, affiliation.Config) (affiliation.Generator, error) {
			return nil, affiliation.ErrNotConfigured
		},
	}
}

func run(t *testing.T, opts Options, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := New("test", opts)
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestDataDir(t *testing.T) {
	tests := []struct {
		name string
		xdg  string
		want string
	}{
		{
			name: "xdg set",
			xdg:  "/custom/data",
			want: "/custom/data/zchrono",
		},
		{
			name: "xdg empty falls back to home",
			xdg:  "",
			want: "/.local/share/zchrono",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_DATA_HOME", tt.xdg)

			got := DataDir()
			if tt.xdg != "" {
				if got != tt.want {
					t.Errorf("DataDir() = %s, want %s", got, tt.want)
				}
			} else {
				if !strings.HasSuffix(got, tt.want) {
					t.Errorf("DataDir() = %s, want suffix %s", got, tt.want)
				}
			}
		})
	}
}

func TestIsFirstRun(t *testing.T) {
	dir := t.TempDir()
	if !IsFirstRun(dir) {
		t.Error("expected first run for empty dir")
	}

	os.WriteFile(dir+"/salt", []byte("test"), 0o600)
	if IsFirstRun(dir) {
		t.Error("expected not first run after salt exists")
	}
}

func TestCommands(t *testing.T) {
	cmd := New("test", testOptions(t))
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"version", "age", "grid", "generations", "affiliations", "share", "groups", "save", "forget", "watch"} {
		assert.Contains(t, names, want)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, testOptions(t), "version")
	require.NoError(t, err)
	assert.Equal(t, "zchrono test\n", out)
}

func TestAge(t *testing.T) {
	out, _, err := run(t, testOptions(t), "age", "--json", "03/12/85")
	require.NoError(t, err)

	var got []ageResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "03/12/1985", got[0].DOB)
	require.NotNil(t, got[0].Age)
	assert.Equal(t, 41, *got[0].Age)
	require.NotNil(t, got[0].Generation)
	assert.Equal(t, "Pioneers", got[0].Generation.Nickname)
}

func TestAgeInvalid(t *testing.T) {
	out, _, err := run(t, testOptions(t), "age", "1990-01-01", "02/30/2000")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 dates invalid")
	assert.Contains(t, out, "01/01/1990")
	assert.Contains(t, out, "02/30/2000")
}

func TestGridGolden(t *testing.T) {
	out, _, err := run(t, testOptions(t), append([]string{"grid"}, trio...)...)
	require.NoError(t, err)
	golden(t).Assert(t, "grid", []byte(out))
}

func TestGridByGeneration(t *testing.T) {
	out, _, err := run(t, testOptions(t), append([]string{"grid", "--json", "-g", "--desc"}, trio...)...)
	require.NoError(t, err)

	var g roster.Grid
	require.NoError(t, json.Unmarshal([]byte(out), &g))
	assert.Equal(t, []string{"B (Zoomers) (26)", "A (Pioneers) (36)", "C (Boomers) (66)"}, g.Labels)
	assert.Equal(t, "30", g.Cells[1][2])
}

func TestGridTooFew(t *testing.T) {
	_, stderr, err := run(t, testOptions(t), "grid", "A, 1990-01-01", "B, not a date")
	require.ErrorIs(t, err, errTooFew)
	assert.Contains(t, stderr, roster.InvalidDate)
}

func TestGridDefaults(t *testing.T) {
	out, _, err := run(t, testOptions(t), "grid")
	require.NoError(t, err)
	assert.Contains(t, out, "Olivia Chen (Pioneers) (41)")
	assert.Contains(t, out, "William Kim (Zoomers) (25)")
}

func TestGenerationsGolden(t *testing.T) {
	out, _, err := run(t, testOptions(t), "generations")
	require.NoError(t, err)
	golden(t).Assert(t, "generations", []byte(out))

	out, _, err = run(t, testOptions(t), "generations", "--sources")
	require.NoError(t, err)
	golden(t).Assert(t, "sources", []byte(out))
}

func TestGenerationsReverse(t *testing.T) {
	out, _, err := run(t, testOptions(t), "generations", "--reverse")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[1], "Heroes")
	assert.Contains(t, lines[7], "Alphas")
}

func TestShareRoundTrip(t *testing.T) {
	opts := testOptions(t)
	token, _, err := run(t, opts, "share", "A, 1990-01-01", "B, 2000-06-15")
	require.NoError(t, err)
	token = strings.TrimSpace(token)

	out, _, err := run(t, opts, "share", "--decode", token, "--name", "pair")
	require.NoError(t, err)
	f, err := roster.Decode(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "pair", f.Name)
	assert.Equal(t, []roster.Entry{
		{Name: "A", DOB: "01/01/1990"},
		{Name: "B", DOB: "06/15/2000"},
	}, f.People)

	link, _, err := run(t, opts, "share", "--base", "https://example.com/grid", "A, 1990-01-01", "B, 2000-06-15")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://example.com/grid?data="))

	out, _, err = run(t, opts, "grid", "--share", strings.TrimSpace(link))
	require.NoError(t, err)
	assert.Contains(t, out, "A (Pioneers) (36)")
}

func TestShareDecodeToFile(t *testing.T) {
	opts := testOptions(t)
	token, _, err := run(t, opts, "share", "A, 1990-01-01")
	require.NoError(t, err)

	path := t.TempDir() + "/pair.yaml"
	out, _, err := run(t, opts, "share", "--decode", strings.TrimSpace(token), "--out", path)
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+" (1 people)\n", out)

	f, err := roster.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []roster.Entry{{Name: "A", DOB: "01/01/1990"}}, f.People)
}

func TestGroupsLifecycle(t *testing.T) {
	opts := testOptions(t)

	out, _, err := run(t, opts, "groups")
	require.NoError(t, err)
	assert.Equal(t, "no saved groups\n", out)

	out, _, err = run(t, opts, append([]string{"save", "--name", "trio"}, trio...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "(3 people)")

	out, _, err = run(t, opts, "groups", "--json")
	require.NoError(t, err)
	var groups []roster.Group
	require.NoError(t, json.Unmarshal([]byte(out), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "trio", groups[0].Name)
	id := groups[0].ID

	out, _, err = run(t, opts, "grid", "--group", id)
	require.NoError(t, err)
	assert.Contains(t, out, "C (Boomers) (66)")

	_, _, err = run(t, opts, "forget", id)
	require.NoError(t, err)

	_, _, err = run(t, opts, "forget", id)
	require.Error(t, err)
}

func TestAffiliations(t *testing.T) {
	gen := &fakeGenerator{reply: "  all born before 2001  "}
	var gotCfg affiliation.Config

	opts := testOptions(t)
	opts.Getenv = func(k string) string {
		if k == apiKeyEnv {
			return "env-key"
		}
		return ""
	}
	opts.NewGenerator = func(_ context.Context, cfg affiliation.Config) (affiliation.Generator, error) {
		gotCfg = cfg
		return gen, nil
	}

	out, _, err := run(t, opts, append([]string{"affiliations"}, trio...)...)
	require.NoError(t, err)
	assert.Equal(t, "all born before 2001\n", out)
	assert.Equal(t, "env-key", gotCfg.APIKey)
	assert.Equal(t, affiliation.DefaultModel, gotCfg.Model)
	assert.Contains(t, gen.prompt, "- 01/01/1990\n")
	assert.Contains(t, gen.prompt, "- 03/03/1960\n")

	_, _, err = run(t, opts, "affiliations", "--api-key", "flag-key", "--model", "m", "A, 1990-01-01")
	require.NoError(t, err)
	assert.Equal(t, "flag-key", gotCfg.APIKey)
	assert.Equal(t, "m", gotCfg.Model)
}

func TestAffiliationsErrors(t *testing.T) {
	_, _, err := run(t, testOptions(t), "affiliations", "A, 1990-01-01")
	assert.ErrorIs(t, err, affiliation.ErrNotConfigured)

	opts := testOptions(t)
	opts.NewGenerator = func(context.Context, affiliation.Config) (affiliation.Generator, error) {
		return &fakeGenerator{err: errors.New("quota")}, nil
	}
	_, _, err = run(t, opts, "affiliations", "A, not a date")
	assert.ErrorIs(t, err, affiliation.ErrNoDates)

	_, _, err = run(t, opts, "affiliations", "A, 1990-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
}
