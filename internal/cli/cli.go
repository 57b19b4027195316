// Package cli implements zchrono's command-line subcommands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/zarlcorp/core/pkg/zfilesystem"
	"github.com/zarlcorp/core/pkg/zstore"
	"github.com/zarlcorp/zchrono/internal/affiliation"
	"github.com/zarlcorp/zchrono/internal/roster"
	"golang.org/x/term"
)

// GroupStore is an open store and its groups collection.
type GroupStore struct {
	Store  *zstore.Store
	Groups *zstore.Collection[roster.Group]
}

// Close releases the store.
func (g GroupStore) Close() {
	g.Store.Close()
}

// Options wires the commands to their environment.
type Options struct {
	Now          func() time.Time
	Getenv       func(string) string
	OpenStore    func() (GroupStore, error)
	NewGenerator func(context.Context, affiliation.Config) (affiliation.Generator, error)
}

// DefaultOptions uses the real clock, environment, data dir and Gemini.
func DefaultOptions() Options {
	return Options{
		Now:    time.Now,
		Getenv: os.Getenv,
		OpenStore: func() (GroupStore, error) {
			return OpenStore(DataDir())
		},
		NewGenerator: func(ctx context.Context, cfg affiliation.Config) (affiliation.Generator, error) {
			return affiliation.NewGemini(ctx, cfg)
		},
	}
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, version string, args []string) int {
	cmd := New(version, DefaultOptions())
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "zchrono: %v\n", err)
		return 1
	}
	return 0
}

// DataDir returns the default data directory for zchrono.
func DataDir() string {
	if d := os.Getenv("XDG_DATA_HOME"); d != "" {
		return d + "/zchrono"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zchrono"
	}
	return home + "/.local/share/zchrono"
}

// ReadPassword prompts for a password on w and reads it without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

// ReadNewPassword prompts for a new password with confirmation.
func ReadNewPassword(w io.Writer) (string, error) {
	pass, err := ReadPassword("master password: ", w)
	if err != nil {
		return "", err
	}
	confirm, err := ReadPassword("confirm password: ", w)
	if err != nil {
		return "", err
	}
	if pass != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return pass, nil
}

// IsFirstRun checks whether the store has been initialized.
func IsFirstRun(dir string) bool {
	_, err := os.Stat(dir + "/salt")
	return err != nil
}

// OpenStore prompts for a password and opens the store with its groups
// collection.
func OpenStore(dir string) (GroupStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return GroupStore{}, fmt.Errorf("create data dir: %w", err)
	}

	var pass string
	var err error
	if IsFirstRun(dir) {
		pass, err = ReadNewPassword(os.Stderr)
	} else {
		pass, err = ReadPassword("master password: ", os.Stderr)
	}
	if err != nil {
		return GroupStore{}, err
	}

	return OpenGroups(zfilesystem.NewOSFileSystem(dir), pass)
}

// OpenGroups opens the store on fsys and its groups collection.
func OpenGroups(fsys zfilesystem.ReadWriteFileFS, password string) (GroupStore, error) {
	s, err := zstore.Open(fsys, []byte(password))
	if err != nil {
		return GroupStore{}, err
	}

	col, err := zstore.NewCollection[roster.Group](s, "groups")
	if err != nil {
		s.Close()
		return GroupStore{}, err
	}

	return GroupStore{Store: s, Groups: col}, nil
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
