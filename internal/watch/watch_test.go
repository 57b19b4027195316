package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zarlcorp/zchrono/internal/roster"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type update struct {
	file roster.File
	err  error
}

func next(t *testing.T, ch <-chan update) update {
	t.Helper()
	select {
	case u := <-ch:
		return u
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
		return update{}
	}
}

func TestRunReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "group.yaml")
	if err := os.WriteFile(path, []byte("people:\n  - name: A\n    dob: 1990-01-01\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w := New(path)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan update, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(f roster.File, err error) {
			updates <- update{f, err}
		})
	}()

	first := next(t, updates)
	if first.err != nil {
		t.Fatalf("initial read: %v", first.err)
	}
	if len(first.file.People) != 1 {
		t.Fatalf("initial people: got %d, want 1", len(first.file.People))
	}

	content := "people:\n  - name: A\n    dob: 1990-01-01\n  - name: B\n    dob: 1995-05-05\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	for {
		u := next(t, updates)
		if u.err == nil && len(u.file.People) == 2 {
			break
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestRunIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "group.yaml")
	if err := os.WriteFile(path, []byte("people: []\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w := New(path)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan update, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(f roster.File, err error) {
			updates <- update{f, err}
		})
	}()

	next(t, updates)

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case u := <-updates:
		t.Errorf("unexpected reload: %+v", u)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	<-done
}

func TestRunMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "missing", "group.yaml"))
	err := w.Run(context.Background(), func(roster.File, error) {})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
