package tui

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// copyToClipboard copies text to the system clipboard. Tests replace it.
var copyToClipboard = systemClipboard

func systemClipboard(text string) error {
	cmd, err := clipboardCommand(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}

	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}

	return nil
}

// clipboardCommand picks the copy tool for goos, using lookPath to find
// one on linux.
func clipboardCommand(goos string, lookPath func(string) (string, error)) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("pbcopy"), nil
	case "linux":
		for _, tool := range [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		} {
			if _, err := lookPath(tool[0]); err == nil {
				return exec.Command(tool[0], tool[1:]...), nil
			}
		}
		return nil, fmt.Errorf("no clipboard tool: install wl-clipboard, xclip or xsel")
	}
	return nil, fmt.Errorf("clipboard not supported on %s", goos)
}
