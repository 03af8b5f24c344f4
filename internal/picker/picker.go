// Package picker delegates directory selection to the platform's native
// file dialog. The panel treats the result purely as a string source: an
// absolute path, or a cancellation.
package picker

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// Native implements domain.DirectoryPicker by shelling out to the
// platform dialog tool (osascript on macOS, zenity on Linux).
type Native struct {
	logger *slog.Logger
}

// NewNative creates a native directory picker
func NewNative(logger *slog.Logger) *Native {
	if logger == nil {
		logger = slog.Default()
	}
	return &Native{logger: logger}
}

// PickDirectory opens the native dialog and blocks until the user chooses
// a directory or cancels. ok is false on cancellation.
func (p *Native) PickDirectory(ctx context.Context) (string, bool, error) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "osascript", "-e",
			`POSIX path of (choose folder with prompt "Select model directory")`)
	case "linux":
		cmd = exec.CommandContext(ctx, "zenity", "--file-selection", "--directory",
			"--title=Select model directory")
	default:
		return "", false, fmt.Errorf("no native directory picker for %s", runtime.GOOS)
	}

	out, err := cmd.Output()
	if err != nil {
		// Both tools exit non-zero when the dialog is dismissed.
		if _, isExit := err.(*exec.ExitError); isExit {
			p.logger.Debug("directory picker cancelled")
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to open directory picker: %w", err)
	}

	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", false, nil
	}
	p.logger.Debug("directory picked", "path", path)
	return path, true, nil
}
