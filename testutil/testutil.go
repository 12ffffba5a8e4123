// Package testutil has helpers shared by the ticketdraw tests.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Logger returns a logger that discards everything below error
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// WriteRoster writes the given lines to a roster file in a fresh temporary
// directory and returns its path. Lines are joined without a trailing
// newline, the way ticketdraw writes them.
func WriteRoster(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.txt")
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
	if err != nil {
		t.Fatalf("could not write roster file: %v", err)
	}
	return path
}

// ReadFile returns the contents of path, failing the test on error
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read %s: %v", path, err)
	}
	return string(b)
}
