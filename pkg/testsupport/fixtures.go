// Package testsupport holds golden-file helpers shared by package tests.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// LoadGolden reads a JSON golden file into out, returning an error for
// callers managing setup outside of *testing.T.
func LoadGolden(path string, out any) error {
	if path == "" {
		return errors.New("testsupport: golden path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("testsupport: read golden: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("testsupport: unmarshal golden %s: %w", path, err)
	}
	return nil
}

// MustLoadGolden is LoadGolden for tests.
func MustLoadGolden(t *testing.T, path string, out any) {
	t.Helper()
	if err := LoadGolden(path, out); err != nil {
		t.Fatalf("load golden: %v", err)
	}
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteGolden(t *testing.T, path string, value any) bool {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden loads the golden at path into a fresh value of got's type and
// returns a (-want +got) diff.
func CompareGolden[T any](t *testing.T, path string, got T) string {
	t.Helper()
	var want T
	MustLoadGolden(t, path, &want)
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
