package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-matcher/internal/config"
)

// getBinaryPath returns the path to the job_matcher binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "job_matcher"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/job_matcher ./cmd/job_matcher'", binaryPath)
	}

	return binaryPath
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	return &cfg
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
