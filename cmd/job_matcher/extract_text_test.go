package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText_Stdout(t *testing.T) {
	input := writeTempFile(t, "resume.txt", "Jane Doe\r\n\r\n\r\n\r\nSkills:   Go,   Kubernetes\n")

	var out bytes.Buffer
	require.NoError(t, extractText(input, "", &out))
	assert.Equal(t, "Jane Doe\n\nSkills: Go, Kubernetes\n", out.String())
}

func TestExtractText_WritesFile(t *testing.T) {
	input := writeTempFile(t, "notes.md", "# Resume\n\n- Go\n- Terraform\n")
	output := filepath.Join(t.TempDir(), "out", "resume.txt")

	var out bytes.Buffer
	require.NoError(t, extractText(input, output, &out))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "# Resume\n\n- Go\n- Terraform", string(data))
	assert.Contains(t, out.String(), "text/markdown")
	assert.Contains(t, out.String(), "Successfully extracted text")
}

func TestExtractText_Errors(t *testing.T) {
	err := extractText(filepath.Join(t.TempDir(), "missing.pdf"), "", &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")

	empty := writeTempFile(t, "empty.txt", "   \n\n")
	err = extractText(empty, "", &bytes.Buffer{})
	require.Error(t, err)
}

func TestExtractTextCommand_MissingInput(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "extract-text")
	output, err := cmd.CombinedOutput()
	assert.Error(t, err)
	assert.Contains(t, string(output), "required")
}
