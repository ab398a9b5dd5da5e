package main

import (
	"bytes"
	"testing"

	"github.com/aretw0/folio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "folio version "+folio.Version+"\n", out)
}

func TestSlidesCommands(t *testing.T) {
	out, err := execute(t, "slides", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Trellis")

	out, err = execute(t, "slides", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "slides are valid")
}

func TestMCPCommand_UnknownTransport(t *testing.T) {
	_, err := execute(t, "mcp", "--transport", "carrier-pigeon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}
