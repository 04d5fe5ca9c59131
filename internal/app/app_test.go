package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sumDoc = `version = 1

node "core/input" {
  id    = 1
  value = 3
}

node "core/input" {
  id    = 2
  value = 4
}

node "math/add" {
  id = 3
}

node "core/output" {
  id    = 4
  label = "sum"
}

edge {
  from = 1
  to   = 3
}

edge {
  from    = 2
  to      = 3
  to_slot = 1
}

edge {
  from = 3
  to   = 4
}
`

func writeTestDoc(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.grafiek.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestAppRunPrintsResults(t *testing.T) {
	cfg, err := NewConfig(Config{
		DocumentPath: writeTestDoc(t, sumDoc),
		LogFormat:    "text",
	})
	require.NoError(t, err)

	testApp, logBuffer := SetupAppTest(t, cfg)
	require.NoError(t, testApp.Run(context.Background(), cfg))

	assert.Contains(t, logBuffer.String(), "sum = 7.000")
	assert.Equal(t, 4, testApp.Engine().NodeCount())
}

func TestAppSavesDocument(t *testing.T) {
	savePath := filepath.Join(t.TempDir(), "saved.grafiek.hcl")
	cfg, err := NewConfig(Config{
		DocumentPath: writeTestDoc(t, sumDoc),
		SavePath:     savePath,
		LogFormat:    "text",
	})
	require.NoError(t, err)

	testApp, _ := SetupAppTest(t, cfg)
	require.NoError(t, testApp.Run(context.Background(), cfg))

	saved, err := os.ReadFile(savePath)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "version = 1")
	assert.Contains(t, string(saved), `node "math/add"`)
}

func TestNewAppRejectsMissingDocument(t *testing.T) {
	cfg, err := NewConfig(Config{
		DocumentPath: filepath.Join(t.TempDir(), "absent.grafiek.hcl"),
		LogFormat:    "text",
	})
	require.NoError(t, err)

	_, err = NewApp(&SafeBuffer{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to")
}
