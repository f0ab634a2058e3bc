package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	c := NewConfig()
	require.Equal(t, ".", c.RootDir)
	require.Equal(t, "file", c.Source)
	require.Equal(t, uint64(1000), c.PollIntervalMillis)
}

func TestNewConfigAppliesFlags(t *testing.T) {
	c := NewConfig("--source", "http", "--source-url", "https://example.com", "--poll-interval-ms", "250")
	require.Equal(t, "http", c.Source)
	require.Equal(t, "https://example.com", c.SourceURL)
	require.Equal(t, uint64(250), c.PollIntervalMillis)
}

func TestNewConfigPanicsOnDanglingFlag(t *testing.T) {
	defer func() {
		require.NotNil(t, recover())
	}()
	NewConfig("--source")
}

func TestLoadFileOverridesOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: http\nsource_url: https://example.com\n"), 0o644))

	c := NewConfig()
	require.NoError(t, c.LoadFile(path))
	require.Equal(t, "http", c.Source)
	require.Equal(t, "https://example.com", c.SourceURL)
	require.Equal(t, ".build/AuthDecodeCircuit.ccs", c.CCSPath)
}

func TestLoadFileRejectsMissingPath(t *testing.T) {
	c := NewConfig()
	err := c.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
