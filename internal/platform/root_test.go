package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConfigInStartDir(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(cfg, []byte("root = \".\"\n"), 0644))

	found, err := FindConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, found)
}

func TestFindConfigWalksUp(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(cfg, []byte(""), 0644))

	deep := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(deep, 0755))

	found, err := FindConfig(deep)
	require.NoError(t, err)
	assert.Equal(t, cfg, found)
}

func TestFindConfigMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := FindConfig(dir)
	assert.Error(t, err)
}

func TestFindConfigIgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ConfigFileName), 0755))

	_, err := FindConfig(dir)
	assert.Error(t, err)
}
