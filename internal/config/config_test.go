package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestInitializeCreatesDefaults(t *testing.T) {
	home := setupHome(t)
	require.NoError(t, Initialize())

	assert.FileExists(t, filepath.Join(home, ".cvblue", "config.yaml"))
	assert.Equal(t, filepath.Join(home, ".cvblue"), AppConfig.DataDir)
	assert.Equal(t, "classic", AppConfig.DefaultLayout)
	assert.Equal(t, "json", AppConfig.ExportFormat)
	assert.Equal(t, 60*time.Second, AppConfig.PDFTimeout)
	assert.Equal(t, 500*time.Millisecond, AppConfig.DebounceInterval)
	assert.Equal(t, filepath.Join(home, ".cvblue", "config.yaml"), GetConfigPath())
}

func TestEnvOverride(t *testing.T) {
	setupHome(t)
	t.Setenv("CVBLUE_DEFAULT_LAYOUT", "modern")
	require.NoError(t, Initialize())
	assert.Equal(t, "modern", AppConfig.DefaultLayout)
}

func TestSetPersists(t *testing.T) {
	home := setupHome(t)
	require.NoError(t, Initialize())

	require.NoError(t, Set("export_format", "xml"))
	assert.Equal(t, "xml", Get("export_format"))

	data, err := os.ReadFile(filepath.Join(home, ".cvblue", "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "export_format: xml")

	assert.Error(t, Set("openai_key", "x"))
}
