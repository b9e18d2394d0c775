package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with api key set", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
		assert.Equal(t, "test-key", cfg.Gemini.APIKey)
		assert.Equal(t, "us-central1", cfg.Gemini.Location)
		assert.Equal(t, "gemini-1.5-flash-002", cfg.Gemini.Model)
		assert.Equal(t, "/tmp/sessions.db", cfg.Store.Path)
	})

	t.Run("missing api key fails", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("GCP_LOCATION", "europe-west1")
		t.Setenv("SESSION_DB_PATH", "/tmp/other.db")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "europe-west1", cfg.Gemini.Location)
		assert.Equal(t, "/tmp/other.db", cfg.Store.Path)
	})
}
