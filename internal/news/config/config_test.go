package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: news-api
news:
  freshness_window: 6h
regional:
  groups:
    - query: "Kerala OR Tamil Nadu"
      regions: ["Kerala", "Tamil Nadu"]
  keywords:
    kerala: ["kochi", "thiruvananthapuram"]
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6*time.Hour, cfg.News.FreshnessWindow)
	assert.Equal(t, 25, cfg.News.BatchSize)
	assert.Equal(t, 3, cfg.News.RetryMaxAttempts)
	assert.Equal(t, 50*time.Second, cfg.News.RequestTimeout)
	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.Equal(t, "roberta-base-openai-detector", cfg.Classifier.Model)
	assert.Equal(t, 24*time.Hour, cfg.Regional.CacheTTL)
	require.Len(t, cfg.Regional.Groups, 1)
	assert.Equal(t, []string{"Kerala", "Tamil Nadu"}, cfg.Regional.Groups[0].Regions)
	assert.Equal(t, []string{"kochi", "thiruvananthapuram"}, cfg.Regional.Keywords["kerala"])
}
