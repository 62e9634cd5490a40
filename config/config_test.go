package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultChunkSize, cfg.Index.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, cfg.Index.ChunkOverlap)
	assert.Equal(t, DefaultTopK, cfg.Retrieval.TopK)
	assert.InDelta(t, DefaultMinSimilarity, cfg.Retrieval.MinSimilarity, 0.0001)
	assert.Equal(t, DefaultOutputDir, cfg.IO.OutputDir)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
ai:
  host: http://models.internal:8080
  chat_model: qwen2.5:7b
index:
  chunk_size: 500
  chunk_overlap: 50
retrieval:
  top_k: 5
  min_similarity: 0.4
io:
  products: ./data/products.csv
  emails: ./data/emails.csv
  output_dir: ./results
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://models.internal:8080", cfg.AI.Host)
	assert.Equal(t, "qwen2.5:7b", cfg.AI.ChatModel)
	assert.Equal(t, 500, cfg.Index.ChunkSize)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.InDelta(t, 0.4, cfg.Retrieval.MinSimilarity, 0.0001)
	assert.Equal(t, "./results", cfg.IO.OutputDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("MAILTRIAGE_TOKEN", "sekrit")
	path := writeConfig(t, `
ai:
  api_token: ${MAILTRIAGE_TOKEN}
  host: ${MAILTRIAGE_HOST:-http://localhost:11434/v1}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sekrit", cfg.AI.APIToken)
	assert.Equal(t, "http://localhost:11434/v1", cfg.AI.Host)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateOverlap(t *testing.T) {
	path := writeConfig(t, `
index:
  chunk_size: 100
  chunk_overlap: 100
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "chunk_overlap")
}

func TestValidateLogLevel(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: loud
`)
	_, err := Load(path)
	assert.ErrorContains(t, err, "logging.level")
}

func TestSimilarityFloorDisabled(t *testing.T) {
	path := writeConfig(t, `
retrieval:
  min_similarity: -1
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(0), cfg.SimilarityFloor())
}
