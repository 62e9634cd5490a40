package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the run configuration loaded from YAML.
type Config struct {
	AI        AIConfig        `yaml:"ai"`
	Index     IndexConfig     `yaml:"index"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	IO        IOConfig        `yaml:"io"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AIConfig holds model endpoint settings.
type AIConfig struct {
	Host            string `yaml:"host"`             // applies to both endpoints unless overridden
	EmbeddingHost   string `yaml:"embedding_host"`   // overrides host for embeddings
	ChatHost        string `yaml:"chat_host"`        // overrides host for chat completions
	EmbeddingModel  string `yaml:"embedding_model"`
	ChatModel       string `yaml:"chat_model"`
	APIToken        string `yaml:"api_token"`
	ExtractAttempts int    `yaml:"extract_attempts"`
}

// IndexConfig holds chunking and index build settings.
type IndexConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	PoolSize     int `yaml:"pool_size"` // embedding workers; 0 = NumCPU/2
}

// RetrievalConfig holds query-time settings.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
	// MinSimilarity is the relevance floor for chunk hits. Omitted or 0
	// means the default floor; -1 disables filtering entirely.
	MinSimilarity float32 `yaml:"min_similarity"`
}

// IOConfig holds input and output locations. Products and Emails accept
// local paths or http(s) export URLs.
type IOConfig struct {
	Products  string `yaml:"products"`
	Emails    string `yaml:"emails"`
	OutputDir string `yaml:"output_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default settings.
const (
	DefaultChunkSize     = 1000
	DefaultChunkOverlap  = 200
	DefaultTopK          = 3
	DefaultMinSimilarity = 0.60
	DefaultOutputDir     = "output"
)

// Load reads configuration from a YAML file. An empty path yields the
// defaults. ${VAR} and ${VAR:-default} references in the file are expanded
// from the environment before parsing.
func Load(path string) (Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}

		data = expandEnvVars(data)

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Index.ChunkSize <= 0 {
		c.Index.ChunkSize = DefaultChunkSize
	}
	if c.Index.ChunkOverlap <= 0 {
		c.Index.ChunkOverlap = DefaultChunkOverlap
	}
	if c.Retrieval.TopK <= 0 {
		c.Retrieval.TopK = DefaultTopK
	}
	if c.Retrieval.MinSimilarity == 0 {
		c.Retrieval.MinSimilarity = DefaultMinSimilarity
	}
	if c.IO.OutputDir == "" {
		c.IO.OutputDir = DefaultOutputDir
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// SimilarityFloor returns the effective retrieval floor: the configured
// value, or 0 when filtering is disabled.
func (c *Config) SimilarityFloor() float32 {
	if c.Retrieval.MinSimilarity < 0 {
		return 0
	}
	return c.Retrieval.MinSimilarity
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Index.ChunkOverlap >= c.Index.ChunkSize {
		return fmt.Errorf("index.chunk_overlap (%d) must be smaller than index.chunk_size (%d)",
			c.Index.ChunkOverlap, c.Index.ChunkSize)
	}
	if c.Retrieval.MinSimilarity > 1 {
		return fmt.Errorf("retrieval.min_similarity must not exceed 1, got %f", c.Retrieval.MinSimilarity)
	}
	if c.AI.ExtractAttempts < 0 {
		return fmt.Errorf("ai.extract_attempts must not be negative, got %d", c.AI.ExtractAttempts)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
