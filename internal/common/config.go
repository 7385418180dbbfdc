package common

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	VectorBackendPersistent = "persistent"
	VectorBackendMemory     = "memory"

	// EmbeddingDim is fixed by the embedding model contract.
	EmbeddingDim = 384
)

// Config holds all application configuration.
type Config struct {
	StorePath          string `yaml:"storePath"`
	VectorBackend      string `yaml:"vectorBackend"`
	VectorPath         string `yaml:"vectorPath"`
	CompletionEndpoint string `yaml:"completionEndpoint"`
	VisionModel        string `yaml:"visionModel"`
	TextModel          string `yaml:"textModel"`
	EmbeddingModel     string `yaml:"embeddingModel"`
	EmbeddingDim       int    `yaml:"embeddingDim"`
	Currency           string `yaml:"currency"`
	ListenHost         string `yaml:"listenHost"`
	ListenPort         int    `yaml:"listenPort"`
	InboxDir           string `yaml:"inboxDir"`
	ImageDir           string `yaml:"imageDir"`
	MaxInflight        int    `yaml:"maxInflight"`
}

// LoadConfig reads the YAML config file (if present) and applies
// environment overrides, then fills defaults. Unknown YAML keys are
// ignored.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.StorePath = getEnv("LEDGERD_STORE_PATH", cfg.StorePath)
	cfg.VectorBackend = getEnv("LEDGERD_VECTOR_BACKEND", cfg.VectorBackend)
	cfg.VectorPath = getEnv("LEDGERD_VECTOR_PATH", cfg.VectorPath)
	cfg.CompletionEndpoint = getEnv("LEDGERD_COMPLETION_ENDPOINT", cfg.CompletionEndpoint)
	cfg.VisionModel = getEnv("LEDGERD_VISION_MODEL", cfg.VisionModel)
	cfg.TextModel = getEnv("LEDGERD_TEXT_MODEL", cfg.TextModel)
	cfg.EmbeddingModel = getEnv("LEDGERD_EMBEDDING_MODEL", cfg.EmbeddingModel)
	cfg.Currency = getEnv("LEDGERD_CURRENCY", cfg.Currency)
	cfg.ListenHost = getEnv("LEDGERD_LISTEN_HOST", cfg.ListenHost)
	cfg.ListenPort = getEnvAsInt("LEDGERD_LISTEN_PORT", cfg.ListenPort)
	cfg.InboxDir = getEnv("LEDGERD_INBOX_DIR", cfg.InboxDir)
	cfg.ImageDir = getEnv("LEDGERD_IMAGE_DIR", cfg.ImageDir)
	cfg.MaxInflight = getEnvAsInt("LEDGERD_MAX_INFLIGHT", cfg.MaxInflight)

	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	if c.StorePath == "" {
		c.StorePath = "./ledger.db"
	}
	if c.VectorBackend == "" {
		c.VectorBackend = VectorBackendPersistent
	}
	if c.VectorPath == "" {
		c.VectorPath = "./vectors"
	}
	if c.CompletionEndpoint == "" {
		c.CompletionEndpoint = "http://localhost:11434"
	}
	if c.VisionModel == "" {
		c.VisionModel = "llama3.2-vision"
	}
	if c.TextModel == "" {
		c.TextModel = "llama3.2"
	}
	if c.EmbeddingModel == "" {
		c.EmbeddingModel = "all-minilm"
	}
	if c.EmbeddingDim == 0 {
		c.EmbeddingDim = EmbeddingDim
	}
	if c.Currency == "" {
		c.Currency = "EUR"
	}
	if c.ListenHost == "" {
		c.ListenHost = "0.0.0.0"
	}
	if c.ListenPort == 0 {
		c.ListenPort = 8080
	}
	if c.MaxInflight == 0 {
		c.MaxInflight = 4
	}
}

// Validate rejects option values outside the recognized enumerations.
func (c *Config) Validate() error {
	if c.VectorBackend != VectorBackendPersistent && c.VectorBackend != VectorBackendMemory {
		return E(KindValidation, "vectorBackend must be %q or %q, got %q",
			VectorBackendPersistent, VectorBackendMemory, c.VectorBackend)
	}
	if c.EmbeddingDim != EmbeddingDim {
		return E(KindValidation, "embeddingDim must be %d, got %d", EmbeddingDim, c.EmbeddingDim)
	}
	if len(c.Currency) != 3 {
		return E(KindValidation, "currency must be a 3-letter code, got %q", c.Currency)
	}
	return nil
}

// ListenAddr joins host and port for net.Listen.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.ListenHost, c.ListenPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
