// Package config loads and hot-reloads labdecoder configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/labdecoder/labdecoder/internal/providers"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Extract   ExtractConfig   `mapstructure:"extract"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host       string        `mapstructure:"host"`
	Port       string        `mapstructure:"port"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

// GeneratorConfig holds generation backend settings. Model selects the
// primary capability; when empty the fallback model serves instead.
type GeneratorConfig struct {
	Model         string `mapstructure:"model"`
	FallbackModel string `mapstructure:"fallback_model"`
	APIKey        string `mapstructure:"api_key"`
	BaseURL       string `mapstructure:"base_url"`
	RateLimit     int    `mapstructure:"rate_limit"`
	MaxRetries    int    `mapstructure:"max_retries"`
}

// KnowledgeConfig holds knowledge store settings.
type KnowledgeConfig struct {
	// Dir is the directory of reference text files to index.
	Dir string `mapstructure:"dir"`
	// DBPath is the SQLite index location.
	DBPath string `mapstructure:"db_path"`
}

// ExtractConfig holds extraction pipeline settings.
type ExtractConfig struct {
	// RulesFile overrides the built-in pattern rules. Empty uses the
	// embedded defaults.
	RulesFile string `mapstructure:"rules_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:       "127.0.0.1",
			Port:       "8080",
			SessionTTL: 30 * time.Minute,
		},
		Generator: GeneratorConfig{
			Model:         providers.DefaultModel,
			FallbackModel: providers.DefaultFallbackModel,
			APIKey:        "${OPENAI_API_KEY}",
			RateLimit:     60,
			MaxRetries:    3,
		},
		Knowledge: KnowledgeConfig{
			Dir:    "knowledge",
			DBPath: "knowledge.db",
		},
	}
}

// ToOpenAIConfig converts generator settings for the providers
// package, resolving ${ENV_VAR} references in the API key.
func (g GeneratorConfig) ToOpenAIConfig() providers.OpenAIConfig {
	return providers.OpenAIConfig{
		APIKey:        ResolveEnvVars(g.APIKey),
		Model:         g.Model,
		FallbackModel: g.FallbackModel,
		BaseURL:       g.BaseURL,
		RateLimit:     g.RateLimit,
		MaxRetries:    g.MaxRetries,
	}
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a config manager and loads initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper sets up viper with defaults and config file.
func (cm *Manager) initViper(cfgFile string) error {
	defaults := Default()
	viper.SetDefault("server", defaults.Server)
	viper.SetDefault("generator", defaults.Generator)
	viper.SetDefault("knowledge", defaults.Knowledge)
	viper.SetDefault("extract", defaults.Extract)

	// Environment variables with LABDEC_ prefix
	viper.SetEnvPrefix("LABDEC")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.labdecoder")
	}

	// Config file is optional
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}

// ResolveEnvVars expands ${ENV_VAR} references in a string.
func ResolveEnvVars(value string) string {
	if value == "" {
		return value
	}
	pattern := regexp.MustCompile(`\$\{([^}]+)\}`)
	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		varName := match[2 : len(match)-1]
		return os.Getenv(varName)
	})
}
