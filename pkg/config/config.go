package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("TRANSCRIBER")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		fmt.Println("Warning: No database path configured")
	}

	// Validate API keys aren't using placeholder values
	if err := validateAPIKeys(); err != nil {
		return err
	}

	// Auto-correct invalid usage limits
	if viper.GetInt("limits.max_transcriptions") <= 0 {
		viper.Set("limits.max_transcriptions", 4)
	}
	if viper.GetDuration("limits.window") <= 0 {
		viper.Set("limits.window", 24*time.Hour)
	}
	if viper.GetInt("gemini.max_poll_attempts") <= 0 {
		viper.Set("gemini.max_poll_attempts", 10)
	}
	if viper.GetDuration("gemini.poll_interval") <= 0 {
		viper.Set("gemini.poll_interval", 2*time.Second)
	}

	return nil
}

// validateAPIKeys validates that API keys are not using placeholder values
func validateAPIKeys() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
		"",
	}

	openaiKey := viper.GetString("openai.api_key")
	for _, placeholder := range placeholders {
		if openaiKey == placeholder {
			if isProduction {
				return fmt.Errorf("invalid OpenAI API key: cannot use placeholder values in production")
			}
			fmt.Println("Warning: OpenAI API key is using a placeholder value")
			break
		}
	}

	geminiKey := viper.GetString("gemini.api_key")
	for _, placeholder := range placeholders {
		if geminiKey == placeholder {
			if isProduction {
				return fmt.Errorf("invalid Gemini API key: cannot use placeholder values in production")
			}
			fmt.Println("Warning: Gemini API key is using a placeholder value")
			break
		}
	}

	jwtSecret := viper.GetString("auth.jwt_secret")
	for _, placeholder := range placeholders {
		if jwtSecret == placeholder {
			if isProduction {
				return fmt.Errorf("invalid JWT secret: cannot use placeholder values in production")
			}
			fmt.Println("Warning: JWT secret is using a placeholder value - this is insecure!")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Limits.MaxTranscriptions <= 0 {
		c.Limits.MaxTranscriptions = 4
	}

	if c.Limits.Window <= 0 {
		c.Limits.Window = 24 * time.Hour
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 60*time.Second)
	viper.SetDefault("server.write_timeout", 60*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_upload_bytes", int64(26214400)) // 25 MB

	// Database defaults
	viper.SetDefault("database.path", "./data/transcriber.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.log_queries", false)

	// Auth defaults
	viper.SetDefault("auth.jwt_secret", "")
	viper.SetDefault("auth.token_ttl", 24*time.Hour)
	viper.SetDefault("auth.issuer", "transcriber-api")
	viper.SetDefault("auth.min_password", 6)

	// Usage limit defaults
	viper.SetDefault("limits.window", 24*time.Hour)
	viper.SetDefault("limits.max_transcriptions", 4)
	viper.SetDefault("limits.requests_per_second", 10)
	viper.SetDefault("limits.burst", 20)

	// OpenAI defaults
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.whisper_model", "whisper-1")
	viper.SetDefault("openai.chat_model", "gpt-4o-mini")
	viper.SetDefault("openai.language", "en")
	viper.SetDefault("openai.timeout", 5*time.Minute)

	// Gemini defaults
	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.upload_base_url", "https://generativelanguage.googleapis.com/upload/v1beta/files")
	viper.SetDefault("gemini.generate_url", "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent")
	viper.SetDefault("gemini.poll_interval", 2*time.Second)
	viper.SetDefault("gemini.max_poll_attempts", 10)
	viper.SetDefault("gemini.timeout", 5*time.Minute)

	// Storage defaults
	viper.SetDefault("storage.temp_dir", "")
}
