package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	LogQueries            bool          `mapstructure:"log_queries"`
}

// AuthConfig contains JWT and password settings
type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	Issuer      string        `mapstructure:"issuer"`
	MinPassword int           `mapstructure:"min_password"`
}

// LimitsConfig contains usage limit settings
type LimitsConfig struct {
	// Window is the trailing duration inspected by the sliding window log
	Window time.Duration `mapstructure:"window"`
	// MaxTranscriptions is the number of records allowed inside the window
	MaxTranscriptions int `mapstructure:"max_transcriptions"`
	// RequestsPerSecond / Burst drive the per-client transport limiter
	RequestsPerSecond int `mapstructure:"requests_per_second"`
	Burst             int `mapstructure:"burst"`
}

// OpenAIConfig contains OpenAI Whisper and chat settings
type OpenAIConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	WhisperModel string        `mapstructure:"whisper_model"`
	ChatModel    string        `mapstructure:"chat_model"`
	Language     string        `mapstructure:"language"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// GeminiConfig contains Google Gemini file-API and generation settings
type GeminiConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	UploadBaseURL   string        `mapstructure:"upload_base_url"`
	GenerateURL     string        `mapstructure:"generate_url"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	MaxPollAttempts int           `mapstructure:"max_poll_attempts"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// StorageConfig contains temp-file storage settings
type StorageConfig struct {
	TempDir string `mapstructure:"temp_dir"`
}
