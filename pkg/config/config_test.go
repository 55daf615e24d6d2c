package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestConfigDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	err := Init()
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if GetInt("server.port") != 8080 {
		t.Errorf("Expected default server.port to be 8080, got %d", GetInt("server.port"))
	}
	if GetInt("limits.max_transcriptions") != 4 {
		t.Errorf("Expected default limits.max_transcriptions to be 4, got %d", GetInt("limits.max_transcriptions"))
	}
	if GetDuration("limits.window") != 24*time.Hour {
		t.Errorf("Expected default limits.window to be 24h, got %v", GetDuration("limits.window"))
	}
	if GetDuration("gemini.poll_interval") != 2*time.Second {
		t.Errorf("Expected default gemini.poll_interval to be 2s, got %v", GetDuration("gemini.poll_interval"))
	}
	if GetInt("gemini.max_poll_attempts") != 10 {
		t.Errorf("Expected default gemini.max_poll_attempts to be 10, got %d", GetInt("gemini.max_poll_attempts"))
	}
	if GetString("openai.whisper_model") != "whisper-1" {
		t.Errorf("Expected default openai.whisper_model to be whisper-1, got %s", GetString("openai.whisper_model"))
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 8080,
				},
				Database: DatabaseConfig{
					Path: "./data/transcriber.db",
				},
				Limits: LimitsConfig{
					Window:            24 * time.Hour,
					MaxTranscriptions: 4,
				},
			},
			wantErr: false,
		},
		{
			name: "invalid port",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 0,
				},
			},
			wantErr: true,
		},
		{
			name: "zero limits auto-corrected",
			config: &Config{
				Server: ServerConfig{
					Host: "localhost",
					Port: 8080,
				},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCorrectsLimits(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "localhost", Port: 8080},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Limits.MaxTranscriptions != 4 {
		t.Errorf("Expected MaxTranscriptions corrected to 4, got %d", cfg.Limits.MaxTranscriptions)
	}
	if cfg.Limits.Window != 24*time.Hour {
		t.Errorf("Expected Window corrected to 24h, got %v", cfg.Limits.Window)
	}
}
