package cmd

import (
	"fmt"
	"os"

	"github.com/scribeworks/transcriber-api/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "transcriber-api",
	Short: "Transcriber API server",
	Long: `Transcriber API - An audio transcription and AI analysis backend

This API accepts audio uploads from authenticated users, transcribes them
through either the Gemini file pipeline or the OpenAI Whisper endpoint,
and produces an AI-written summary alongside the transcript.

Features:
  • Email/password registration with JWT bearer tokens
  • Audio transcription via Gemini or OpenAI Whisper
  • AI analysis of every transcript
  • Per-user transcription quotas over a sliding window
  • Transcription history per account`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig initializes the configuration. Commands that need settings
// call this at the top of their RunE.
func loadConfig() error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
