package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/server"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the match, skill matching and PDF upload endpoints.

/api/match and /cvjob-compare call Gemini and need GEMINI_API_KEY. Without it
the server still starts; those two routes answer 502 while /health,
/api/match-skills and /api/upload-pdf work normally.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from PORT or 8000)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	service, client, err := buildService(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	if client != nil {
		defer func() {
			if err := client.Close(); err != nil {
				log.Printf("[server] Error closing LLM client: %v", err)
			}
		}()
	}

	return server.New(cfg, service).Start()
}
