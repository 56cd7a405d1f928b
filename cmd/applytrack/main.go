// Package main provides the entry point for the ApplyTrack HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "applytrack",
	Short: "ApplyTrack job application tracker",
	Long:  "ApplyTrack tracks job applications across users, ingests postings in bulk from CSV files or posting URLs, and manages resumes with LaTeX compilation via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
