package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/applytrack/internal/config"
	"github.com/jonathan/applytrack/internal/db"
	"github.com/jonathan/applytrack/internal/fetch"
	"github.com/jonathan/applytrack/internal/ingestion"
	"github.com/jonathan/applytrack/internal/llm"
	"github.com/jonathan/applytrack/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Bulk-import applications from a CSV file or a URL list",
	Long: `Import job applications in bulk. With --csv, rows are read from a CSV file
with a header row (company, job_title, locations, url, job_type, category, ...).
With --urls, posting URLs are read one per line and each page is fetched and
extracted through the AI gateway. Rows are processed independently: a bad row
is reported in the summary and never aborts the rest of the batch.`,
	RunE: runImport,
}

var (
	importCSV     string
	importURLs    string
	importUserRef string
)

func init() {
	importCmd.Flags().StringVar(&importCSV, "csv", "", "Path to CSV file of filled rows")
	importCmd.Flags().StringVar(&importURLs, "urls", "", "Path to file of posting URLs, one per line")
	importCmd.Flags().StringVar(&importUserRef, "user", types.AllUsersSentinel, `Owner: a user ID or "all" to fan out to every user`)

	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, _ []string) error {
	if importCSV == "" && importURLs == "" {
		return fmt.Errorf("either --csv or --urls must be provided")
	}
	if importCSV != "" && importURLs != "" {
		return fmt.Errorf("--csv and --urls are mutually exclusive; provide only one")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()
	if err := database.Migrate(ctx); err != nil {
		return err
	}

	client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, "")
	if err != nil {
		return err
	}
	defer client.Close()

	pipeline := ingestion.New(database, llm.NewGateway(client), fetch.NewPageFetcher(), cfg.IngestConcurrency, cfg.GatewayTimeout)

	var summary *ingestion.Summary
	if importCSV != "" {
		summary, err = importFromCSV(ctx, pipeline, importCSV)
	} else {
		summary, err = importFromURLList(ctx, pipeline, importURLs)
	}
	if err != nil {
		return err
	}

	return printSummary(summary)
}

func importFromCSV(ctx context.Context, pipeline *ingestion.Pipeline, path string) (*ingestion.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	rows, err := ingestion.ParseCSV(f)
	if err != nil {
		return nil, err
	}

	return pipeline.BulkAddFromRows(ctx, importUserRef, rows)
}

func importFromURLList(ctx context.Context, pipeline *ingestion.Pipeline, path string) (*ingestion.Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs found in %s", path)
	}

	return pipeline.BulkAddFromURLs(ctx, importUserRef, urls)
}

func printSummary(summary *ingestion.Summary) error {
	fmt.Fprintf(os.Stdout, "Attempted: %d  Succeeded: %d  Failed: %d  Created: %d\n",
		summary.Attempted, summary.Succeeded, summary.Failed, summary.Created)

	if len(summary.Failures) > 0 || len(summary.Dropped) > 0 {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
	}
	return nil
}
