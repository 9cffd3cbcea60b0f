package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mathis-deconchat/github-repo-qualifier/internal/github"
	"github.com/mathis-deconchat/github-repo-qualifier/internal/model"
	"github.com/mathis-deconchat/github-repo-qualifier/internal/scanner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	var user, token, identity, reportPath string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a GitHub account and score every repository",
		Long: `Fetch all repositories owned by a GitHub user, compute a quality score for
each one from its name, README and LICENSE, and store the session in the
local SQLite database.

Examples:
  # Scan a public account
  repo-qualifier scan --user mathis-deconchat

  # Scan with a token to include private repositories
  repo-qualifier scan --user mathis-deconchat --token $GITHUB_TOKEN

  # Save the session report to a file
  repo-qualifier scan --user mathis-deconchat --report-path report.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if user == "" {
				return fmt.Errorf("a GitHub user is required (use --user)")
			}
			if token == "" {
				token = os.Getenv("GITHUB_TOKEN")
			}

			conn, err := openDatabase(dbPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			s := scanner.New(github.NewClient(), conn)
			result, err := s.Scan(cmd.Context(), identity, scanner.ScanInput{AccountHandle: user, Token: token})
			if err != nil {
				return fmt.Errorf("scan failed: %w", err)
			}

			jsonData, err := model.ScanResultToJson(result)
			if err != nil {
				return err
			}

			// Always print to terminal
			fmt.Println(string(jsonData))

			// Also save to file if path is provided
			if reportPath != "" {
				if err := os.MkdirAll(filepath.Dir(reportPath), 0755); err != nil {
					return fmt.Errorf("failed to create directory for report: %w", err)
				}
				if err := os.WriteFile(reportPath, jsonData, 0644); err != nil {
					return fmt.Errorf("failed to write JSON to file: %w", err)
				}
				log.Info().Str("output", reportPath).Msg("Scan report saved successfully.")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "GitHub account handle to scan")
	cmd.Flags().StringVar(&token, "token", "", "GitHub access token (falls back to GITHUB_TOKEN)")
	cmd.Flags().StringVar(&identity, "identity", "local", "Identity that owns the stored session")
	cmd.Flags().StringVar(&reportPath, "report-path", "", "Path to save the JSON report (if empty, prints to stdout only)")

	return cmd
}
