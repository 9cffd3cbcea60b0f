package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// historyCmd returns the command listing past scan sessions, newest first.
func historyCmd() *cobra.Command {
	var identity string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past scan sessions stored in the database",
		Long: `Print every stored scan session for an identity as JSON, newest first.
Each session includes its full list of scored repositories.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDbPath, err := filepath.Abs(dbPath)
			if err != nil {
				return fmt.Errorf("failed to get absolute path for db: %w", err)
			}

			if _, err := os.Stat(absDbPath); os.IsNotExist(err) {
				return fmt.Errorf("database file does not exist at path: %s", absDbPath)
			}

			conn, err := openDatabase(absDbPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			results, err := conn.ListScans(cmd.Context(), identity)
			if err != nil {
				return fmt.Errorf("failed to list scans: %w", err)
			}

			jsonData, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal scan history to JSON: %w", err)
			}

			fmt.Println(string(jsonData))
			return nil
		},
	}

	cmd.Flags().StringVar(&identity, "identity", "local", "Identity whose sessions are listed")

	return cmd
}
