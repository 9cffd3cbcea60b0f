package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mathis-deconchat/github-repo-qualifier/internal/db"
	"github.com/mathis-deconchat/github-repo-qualifier/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func initialize() {
	if configFilePath != "" {
		vConfig.SetConfigFile(configFilePath)
		cobra.CheckErr(vConfig.ReadInConfig())
		log.Info().Str("config", configFilePath).Msg("Loaded configuration file")
	}

	envPrefix := ""
	cobra.CheckErr(utils.BindFlags(rootCmd, vConfig, envPrefix))

	logLevel := zerolog.InfoLevel
	zerolog.SetGlobalLevel(logLevel)
	log.Logger = log.Logger.Level(logLevel)
}

// openDatabase resolves the database path, creates its directory when needed
// and opens the connection.
func openDatabase(path string) (*db.Connection, error) {
	absDbPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for db: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absDbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := db.NewConnection(absDbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}
