package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version = "0.0.0"

var (
	dbPath         string
	configFilePath string
	vConfig        = viper.New()
)

const configFileFlag = "config"

var rootCmd = &cobra.Command{
	Use:   "repo-qualifier",
	Short: "GitHub Repository Quality Scanner",
	Long:  `A command-line tool to scan a GitHub account and score the structural quality of each repository.`,
}

func Execute() error {
	vConfig.SetEnvPrefix("Repo-Qualifier")
	vConfig.AutomaticEnv()

	cobra.OnInitialize(initialize)

	rootCmd.PersistentFlags().StringVar(&configFilePath, configFileFlag, "", "Path to the config file")
	cobra.CheckErr(rootCmd.MarkPersistentFlagFilename(configFileFlag, "yaml", "yml", "json"))
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "data/qualifier.db", "Path to the SQLite database file")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(historyCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Error executing root command")
		return err
	}
	return nil
}
