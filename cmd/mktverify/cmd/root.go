package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mktdata/mktverify/pkg/config"
	"github.com/mktdata/mktverify/pkg/history"
	"github.com/mktdata/mktverify/pkg/verify"
)

// cfg is the effective configuration, resolved once before any subcommand
// runs: file (if present), then environment, then flags.
var cfg *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mktverify",
	Short: "mktverify - capture file verification tool",
	Long: `mktverify verifies binary market-data capture files: header layout,
declared counts against physical size, sequence-number continuity, and a
compensated sum of record payloads.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" && config.ConfigExists(config.GetDefaultConfigPath()) {
			configPath = config.GetDefaultConfigPath()
		}

		if configPath != "" {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
		} else {
			cfg = config.DefaultConfig()
		}

		if err := cfg.ApplyEnv(); err != nil {
			return err
		}

		if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
			cfg.DataDir = dataDir
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a configuration file")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for the run history store")
}

// verifierConfig maps the effective configuration onto the verifier.
func verifierConfig() verify.VerifierConfig {
	return verify.VerifierConfig{
		Tolerance:          cfg.Verification.Tolerance,
		MaxSeqErrorDetails: cfg.Verification.MaxSeqErrorDetails,
		HeadSamples:        cfg.Verification.HeadSamples,
		TailSamples:        cfg.Verification.TailSamples,
	}
}

func openHistory() (*history.Store, error) {
	store, err := history.Open(history.StoreConfig{DataDir: cfg.DataDir})
	if err != nil {
		return nil, fmt.Errorf("failed to open history store: %w", err)
	}
	return store, nil
}
