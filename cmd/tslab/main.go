package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/tslab/internal/logging"
	"github.com/san-kum/tslab/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	logger   *slog.Logger
)

// main registers the tslab commands and exits with status 1 when the
// selected command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "tslab",
		Short:         "time-series generation, transforms and quotes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(logLevel, os.Stderr)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tslab", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (info, debug, trace)")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newTransformCmd(),
		newDatasetCmd(),
		newFetchCmd(),
		newPresetsCmd(),
		newListCmd(),
		newPlotCmd(),
		newAnalyzeCmd(),
		newPhaseCmd(),
		newExportCSVCmd(),
		newExportJSONCmd(),
		newExportSVGCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return nil, err
	}
	return st, nil
}
