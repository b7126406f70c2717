package main

import (
	"github.com/spf13/cobra"

	"github.com/profferhq/proffer/internal/api"
	"github.com/profferhq/proffer/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "proffer",
	Short: "Discovery document intake and response drafting server",
	Long: `Proffer turns a served Request for Production into a set of drafted,
objection-aware responses ready for export.

The pipeline includes:
  - PDF, DOCX, and text intake with hosted parsing and local fallback
  - LLM-backed request segmentation and cleanup
  - Objection toggles and AI response drafting
  - Export to PDF, DOCX, or plain text`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.proffer/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "proffer home directory (default: ~/.proffer)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
