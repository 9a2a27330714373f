package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hfsreader/hfsreader/pkg/app/output"
	"github.com/hfsreader/hfsreader/pkg/services"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [device-or-image-path]",
	Short: "Probe a device or image and report volume structure",
	Long: `Probe a device or disk image for HFS/HFS+ volumes and report each
volume's kind, offset, record count, and structural diagnostics.

Examples:
  # Analyze a raw device
  hfsreader analyze /dev/disk2

  # Analyze a disk image, emitting JSON
  hfsreader -o json analyze backup.dmg`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(devicePath string) error {
	orchestrator, err := services.GetOrchestrator()
	if err != nil {
		return err
	}
	report, err := orchestrator.Analyze(devicePath)
	if err != nil {
		return err
	}
	return output.FormatAnalyze(report, GetOutputFormat())
}
