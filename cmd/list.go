package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hfsreader/hfsreader/pkg/app/output"
	"github.com/hfsreader/hfsreader/pkg/services"
)

var listVolumeIndex int

var listCmd = &cobra.Command{
	Use:   "list [device-or-image-path]",
	Short: "List the catalog tree of a volume",
	Long: `List every file and folder of one volume on a device or disk image,
indented by its depth in the catalog tree.

Examples:
  # List the first volume found
  hfsreader list /dev/disk2

  # List the second volume of a wrapped image
  hfsreader list backup.dmg --volume-index 1`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(args[0])
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().IntVar(&listVolumeIndex, "volume-index", 0, "index of the volume to list, per analyze's ordering")
}

func runList(devicePath string) error {
	orchestrator, err := services.GetOrchestrator()
	if err != nil {
		return err
	}
	report, err := orchestrator.List(devicePath, listVolumeIndex)
	if err != nil {
		return err
	}
	return output.FormatList(report, GetOutputFormat())
}
