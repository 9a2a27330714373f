package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hfsreader/hfsreader/pkg/app/hostfs"
	"github.com/hfsreader/hfsreader/pkg/services"
)

var (
	extractDest        string
	extractVolumeIndex int
)

var extractCmd = &cobra.Command{
	Use:   "extract [device-or-image-path] [quarry]",
	Short: "Extract a file's forks by path or name",
	Long: `Locate a file in a volume's catalog by TN1041 colon-separated path or
bare name, and rehydrate its data and resource forks to the host
filesystem (the resource fork as an AppleDouble sidecar).

Examples:
  # Extract by bare name
  hfsreader extract /dev/disk2 "ReadMe" --dest ./out

  # Extract by full TN1041 path
  hfsreader extract backup.dmg ":System Folder:Finder" --dest ./out`,

	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExtract(args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractDest, "dest", "d", "", "destination directory (required)")
	extractCmd.Flags().IntVar(&extractVolumeIndex, "volume-index", 0, "index of the volume to extract from, per analyze's ordering")
	extractCmd.MarkFlagRequired("dest")
}

func runExtract(devicePath, quarry string) error {
	orchestrator, err := services.GetOrchestrator()
	if err != nil {
		return err
	}
	dest, err := hostfs.NewDirWriter(extractDest)
	if err != nil {
		return err
	}
	if err := orchestrator.Extract(devicePath, extractVolumeIndex, quarry, dest); err != nil {
		return err
	}
	fmt.Printf("extracted %q to %s\n", quarry, extractDest)
	return nil
}
