package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "hfsreader",
	Short: "Cross-platform HFS/HFS+ filesystem reader",
	Long: `hfsreader is a cross-platform, read-only command-line tool for exploring
and extracting files from legacy Macintosh HFS and HFS+ volumes.

Works directly with raw disks, partitions, or disk images without mounting
or relying on macOS. Ideal for data recovery and forensic analysis of
Mac OS Classic and early Mac OS X media.

Commands:
  analyze     Probe a device or image and report volume structure
  list        List the catalog tree of a volume
  extract     Extract a file's forks by path or name`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Only global output control flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format (table, json, yaml)")
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

// GetOutputFormat returns the output format
func GetOutputFormat() string {
	return outputFormat
}
