// Package output renders Orchestrator results (spec.md §4.9, C10) for the
// CLI, in the same table/json/yaml choice of formats the teacher's
// discover command offered.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/hfsreader/hfsreader/internal/interfaces"
)

// FormatAnalyze renders an AnalyzeReport in the requested format.
func FormatAnalyze(report interfaces.AnalyzeReport, format string) error {
	switch format {
	case "json":
		return encodeJSON(report)
	case "yaml":
		return encodeYAML(report)
	case "table", "":
		return formatAnalyzeTable(report)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// FormatList renders a ListReport in the requested format.
func FormatList(report interfaces.ListReport, format string) error {
	switch format {
	case "json":
		return encodeJSON(report)
	case "yaml":
		return encodeYAML(report)
	case "table", "":
		for _, line := range report.Lines {
			fmt.Println(line)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func formatAnalyzeTable(report interfaces.AnalyzeReport) error {
	if len(report.Volumes) == 0 {
		fmt.Println("No HFS or HFS+ volumes found.")
		return nil
	}

	for i, vol := range report.Volumes {
		fmt.Printf("Volume #%d: %s at offset %d\n", i, vol.Kind, vol.StartOffset)
		fmt.Printf("  Records: %d\n", vol.RecordCount)

		if len(vol.Diagnostics) == 0 {
			fmt.Println("  Diagnostics: none")
			continue
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  CHECK\tPASSED\tDETAIL\n")
		for _, d := range vol.Diagnostics {
			fmt.Fprintf(w, "  %s\t%v\t%s\n", d.Check, d.Passed, d.Detail)
		}
		w.Flush()
	}
	return nil
}

func encodeJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func encodeYAML(v interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(v)
}
