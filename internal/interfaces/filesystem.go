// File: internal/interfaces/filesystem.go
package interfaces

// HFSPath is a parsed colon-separated HFS path (TN1041 §6.4, spec.md §4.9,
// §8 S6): Components in traversal order from the volume root; a leading
// colon is consumed and adds no component, and an empty component inside
// the path means "climb to the parent folder".
type HFSPath struct {
	Components []string
}

// PathParser parses the TN1041 colon-separated path syntax used by
// extract's quarry argument (spec.md §6, §8 S6).
type PathParser interface {
	Parse(s string) (HFSPath, error)
}

// Orchestrator assembles C1-C9 for the three operator-facing actions
// (spec.md §4.9, C10): analyze, list, extract.
type Orchestrator interface {
	Analyze(devicePath string) (AnalyzeReport, error)
	List(devicePath string, volumeIndex int) (ListReport, error)
	Extract(devicePath string, volumeIndex int, quarry string, dest ForkWriter) error
}

// ForkWriter is the host-side rehydration collaborator (out of core per
// spec.md §1): it receives fork bytes and is responsible for
// AppleDouble/type-creator attribute mechanics on the host filesystem.
type ForkWriter interface {
	WriteFork(forkName string, isResource bool, data []byte) error
}

// AnalyzeReport is the structural dump analyze produces: one
// VolumeAnalysis per probe result (spec.md §4.2's "two results for a
// wrapped volume").
type AnalyzeReport struct {
	Volumes []VolumeAnalysis
}

// VolumeAnalysis is one volume's analyze output.
type VolumeAnalysis struct {
	Kind        string
	StartOffset int64
	Diagnostics []Diagnostic
	RecordCount int
}

// ListReport is the directory tree list produces.
type ListReport struct {
	Lines []string
}
