package catalog

import (
	"strings"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/interfaces"
)

// pathParser implements interfaces.PathParser for TN1041's colon-separated
// HFS path syntax (spec.md §4.9, §6 S6).
type pathParser struct{}

// NewPathParser builds a TN1041 path parser.
func NewPathParser() interfaces.PathParser {
	return pathParser{}
}

// Parse splits s on ":" into traversal components. A leading colon marks
// the path as relative to the volume root (the leading empty component is
// consumed rather than kept, since every lookup here already starts at the
// root); a single trailing colon is ignored. Any other empty component
// (consecutive colons, e.g. "a::b") means "up one level" and is kept as an
// empty string in Components for the caller to interpret as a parent climb.
func (pathParser) Parse(s string) (interfaces.HFSPath, error) {
	if s == "" {
		return interfaces.HFSPath{}, hfserr.New(hfserr.PathSyntax, "empty path")
	}

	parts := strings.Split(s, ":")

	if parts[0] == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return interfaces.HFSPath{}, hfserr.New(hfserr.PathSyntax, "path has no components")
	}

	hasNamed := false
	for _, c := range parts {
		if c == "" {
			continue // parent-up
		}
		hasNamed = true
		if len([]rune(c)) > 255 {
			return interfaces.HFSPath{}, hfserr.New(hfserr.PathSyntax, "component exceeds 255 units: "+c)
		}
	}
	if !hasNamed {
		// e.g. ":::" - nothing but consecutive pops, with no component to
		// pop from.
		return interfaces.HFSPath{}, hfserr.New(hfserr.PathSyntax, "two consecutive pops with no components")
	}

	return interfaces.HFSPath{Components: parts}, nil
}
