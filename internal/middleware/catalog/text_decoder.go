package catalog

import (
	"github.com/hfsreader/hfsreader/internal/interfaces"
	"github.com/hfsreader/hfsreader/internal/parsers/text"
)

// textDecoder adapts internal/parsers/text's free functions to the
// interfaces.TextDecoder shape a Comparator or catalog walker closes over.
type textDecoder struct{}

// NewTextDecoder returns the TextDecoder implementation catalog key
// comparison and path reconstruction use.
func NewTextDecoder() interfaces.TextDecoder { return textDecoder{} }

func (textDecoder) PascalToUnicode(b []byte) (string, error) {
	return text.DecodeMacRomanDecomposed(b)
}

func (textDecoder) HFSUniStr255ToUnicode(codeUnits []uint16) (string, error) {
	return text.DecodeHFSUniStr255(codeUnits), nil
}

func (textDecoder) UnicodeToMacRoman(s string) ([]byte, error) {
	return text.EncodeMacRoman(s)
}
