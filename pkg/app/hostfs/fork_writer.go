// Package hostfs is the rehydration back-end spec.md §1 names as an
// external collaborator: it takes the core's fork bytes and writes them to
// the host filesystem, encoding a resource fork as an AppleDouble sidecar
// since this host has no native resource-fork support.
package hostfs

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hfsreader/hfsreader/internal/interfaces"
)

// appleDoubleMagic and appleDoubleVersion identify the header of an
// AppleDouble file (Apple TN1150 Appendix, "Uniform Type Identifiers").
const (
	appleDoubleMagic   uint32 = 0x00051607
	appleDoubleVersion uint32 = 0x00020000

	// entryIDResourceFork is AppleDouble's entry type for resource-fork data.
	entryIDResourceFork uint32 = 2
)

// DirWriter implements interfaces.ForkWriter by placing each file's data
// fork directly at destDir/name and, when a resource fork is present,
// writing it as an AppleDouble sidecar at destDir/._name.
type DirWriter struct {
	destDir string
}

var _ interfaces.ForkWriter = (*DirWriter)(nil)

// NewDirWriter returns a DirWriter rooted at destDir, creating it if
// necessary.
func NewDirWriter(destDir string) (*DirWriter, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("create destination directory: %w", err)
	}
	return &DirWriter{destDir: destDir}, nil
}

// WriteFork writes one fork's bytes for forkName, per interfaces.ForkWriter.
func (w *DirWriter) WriteFork(forkName string, isResource bool, data []byte) error {
	if !isResource {
		return os.WriteFile(filepath.Join(w.destDir, forkName), data, 0o644)
	}
	sidecar := filepath.Join(w.destDir, "._"+forkName)
	return os.WriteFile(sidecar, encodeAppleDouble(data), 0o644)
}

// encodeAppleDouble wraps resourceFork in a minimal single-entry AppleDouble
// container: a 26-byte header (magic, version, 16 bytes filler, entry
// count), one 12-byte entry descriptor for the resource fork, then the
// fork's bytes.
func encodeAppleDouble(resourceFork []byte) []byte {
	const headerSize = 26
	const entrySize = 12
	dataOffset := uint32(headerSize + entrySize)

	buf := make([]byte, int(dataOffset)+len(resourceFork))
	binary.BigEndian.PutUint32(buf[0:4], appleDoubleMagic)
	binary.BigEndian.PutUint32(buf[4:8], appleDoubleVersion)
	// bytes 8:24 are filler, left zero.
	binary.BigEndian.PutUint16(buf[24:26], 1) // one entry

	binary.BigEndian.PutUint32(buf[26:30], entryIDResourceFork)
	binary.BigEndian.PutUint32(buf[30:34], dataOffset)
	binary.BigEndian.PutUint32(buf[34:38], uint32(len(resourceFork)))

	copy(buf[dataOffset:], resourceFork)
	return buf
}
