// File: internal/interfaces/volumes.go
package interfaces

import "github.com/hfsreader/hfsreader/internal/types"

// VolumeLocation is one signature detected by the volume probe (spec.md
// §4.2, C4): a byte offset and length within the device, and which
// filesystem generation was found there.
type VolumeLocation struct {
	StartByteOffset int64
	ByteLength      int64
	Kind            types.VolumeKind
}

// VolumeProbe scans a block device for HFS/HFS+ signatures at the
// candidate offsets spec.md §4.2 names, non-fatally: an unrecognized
// signature yields no emission rather than an error.
type VolumeProbe interface {
	Probe(device BlockDeviceReader) ([]VolumeLocation, error)
}

// Diagnostic is one non-fatal integrity cross-check result (spec.md §4.3,
// §4.9), returned as data rather than printed, so callers above the core
// can render or assert on it.
type Diagnostic struct {
	Check  string
	Passed bool
	Detail string
}

// VolumeHeader exposes the parsed MDB or HFSPlusVolumeHeader: geometry and
// the three system fork descriptors (spec.md §4.3, C5).
type VolumeHeader interface {
	Kind() types.VolumeKind

	// Name is the volume name for HFS (read directly from the MDB); for
	// HFS+ it is resolved by the catalog layer from the root folder's
	// thread record and is empty here.
	Name() string

	AllocBlockSize() uint32
	TotalBlocks() uint32
	FreeBlocks() uint32
	FileCount() uint32
	FolderCount() uint32
	NextCatalogID() types.CNID

	// StartOffset is the absolute byte offset, from the start of the
	// device, of allocation block 0 for this volume.
	StartOffset() int64

	AllocationsFork() types.ForkDescriptor // HFS+ only; HFS synthesizes from DrVBMSt
	ExtentsFork() types.ForkDescriptor
	CatalogFork() types.ForkDescriptor

	// Diagnostics returns the integrity cross-checks run at construction
	// time (spec.md §4.9): logicalSize vs physicalSize, totalBlocks vs
	// extent sum, freeBlocks vs bitmap popcount.
	Diagnostics() []Diagnostic
}
