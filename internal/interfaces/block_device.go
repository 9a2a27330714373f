// File: internal/interfaces/block_device.go
package interfaces

import "io"

// BlockDeviceReader is a random-access reader over a seekable device or disk
// image, offset-shifted by a volume's startOffset (spec.md §4.1, C2).
//
// No write methods are exposed: the core has no write path (spec.md §1
// Non-goals).
type BlockDeviceReader interface {
	io.Closer

	// ReadBlocks reads count*allocBlockSize bytes beginning at
	// firstAllocBlock (relative to the device reader's configured
	// allocation block size, not necessarily the volume's own). Fails with
	// a DeviceIo-kind error on a short read.
	ReadBlocks(firstAllocBlock uint64, count uint64) ([]byte, error)

	// ReadAt reads length bytes at an absolute byte offset from the start
	// of the device (i.e. ignoring any volume startOffset), for reading
	// the probe region and wrapper headers that precede block geometry
	// being known.
	ReadAt(offset int64, length int) ([]byte, error)

	// AllocBlockSize returns the block size this reader multiplies
	// firstAllocBlock/count by.
	AllocBlockSize() uint32

	// Size returns the total size, in bytes, of the underlying device.
	Size() uint64
}
