package interfaces

// ForkReader synthesizes a logical byte stream over a fork's extent list,
// consulting the extents-overflow B-tree on demand for extents beyond the
// inline record (spec.md §4.4, C6).
type ForkReader interface {
	// ReadAt returns length bytes starting at logical offset off within
	// the fork. Fails with ShortFork if the extent list (inline plus any
	// overflow fetched) doesn't cover the requested range, or with
	// OutOfRange if off+length exceeds the fork's logicalSize.
	ReadAt(off int64, length int) ([]byte, error)

	LogicalSize() int64
}

// ExtentOverflowLookup resolves additional extents for a fork beyond its
// inline record, by searching the extents-overflow B-tree (spec.md §4.4,
// §4.6, C8).
type ExtentOverflowLookup interface {
	// NextExtents returns the overflow record keyed exactly
	// (forkType, fileID, fromBlock), or ok=false if there is none; a record
	// of the same fork that starts after fromBlock is not returned.
	NextExtents(forkType byte, fileID uint32, fromBlock uint32) (startBlocks []uint32, blockCounts []uint32, ok bool, err error)
}
