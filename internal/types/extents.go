package types

// HFSExtentDescriptor is one extent in an HFS Standard extent record:
// 16-bit start block and block count (Inside Macintosh: Files §2).
type HFSExtentDescriptor struct {
	StartBlock uint16
	BlockCount uint16
}

// HFSExtentRecord is the fixed-size inline extent record carried in an HFS
// catalog file record: three extents.
type HFSExtentRecord [3]HFSExtentDescriptor

// HFSPlusExtentDescriptor is one extent in an HFS+ extent record: 32-bit
// start block and block count (TN1150).
type HFSPlusExtentDescriptor struct {
	StartBlock uint32
	BlockCount uint32
}

// HFSPlusExtentRecord is the fixed-size inline extent record carried in an
// HFS+ catalog file record or fork-data structure: eight extents.
type HFSPlusExtentRecord [8]HFSPlusExtentDescriptor

// ExtentKeyHFS is the key for a record in the HFS extents-overflow B-tree:
// fork type, file (catalog node) ID, and the first allocation block the
// overflow record continues from.
type ExtentKeyHFS struct {
	ForkType   ForkType
	FileID     CNID
	StartBlock uint16
}

// ExtentKeyHFSPlus is the HFS+ equivalent, with a 32-bit start block.
type ExtentKeyHFSPlus struct {
	ForkType   ForkType
	FileID     CNID
	StartBlock uint32
}
