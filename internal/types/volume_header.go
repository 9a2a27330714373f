package types

// HFSPlusVolumeHeader is the HFS+ volume header, 512 bytes, at byte offset
// 1024 (TN1150). A second copy is kept in the volume's last 512 bytes but
// is not consulted by the core (no write/repair path). All fields are
// big-endian.
type HFSPlusVolumeHeader struct {
	Signature          uint16 // 'H+' or 'HX'
	Version             uint16 // 4 for HFS+, 5 for HFSX
	Attributes          uint32
	LastMountedVersion  uint32
	JournalInfoBlock    uint32

	CreateDate      uint32
	ModifyDate      uint32
	BackupDate      uint32
	CheckedDate     uint32

	FileCount       uint32
	FolderCount     uint32

	BlockSize       uint32 // allocation block size, bytes
	TotalBlocks     uint32
	FreeBlocks      uint32

	NextAllocation  uint32
	RsrcClumpSize   uint32
	DataClumpSize   uint32
	NextCatalogID   CNID

	WriteCount      uint32
	EncodingsBitmap uint64

	FinderInfo [8]uint32

	AllocationFile HFSPlusForkData
	ExtentsFile    HFSPlusForkData
	CatalogFile    HFSPlusForkData
	AttributesFile HFSPlusForkData
	StartupFile    HFSPlusForkData
}

// HFSPlusForkData describes a fork: its size, clump size, and initial
// (inline) extent record (TN1150).
type HFSPlusForkData struct {
	LogicalSize uint64
	ClumpSize   uint32
	TotalBlocks uint32
	Extents     HFSPlusExtentRecord
}

// Volume attribute bits (HFSPlusVolumeHeader.Attributes) relevant to
// read-only analysis.
const (
	VolUnmountedBit      uint32 = 1 << 8
	VolSoftwareLockBit   uint32 = 1 << 15
)

// kHFSCatalogNodeIDsReused and similar Finder-info slots are intentionally
// left as opaque uint32 entries in FinderInfo; the core does not interpret
// Finder-specific meaning beyond what analyze reports verbatim.
