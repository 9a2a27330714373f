package types

// MasterDirectoryBlock is the HFS Standard volume header, 162 bytes, at byte
// offset 1024 from the start of the volume (Inside Macintosh: Files §2-56).
// All fields are big-endian.
type MasterDirectoryBlock struct {
	DrSigWord    uint16 // 'BD' (0x4244)
	DrCrDate     uint32 // volume creation date
	DrLsMod      uint32 // volume last modified date
	DrAtrb       uint16 // volume attributes
	DrNmFls      uint16 // number of files in root folder
	DrVBMSt      uint16 // first block of volume bitmap
	DrAllocPtr   uint16 // start of next allocation search
	DrNmAlBlks   uint16 // number of allocation blocks in volume
	DrAlBlkSiz   uint32 // size (bytes) of allocation blocks
	DrClpSiz     uint32 // default clump size
	DrAlBlSt     uint16 // first allocation block in volume (in 512-byte blocks)
	DrNxtCNID    uint32 // next unused catalog node ID
	DrFreeBks    uint16 // number of unused allocation blocks
	DrVN         [28]byte // volume name, Pascal string (1 length byte + up to 27 bytes)
	DrVolBkUp    uint32 // date of last backup
	DrVSeqNum    uint16 // volume backup sequence number
	DrWrCnt      uint32 // volume write count
	DrXTClpSiz   uint32 // clump size for extents overflow file
	DrCTClpSiz   uint32 // clump size for catalog file
	DrNmRtDirs   uint16 // number of directories in root folder
	DrFilCnt     uint32 // number of files in volume
	DrDirCnt     uint32 // number of directories in volume
	DrFndrInfo   [32]byte // information used by the Finder
	DrVCSize     uint16 // size (blocks) of volume cache (unused on disk)
	DrVBMCSize   uint16 // size (blocks) of volume bitmap cache (unused on disk)
	DrCtlCSize   uint16 // size (blocks) of common volume cache (unused on disk)
	DrXTFlSize   uint32 // size (bytes) of extents overflow file
	DrXTExtRec   [3]HFSExtentDescriptor // extent record for extents overflow file
	DrCTFlSize   uint32 // size (bytes) of catalog file
	DrCTExtRec   [3]HFSExtentDescriptor // extent record for catalog file
}

// EmbeddedVolume reinterprets the DrVCSize/DrVBMCSize/DrCtlCSize trio as the
// drEmbedSigWord/drEmbedExtent union HFS wrappers store there when they
// embed an HFS+ volume (Inside Macintosh: Files §2; TN1150). These three
// in-memory-only cache-size fields occupy the same six on-disk bytes as the
// embedded-volume descriptor, so the two are mutually exclusive by
// convention: a wrapper sets DrSigWord='BD' and this field nonzero.
func (m *MasterDirectoryBlock) EmbeddedVolume() (sigWord uint16, startBlock, blockCount uint16) {
	return m.DrVCSize, m.DrVBMCSize, m.DrCtlCSize
}

// DrSigWord values.
const (
	HFSSigWord    uint16 = 0x4244 // 'BD', HFS Standard
	HFSPlusSigWord uint16 = 0x482B // 'H+', HFS+ (also the embedded signature)
	HFSXSigWord   uint16 = 0x4858 // 'HX', HFSX
)

// Volume attribute bits relevant to read-only analysis (DrAtrb).
const (
	VAtrbHardwareLock uint16 = 1 << 7
	VAtrbUnmounted    uint16 = 1 << 8
	VAtrbSparedBlocks uint16 = 1 << 9
	VAtrbVolInconsist uint16 = 1 << 11
	VAtrbSoftwareLock uint16 = 1 << 15
)

// HFSMasterDirectoryBlockOffset is the fixed offset, in bytes, from the
// start of an HFS volume to its Master Directory Block (and identically,
// for HFS+, to the Volume Header).
const HFSMasterDirectoryBlockOffset = 1024

// HFSMasterDirectoryBlockSize is the on-disk size of the MDB/Volume Header
// region probed at HFSMasterDirectoryBlockOffset.
const HFSMasterDirectoryBlockSize = 512
