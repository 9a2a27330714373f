package services

import (
	"fmt"
	"math/bits"

	"github.com/hfsreader/hfsreader/internal/interfaces"
	"github.com/hfsreader/hfsreader/internal/parsers/container"
	"github.com/hfsreader/hfsreader/internal/parsers/extents"
	"github.com/hfsreader/hfsreader/internal/parsers/text"
	"github.com/hfsreader/hfsreader/internal/types"
)

// volumeHeader implements interfaces.VolumeHeader over a parsed MDB (HFS
// Standard) or HFSPlusVolumeHeader, computed once at construction
// (spec.md §4.3, C5).
type volumeHeader struct {
	kind        types.VolumeKind
	name        string
	startOffset int64

	allocBlockSize uint32
	totalBlocks    uint32
	freeBlocks     uint32
	fileCount      uint32
	folderCount    uint32
	nextCatalogID  types.CNID

	allocationsFork types.ForkDescriptor
	extentsFork     types.ForkDescriptor
	catalogFork     types.ForkDescriptor

	diagnostics []interfaces.Diagnostic
}

// NewVolumeHeaderHFS parses an HFS Standard MDB at loc.StartByteOffset and
// builds its VolumeHeader, cross-checking freeBlocks against the volume
// bitmap's popcount (spec.md §4.3).
func NewVolumeHeaderHFS(device interfaces.BlockDeviceReader, loc interfaces.VolumeLocation) (interfaces.VolumeHeader, error) {
	data, err := device.ReadAt(loc.StartByteOffset, types.HFSMasterDirectoryBlockSize)
	if err != nil {
		return nil, err
	}
	mdb, err := container.ParseMDB(data)
	if err != nil {
		return nil, err
	}

	name, err := text.DecodeMacRomanDecomposed(container.VolumeNamePascal(mdb))
	if err != nil {
		name = ""
	}

	vh := &volumeHeader{
		kind:           types.VolumeKindHFS,
		name:           name,
		startOffset:    loc.StartByteOffset,
		allocBlockSize: mdb.DrAlBlkSiz,
		totalBlocks:    uint32(mdb.DrNmAlBlks),
		freeBlocks:     uint32(mdb.DrFreeBks),
		fileCount:      mdb.DrFilCnt,
		folderCount:    mdb.DrDirCnt,
		nextCatalogID:  types.CNID(mdb.DrNxtCNID),
		extentsFork:    hfsForkFromExtentRecord(uint64(mdb.DrXTFlSize), mdb.DrXTExtRec),
		catalogFork:    hfsForkFromExtentRecord(uint64(mdb.DrCTFlSize), mdb.DrCTExtRec),
	}
	// HFS synthesizes the bitmap's fork descriptor from drVBMSt: the
	// bitmap occupies ceil(totalBlocks/8/blockSize) allocation blocks
	// starting there, with no extents-overflow continuation possible.
	// drVBMSt is treated as an allocation-block number (consistent with
	// this reader's ReadBlocks unit), not the 512-byte logical block some
	// historical documentation uses for it.
	bitmapBlocks := (vh.totalBlocks/8 + uint32(vh.allocBlockSize) - 1) / vh.allocBlockSize
	vh.allocationsFork = types.ForkDescriptor{
		LogicalSize: uint64(vh.totalBlocks+7) / 8,
		TotalBlocks: bitmapBlocks,
		ExtentsHFS:  types.HFSExtentRecord{{StartBlock: mdb.DrVBMSt, BlockCount: uint16(bitmapBlocks)}},
	}

	vh.diagnostics = crossCheckBitmap(device, vh)
	return vh, nil
}

// NewVolumeHeaderHFSPlus parses an HFS+ Volume Header at loc.StartByteOffset.
// Name is left empty: HFS+ volume names live in the catalog root folder's
// thread record (spec.md §4.3), resolved by the catalog layer, not here.
func NewVolumeHeaderHFSPlus(device interfaces.BlockDeviceReader, loc interfaces.VolumeLocation) (interfaces.VolumeHeader, error) {
	data, err := device.ReadAt(loc.StartByteOffset, types.HFSMasterDirectoryBlockSize)
	if err != nil {
		return nil, err
	}
	header, err := container.ParseVolumeHeader(data)
	if err != nil {
		return nil, err
	}

	vh := &volumeHeader{
		kind:            types.VolumeKindHFSPlus,
		startOffset:     loc.StartByteOffset,
		allocBlockSize:  header.BlockSize,
		totalBlocks:     header.TotalBlocks,
		freeBlocks:      header.FreeBlocks,
		fileCount:       header.FileCount,
		folderCount:     header.FolderCount,
		nextCatalogID:   header.NextCatalogID,
		allocationsFork: hfsPlusForkFromForkData(header.AllocationFile),
		extentsFork:     hfsPlusForkFromForkData(header.ExtentsFile),
		catalogFork:     hfsPlusForkFromForkData(header.CatalogFile),
	}
	vh.diagnostics = crossCheckBitmap(device, vh)
	return vh, nil
}

func hfsForkFromExtentRecord(logicalSize uint64, rec [3]types.HFSExtentDescriptor) types.ForkDescriptor {
	hfsRec := types.HFSExtentRecord(rec)
	return types.ForkDescriptor{
		LogicalSize: logicalSize,
		TotalBlocks: extents.SumBlockCount(hfsRec),
		ExtentsHFS:  hfsRec,
	}
}

func hfsPlusForkFromForkData(f types.HFSPlusForkData) types.ForkDescriptor {
	return types.ForkDescriptor{
		LogicalSize: f.LogicalSize,
		ClumpSize:   f.ClumpSize,
		TotalBlocks: f.TotalBlocks,
		ExtentsPlus: f.Extents,
	}
}

// crossCheckBitmap reads the allocation bitmap and compares its free-block
// popcount against the header's freeBlocks field, logging a non-fatal
// Diagnostic on mismatch (spec.md §4.3, §4.9).
func crossCheckBitmap(device interfaces.BlockDeviceReader, vh *volumeHeader) []interfaces.Diagnostic {
	check := interfaces.Diagnostic{Check: "freeBlocks vs bitmap popcount"}

	bitmapBytes := (uint64(vh.totalBlocks) + 7) / 8
	firstBlock, ok := firstExtentStart(vh.allocationsFork)
	if !ok {
		check.Detail = "allocations fork has no extents to read"
		return []interfaces.Diagnostic{check}
	}
	blockCount := (bitmapBytes + uint64(vh.allocBlockSize) - 1) / uint64(vh.allocBlockSize)
	raw, err := device.ReadBlocks(uint64(firstBlock), blockCount)
	if err != nil {
		check.Detail = fmt.Sprintf("could not read bitmap: %v", err)
		return []interfaces.Diagnostic{check}
	}
	if uint64(len(raw)) > bitmapBytes {
		raw = raw[:bitmapBytes]
	}

	freeByPopcount := uint32(0)
	for _, b := range raw {
		freeByPopcount += uint32(8 - bits.OnesCount8(b))
	}
	check.Passed = freeByPopcount == vh.freeBlocks
	if !check.Passed {
		check.Detail = fmt.Sprintf("header reports %d free blocks, bitmap popcount gives %d", vh.freeBlocks, freeByPopcount)
	}
	return []interfaces.Diagnostic{check}
}

func firstExtentStart(f types.ForkDescriptor) (uint32, bool) {
	if f.ExtentsHFS[0].BlockCount > 0 {
		return uint32(f.ExtentsHFS[0].StartBlock), true
	}
	if f.ExtentsPlus[0].BlockCount > 0 {
		return f.ExtentsPlus[0].StartBlock, true
	}
	return 0, false
}

func (v *volumeHeader) Kind() types.VolumeKind        { return v.kind }
func (v *volumeHeader) Name() string                  { return v.name }
func (v *volumeHeader) AllocBlockSize() uint32        { return v.allocBlockSize }
func (v *volumeHeader) TotalBlocks() uint32           { return v.totalBlocks }
func (v *volumeHeader) FreeBlocks() uint32             { return v.freeBlocks }
func (v *volumeHeader) FileCount() uint32             { return v.fileCount }
func (v *volumeHeader) FolderCount() uint32           { return v.folderCount }
func (v *volumeHeader) NextCatalogID() types.CNID     { return v.nextCatalogID }
func (v *volumeHeader) StartOffset() int64            { return v.startOffset }
func (v *volumeHeader) AllocationsFork() types.ForkDescriptor { return v.allocationsFork }
func (v *volumeHeader) ExtentsFork() types.ForkDescriptor     { return v.extentsFork }
func (v *volumeHeader) CatalogFork() types.ForkDescriptor     { return v.catalogFork }
func (v *volumeHeader) Diagnostics() []interfaces.Diagnostic  { return v.diagnostics }
