package services

import (
	"fmt"
	"sort"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/interfaces"
	"github.com/hfsreader/hfsreader/internal/types"
)

// extentRange is a flattened (startBlock, blockCount) pair, in allocation
// blocks, independent of whether it came from the inline record or the
// extents-overflow tree.
type extentRange struct {
	startBlock uint32
	blockCount uint32
}

// forkReader synthesizes a logical byte stream over a fork's extent list,
// fetching overflow extents eagerly at construction (spec.md §4.4, C6).
// Grounded on the extent-chasing shape of file_extent_reader.go /
// physical_extent_reader.go, generalized from APFS physical extents to
// HFS/HFS+ allocation-block extents.
type forkReader struct {
	device         interfaces.BlockDeviceReader
	allocBlockSize uint32
	logicalSize    int64

	extents     []extentRange
	blockOffset []uint64 // prefix sum of blockCount, len(extents)+1
}

// NewForkReader builds a ForkReader over fork's inline extents, consulting
// overflow for HFS+ forks (HFS Standard has no extents-overflow growth
// beyond its three inline extents in this core's read-only scope — see
// spec.md §4.4's HFS+-only overflow clause).
func NewForkReader(device interfaces.BlockDeviceReader, fork types.ForkDescriptor, fileID types.CNID, forkType byte, isHFSPlus bool, overflow interfaces.ExtentOverflowLookup) (interfaces.ForkReader, error) {
	fr := &forkReader{
		device:         device,
		allocBlockSize: device.AllocBlockSize(),
		logicalSize:    int64(fork.LogicalSize),
	}

	var covered uint32
	if isHFSPlus {
		for _, e := range fork.ExtentsPlus {
			if e.BlockCount == 0 {
				continue
			}
			fr.extents = append(fr.extents, extentRange{e.StartBlock, e.BlockCount})
			covered += e.BlockCount
		}
	} else {
		for _, e := range fork.ExtentsHFS {
			if e.BlockCount == 0 {
				continue
			}
			fr.extents = append(fr.extents, extentRange{uint32(e.StartBlock), uint32(e.BlockCount)})
			covered += uint32(e.BlockCount)
		}
	}

	for covered < fork.TotalBlocks {
		starts, counts, ok, err := overflow.NextExtents(forkType, uint32(fileID), covered)
		if err != nil {
			return nil, err
		}
		if !ok || len(starts) == 0 {
			return nil, hfserr.New(hfserr.ShortFork, fmt.Sprintf("fork covers %d of %d allocation blocks, extents-overflow exhausted", covered, fork.TotalBlocks))
		}
		for i := range starts {
			if counts[i] == 0 {
				continue
			}
			fr.extents = append(fr.extents, extentRange{starts[i], counts[i]})
			covered += counts[i]
		}
	}

	fr.blockOffset = make([]uint64, len(fr.extents)+1)
	for i, e := range fr.extents {
		fr.blockOffset[i+1] = fr.blockOffset[i] + uint64(e.blockCount)
	}
	return fr, nil
}

func (fr *forkReader) LogicalSize() int64 { return fr.logicalSize }

// ReadAt returns length bytes starting at logical offset off, locating the
// covering extent(s) via binary search over the block-count prefix sums:
// O(log k) in the number of extents, one underlying read per extent
// spanned (spec.md §4.4's guarantee).
func (fr *forkReader) ReadAt(off int64, length int) ([]byte, error) {
	if off < 0 || length < 0 || off+int64(length) > fr.logicalSize {
		return nil, hfserr.New(hfserr.OutOfRange, fmt.Sprintf("requested range [%d,%d) exceeds logical size %d", off, off+int64(length), fr.logicalSize))
	}
	out := make([]byte, 0, length)
	remaining := int64(length)
	blockSize := int64(fr.allocBlockSize)
	cursorBlock := uint64(off / blockSize)
	cursorSkip := off % blockSize

	for remaining > 0 {
		idx := fr.extentContaining(cursorBlock)
		if idx < 0 {
			return nil, hfserr.New(hfserr.ShortFork, fmt.Sprintf("no extent covers allocation block %d", cursorBlock))
		}
		e := fr.extents[idx]
		blockWithinExtent := cursorBlock - fr.blockOffset[idx]
		blocksAvailable := uint64(e.blockCount) - blockWithinExtent

		need := remaining + cursorSkip
		blocksToRead := (need + blockSize - 1) / blockSize
		if uint64(blocksToRead) > blocksAvailable {
			blocksToRead = int64(blocksAvailable)
		}

		raw, err := fr.device.ReadBlocks(uint64(e.startBlock)+blockWithinExtent, uint64(blocksToRead))
		if err != nil {
			return nil, err
		}
		take := int64(len(raw)) - cursorSkip
		if take > remaining {
			take = remaining
		}
		out = append(out, raw[cursorSkip:cursorSkip+take]...)
		remaining -= take
		cursorBlock += uint64(blocksToRead)
		cursorSkip = 0
	}
	return out, nil
}

// extentContaining returns the index of the extent covering blockNum, or
// -1 if none does (a gap, which should not occur in a well-formed fork).
func (fr *forkReader) extentContaining(blockNum uint64) int {
	i := sort.Search(len(fr.extents), func(i int) bool { return fr.blockOffset[i+1] > blockNum })
	if i >= len(fr.extents) || blockNum < fr.blockOffset[i] {
		return -1
	}
	return i
}
