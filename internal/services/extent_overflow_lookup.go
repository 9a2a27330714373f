package services

import (
	"github.com/hfsreader/hfsreader/internal/interfaces"
	"github.com/hfsreader/hfsreader/internal/parsers/extents"
	"github.com/hfsreader/hfsreader/internal/types"
)

// extentOverflowLookup implements interfaces.ExtentOverflowLookup by
// descending the extents-overflow B-tree with keys ordered
// (forkType, fileID, startBlock) (spec.md §4.4, §4.6).
type extentOverflowLookup struct {
	searcher  interfaces.BTreeSearcher
	isHFSPlus bool
}

// NewExtentOverflowLookup builds an ExtentOverflowLookup over the
// extents-overflow tree's searcher.
func NewExtentOverflowLookup(searcher interfaces.BTreeSearcher, isHFSPlus bool) interfaces.ExtentOverflowLookup {
	return &extentOverflowLookup{searcher: searcher, isHFSPlus: isHFSPlus}
}

// extentKeyComparator compares candidate extent keys against a fixed
// quarry using the lexicographic (forkType, fileID, startBlock) order
// spec.md §4.6 requires, rather than a raw byte comparison: the
// comparison must be numeric per field, not byte-lexicographic over the
// whole key.
type extentKeyComparator struct {
	quarryHFS     types.ExtentKeyHFS
	quarryPlus    types.ExtentKeyHFSPlus
	isHFSPlus     bool
}

func (c extentKeyComparator) Compare(candidateKey []byte) interfaces.Ordering4 {
	if c.isHFSPlus {
		cand, err := extents.ParseExtentKeyHFSPlus(candidateKey)
		if err != nil {
			return interfaces.Incomparable
		}
		return orderingFromInt(extents.CompareExtentKeyHFSPlus(c.quarryPlus, cand))
	}
	cand, err := extents.ParseExtentKeyHFS(candidateKey)
	if err != nil {
		return interfaces.Incomparable
	}
	return orderingFromInt(extents.CompareExtentKeyHFS(c.quarryHFS, cand))
}

func orderingFromInt(cmp int) interfaces.Ordering4 {
	switch {
	case cmp < 0:
		return interfaces.Lesser
	case cmp > 0:
		return interfaces.Greater
	default:
		return interfaces.Equal
	}
}

func (l *extentOverflowLookup) NextExtents(forkType byte, fileID uint32, fromBlock uint32) ([]uint32, []uint32, bool, error) {
	var cmp interfaces.Comparator
	if l.isHFSPlus {
		cmp = extentKeyComparator{isHFSPlus: true, quarryPlus: types.ExtentKeyHFSPlus{
			ForkType: types.ForkType(forkType), FileID: types.CNID(fileID), StartBlock: fromBlock,
		}}
	} else {
		cmp = extentKeyComparator{isHFSPlus: false, quarryHFS: types.ExtentKeyHFS{
			ForkType: types.ForkType(forkType), FileID: types.CNID(fileID), StartBlock: uint16(fromBlock),
		}}
	}

	leaf, idx, exact, err := l.searcher.Descend(cmp)
	if err != nil {
		return nil, nil, false, err
	}
	if !exact {
		return nil, nil, false, nil
	}
	if idx >= int(leaf.RecordCount()) {
		return nil, nil, false, nil
	}
	rawKey, err := leaf.RecordKey(idx)
	if err != nil {
		return nil, nil, false, err
	}

	if l.isHFSPlus {
		key, err := extents.ParseExtentKeyHFSPlus(rawKey)
		if err != nil {
			return nil, nil, false, err
		}
		if key.ForkType != types.ForkType(forkType) || key.FileID != types.CNID(fileID) {
			return nil, nil, false, nil
		}
		payload, err := leaf.RecordPayload(idx)
		if err != nil {
			return nil, nil, false, err
		}
		rec, err := extents.ParseHFSPlusExtentRecord(payload)
		if err != nil {
			return nil, nil, false, err
		}
		var starts, counts []uint32
		for _, e := range rec {
			if e.BlockCount == 0 {
				continue
			}
			starts = append(starts, e.StartBlock)
			counts = append(counts, e.BlockCount)
		}
		return starts, counts, len(starts) > 0, nil
	}

	key, err := extents.ParseExtentKeyHFS(rawKey)
	if err != nil {
		return nil, nil, false, err
	}
	if key.ForkType != types.ForkType(forkType) || key.FileID != types.CNID(fileID) {
		return nil, nil, false, nil
	}
	payload, err := leaf.RecordPayload(idx)
	if err != nil {
		return nil, nil, false, err
	}
	rec, err := extents.ParseHFSExtentRecord(payload)
	if err != nil {
		return nil, nil, false, err
	}
	var starts, counts []uint32
	for _, e := range rec {
		if e.BlockCount == 0 {
			continue
		}
		starts = append(starts, uint32(e.StartBlock))
		counts = append(counts, uint32(e.BlockCount))
	}
	return starts, counts, len(starts) > 0, nil
}

// noOverflow is used for the extents-overflow file's own fork reader: in
// this core's read-only scope the extents-overflow file is assumed to
// never itself fragment beyond its inline extents, so any attempt to grow
// it further is treated as corruption rather than chased recursively.
type noOverflow struct{}

func (noOverflow) NextExtents(forkType byte, fileID uint32, fromBlock uint32) ([]uint32, []uint32, bool, error) {
	return nil, nil, false, nil
}

var _ interfaces.ExtentOverflowLookup = noOverflow{}
