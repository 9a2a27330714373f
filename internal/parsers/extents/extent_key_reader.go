package extents

import (
	"encoding/binary"
	"fmt"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/types"
)

// ParseExtentKeyHFS parses an HFS Standard extents-overflow key: forkType
// (u8), fileID (u32), startBlock (u16) — 7 bytes (spec.md §3).
func ParseExtentKeyHFS(data []byte) (types.ExtentKeyHFS, error) {
	if len(data) < 7 {
		return types.ExtentKeyHFS{}, fmt.Errorf("%w: extent key needs 7 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated extent key"), len(data))
	}
	return types.ExtentKeyHFS{
		ForkType:   types.ForkType(data[0]),
		FileID:     types.CNID(binary.BigEndian.Uint32(data[1:5])),
		StartBlock: binary.BigEndian.Uint16(data[5:7]),
	}, nil
}

// ParseExtentKeyHFSPlus parses an HFS+ extents-overflow key: forkType (u8),
// pad (u8), fileID (u32), startBlock (u32) — 10 bytes.
func ParseExtentKeyHFSPlus(data []byte) (types.ExtentKeyHFSPlus, error) {
	if len(data) < 10 {
		return types.ExtentKeyHFSPlus{}, fmt.Errorf("%w: extent key needs 10 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated extent key"), len(data))
	}
	return types.ExtentKeyHFSPlus{
		ForkType:   types.ForkType(data[0]),
		FileID:     types.CNID(binary.BigEndian.Uint32(data[2:6])),
		StartBlock: binary.BigEndian.Uint32(data[6:10]),
	}, nil
}

// CompareExtentKeyHFS implements the lexicographic ordering spec.md §4.6
// defines over (forkType, fileID, startBlock).
func CompareExtentKeyHFS(a, b types.ExtentKeyHFS) int {
	if a.ForkType != b.ForkType {
		return int(a.ForkType) - int(b.ForkType)
	}
	if a.FileID != b.FileID {
		if a.FileID < b.FileID {
			return -1
		}
		return 1
	}
	if a.StartBlock == b.StartBlock {
		return 0
	}
	if a.StartBlock < b.StartBlock {
		return -1
	}
	return 1
}

// CompareExtentKeyHFSPlus is the HFS+ (32-bit startBlock) equivalent.
func CompareExtentKeyHFSPlus(a, b types.ExtentKeyHFSPlus) int {
	if a.ForkType != b.ForkType {
		return int(a.ForkType) - int(b.ForkType)
	}
	if a.FileID != b.FileID {
		if a.FileID < b.FileID {
			return -1
		}
		return 1
	}
	if a.StartBlock == b.StartBlock {
		return 0
	}
	if a.StartBlock < b.StartBlock {
		return -1
	}
	return 1
}
