// Package extents parses HFS/HFS+ extent records — the inline fork
// descriptor carried in a catalog record, and the extents-overflow B-tree's
// keyed records (spec.md §3, §4.4, §4.5, C5/C6).
package extents

import (
	"encoding/binary"
	"fmt"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/types"
)

// ParseHFSExtentRecord parses the inline 3-extent record an HFS Standard
// catalog file record carries (12 bytes: three (u16,u16) pairs).
func ParseHFSExtentRecord(data []byte) (types.HFSExtentRecord, error) {
	var rec types.HFSExtentRecord
	if len(data) < 12 {
		return rec, fmt.Errorf("%w: HFS extent record needs 12 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated extent record"), len(data))
	}
	for i := 0; i < 3; i++ {
		off := i * 4
		rec[i] = types.HFSExtentDescriptor{
			StartBlock: binary.BigEndian.Uint16(data[off : off+2]),
			BlockCount: binary.BigEndian.Uint16(data[off+2 : off+4]),
		}
	}
	return rec, nil
}

// ParseHFSPlusExtentRecord parses the inline 8-extent record an HFS+
// catalog file record or HFSPlusForkData carries (64 bytes).
func ParseHFSPlusExtentRecord(data []byte) (types.HFSPlusExtentRecord, error) {
	var rec types.HFSPlusExtentRecord
	if len(data) < 64 {
		return rec, fmt.Errorf("%w: HFS+ extent record needs 64 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated extent record"), len(data))
	}
	for i := 0; i < 8; i++ {
		off := i * 8
		rec[i] = types.HFSPlusExtentDescriptor{
			StartBlock: binary.BigEndian.Uint32(data[off : off+4]),
			BlockCount: binary.BigEndian.Uint32(data[off+4 : off+8]),
		}
	}
	return rec, nil
}

// SumBlockCount adds up the non-empty extents of an HFS extent record.
func SumBlockCount(rec types.HFSExtentRecord) uint32 {
	var total uint32
	for _, e := range rec {
		total += uint32(e.BlockCount)
	}
	return total
}

// SumBlockCountPlus adds up the non-empty extents of an HFS+ extent record.
func SumBlockCountPlus(rec types.HFSPlusExtentRecord) uint32 {
	var total uint32
	for _, e := range rec {
		total += e.BlockCount
	}
	return total
}
