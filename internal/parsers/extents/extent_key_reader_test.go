package extents

import (
	"encoding/binary"
	"testing"

	"github.com/hfsreader/hfsreader/internal/types"
)

func TestParseExtentKeyHFS(t *testing.T) {
	data := make([]byte, 7)
	data[0] = byte(types.ForkTypeResource)
	binary.BigEndian.PutUint32(data[1:5], 42)
	binary.BigEndian.PutUint16(data[5:7], 100)

	key, err := ParseExtentKeyHFS(data)
	if err != nil {
		t.Fatalf("ParseExtentKeyHFS: %v", err)
	}
	if key.ForkType != types.ForkTypeResource || key.FileID != 42 || key.StartBlock != 100 {
		t.Fatalf("unexpected key: %+v", key)
	}
}

func TestCompareExtentKeyHFSOrdering(t *testing.T) {
	a := types.ExtentKeyHFS{ForkType: types.ForkTypeData, FileID: 10, StartBlock: 5}
	b := types.ExtentKeyHFS{ForkType: types.ForkTypeData, FileID: 10, StartBlock: 50}
	if CompareExtentKeyHFS(a, b) >= 0 {
		t.Fatalf("expected a < b")
	}
	if CompareExtentKeyHFS(b, a) <= 0 {
		t.Fatalf("expected b > a")
	}
	if CompareExtentKeyHFS(a, a) != 0 {
		t.Fatalf("expected a == a")
	}
}

func TestSumBlockCount(t *testing.T) {
	rec := types.HFSExtentRecord{{BlockCount: 10}, {BlockCount: 20}, {BlockCount: 0}}
	if got := SumBlockCount(rec); got != 30 {
		t.Fatalf("SumBlockCount = %d, want 30", got)
	}
}
