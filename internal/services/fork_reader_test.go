package services

import (
	"bytes"
	"testing"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/types"
)

type fakeBlockDevice struct {
	blocks   [][]byte
	blockLen uint32
}

func (f *fakeBlockDevice) Close() error { return nil }

func (f *fakeBlockDevice) ReadBlocks(firstAllocBlock uint64, count uint64) ([]byte, error) {
	out := make([]byte, 0, count*uint64(f.blockLen))
	for i := uint64(0); i < count; i++ {
		blockNum := firstAllocBlock + i
		if blockNum >= uint64(len(f.blocks)) {
			return out, nil
		}
		out = append(out, f.blocks[blockNum]...)
	}
	return out, nil
}

func (f *fakeBlockDevice) ReadAt(offset int64, length int) ([]byte, error) {
	return nil, nil
}

func (f *fakeBlockDevice) AllocBlockSize() uint32 { return f.blockLen }
func (f *fakeBlockDevice) Size() uint64           { return uint64(len(f.blocks)) * uint64(f.blockLen) }

func TestForkReaderReadAtWithinExtent(t *testing.T) {
	device := &fakeBlockDevice{blockLen: 4, blocks: [][]byte{
		[]byte("AAAA"), []byte("BBBB"), []byte("CCCC"),
	}}
	fork := types.ForkDescriptor{
		LogicalSize: 12,
		TotalBlocks: 3,
		ExtentsPlus: types.HFSPlusExtentRecord{{StartBlock: 0, BlockCount: 3}},
	}
	fr, err := NewForkReader(device, fork, 10, 0, true, noOverflow{})
	if err != nil {
		t.Fatalf("NewForkReader: %v", err)
	}
	got, err := fr.ReadAt(4, 8)
	if err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if !bytes.Equal(got, []byte("BBBBCCCC")) {
		t.Fatalf("ReadAt = %q, want %q", got, "BBBBCCCC")
	}
}

func TestForkReaderReadAtPastLogicalSizeIsOutOfRange(t *testing.T) {
	device := &fakeBlockDevice{blockLen: 4, blocks: [][]byte{[]byte("AAAA")}}
	fork := types.ForkDescriptor{
		LogicalSize: 4,
		TotalBlocks: 1,
		ExtentsPlus: types.HFSPlusExtentRecord{{StartBlock: 0, BlockCount: 1}},
	}
	fr, err := NewForkReader(device, fork, 10, 0, true, noOverflow{})
	if err != nil {
		t.Fatalf("NewForkReader: %v", err)
	}
	_, err = fr.ReadAt(0, 8)
	if !hfserr.Is(err, hfserr.OutOfRange) {
		t.Fatalf("ReadAt past logical size: got %v, want OutOfRange", err)
	}
}
