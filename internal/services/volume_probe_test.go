package services

import (
	"encoding/binary"
	"testing"

	"github.com/hfsreader/hfsreader/internal/types"
)

// fakeRawDevice is a flat in-memory device for VolumeProbe tests: ReadAt is
// absolute from byte 0, matching interfaces.BlockDeviceReader's contract.
type fakeRawDevice struct {
	data []byte
}

func (f *fakeRawDevice) Close() error { return nil }

func (f *fakeRawDevice) ReadBlocks(firstAllocBlock uint64, count uint64) ([]byte, error) {
	return nil, nil
}

func (f *fakeRawDevice) ReadAt(offset int64, length int) ([]byte, error) {
	if offset < 0 || int(offset)+length > len(f.data) {
		return nil, nil
	}
	return f.data[offset : int(offset)+length], nil
}

func (f *fakeRawDevice) AllocBlockSize() uint32 { return 512 }
func (f *fakeRawDevice) Size() uint64           { return uint64(len(f.data)) }

// buildHFSWrapperWithEmbedded builds a device image with an HFS MDB at byte
// 1024 whose drEmbedSigWord/drEmbedExtent describe an embedded HFS+ volume,
// per Inside Macintosh: Files §2 / TN1150.
func buildHFSWrapperWithEmbedded(t *testing.T, drAlBlSt, drAlBlkSiz uint32, embedStartBlock, embedBlockCount uint16) []byte {
	t.Helper()
	data := make([]byte, 1024+types.HFSMasterDirectoryBlockSize)
	mdb := data[1024:]
	binary.BigEndian.PutUint16(mdb[0:2], types.HFSSigWord)
	binary.BigEndian.PutUint32(mdb[20:24], drAlBlkSiz)
	binary.BigEndian.PutUint16(mdb[28:30], uint16(drAlBlSt))
	// DrVCSize/DrVBMCSize/DrCtlCSize at [124:130] double as the embedded
	// volume descriptor (drEmbedSigWord/drEmbedExtent).
	binary.BigEndian.PutUint16(mdb[124:126], types.HFSPlusSigWord)
	binary.BigEndian.PutUint16(mdb[126:128], embedStartBlock)
	binary.BigEndian.PutUint16(mdb[128:130], embedBlockCount)
	return data
}

func TestProbeEmbeddedTranslatesFromWrapperVolumeStart(t *testing.T) {
	const drAlBlSt = 6
	const drAlBlkSiz = 512
	const embedStartBlock = 2
	const embedBlockCount = 10
	data := buildHFSWrapperWithEmbedded(t, drAlBlSt, drAlBlkSiz, embedStartBlock, embedBlockCount)

	device := &fakeRawDevice{data: data}
	found, err := NewVolumeProbe().Probe(device)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("Probe found %d volumes, want 2 (outer HFS + embedded HFS+): %+v", len(found), found)
	}

	// outer wrapper MDB sits at byte 1024, so the wrapper volume's own
	// sector 0 is at byte 0; the embedded volume starts at
	// drAlBlSt*512 + embedStartBlock*drAlBlkSiz bytes from there.
	wantInnerOffset := int64(drAlBlSt)*512 + int64(embedStartBlock)*int64(drAlBlkSiz)
	if found[1].StartByteOffset != wantInnerOffset {
		t.Fatalf("embedded StartByteOffset = %d, want %d", found[1].StartByteOffset, wantInnerOffset)
	}
	if found[1].Kind != types.VolumeKindHFSPlus {
		t.Fatalf("embedded Kind = %v, want HFSPlus", found[1].Kind)
	}
	wantInnerLength := int64(embedBlockCount) * int64(drAlBlkSiz)
	if found[1].ByteLength != wantInnerLength {
		t.Fatalf("embedded ByteLength = %d, want %d", found[1].ByteLength, wantInnerLength)
	}
}
