package device

import (
	"os"
	"testing"

	"github.com/hfsreader/hfsreader/internal/types"
)

func buildGPTImage(t *testing.T, partitionLBA uint64, totalSize int) []byte {
	t.Helper()
	buf := make([]byte, totalSize)
	copy(buf[types.GPTHeaderOffset:], "EFI PART")

	entry := buf[types.GPTEntriesStartOffset : types.GPTEntriesStartOffset+types.GPTEntrySize]
	copy(entry[0:16], hfsGPTPartitionTypeGUID)
	putUint64LE(entry[32:40], partitionLBA)
	return buf
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
}

func TestOpenDetectsGPTApplHFSPartition(t *testing.T) {
	const partitionLBA = 40
	const totalSize = 1 << 20
	data := buildGPTImage(t, partitionLBA, totalSize)

	path := writeTempFile(t, data)
	img, err := Open(path, &ImageConfig{AutoDetectPartition: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer img.Close()

	wantOffset := int64(partitionLBA) * 512
	if img.offset != wantOffset {
		t.Fatalf("offset = %d, want %d", img.offset, wantOffset)
	}
	if img.Size() != int64(totalSize)-wantOffset {
		t.Fatalf("Size() = %d, want %d", img.Size(), int64(totalSize)-wantOffset)
	}
}

func TestOpenFallsBackToDefaultOffsetWithoutPartitionTable(t *testing.T) {
	data := make([]byte, 4096)
	path := writeTempFile(t, data)

	img, err := Open(path, &ImageConfig{AutoDetectPartition: true, DefaultOffset: 0})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer img.Close()

	if img.offset != 0 {
		t.Fatalf("offset = %d, want 0", img.offset)
	}
	if img.Size() != int64(len(data)) {
		t.Fatalf("Size() = %d, want %d", img.Size(), len(data))
	}
}

func TestOpenReadAtRelativeToOffset(t *testing.T) {
	const partitionLBA = 2
	data := buildGPTImage(t, partitionLBA, 1<<16)
	marker := []byte("HFS+VOLUME")
	copy(data[partitionLBA*512:], marker)

	path := writeTempFile(t, data)
	img, err := Open(path, &ImageConfig{AutoDetectPartition: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer img.Close()

	got := make([]byte, len(marker))
	if _, err := img.ReadAt(got, 0); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(got) != string(marker) {
		t.Fatalf("ReadAt got %q, want %q", got, marker)
	}
}

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "image-*.img")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return f.Name()
}
