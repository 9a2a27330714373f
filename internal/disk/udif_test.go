package device

import (
	"encoding/binary"
	"os"
	"testing"
)

func writeUDIFTrailer(t *testing.T, dataOffset, dataSize uint64) []byte {
	t.Helper()
	trailer := make([]byte, udifTrailerSize)
	binary.BigEndian.PutUint32(trailer[0:4], udifSignature)
	binary.BigEndian.PutUint32(trailer[4:8], 4) // version
	binary.BigEndian.PutUint64(trailer[16:24], dataOffset)
	binary.BigEndian.PutUint64(trailer[24:32], dataSize)
	return trailer
}

func TestDetectUDIFTrailerFound(t *testing.T) {
	const dataSize = 4096
	data := make([]byte, dataSize)
	trailer := writeUDIFTrailer(t, 0, dataSize)

	f, err := os.CreateTemp(t.TempDir(), "udif-*.dmg")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		t.Fatalf("Write data: %v", err)
	}
	if _, err := f.Write(trailer); err != nil {
		t.Fatalf("Write trailer: %v", err)
	}

	stat, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}

	got, ok := detectUDIFTrailer(f, stat.Size())
	if !ok {
		t.Fatal("expected UDIF trailer to be detected")
	}
	if got.dataOffset != 0 || got.dataSize != dataSize {
		t.Fatalf("got %+v, want dataOffset=0 dataSize=%d", got, dataSize)
	}
}

func TestDetectUDIFTrailerAbsent(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "plain-*.img")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if _, err := f.Write(make([]byte, 4096)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	stat, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if _, ok := detectUDIFTrailer(f, stat.Size()); ok {
		t.Fatal("expected no UDIF trailer in a plain image")
	}
}

func TestDetectUDIFTrailerRejectsOversizedSpan(t *testing.T) {
	// dataOffset+dataSize reaching past the trailer's own start is invalid.
	trailer := writeUDIFTrailer(t, 0, 1<<30)
	f, err := os.CreateTemp(t.TempDir(), "bad-*.dmg")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()
	if _, err := f.Write(make([]byte, 4096)); err != nil {
		t.Fatalf("Write data: %v", err)
	}
	if _, err := f.Write(trailer); err != nil {
		t.Fatalf("Write trailer: %v", err)
	}
	stat, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if _, ok := detectUDIFTrailer(f, stat.Size()); ok {
		t.Fatal("expected oversized data span to be rejected")
	}
}
