package hostfs

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestDirWriterWriteForkDataFork(t *testing.T) {
	dir := t.TempDir()
	w, err := NewDirWriter(dir)
	if err != nil {
		t.Fatalf("NewDirWriter: %v", err)
	}
	if err := w.WriteFork("hello.txt", false, []byte("hello world")); err != nil {
		t.Fatalf("WriteFork: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "hello.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "hello world" {
		t.Fatalf("got %q, want %q", got, "hello world")
	}
}

func TestDirWriterWriteForkResourceForkSidecar(t *testing.T) {
	dir := t.TempDir()
	w, err := NewDirWriter(dir)
	if err != nil {
		t.Fatalf("NewDirWriter: %v", err)
	}
	resourceData := []byte{0x01, 0x02, 0x03, 0x04}
	if err := w.WriteFork("icon", true, resourceData); err != nil {
		t.Fatalf("WriteFork: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "._icon"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if len(got) < 26 {
		t.Fatalf("sidecar too small: %d bytes", len(got))
	}
	if magic := binary.BigEndian.Uint32(got[0:4]); magic != appleDoubleMagic {
		t.Fatalf("magic = 0x%08X, want 0x%08X", magic, appleDoubleMagic)
	}
	if version := binary.BigEndian.Uint32(got[4:8]); version != appleDoubleVersion {
		t.Fatalf("version = 0x%08X, want 0x%08X", version, appleDoubleVersion)
	}
	numEntries := binary.BigEndian.Uint16(got[24:26])
	if numEntries != 1 {
		t.Fatalf("numEntries = %d, want 1", numEntries)
	}

	entryID := binary.BigEndian.Uint32(got[26:30])
	entryOffset := binary.BigEndian.Uint32(got[30:34])
	entryLength := binary.BigEndian.Uint32(got[34:38])
	if entryID != entryIDResourceFork {
		t.Fatalf("entryID = %d, want %d", entryID, entryIDResourceFork)
	}
	if int(entryLength) != len(resourceData) {
		t.Fatalf("entryLength = %d, want %d", entryLength, len(resourceData))
	}
	gotData := got[entryOffset : entryOffset+entryLength]
	if string(gotData) != string(resourceData) {
		t.Fatalf("resource fork data = %v, want %v", gotData, resourceData)
	}
}
