package catalog

import (
	"encoding/binary"
	"testing"

	"github.com/hfsreader/hfsreader/internal/types"
)

func TestRecordTypeHFSPlus(t *testing.T) {
	data := make([]byte, 2)
	binary.BigEndian.PutUint16(data, uint16(types.RecordTypeFile))
	got, err := RecordType(data, true)
	if err != nil {
		t.Fatalf("RecordType: %v", err)
	}
	if got != types.RecordTypeFile {
		t.Fatalf("RecordType = %v, want %v", got, types.RecordTypeFile)
	}
}

func TestRecordTypeHFS(t *testing.T) {
	// HFS Standard stores cdrType as a single byte at offset 0 with a
	// reserved byte at offset 1, not a native low-byte i16.
	data := []byte{byte(types.RecordTypeFile), 0}
	got, err := RecordType(data, false)
	if err != nil {
		t.Fatalf("RecordType: %v", err)
	}
	if got != types.RecordTypeFile {
		t.Fatalf("RecordType = %v, want %v", got, types.RecordTypeFile)
	}
}

func TestParseFolderHFS(t *testing.T) {
	data := make([]byte, 70)
	data[0] = byte(types.RecordTypeFolder) // cdrType byte; data[1] reserved
	binary.BigEndian.PutUint16(data[4:6], 3) // valence
	binary.BigEndian.PutUint32(data[6:10], 42)

	f, err := ParseFolderHFS(data)
	if err != nil {
		t.Fatalf("ParseFolderHFS: %v", err)
	}
	if f.RecordType != types.RecordTypeFolder || f.Valence != 3 || f.FolderID != 42 {
		t.Fatalf("unexpected folder: %+v", f)
	}
}

func TestParseFolderHFSPlus(t *testing.T) {
	data := make([]byte, 88)
	binary.BigEndian.PutUint16(data[0:2], uint16(types.RecordTypeFolder))
	binary.BigEndian.PutUint32(data[4:8], 7) // valence
	binary.BigEndian.PutUint32(data[8:12], 99)
	binary.BigEndian.PutUint32(data[32:36], 501) // ownerID
	binary.BigEndian.PutUint16(data[42:44], uint16(types.ModeIFDIR))

	f, err := ParseFolderHFSPlus(data)
	if err != nil {
		t.Fatalf("ParseFolderHFSPlus: %v", err)
	}
	if f.Valence != 7 || f.FolderID != 99 {
		t.Fatalf("unexpected folder: %+v", f)
	}
	if f.Permissions.OwnerID != 501 {
		t.Fatalf("OwnerID = %d, want 501", f.Permissions.OwnerID)
	}
	if f.Permissions.FileMode&types.ModeIFMT != types.ModeIFDIR {
		t.Fatalf("FileMode = %o, want IFDIR", f.Permissions.FileMode)
	}
}

func TestParseFileHFS(t *testing.T) {
	data := make([]byte, 102)
	data[0] = byte(types.RecordTypeFile) // cdrType byte; data[1] reserved
	binary.BigEndian.PutUint32(data[20:24], 77) // fileID
	binary.BigEndian.PutUint32(data[26:30], 1024) // dataLogicalSize
	binary.BigEndian.PutUint16(data[74:76], 10) // dataExtents[0].StartBlock
	binary.BigEndian.PutUint16(data[76:78], 5)  // dataExtents[0].BlockCount

	f, err := ParseFileHFS(data)
	if err != nil {
		t.Fatalf("ParseFileHFS: %v", err)
	}
	if f.FileID != 77 {
		t.Fatalf("FileID = %d, want 77", f.FileID)
	}
	if f.DataFork.LogicalSize != 1024 {
		t.Fatalf("DataFork.LogicalSize = %d, want 1024", f.DataFork.LogicalSize)
	}
	if f.DataFork.ExtentsHFS[0].StartBlock != 10 || f.DataFork.ExtentsHFS[0].BlockCount != 5 {
		t.Fatalf("unexpected data extent: %+v", f.DataFork.ExtentsHFS[0])
	}
	if f.DataFork.TotalBlocks != 5 {
		t.Fatalf("TotalBlocks = %d, want 5", f.DataFork.TotalBlocks)
	}
}

func TestParseFileHFSPlus(t *testing.T) {
	data := make([]byte, 248)
	binary.BigEndian.PutUint16(data[0:2], uint16(types.RecordTypeFile))
	binary.BigEndian.PutUint32(data[8:12], 123) // fileID
	binary.BigEndian.PutUint64(data[88:96], 2048) // dataFork.LogicalSize
	binary.BigEndian.PutUint32(data[104:108], 50) // dataFork.Extents[0].StartBlock
	binary.BigEndian.PutUint32(data[108:112], 4)  // dataFork.Extents[0].BlockCount

	f, err := ParseFileHFSPlus(data)
	if err != nil {
		t.Fatalf("ParseFileHFSPlus: %v", err)
	}
	if f.FileID != 123 {
		t.Fatalf("FileID = %d, want 123", f.FileID)
	}
	if f.DataFork.LogicalSize != 2048 {
		t.Fatalf("DataFork.LogicalSize = %d, want 2048", f.DataFork.LogicalSize)
	}
	if f.DataFork.ExtentsPlus[0].StartBlock != 50 || f.DataFork.ExtentsPlus[0].BlockCount != 4 {
		t.Fatalf("unexpected data extent: %+v", f.DataFork.ExtentsPlus[0])
	}
}

func TestParseThreadHFS(t *testing.T) {
	name := "Documents"
	data := make([]byte, 15+len(name))
	data[0] = byte(types.RecordTypeFolderThread) // cdrType byte; data[1] reserved
	binary.BigEndian.PutUint32(data[10:14], 2)
	data[14] = byte(len(name))
	copy(data[15:], name)

	th, err := ParseThreadHFS(data)
	if err != nil {
		t.Fatalf("ParseThreadHFS: %v", err)
	}
	if th.ParentID != 2 || string(th.NodeNameHFS) != name {
		t.Fatalf("unexpected thread: %+v", th)
	}
}

func TestParseThreadHFSPlus(t *testing.T) {
	data := make([]byte, 16)
	binary.BigEndian.PutUint16(data[0:2], uint16(types.RecordTypeFileThread))
	binary.BigEndian.PutUint32(data[6:10], 16)
	binary.BigEndian.PutUint16(data[10:12], 2)
	binary.BigEndian.PutUint16(data[12:14], 'h')
	binary.BigEndian.PutUint16(data[14:16], 'i')

	th, err := ParseThreadHFSPlus(data)
	if err != nil {
		t.Fatalf("ParseThreadHFSPlus: %v", err)
	}
	if th.ParentID != 16 || len(th.NodeNameHFSPlus) != 2 {
		t.Fatalf("unexpected thread: %+v", th)
	}
}
