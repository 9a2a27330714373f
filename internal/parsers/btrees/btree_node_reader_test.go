package btrees

import (
	"encoding/binary"
	"testing"

	"github.com/hfsreader/hfsreader/internal/types"
)

// buildLeafNode assembles a minimal leaf node with the given (key, payload)
// pairs, using a u8 key-length prefix (HFS Standard style).
func buildLeafNode(nodeSize int, recs [][2]string) []byte {
	data := make([]byte, nodeSize)
	binary.BigEndian.PutUint32(data[0:4], 0)                       // fLink
	binary.BigEndian.PutUint32(data[4:8], 0)                       // bLink
	leafKind := types.BTNodeKindLeaf
	data[8] = byte(leafKind)
	data[9] = 0 // height
	binary.BigEndian.PutUint16(data[10:12], uint16(len(recs)))

	cursor := types.BTNodeDescriptorSize
	offsets := make([]uint16, 0, len(recs)+1)
	for _, rec := range recs {
		offsets = append(offsets, uint16(cursor))
		key, payload := rec[0], rec[1]
		data[cursor] = byte(len(key))
		cursor++
		copy(data[cursor:], key)
		cursor += len(key)
		if (1+len(key))%2 == 1 {
			cursor++ // padding
		}
		copy(data[cursor:], payload)
		cursor += len(payload)
	}
	offsets = append(offsets, uint16(cursor))

	for i, off := range offsets {
		pos := nodeSize - 2*(i+1)
		binary.BigEndian.PutUint16(data[pos:pos+2], off)
	}
	return data
}

func TestNewNodeParsesLeafRecords(t *testing.T) {
	data := buildLeafNode(512, [][2]string{
		{"A", "payload-a"},
		{"B", "payload-b"},
	})

	n, err := NewNode(2, data, false)
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	if n.Kind() != types.BTNodeKindLeaf {
		t.Fatalf("Kind() = %v, want leaf", n.Kind())
	}
	if n.RecordCount() != 2 {
		t.Fatalf("RecordCount() = %d, want 2", n.RecordCount())
	}

	key, err := n.RecordKey(1)
	if err != nil {
		t.Fatalf("RecordKey(1): %v", err)
	}
	if string(key) != "B" {
		t.Fatalf("RecordKey(1) = %q, want %q", key, "B")
	}

	payload, err := n.RecordPayload(1)
	if err != nil {
		t.Fatalf("RecordPayload(1): %v", err)
	}
	if string(payload) != "payload-b" {
		t.Fatalf("RecordPayload(1) = %q, want %q", payload, "payload-b")
	}

	if _, err := n.RecordKey(2); err == nil {
		t.Fatal("RecordKey(2) should fail: out of range")
	}
}

func TestNewNodeRejectsUnsortedOffsets(t *testing.T) {
	data := make([]byte, 64)
	binary.BigEndian.PutUint16(data[10:12], 2) // numRecords
	// Two garbage offsets that are equal, violating strict ascent.
	binary.BigEndian.PutUint16(data[64-2:64], 20)
	binary.BigEndian.PutUint16(data[64-4:64-2], 20)
	binary.BigEndian.PutUint16(data[64-6:64-4], 20)

	if _, err := NewNode(0, data, false); err == nil {
		t.Fatal("expected corrupt-node error for non-ascending offsets")
	}
}

func TestParseHeaderRec(t *testing.T) {
	payload := make([]byte, 106)
	binary.BigEndian.PutUint16(payload[0:2], 1)    // treeDepth
	binary.BigEndian.PutUint32(payload[2:6], 1)    // rootNode
	binary.BigEndian.PutUint16(payload[18:20], 512) // nodeSize
	binary.BigEndian.PutUint32(payload[22:26], 10)  // totalNodes

	h, err := ParseHeaderRec(payload)
	if err != nil {
		t.Fatalf("ParseHeaderRec: %v", err)
	}
	if h.NodeSize != 512 {
		t.Fatalf("NodeSize = %d, want 512", h.NodeSize)
	}
	if h.TotalNodes != 10 {
		t.Fatalf("TotalNodes = %d, want 10", h.TotalNodes)
	}
}

func TestParseHeaderRecRejectsNonPowerOfTwoNodeSize(t *testing.T) {
	payload := make([]byte, 106)
	binary.BigEndian.PutUint16(payload[18:20], 513)
	if _, err := ParseHeaderRec(payload); err == nil {
		t.Fatal("expected error for non-power-of-two node size")
	}
}
