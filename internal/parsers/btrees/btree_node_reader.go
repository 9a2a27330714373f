package btrees

import (
	"encoding/binary"
	"fmt"

	"github.com/hfsreader/hfsreader/internal/interfaces"
	"github.com/hfsreader/hfsreader/internal/types"
)

// node implements interfaces.BTreeNodeReader over a single fixed-size
// B-tree node buffer (spec.md §3, §4.5).
//
// Record offsets are stored as a trailing array of (numRecords+1) u16
// values at the end of the node: the word for record i lives at
// nodeSize-2*(i+1), so offsets[0] (record 0's start, just after the
// 14-byte descriptor) sits nearest the end of the node and offsets[numRecords]
// (the free-space sentinel) sits nearest the payload. Record i occupies
// [offsets[i], offsets[i+1]).
type node struct {
	number         uint32
	data           []byte
	descriptor     types.BTNodeDescriptor
	offsets        []uint16 // length numRecords+1, offsets[i] = start of record i
	keyLengthIsU16 bool     // true for HFS+ trees, false for HFS Standard
}

// NewNode parses a single node's raw bytes. number is the node's own index
// within the owning B-tree file (not itself stored on disk). keyLengthIsU16
// is fixed per tree: HFS+ catalog/extents keys carry a u16 length prefix,
// HFS Standard ones a u8 prefix (spec.md §3).
func NewNode(number uint32, data []byte, keyLengthIsU16 bool) (interfaces.BTreeNodeReader, error) {
	if len(data) < types.BTNodeDescriptorSize {
		return nil, fmt.Errorf("node %d: %d bytes too small for descriptor", number, len(data))
	}

	desc := types.BTNodeDescriptor{
		FLink:      binary.BigEndian.Uint32(data[0:4]),
		BLink:      binary.BigEndian.Uint32(data[4:8]),
		Kind:       types.BTNodeKind(int8(data[8])),
		Height:     data[9],
		NumRecords: binary.BigEndian.Uint16(data[10:12]),
		Reserved:   binary.BigEndian.Uint16(data[12:14]),
	}

	n := &node{number: number, data: data, descriptor: desc, keyLengthIsU16: keyLengthIsU16}

	nodeSize := len(data)
	count := int(desc.NumRecords)
	tableBytes := 2 * (count + 1)
	if count < 0 || tableBytes > nodeSize {
		return nil, fmt.Errorf("%w: node %d: offset table (%d bytes) exceeds node size %d", errCorruptNode, number, tableBytes, nodeSize)
	}

	offsets := make([]uint16, count+1)
	for i := 0; i <= count; i++ {
		pos := nodeSize - 2*(i+1)
		offsets[i] = binary.BigEndian.Uint16(data[pos : pos+2])
	}
	for i := 0; i < count; i++ {
		if offsets[i] >= offsets[i+1] {
			return nil, fmt.Errorf("%w: node %d: record offsets not strictly increasing at %d", errCorruptNode, number, i)
		}
	}
	if count > 0 && int(offsets[count]) > nodeSize-tableBytes {
		return nil, fmt.Errorf("%w: node %d: free-space offset overlaps offset table", errCorruptNode, number)
	}

	n.offsets = offsets
	return n, nil
}

func (n *node) NodeNumber() uint32      { return n.number }
func (n *node) Kind() types.BTNodeKind  { return n.descriptor.Kind }
func (n *node) Height() uint8           { return n.descriptor.Height }
func (n *node) RecordCount() uint16     { return n.descriptor.NumRecords }
func (n *node) FLink() uint32           { return n.descriptor.FLink }
func (n *node) BLink() uint32           { return n.descriptor.BLink }

func (n *node) recordBytes(i int) ([]byte, error) {
	if i < 0 || i >= int(n.descriptor.NumRecords) {
		return nil, fmt.Errorf("%w: node %d: record index %d", errInvalidNodeIndex, n.number, i)
	}
	return n.data[n.offsets[i]:n.offsets[i+1]], nil
}

func (n *node) keyAndPayload(i int) (key, payload []byte, err error) {
	rec, err := n.recordBytes(i)
	if err != nil {
		return nil, nil, err
	}
	var keyLen, prefix int
	if n.keyLengthIsU16 {
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("%w: node %d record %d: truncated key length", errCorruptNode, n.number, i)
		}
		keyLen = int(binary.BigEndian.Uint16(rec[0:2]))
		prefix = 2
	} else {
		if len(rec) < 1 {
			return nil, nil, fmt.Errorf("%w: node %d record %d: truncated key length", errCorruptNode, n.number, i)
		}
		keyLen = int(rec[0])
		prefix = 1
	}
	end := prefix + keyLen
	if end > len(rec) {
		return nil, nil, fmt.Errorf("%w: node %d record %d: key length %d exceeds record", errCorruptNode, n.number, i, keyLen)
	}
	key = rec[prefix:end]
	payloadStart := end
	if payloadStart%2 == 1 {
		payloadStart++ // records are padded to an even offset
	}
	if payloadStart > len(rec) {
		payloadStart = len(rec)
	}
	return key, rec[payloadStart:], nil
}

// RecordKey returns the key bytes of keyed record i (index or leaf nodes).
func (n *node) RecordKey(i int) ([]byte, error) {
	if n.descriptor.Kind != types.BTNodeKindIndex && n.descriptor.Kind != types.BTNodeKindLeaf {
		return nil, fmt.Errorf("node %d: record %d is not in a keyed node", n.number, i)
	}
	key, _, err := n.keyAndPayload(i)
	return key, err
}

// RecordPayload returns the payload bytes of record i. For keyed nodes
// this is the bytes following the (possibly padded) key; for header/map
// nodes, the whole record.
func (n *node) RecordPayload(i int) ([]byte, error) {
	if n.descriptor.Kind == types.BTNodeKindIndex || n.descriptor.Kind == types.BTNodeKindLeaf {
		_, payload, err := n.keyAndPayload(i)
		return payload, err
	}
	return n.recordBytes(i)
}

// ChildNodeNumber returns the child pointer following the key of an index
// node's record i: a u32 node number, placed after the key once the key's
// end has been padded to an even offset.
func (n *node) ChildNodeNumber(i int) (uint32, error) {
	if n.descriptor.Kind != types.BTNodeKindIndex {
		return 0, fmt.Errorf("node %d: record %d is not in an index node", n.number, i)
	}
	rec, err := n.recordBytes(i)
	if err != nil {
		return 0, err
	}
	var keyLen, prefix int
	if n.keyLengthIsU16 {
		if len(rec) < 2 {
			return 0, fmt.Errorf("%w: node %d record %d: truncated key length", errCorruptNode, n.number, i)
		}
		keyLen = int(binary.BigEndian.Uint16(rec[0:2]))
		prefix = 2
	} else {
		if len(rec) < 1 {
			return 0, fmt.Errorf("%w: node %d record %d: truncated key length", errCorruptNode, n.number, i)
		}
		keyLen = int(rec[0])
		prefix = 1
	}
	end := prefix + keyLen
	if end%2 == 1 {
		end++
	}
	if end+4 > len(rec) {
		return 0, fmt.Errorf("%w: node %d record %d: truncated child pointer", errCorruptNode, n.number, i)
	}
	return binary.BigEndian.Uint32(rec[end : end+4]), nil
}
