package btrees

import (
	"bytes"
	"fmt"

	"github.com/hfsreader/hfsreader/internal/interfaces"
	"github.com/hfsreader/hfsreader/internal/types"
)

// fakeRecord is a key/payload pair used to build in-memory fake nodes for
// tests, avoiding a dependency on the real byte-level node parser here.
type fakeRecord struct {
	key     []byte
	payload []byte
	child   uint32 // valid only on index-node records
}

type fakeNode struct {
	number  uint32
	kind    types.BTNodeKind
	flink   uint32
	records []fakeRecord
}

func (n *fakeNode) NodeNumber() uint32     { return n.number }
func (n *fakeNode) Kind() types.BTNodeKind { return n.kind }
func (n *fakeNode) Height() uint8          { return 0 }
func (n *fakeNode) RecordCount() uint16    { return uint16(len(n.records)) }
func (n *fakeNode) FLink() uint32          { return n.flink }
func (n *fakeNode) BLink() uint32          { return 0 }

func (n *fakeNode) RecordKey(i int) ([]byte, error) {
	if i < 0 || i >= len(n.records) {
		return nil, fmt.Errorf("record %d out of range", i)
	}
	return n.records[i].key, nil
}

func (n *fakeNode) RecordPayload(i int) ([]byte, error) {
	if i < 0 || i >= len(n.records) {
		return nil, fmt.Errorf("record %d out of range", i)
	}
	return n.records[i].payload, nil
}

func (n *fakeNode) ChildNodeNumber(i int) (uint32, error) {
	if i < 0 || i >= len(n.records) {
		return 0, fmt.Errorf("record %d out of range", i)
	}
	return n.records[i].child, nil
}

// fakeFile is an in-memory BTreeFileReader over a fixed node slice, keyed
// by node number.
type fakeFile struct {
	header types.BTHeaderRec
	nodes  map[uint32]*fakeNode
}

func (f *fakeFile) Header() types.BTHeaderRec { return f.header }

func (f *fakeFile) NodeAt(i uint32) (interfaces.BTreeNodeReader, error) {
	n, ok := f.nodes[i]
	if !ok {
		return nil, fmt.Errorf("no node %d", i)
	}
	return n, nil
}

func (f *fakeFile) TotalNodes() uint32 { return uint32(len(f.nodes)) }
func (f *fakeFile) NodeSize() uint16   { return 512 }

// bytesComparator compares a fixed quarry against candidate keys using
// plain lexicographic byte order, the simplest Comparator shape.
type bytesComparator struct {
	quarry []byte
}

func (c bytesComparator) Compare(candidateKey []byte) interfaces.Ordering4 {
	switch bytes.Compare(c.quarry, candidateKey) {
	case -1:
		return interfaces.Lesser
	case 0:
		return interfaces.Equal
	default:
		return interfaces.Greater
	}
}
