package services

import (
	"fmt"
	"sync"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/interfaces"
	"github.com/hfsreader/hfsreader/internal/parsers/btrees"
	"github.com/hfsreader/hfsreader/internal/types"
)

// btreeFileReader exposes a whole B-tree file (catalog, extents-overflow)
// over a ForkReader, parsing node 0's header record at construction and
// caching parsed nodes on demand (spec.md §4.5, C7). Grounded on
// btree_service.go + object_map_btree_cache.go's node-cache shape,
// generalized from APFS's OID-indirected nodes to HFS's direct node
// numbering.
type btreeFileReader struct {
	fork     interfaces.ForkReader
	header   types.BTHeaderRec
	nodeSize uint16

	mu    sync.Mutex
	nodes map[uint32]interfaces.BTreeNodeReader
}

// NewBTreeFileReader reads node 0 of fork, parses its BTHeaderRec, and
// returns a BTreeFileReader ready for NodeAt lookups.
func NewBTreeFileReader(fork interfaces.ForkReader) (interfaces.BTreeFileReader, error) {
	// Node 0's size is not yet known, so the header node is read with the
	// minimum legal node size (512) first; ParseHeaderRec validates the
	// real NodeSize, and the header record lives entirely within the first
	// 512 bytes regardless of the tree's eventual node size.
	probe, err := fork.ReadAt(0, 512)
	if err != nil {
		return nil, err
	}
	// Header record starts after the 14-byte BTNodeDescriptor.
	if len(probe) < 14 {
		return nil, hfserr.New(hfserr.CorruptNode, "fork too short for a B-tree header node")
	}
	header, err := btrees.ParseHeaderRec(probe[14:])
	if err != nil {
		return nil, err
	}

	r := &btreeFileReader{
		fork:     fork,
		header:   header,
		nodeSize: header.NodeSize,
		nodes:    make(map[uint32]interfaces.BTreeNodeReader),
	}
	return r, nil
}

func (r *btreeFileReader) Header() types.BTHeaderRec { return r.header }
func (r *btreeFileReader) NodeSize() uint16          { return r.nodeSize }
func (r *btreeFileReader) TotalNodes() uint32        { return r.header.TotalNodes }

func (r *btreeFileReader) NodeAt(i uint32) (interfaces.BTreeNodeReader, error) {
	if i >= r.header.TotalNodes {
		return nil, hfserr.New(hfserr.InvalidNodeIndex, fmt.Sprintf("node %d is beyond the tree's %d nodes", i, r.header.TotalNodes))
	}

	r.mu.Lock()
	if cached, ok := r.nodes[i]; ok {
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	offset := int64(i) * int64(r.nodeSize)
	data, err := r.fork.ReadAt(offset, int(r.nodeSize))
	if err != nil {
		return nil, err
	}
	keyLengthIsU16 := r.header.Attributes&types.BTBigKeysMask != 0
	n, err := btrees.NewNode(i, data, keyLengthIsU16)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.nodes[i] = n
	r.mu.Unlock()
	return n, nil
}
