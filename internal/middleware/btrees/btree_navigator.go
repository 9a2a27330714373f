package btrees

import (
	"fmt"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/interfaces"
	"github.com/hfsreader/hfsreader/internal/types"
)

// btreeNavigator resolves the root and children of an HFS/HFS+ B-tree file
// by node number, using the tree's own header record for the root's
// location (spec.md §4.6, C8).
type btreeNavigator struct {
	file interfaces.BTreeFileReader
}

// NewBTreeNavigator creates a BTreeNavigator over an already-opened B-tree
// file (catalog, extents overflow, or attributes).
func NewBTreeNavigator(file interfaces.BTreeFileReader) interfaces.BTreeNavigator {
	return &btreeNavigator{file: file}
}

// Root returns the tree's root node, as named by the header record.
func (nav *btreeNavigator) Root() (interfaces.BTreeNodeReader, error) {
	header := nav.file.Header()
	return nav.file.NodeAt(header.RootNode)
}

// Child returns the node an index node's record i points to.
func (nav *btreeNavigator) Child(parent interfaces.BTreeNodeReader, recordIndex int) (interfaces.BTreeNodeReader, error) {
	if parent.Kind() != types.BTNodeKindIndex {
		return nil, fmt.Errorf("%w: node %d is not an index node", hfserr.New(hfserr.CorruptNode, "child of non-index node"), parent.NodeNumber())
	}
	childNum, err := parent.ChildNodeNumber(recordIndex)
	if err != nil {
		return nil, err
	}
	return nav.file.NodeAt(childNum)
}

// NextSibling follows a node's forward link, reporting ok=false once the
// chain ends (fLink == 0).
func (nav *btreeNavigator) NextSibling(node interfaces.BTreeNodeReader) (interfaces.BTreeNodeReader, bool, error) {
	next := node.FLink()
	if next == 0 {
		return nil, false, nil
	}
	sibling, err := nav.file.NodeAt(next)
	if err != nil {
		return nil, false, err
	}
	return sibling, true, nil
}
