// File: internal/interfaces/btree.go
package interfaces

import "github.com/hfsreader/hfsreader/internal/types"

// Ordering4 is the four-valued result of comparing a quarry against a
// candidate key during B-tree descent (spec.md §4.6). The verb describes
// the quarry relative to the candidate: Lesser means "the quarry is lesser
// than the candidate key".
type Ordering4 int8

const (
	Lesser Ordering4 = iota - 1
	Equal
	Greater
	Incomparable
)

func (o Ordering4) String() string {
	switch o {
	case Lesser:
		return "lesser"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "incomparable"
	}
}

// Comparator compares a fixed quarry against successive candidate keys
// encountered during descent or search. Implementations close over the
// quarry and, for catalog comparators, a TextDecoder used to normalize
// names before comparing (spec.md §9).
type Comparator interface {
	Compare(candidateKey []byte) Ordering4
}

// BTreeNodeReader exposes one parsed B-tree node (spec.md §4.5, C7).
type BTreeNodeReader interface {
	// NodeNumber is this node's index within the owning B-tree file.
	NodeNumber() uint32

	Kind() types.BTNodeKind
	Height() uint8
	RecordCount() uint16
	FLink() uint32
	BLink() uint32

	// RecordKey returns the key bytes of keyed record i (index or leaf
	// nodes only), bounds-checked against the node's offset table.
	RecordKey(i int) ([]byte, error)

	// RecordPayload returns the payload bytes of record i.
	RecordPayload(i int) ([]byte, error)

	// ChildNodeNumber returns the child pointer stored after the key of
	// index-node record i.
	ChildNodeNumber(i int) (uint32, error)
}

// BTreeFileReader exposes a whole B-tree file: its header and node access
// (spec.md §4.5, C7).
type BTreeFileReader interface {
	Header() types.BTHeaderRec

	// NodeAt returns a shared handle to node i; out of [0, totalNodes)
	// fails with an InvalidNodeIndex-kind error.
	NodeAt(i uint32) (BTreeNodeReader, error)

	TotalNodes() uint32
	NodeSize() uint16
}

// BTreeNavigator resolves the root and children of a B-tree file
// (spec.md §4.6, C8).
type BTreeNavigator interface {
	Root() (BTreeNodeReader, error)
	Child(parent BTreeNodeReader, recordIndex int) (BTreeNodeReader, error)
	NextSibling(node BTreeNodeReader) (BTreeNodeReader, bool, error)
}

// BTreeSearcher implements comparator-driven descent and leaf binary
// search (spec.md §4.6).
type BTreeSearcher interface {
	// Descend performs the full root-to-leaf descent described in
	// spec.md §4.6, returning the landing leaf, the record index within
	// it, and whether the final comparison was Equal.
	Descend(cmp Comparator) (leaf BTreeNodeReader, recordIndex int, exact bool, err error)
}

// NodeVisitor is called for each node or leaf record during a traversal.
// Returning stop=true halts the walk at the next record boundary.
type NodeVisitor func(node BTreeNodeReader, depth int) (stop bool, err error)

// RecordVisitor is called for each keyed record encountered during a
// leaf-sequential or directory-enumeration walk.
type RecordVisitor func(key, payload []byte) (stop bool, err error)

// BTreeTraverser implements the breadth-first and leaf-sequential walks of
// spec.md §4.6.
type BTreeTraverser interface {
	// BreadthFirst emits every node, sibling-chain order per height,
	// height descending from the root.
	BreadthFirst(visitor NodeVisitor) error

	// LeafWalk starts at the header's firstLeafNode and follows fLink
	// until 0 or the visitor returns stop, visiting every live leaf
	// exactly once.
	LeafWalk(visitor RecordVisitor) error
}
