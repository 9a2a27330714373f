package btrees

import (
	"fmt"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/interfaces"
	"github.com/hfsreader/hfsreader/internal/types"
)

// btreeSearcher implements comparator-driven descent (spec.md §4.6): at
// each index node it follows the rightmost record whose key is not
// greater than the quarry, stepping sideways via fLink when a node's last
// record is still short of the quarry; at the leaf it binary-searches for
// the same boundary and reports whether it landed exactly.
type btreeSearcher struct {
	navigator interfaces.BTreeNavigator
}

// NewBTreeSearcher creates a BTreeSearcher over the given navigator.
func NewBTreeSearcher(navigator interfaces.BTreeNavigator) interfaces.BTreeSearcher {
	return &btreeSearcher{navigator: navigator}
}

func (s *btreeSearcher) Descend(cmp interfaces.Comparator) (interfaces.BTreeNodeReader, int, bool, error) {
	node, err := s.navigator.Root()
	if err != nil {
		return nil, 0, false, fmt.Errorf("descend: root node: %w", err)
	}

	for node.Kind() == types.BTNodeKindIndex {
		idx, found, err := rightmostBoundary(node, cmp)
		if err != nil {
			return nil, 0, false, err
		}
		if !found {
			idx = 0
		} else {
			// Search siblings: if the boundary landed on the node's last
			// record and it wasn't an exact match, the true child may live
			// in a later sibling at this same height.
			for idx == int(node.RecordCount())-1 {
				key, err := node.RecordKey(idx)
				if err != nil {
					return nil, 0, false, err
				}
				if cmp.Compare(key) != interfaces.Greater {
					break
				}
				sibling, ok, err := s.navigator.NextSibling(node)
				if err != nil {
					return nil, 0, false, err
				}
				if !ok {
					break
				}
				sIdx, sFound, err := rightmostBoundary(sibling, cmp)
				if err != nil {
					return nil, 0, false, err
				}
				if !sFound {
					break
				}
				node, idx = sibling, sIdx
			}
		}

		child, err := s.navigator.Child(node, idx)
		if err != nil {
			return nil, 0, false, fmt.Errorf("%w: node %d record %d", hfserr.Wrap(hfserr.BrokenChain, "descend to child", err), node.NodeNumber(), idx)
		}
		node = child
	}

	// On a miss, this lands on the predecessor (the rightmost record whose
	// key is still below the quarry, i.e. compares Greater), per spec.md
	// §4.6 step 3. This
	// reading is deliberate: it's what makes ListDirectory's "descend to
	// (parent, \"\") then scan forward" work, and it's exercised by
	// TestDescendPredecessor.
	idx, found, err := rightmostBoundary(node, cmp)
	if err != nil {
		return nil, 0, false, err
	}
	if !found {
		return node, 0, false, nil
	}
	key, err := node.RecordKey(idx)
	if err != nil {
		return nil, 0, false, err
	}
	exact := cmp.Compare(key) == interfaces.Equal
	return node, idx, exact, nil
}

// rightmostBoundary finds the rightmost record in node whose key is not
// greater than the quarry (comparison result Equal or Greater), since candidate keys
// appear in ascending order and a Comparator's result against a fixed
// quarry is monotonic across them: some prefix of Greater/Equal records
// followed by a suffix of Lesser ones. found is false when every record
// is Lesser (the quarry precedes everything in this node).
func rightmostBoundary(node interfaces.BTreeNodeReader, cmp interfaces.Comparator) (int, bool, error) {
	count := int(node.RecordCount())
	if count == 0 {
		return 0, false, nil
	}
	lo, hi := 0, count // hi is the smallest index known to be Lesser (or count if none is)
	for lo < hi {
		mid := (lo + hi) / 2
		key, err := node.RecordKey(mid)
		if err != nil {
			return 0, false, err
		}
		if cmp.Compare(key) == interfaces.Lesser {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	if lo == 0 {
		return 0, false, nil
	}
	return lo - 1, true, nil
}
