package btrees

import (
	"testing"

	"github.com/hfsreader/hfsreader/internal/interfaces"
)

func TestBreadthFirstVisitsEveryNode(t *testing.T) {
	file := buildTestTree()
	nav := NewBTreeNavigator(file)
	trav := NewBTreeTraverser(file, nav)

	var seen []uint32
	err := trav.BreadthFirst(func(node interfaces.BTreeNodeReader, depth int) (bool, error) {
		seen = append(seen, node.NodeNumber())
		return false, nil
	})
	if err != nil {
		t.Fatalf("BreadthFirst: %v", err)
	}
	want := []uint32{0, 1, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("visited %v, want %v", seen, want)
		}
	}
}

func TestBreadthFirstStopsEarly(t *testing.T) {
	file := buildTestTree()
	nav := NewBTreeNavigator(file)
	trav := NewBTreeTraverser(file, nav)

	count := 0
	err := trav.BreadthFirst(func(node interfaces.BTreeNodeReader, depth int) (bool, error) {
		count++
		return true, nil
	})
	if err != nil {
		t.Fatalf("BreadthFirst: %v", err)
	}
	if count != 1 {
		t.Fatalf("visited %d nodes, want 1 (stop on first)", count)
	}
}

func TestLeafWalkFollowsFLink(t *testing.T) {
	file := buildTestTree()
	nav := NewBTreeNavigator(file)
	trav := NewBTreeTraverser(file, nav)

	var keys []string
	err := trav.LeafWalk(func(key, payload []byte) (bool, error) {
		keys = append(keys, string(key))
		return false, nil
	})
	if err != nil {
		t.Fatalf("LeafWalk: %v", err)
	}
	want := []string{"b", "d", "f"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
}
