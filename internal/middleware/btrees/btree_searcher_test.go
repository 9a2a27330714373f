package btrees

import (
	"testing"

	"github.com/hfsreader/hfsreader/internal/types"
)

// buildTestTree creates a root index node pointing at three leaves keyed
// "b", "d", "f", each holding one record equal to its key.
func buildTestTree() *fakeFile {
	leafB := &fakeNode{number: 1, kind: types.BTNodeKindLeaf, flink: 2, records: []fakeRecord{
		{key: []byte("b"), payload: []byte("leaf-b")},
	}}
	leafD := &fakeNode{number: 2, kind: types.BTNodeKindLeaf, flink: 3, records: []fakeRecord{
		{key: []byte("d"), payload: []byte("leaf-d")},
	}}
	leafF := &fakeNode{number: 3, kind: types.BTNodeKindLeaf, flink: 0, records: []fakeRecord{
		{key: []byte("f"), payload: []byte("leaf-f")},
	}}
	root := &fakeNode{number: 0, kind: types.BTNodeKindIndex, records: []fakeRecord{
		{key: []byte("b"), child: 1},
		{key: []byte("d"), child: 2},
		{key: []byte("f"), child: 3},
	}}
	return &fakeFile{
		header: types.BTHeaderRec{RootNode: 0, FirstLeafNode: 1, LastLeafNode: 3},
		nodes:  map[uint32]*fakeNode{0: root, 1: leafB, 2: leafD, 3: leafF},
	}
}

func TestDescendExactMatch(t *testing.T) {
	file := buildTestTree()
	nav := NewBTreeNavigator(file)
	searcher := NewBTreeSearcher(nav)

	leaf, idx, exact, err := searcher.Descend(bytesComparator{quarry: []byte("d")})
	if err != nil {
		t.Fatalf("Descend: %v", err)
	}
	if !exact {
		t.Fatal("expected exact match")
	}
	key, _ := leaf.RecordKey(idx)
	if string(key) != "d" {
		t.Fatalf("landed on key %q, want d", key)
	}
}

func TestDescendPredecessor(t *testing.T) {
	file := buildTestTree()
	nav := NewBTreeNavigator(file)
	searcher := NewBTreeSearcher(nav)

	// "e" isn't present; the rightmost key not greater than "e" is "d".
	leaf, idx, exact, err := searcher.Descend(bytesComparator{quarry: []byte("e")})
	if err != nil {
		t.Fatalf("Descend: %v", err)
	}
	if exact {
		t.Fatal("expected no exact match")
	}
	key, _ := leaf.RecordKey(idx)
	if string(key) != "d" {
		t.Fatalf("landed on key %q, want d", key)
	}
}

func TestDescendBeforeFirstKey(t *testing.T) {
	file := buildTestTree()
	nav := NewBTreeNavigator(file)
	searcher := NewBTreeSearcher(nav)

	leaf, _, exact, err := searcher.Descend(bytesComparator{quarry: []byte("a")})
	if err != nil {
		t.Fatalf("Descend: %v", err)
	}
	if exact {
		t.Fatal("expected no exact match")
	}
	if leaf.NodeNumber() != 1 {
		t.Fatalf("expected to land in the leftmost leaf, got node %d", leaf.NodeNumber())
	}
}
