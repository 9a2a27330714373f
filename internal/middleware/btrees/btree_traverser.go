package btrees

import (
	"fmt"

	"github.com/hfsreader/hfsreader/internal/interfaces"
	"github.com/hfsreader/hfsreader/internal/types"
)

// btreeTraverser implements the breadth-first and leaf-sequential walks of
// spec.md §4.6, using a BTreeFileReader for direct node-number access
// instead of recursive child descent.
type btreeTraverser struct {
	file      interfaces.BTreeFileReader
	navigator interfaces.BTreeNavigator
}

// NewBTreeTraverser creates a BTreeTraverser over file, using navigator to
// resolve the root and index-node children.
func NewBTreeTraverser(file interfaces.BTreeFileReader, navigator interfaces.BTreeNavigator) interfaces.BTreeTraverser {
	return &btreeTraverser{file: file, navigator: navigator}
}

// BreadthFirst visits every node sibling-chain order per height, height
// descending from the root (spec.md §4.6).
func (t *btreeTraverser) BreadthFirst(visitor interfaces.NodeVisitor) error {
	root, err := t.navigator.Root()
	if err != nil {
		return fmt.Errorf("breadth-first: root node: %w", err)
	}

	level := []interfaces.BTreeNodeReader{root}
	depth := 0
	for len(level) > 0 {
		var next []interfaces.BTreeNodeReader
		for _, node := range level {
			stop, err := visitor(node, depth)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
			if node.Kind() != types.BTNodeKindIndex {
				continue
			}
			for i := 0; i < int(node.RecordCount()); i++ {
				child, err := t.navigator.Child(node, i)
				if err != nil {
					return fmt.Errorf("breadth-first: node %d record %d: %w", node.NodeNumber(), i, err)
				}
				next = append(next, child)
			}
		}
		level = next
		depth++
	}
	return nil
}

// LeafWalk starts at the header's firstLeafNode and follows fLink until 0
// or the visitor returns stop, visiting every live leaf's records exactly
// once (spec.md §4.6).
func (t *btreeTraverser) LeafWalk(visitor interfaces.RecordVisitor) error {
	header := t.file.Header()
	nodeNum := header.FirstLeafNode
	for nodeNum != 0 {
		node, err := t.file.NodeAt(nodeNum)
		if err != nil {
			return fmt.Errorf("leaf walk: node %d: %w", nodeNum, err)
		}
		for i := 0; i < int(node.RecordCount()); i++ {
			key, err := node.RecordKey(i)
			if err != nil {
				return fmt.Errorf("leaf walk: node %d record %d key: %w", nodeNum, i, err)
			}
			payload, err := node.RecordPayload(i)
			if err != nil {
				return fmt.Errorf("leaf walk: node %d record %d payload: %w", nodeNum, i, err)
			}
			stop, err := visitor(key, payload)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
		nodeNum = node.FLink()
	}
	return nil
}
