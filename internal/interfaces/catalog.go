// File: internal/interfaces/catalog.go
package interfaces

import "github.com/hfsreader/hfsreader/internal/types"

// CatalogRecord is a typed, decoded catalog record: folder, file, or one of
// the two thread variants (spec.md §4.7, C9).
type CatalogRecord interface {
	Type() types.CatalogRecordType
}

// DehydratedItem is the logical view of a catalog entry materialized when a
// leaf record is visited: value-typed fields plus a non-owning handle back
// to the volume for fork-reader construction (spec.md §3). Never mutated
// after construction.
type DehydratedItem struct {
	CNID       types.CNID
	ParentCNID types.CNID
	Name       string
	IsFolder   bool
	CreateDate uint32
	ModDate    uint32
	FinderInfo [16]byte

	DataFork     types.ForkDescriptor
	ResourceFork types.ForkDescriptor
}

// CatalogWalker walks a volume's catalog B-tree, dispatching typed records
// and reconstructing paths from thread records (spec.md §4.7, §4.6
// directory enumeration).
type CatalogWalker interface {
	// ListDirectory enumerates the immediate children of parent, in key
	// order, per spec.md §4.6's directory-enumeration algorithm.
	ListDirectory(parent types.CNID, visit func(DehydratedItem) (stop bool, err error)) error

	// Lookup resolves a single catalog entry by (parent, name).
	Lookup(parent types.CNID, name string) (DehydratedItem, bool, error)

	// PathOf reconstructs the full path to CNID c by following thread
	// records upward to the root (spec.md §4.7). Fails with BrokenChain
	// if a required thread record is absent.
	PathOf(c types.CNID) ([]string, error)

	// WalkAll walks the entire catalog in key order along the leaf chain,
	// invoking visit for every folder and file record; thread records are
	// skipped (spec.md §4.9 analyze).
	WalkAll(visit func(DehydratedItem) (stop bool, err error)) error
}

// TextDecoder converts on-disk name encodings to Unicode (spec.md §4.8,
// C3).
type TextDecoder interface {
	// PascalToUnicode decodes a length-prefixed MacRoman (or other Mac
	// script) string, canonically decomposed per HFS+ rules.
	PascalToUnicode(b []byte) (string, error)

	// HFSUniStr255ToUnicode byte-swaps and interprets a UTF-16BE name.
	HFSUniStr255ToUnicode(codeUnits []uint16) (string, error)

	// UnicodeToMacRoman recomposes a decomposed Unicode string back to
	// MacRoman bytes, used to build HFS quarry keys and verify the
	// round-trip property of spec.md §8 property 7.
	UnicodeToMacRoman(s string) ([]byte, error)
}
