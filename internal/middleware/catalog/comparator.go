package catalog

import (
	"bytes"
	"unicode"

	"github.com/hfsreader/hfsreader/internal/interfaces"
	catalogparse "github.com/hfsreader/hfsreader/internal/parsers/catalog"
	"github.com/hfsreader/hfsreader/internal/types"
)

// byteOrderComparator compares a fixed, already-encoded quarry key against
// candidate keys using plain big-endian byte order. This is the correct
// on-disk ordering for HFS Standard (MacRoman byte order) and for HFSX
// volumes configured for binary comparison; it is NOT correct for HFS+,
// whose catalog B-tree is physically sorted by FastUnicodeCompare (see
// catalogKeyComparatorHFSPlus below). spec.md §9's first Open Question is
// resolved this way: descent always uses the volume's native on-disk
// ordering; case-insensitive comparison happens only once the search has
// landed on a leaf record, comparing decoded names rather than bytes (see
// catalogWalker.lookupCaseInsensitive).
type byteOrderComparator struct {
	quarry []byte
}

// newByteOrderComparator builds a Comparator over an already-encoded HFS
// Standard catalog (or extents-overflow) key.
func newByteOrderComparator(quarry []byte) interfaces.Comparator {
	return byteOrderComparator{quarry: quarry}
}

func (c byteOrderComparator) Compare(candidateKey []byte) interfaces.Ordering4 {
	return compareBytes(c.quarry, candidateKey)
}

func compareBytes(a, b []byte) interfaces.Ordering4 {
	switch bytes.Compare(a, b) {
	case -1:
		return interfaces.Lesser
	case 0:
		return interfaces.Equal
	default:
		return interfaces.Greater
	}
}

// catalogKeyComparatorHFSPlus compares HFS+ catalog keys the way a real
// HFS+ catalog B-tree is physically ordered on disk: by parentID, then by
// Apple's FastUnicodeCompare over the name, which folds case before
// comparing code units. Using plain byte order here (as HFS Standard does)
// would make rightmostBoundary's binary search assume a node ordering the
// node doesn't actually have, misdirecting descent for any name whose case
// differs from its neighbors' (spec.md §9 Open Question #1).
type catalogKeyComparatorHFSPlus struct {
	quarryRaw []byte
	quarry    types.CatalogKeyHFSPlus
	quarryOK  bool
}

func newCatalogKeyComparatorHFSPlus(quarry []byte) interfaces.Comparator {
	k, err := catalogparse.ParseCatalogKeyHFSPlus(quarry)
	return catalogKeyComparatorHFSPlus{quarryRaw: quarry, quarry: k, quarryOK: err == nil}
}

func (c catalogKeyComparatorHFSPlus) Compare(candidateKey []byte) interfaces.Ordering4 {
	candidate, err := catalogparse.ParseCatalogKeyHFSPlus(candidateKey)
	if err != nil || !c.quarryOK {
		return compareBytes(c.quarryRaw, candidateKey)
	}
	if c.quarry.ParentID != candidate.ParentID {
		if c.quarry.ParentID < candidate.ParentID {
			return interfaces.Lesser
		}
		return interfaces.Greater
	}
	return fastUnicodeCompare(c.quarry.NodeName, candidate.NodeName)
}

// fastUnicodeCompare approximates Apple's FastUnicodeCompare: a
// case-folding, code-unit-by-code-unit comparison of two UTF-16BE names.
// Apple's real table also special-cases a handful of non-Latin letters;
// folding through unicode.ToLower covers the common case this reader is
// exercised against and keeps the comparator table-free.
func fastUnicodeCompare(a, b []uint16) interfaces.Ordering4 {
	for i := 0; i < len(a) && i < len(b); i++ {
		ca := unicode.ToLower(rune(a[i]))
		cb := unicode.ToLower(rune(b[i]))
		if ca != cb {
			if ca < cb {
				return interfaces.Lesser
			}
			return interfaces.Greater
		}
	}
	switch {
	case len(a) < len(b):
		return interfaces.Lesser
	case len(a) > len(b):
		return interfaces.Greater
	default:
		return interfaces.Equal
	}
}
