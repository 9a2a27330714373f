package catalog

import (
	"fmt"
	"strings"

	catalogparse "github.com/hfsreader/hfsreader/internal/parsers/catalog"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/interfaces"
	"github.com/hfsreader/hfsreader/internal/types"
)

// catalogWalker implements interfaces.CatalogWalker over a catalog
// B-tree's searcher/traverser (C8) and the fixed-offset record parsers
// (C9), selecting the HFS Standard or HFS+ key/record shape once at
// construction (spec.md §4.7).
type catalogWalker struct {
	searcher  interfaces.BTreeSearcher
	navigator interfaces.BTreeNavigator
	traverser interfaces.BTreeTraverser
	isHFSPlus bool
	decoder   interfaces.TextDecoder
}

// NewCatalogWalker builds a CatalogWalker for a volume's catalog tree.
func NewCatalogWalker(searcher interfaces.BTreeSearcher, navigator interfaces.BTreeNavigator, traverser interfaces.BTreeTraverser, isHFSPlus bool, decoder interfaces.TextDecoder) interfaces.CatalogWalker {
	return &catalogWalker{searcher: searcher, navigator: navigator, traverser: traverser, isHFSPlus: isHFSPlus, decoder: decoder}
}

// decodedKey is the parentID/name pair common to both on-disk key shapes,
// decoded to Unicode so the rest of the walker never branches on volume
// generation again once a key has been read.
type decodedKey struct {
	parentID types.CNID
	name     string
}

func (w *catalogWalker) decodeKey(raw []byte) (decodedKey, error) {
	if w.isHFSPlus {
		k, err := catalogparse.ParseCatalogKeyHFSPlus(raw)
		if err != nil {
			return decodedKey{}, err
		}
		name, err := w.decoder.HFSUniStr255ToUnicode(k.NodeName)
		if err != nil {
			return decodedKey{}, err
		}
		return decodedKey{parentID: k.ParentID, name: name}, nil
	}
	k, err := catalogparse.ParseCatalogKeyHFS(raw)
	if err != nil {
		return decodedKey{}, err
	}
	name, err := w.decoder.PascalToUnicode(k.NodeName)
	if err != nil {
		return decodedKey{}, err
	}
	return decodedKey{parentID: k.ParentID, name: name}, nil
}

// comparatorFor selects the native on-disk ordering comparator for this
// volume's catalog tree: FastUnicodeCompare for HFS+, plain byte order for
// HFS Standard (spec.md §9 Open Question #1).
func (w *catalogWalker) comparatorFor(quarry []byte) interfaces.Comparator {
	if w.isHFSPlus {
		return newCatalogKeyComparatorHFSPlus(quarry)
	}
	return newByteOrderComparator(quarry)
}

func (w *catalogWalker) encodeKey(parentID types.CNID, name string) ([]byte, error) {
	if w.isHFSPlus {
		return catalogparse.EncodeCatalogKeyHFSPlus(types.CatalogKeyHFSPlus{ParentID: parentID, NodeName: encodeUTF16(name)}), nil
	}
	macRoman, err := w.decoder.UnicodeToMacRoman(name)
	if err != nil {
		return nil, err
	}
	if len(macRoman) > 31 {
		return nil, fmt.Errorf("%w: name exceeds 31 bytes in MacRoman: %q", hfserr.New(hfserr.PathSyntax, "catalog key"), name)
	}
	return catalogparse.EncodeCatalogKeyHFS(types.CatalogKeyHFS{ParentID: parentID, NodeName: macRoman}), nil
}

func (w *catalogWalker) itemFromRecord(key decodedKey, payload []byte) (interfaces.DehydratedItem, bool, error) {
	recType, err := catalogparse.RecordType(payload, w.isHFSPlus)
	if err != nil {
		return interfaces.DehydratedItem{}, false, err
	}
	switch recType {
	case types.RecordTypeFolder:
		var folder types.CatalogFolder
		if w.isHFSPlus {
			folder, err = catalogparse.ParseFolderHFSPlus(payload)
		} else {
			folder, err = catalogparse.ParseFolderHFS(payload)
		}
		if err != nil {
			return interfaces.DehydratedItem{}, false, err
		}
		return interfaces.DehydratedItem{
			CNID: folder.FolderID, ParentCNID: key.parentID, Name: key.name, IsFolder: true,
			CreateDate: folder.CreateDate, ModDate: folder.ContentMod, FinderInfo: folder.FinderInfo,
		}, true, nil
	case types.RecordTypeFile:
		var file types.CatalogFile
		if w.isHFSPlus {
			file, err = catalogparse.ParseFileHFSPlus(payload)
		} else {
			file, err = catalogparse.ParseFileHFS(payload)
		}
		if err != nil {
			return interfaces.DehydratedItem{}, false, err
		}
		return interfaces.DehydratedItem{
			CNID: file.FileID, ParentCNID: key.parentID, Name: key.name, IsFolder: false,
			CreateDate: file.CreateDate, ModDate: file.ContentMod, FinderInfo: file.FinderInfo,
			DataFork: file.DataFork, ResourceFork: file.ResourceFork,
		}, true, nil
	default:
		return interfaces.DehydratedItem{}, false, nil // thread record, not a listable item
	}
}

// ListDirectory enumerates parent's immediate children in key order
// (spec.md §4.6 directory enumeration): descend to (parent, ""), skip the
// folder's own thread record landed on there, then walk forward while the
// decoded parentID still matches.
func (w *catalogWalker) ListDirectory(parent types.CNID, visit func(interfaces.DehydratedItem) (bool, error)) error {
	quarry, err := w.encodeKey(parent, "")
	if err != nil {
		return err
	}
	leaf, idx, _, err := w.searcher.Descend(w.comparatorFor(quarry))
	if err != nil {
		return fmt.Errorf("list directory %d: %w", parent, err)
	}

	for {
		if idx >= int(leaf.RecordCount()) {
			next, ok, err := w.nextLeaf(leaf)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			leaf, idx = next, 0
			continue
		}
		rawKey, err := leaf.RecordKey(idx)
		if err != nil {
			return err
		}
		key, err := w.decodeKey(rawKey)
		if err != nil {
			return err
		}
		if key.parentID != parent {
			return nil
		}
		payload, err := leaf.RecordPayload(idx)
		if err != nil {
			return err
		}
		item, ok, err := w.itemFromRecord(key, payload)
		if err != nil {
			return err
		}
		idx++
		if !ok {
			continue // this folder's own thread record
		}
		stop, err := visit(item)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
}

// Lookup resolves a single catalog entry by (parent, name). Descent uses
// the volume's native on-disk ordering (spec.md §9 Open Question #1):
// FastUnicodeCompare for HFS+, plain byte order for HFS Standard. HFS+'s
// FastUnicodeCompare already folds case, but this reader's approximation
// (unicode.ToLower per code unit, see fastUnicodeCompare) may still differ
// from Apple's table for a handful of characters, so a non-exact landing
// is re-checked by comparing decoded names case-insensitively before
// giving up.
func (w *catalogWalker) Lookup(parent types.CNID, name string) (interfaces.DehydratedItem, bool, error) {
	quarry, err := w.encodeKey(parent, name)
	if err != nil {
		return interfaces.DehydratedItem{}, false, err
	}
	leaf, idx, exact, err := w.searcher.Descend(w.comparatorFor(quarry))
	if err != nil {
		return interfaces.DehydratedItem{}, false, err
	}
	if !exact {
		start, err := w.encodeKey(parent, "")
		if err != nil {
			return interfaces.DehydratedItem{}, false, err
		}
		leaf, idx, _, err = w.searcher.Descend(w.comparatorFor(start))
		if err != nil {
			return interfaces.DehydratedItem{}, false, err
		}
		return w.lookupCaseInsensitive(leaf, idx, parent, name)
	}
	rawKey, err := leaf.RecordKey(idx)
	if err != nil {
		return interfaces.DehydratedItem{}, false, err
	}
	key, err := w.decodeKey(rawKey)
	if err != nil {
		return interfaces.DehydratedItem{}, false, err
	}
	payload, err := leaf.RecordPayload(idx)
	if err != nil {
		return interfaces.DehydratedItem{}, false, err
	}
	return w.itemFromRecord(key, payload)
}

// lookupCaseInsensitive scans forward from idx while records still belong
// to parent, matching the first whose decoded name folds equal to name
// (spec.md §9 Open Question #1). Lookup starts it at parent's (parent, "")
// thread record, so every child of parent is compared whichever collation
// the volume uses.
func (w *catalogWalker) lookupCaseInsensitive(leaf interfaces.BTreeNodeReader, idx int, parent types.CNID, name string) (interfaces.DehydratedItem, bool, error) {
	for {
		if idx >= int(leaf.RecordCount()) {
			next, ok, err := w.nextLeaf(leaf)
			if err != nil {
				return interfaces.DehydratedItem{}, false, err
			}
			if !ok {
				return interfaces.DehydratedItem{}, false, nil
			}
			leaf, idx = next, 0
			continue
		}
		rawKey, err := leaf.RecordKey(idx)
		if err != nil {
			return interfaces.DehydratedItem{}, false, err
		}
		key, err := w.decodeKey(rawKey)
		if err != nil {
			return interfaces.DehydratedItem{}, false, err
		}
		if key.parentID != parent {
			return interfaces.DehydratedItem{}, false, nil
		}
		if strings.EqualFold(key.name, name) {
			payload, err := leaf.RecordPayload(idx)
			if err != nil {
				return interfaces.DehydratedItem{}, false, err
			}
			return w.itemFromRecord(key, payload)
		}
		idx++
	}
}

// PathOf reconstructs the path to c by following thread records upward
// (spec.md §4.7); the root folder itself contributes no path component.
func (w *catalogWalker) PathOf(c types.CNID) ([]string, error) {
	var parts []string
	current := c
	for current != types.CNIDRootFolder {
		quarry, err := w.encodeKey(current, "")
		if err != nil {
			return nil, err
		}
		leaf, idx, exact, err := w.searcher.Descend(w.comparatorFor(quarry))
		if err != nil {
			return nil, err
		}
		if !exact {
			return nil, fmt.Errorf("%w: no thread record for CNID %d", hfserr.New(hfserr.BrokenChain, "path reconstruction"), current)
		}
		payload, err := leaf.RecordPayload(idx)
		if err != nil {
			return nil, err
		}
		recType, err := catalogparse.RecordType(payload, w.isHFSPlus)
		if err != nil {
			return nil, err
		}
		if recType != types.RecordTypeFolderThread && recType != types.RecordTypeFileThread {
			return nil, fmt.Errorf("%w: CNID %d's thread slot holds a %s record", hfserr.New(hfserr.BrokenChain, "path reconstruction"), current, recType)
		}
		var th types.CatalogThread
		if w.isHFSPlus {
			th, err = catalogparse.ParseThreadHFSPlus(payload)
		} else {
			th, err = catalogparse.ParseThreadHFS(payload)
		}
		if err != nil {
			return nil, err
		}
		var name string
		if w.isHFSPlus {
			name, err = w.decoder.HFSUniStr255ToUnicode(th.NodeNameHFSPlus)
		} else {
			name, err = w.decoder.PascalToUnicode(th.NodeNameHFS)
		}
		if err != nil {
			return nil, err
		}
		parts = append([]string{name}, parts...)
		current = th.ParentID
	}
	return parts, nil
}

// WalkAll walks the entire catalog in key order along the leaf chain
// (spec.md §4.9), visiting every folder/file record and skipping thread
// records.
func (w *catalogWalker) WalkAll(visit func(interfaces.DehydratedItem) (bool, error)) error {
	var outerErr error
	err := w.traverser.LeafWalk(func(rawKey, payload []byte) (bool, error) {
		key, err := w.decodeKey(rawKey)
		if err != nil {
			return false, err
		}
		item, ok, err := w.itemFromRecord(key, payload)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
		stop, err := visit(item)
		return stop, err
	})
	if err != nil {
		return err
	}
	return outerErr
}

// nextLeaf follows a leaf's fLink to the next leaf in key order, if any.
func (w *catalogWalker) nextLeaf(leaf interfaces.BTreeNodeReader) (interfaces.BTreeNodeReader, bool, error) {
	return w.navigator.NextSibling(leaf)
}

func encodeUTF16(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r > 0xFFFF {
			r = '?'
		}
		units = append(units, uint16(r))
	}
	return units
}
