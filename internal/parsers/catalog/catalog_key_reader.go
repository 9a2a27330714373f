// Package catalog parses HFS/HFS+ catalog keys and records: folder, file,
// and the two thread variants (spec.md §3, §4.7, C9).
package catalog

import (
	"encoding/binary"
	"fmt"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/types"
)

// ParseCatalogKeyHFS parses an HFS Standard catalog key: parentID (u32)
// followed by a Pascal-string name (its own length byte at offset 4, then
// that many MacRoman bytes). data is exactly the key bytes (no keyLength
// prefix — the node reader already removed it).
func ParseCatalogKeyHFS(data []byte) (types.CatalogKeyHFS, error) {
	if len(data) < 5 {
		return types.CatalogKeyHFS{}, fmt.Errorf("%w: HFS catalog key needs at least 5 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated catalog key"), len(data))
	}
	parentID := types.CNID(binary.BigEndian.Uint32(data[0:4]))
	nameLen := int(data[4])
	if 5+nameLen > len(data) {
		return types.CatalogKeyHFS{}, fmt.Errorf("%w: name length %d exceeds key", hfserr.New(hfserr.CorruptNode, "truncated catalog key"), nameLen)
	}
	name := make([]byte, nameLen)
	copy(name, data[5:5+nameLen])
	return types.CatalogKeyHFS{ParentID: parentID, NodeName: name}, nil
}

// ParseCatalogKeyHFSPlus parses an HFS+ catalog key: parentID (u32)
// followed by a u16 code-unit count and that many big-endian UTF-16 code
// units. data is exactly the key bytes.
func ParseCatalogKeyHFSPlus(data []byte) (types.CatalogKeyHFSPlus, error) {
	if len(data) < 6 {
		return types.CatalogKeyHFSPlus{}, fmt.Errorf("%w: HFS+ catalog key needs at least 6 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated catalog key"), len(data))
	}
	parentID := types.CNID(binary.BigEndian.Uint32(data[0:4]))
	count := int(binary.BigEndian.Uint16(data[4:6]))
	need := 6 + count*2
	if need > len(data) {
		return types.CatalogKeyHFSPlus{}, fmt.Errorf("%w: name length %d exceeds key", hfserr.New(hfserr.CorruptNode, "truncated catalog key"), count)
	}
	units := make([]uint16, count)
	for i := 0; i < count; i++ {
		units[i] = binary.BigEndian.Uint16(data[6+i*2 : 8+i*2])
	}
	return types.CatalogKeyHFSPlus{ParentID: parentID, NodeName: units}, nil
}

// EncodeCatalogKeyHFS is the inverse of ParseCatalogKeyHFS, used to build
// quarry keys for descent (spec.md §4.6).
func EncodeCatalogKeyHFS(k types.CatalogKeyHFS) []byte {
	out := make([]byte, 5+len(k.NodeName))
	binary.BigEndian.PutUint32(out[0:4], uint32(k.ParentID))
	out[4] = byte(len(k.NodeName))
	copy(out[5:], k.NodeName)
	return out
}

// EncodeCatalogKeyHFSPlus is the inverse of ParseCatalogKeyHFSPlus.
func EncodeCatalogKeyHFSPlus(k types.CatalogKeyHFSPlus) []byte {
	out := make([]byte, 6+len(k.NodeName)*2)
	binary.BigEndian.PutUint32(out[0:4], uint32(k.ParentID))
	binary.BigEndian.PutUint16(out[4:6], uint16(len(k.NodeName)))
	for i, u := range k.NodeName {
		binary.BigEndian.PutUint16(out[6+i*2:8+i*2], u)
	}
	return out
}
