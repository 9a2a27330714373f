package catalog

import (
	"encoding/binary"
	"fmt"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/parsers/extents"
	"github.com/hfsreader/hfsreader/internal/types"
)

// RecordType reads the leading record-type discriminant every catalog
// record payload carries (spec.md §4.7). HFS+ stores it as a native i16
// (0x0001-0x0004); HFS Standard stores a single cdrType byte at offset 0
// followed by a reserved byte, which reads as 0x0100-0x0400 if taken as a
// plain big-endian i16 — so the HFS form is unpacked from the high byte
// instead.
func RecordType(data []byte, isHFSPlus bool) (types.CatalogRecordType, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("%w: record payload needs 2 bytes", hfserr.New(hfserr.CorruptNode, "truncated catalog record"))
	}
	if isHFSPlus {
		return types.CatalogRecordType(int16(binary.BigEndian.Uint16(data[0:2]))), nil
	}
	return types.CatalogRecordType(data[0]), nil
}

// ParseFolderHFS parses an HFS Standard folder record (70 bytes).
func ParseFolderHFS(data []byte) (types.CatalogFolder, error) {
	if len(data) < 70 {
		return types.CatalogFolder{}, fmt.Errorf("%w: HFS folder record needs 70 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated folder record"), len(data))
	}
	f := types.CatalogFolder{
		RecordType: types.CatalogRecordType(data[0]),
		Flags:      binary.BigEndian.Uint16(data[2:4]),
		Valence:    uint32(binary.BigEndian.Uint16(data[4:6])),
		FolderID:   types.CNID(binary.BigEndian.Uint32(data[6:10])),
		CreateDate: binary.BigEndian.Uint32(data[10:14]),
		ContentMod: binary.BigEndian.Uint32(data[14:18]),
		BackupDate: binary.BigEndian.Uint32(data[18:22]),
	}
	copy(f.UserInfo[:], data[22:38])
	copy(f.FinderInfo[:], data[38:54])
	return f, nil
}

// ParseFolderHFSPlus parses an HFS+ folder record (88 bytes).
func ParseFolderHFSPlus(data []byte) (types.CatalogFolder, error) {
	if len(data) < 88 {
		return types.CatalogFolder{}, fmt.Errorf("%w: HFS+ folder record needs 88 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated folder record"), len(data))
	}
	f := types.CatalogFolder{
		RecordType: types.CatalogRecordType(int16(binary.BigEndian.Uint16(data[0:2]))),
		Flags:      binary.BigEndian.Uint16(data[2:4]),
		Valence:    binary.BigEndian.Uint32(data[4:8]),
		FolderID:   types.CNID(binary.BigEndian.Uint32(data[8:12])),
		CreateDate: binary.BigEndian.Uint32(data[12:16]),
		ContentMod: binary.BigEndian.Uint32(data[16:20]),
		BackupDate: binary.BigEndian.Uint32(data[28:32]),
		Permissions: types.CatalogPermissions{
			OwnerID:    binary.BigEndian.Uint32(data[32:36]),
			GroupID:    binary.BigEndian.Uint32(data[36:40]),
			AdminFlags: data[40],
			OwnerFlags: data[41],
			FileMode:   types.Mode(binary.BigEndian.Uint16(data[42:44])),
			Special:    binary.BigEndian.Uint32(data[44:48]),
		},
	}
	copy(f.UserInfo[:], data[48:64])
	copy(f.FinderInfo[:], data[64:80])
	return f, nil
}

// ParseFileHFS parses an HFS Standard file record (102 bytes).
func ParseFileHFS(data []byte) (types.CatalogFile, error) {
	if len(data) < 102 {
		return types.CatalogFile{}, fmt.Errorf("%w: HFS file record needs 102 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated file record"), len(data))
	}
	file := types.CatalogFile{
		RecordType: types.CatalogRecordType(data[0]),
		Flags:      uint16(data[2]),
		FileID:     types.CNID(binary.BigEndian.Uint32(data[20:24])),
		CreateDate: binary.BigEndian.Uint32(data[44:48]),
		ContentMod: binary.BigEndian.Uint32(data[48:52]),
		BackupDate: binary.BigEndian.Uint32(data[52:56]),
	}
	copy(file.UserInfo[:], data[4:20])
	copy(file.FinderInfo[:], data[56:72])

	dataLogicalSize := binary.BigEndian.Uint32(data[26:30])
	rsrcLogicalSize := binary.BigEndian.Uint32(data[36:40])
	dataExtents, err := extents.ParseHFSExtentRecord(data[74:86])
	if err != nil {
		return types.CatalogFile{}, err
	}
	rsrcExtents, err := extents.ParseHFSExtentRecord(data[86:98])
	if err != nil {
		return types.CatalogFile{}, err
	}
	file.DataFork = types.ForkDescriptor{
		LogicalSize: uint64(dataLogicalSize),
		TotalBlocks: extents.SumBlockCount(dataExtents),
		ExtentsHFS:  dataExtents,
	}
	file.ResourceFork = types.ForkDescriptor{
		LogicalSize: uint64(rsrcLogicalSize),
		TotalBlocks: extents.SumBlockCount(rsrcExtents),
		ExtentsHFS:  rsrcExtents,
	}
	return file, nil
}

// ParseFileHFSPlus parses an HFS+ file record (248 bytes).
func ParseFileHFSPlus(data []byte) (types.CatalogFile, error) {
	if len(data) < 248 {
		return types.CatalogFile{}, fmt.Errorf("%w: HFS+ file record needs 248 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated file record"), len(data))
	}
	file := types.CatalogFile{
		RecordType: types.CatalogRecordType(int16(binary.BigEndian.Uint16(data[0:2]))),
		Flags:      binary.BigEndian.Uint16(data[2:4]),
		FileID:     types.CNID(binary.BigEndian.Uint32(data[8:12])),
		CreateDate: binary.BigEndian.Uint32(data[12:16]),
		ContentMod: binary.BigEndian.Uint32(data[16:20]),
		BackupDate: binary.BigEndian.Uint32(data[28:32]),
		Permissions: types.CatalogPermissions{
			OwnerID:    binary.BigEndian.Uint32(data[32:36]),
			GroupID:    binary.BigEndian.Uint32(data[36:40]),
			AdminFlags: data[40],
			OwnerFlags: data[41],
			FileMode:   types.Mode(binary.BigEndian.Uint16(data[42:44])),
			Special:    binary.BigEndian.Uint32(data[44:48]),
		},
	}
	copy(file.UserInfo[:], data[48:64])
	copy(file.FinderInfo[:], data[64:80])

	dataFork, err := parseHFSPlusForkDataInline(data[88:168])
	if err != nil {
		return types.CatalogFile{}, err
	}
	rsrcFork, err := parseHFSPlusForkDataInline(data[168:248])
	if err != nil {
		return types.CatalogFile{}, err
	}
	file.DataFork = dataFork
	file.ResourceFork = rsrcFork
	return file, nil
}

// parseHFSPlusForkDataInline parses the 80-byte HFSPlusForkData embedded
// directly in a file record (same layout as container.parseForkData, but
// that helper is unexported in its own package so the 8-extent decode is
// repeated here via the shared extents reader).
func parseHFSPlusForkDataInline(data []byte) (types.ForkDescriptor, error) {
	if len(data) < 80 {
		return types.ForkDescriptor{}, fmt.Errorf("%w: inline fork data needs 80 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated fork data"), len(data))
	}
	rec, err := extents.ParseHFSPlusExtentRecord(data[16:80])
	if err != nil {
		return types.ForkDescriptor{}, err
	}
	return types.ForkDescriptor{
		LogicalSize: binary.BigEndian.Uint64(data[0:8]),
		ClumpSize:   binary.BigEndian.Uint32(data[8:12]),
		TotalBlocks: binary.BigEndian.Uint32(data[12:16]),
		ExtentsPlus: rec,
	}, nil
}

// ParseThreadHFS parses an HFS Standard thread record: recordType(i16),
// reserved(2×i32), parentID(u32), then a Pascal-string name — folder and
// file thread payloads share this shape.
func ParseThreadHFS(data []byte) (types.CatalogThread, error) {
	if len(data) < 15 {
		return types.CatalogThread{}, fmt.Errorf("%w: HFS thread record needs at least 15 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated thread record"), len(data))
	}
	recType := types.CatalogRecordType(data[0])
	parentID := types.CNID(binary.BigEndian.Uint32(data[10:14]))
	nameLen := int(data[14])
	if 15+nameLen > len(data) {
		return types.CatalogThread{}, fmt.Errorf("%w: thread name length %d exceeds record", hfserr.New(hfserr.CorruptNode, "truncated thread record"), nameLen)
	}
	name := make([]byte, nameLen)
	copy(name, data[15:15+nameLen])
	return types.CatalogThread{RecordType: recType, ParentID: parentID, NodeNameHFS: name}, nil
}

// ParseThreadHFSPlus parses an HFS+ thread record: recordType(i16),
// reserved(i32), parentID(u32), then an HFSUniStr255 (u16 count + UTF-16BE
// code units).
func ParseThreadHFSPlus(data []byte) (types.CatalogThread, error) {
	if len(data) < 12 {
		return types.CatalogThread{}, fmt.Errorf("%w: HFS+ thread record needs at least 12 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated thread record"), len(data))
	}
	recType := types.CatalogRecordType(int16(binary.BigEndian.Uint16(data[0:2])))
	parentID := types.CNID(binary.BigEndian.Uint32(data[6:10]))
	count := int(binary.BigEndian.Uint16(data[10:12]))
	need := 12 + count*2
	if need > len(data) {
		return types.CatalogThread{}, fmt.Errorf("%w: thread name length %d exceeds record", hfserr.New(hfserr.CorruptNode, "truncated thread record"), count)
	}
	units := make([]uint16, count)
	for i := 0; i < count; i++ {
		units[i] = binary.BigEndian.Uint16(data[12+i*2 : 14+i*2])
	}
	return types.CatalogThread{RecordType: recType, ParentID: parentID, NodeNameHFSPlus: units}, nil
}
