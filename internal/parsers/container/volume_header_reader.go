package container

import (
	"encoding/binary"
	"fmt"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/types"
)

// ParseVolumeHeader parses an HFS+ (or HFSX) Volume Header from a 512-byte
// region at the volume's standard offset (TN1150). data must be at least
// 512 bytes.
func ParseVolumeHeader(data []byte) (*types.HFSPlusVolumeHeader, error) {
	const size = 512
	if len(data) < size {
		return nil, fmt.Errorf("%w: volume header needs %d bytes, got %d", hfserr.New(hfserr.DeviceIo, "short read"), size, len(data))
	}
	h := &types.HFSPlusVolumeHeader{
		Signature:          binary.BigEndian.Uint16(data[0:2]),
		Version:            binary.BigEndian.Uint16(data[2:4]),
		Attributes:         binary.BigEndian.Uint32(data[4:8]),
		LastMountedVersion: binary.BigEndian.Uint32(data[8:12]),
		JournalInfoBlock:   binary.BigEndian.Uint32(data[12:16]),
		CreateDate:         binary.BigEndian.Uint32(data[16:20]),
		ModifyDate:         binary.BigEndian.Uint32(data[20:24]),
		BackupDate:         binary.BigEndian.Uint32(data[24:28]),
		CheckedDate:        binary.BigEndian.Uint32(data[28:32]),
		FileCount:          binary.BigEndian.Uint32(data[32:36]),
		FolderCount:        binary.BigEndian.Uint32(data[36:40]),
		BlockSize:          binary.BigEndian.Uint32(data[40:44]),
		TotalBlocks:        binary.BigEndian.Uint32(data[44:48]),
		FreeBlocks:         binary.BigEndian.Uint32(data[48:52]),
		NextAllocation:     binary.BigEndian.Uint32(data[52:56]),
		RsrcClumpSize:      binary.BigEndian.Uint32(data[56:60]),
		DataClumpSize:      binary.BigEndian.Uint32(data[60:64]),
		NextCatalogID:      types.CNID(binary.BigEndian.Uint32(data[64:68])),
		WriteCount:         binary.BigEndian.Uint32(data[68:72]),
		EncodingsBitmap:    binary.BigEndian.Uint64(data[72:80]),
	}
	for i := 0; i < 8; i++ {
		h.FinderInfo[i] = binary.BigEndian.Uint32(data[80+i*4 : 84+i*4])
	}

	cursor := 112
	forks := []*types.HFSPlusForkData{&h.AllocationFile, &h.ExtentsFile, &h.CatalogFile, &h.AttributesFile, &h.StartupFile}
	for _, f := range forks {
		fd, err := parseForkData(data[cursor : cursor+80])
		if err != nil {
			return nil, err
		}
		*f = fd
		cursor += 80
	}

	if h.Signature != types.HFSPlusSigWord && h.Signature != types.HFSXSigWord {
		return nil, fmt.Errorf("%w: signature 0x%04X", hfserr.New(hfserr.UnknownVolume, "not an HFS+ volume header"), h.Signature)
	}
	return h, nil
}

// parseForkData parses an 80-byte HFSPlusForkData structure: 8-byte
// logical size, 4-byte clump size, 4-byte total blocks, then 8 extents of
// 8 bytes each (TN1150).
func parseForkData(data []byte) (types.HFSPlusForkData, error) {
	if len(data) < 80 {
		return types.HFSPlusForkData{}, fmt.Errorf("%w: fork data needs 80 bytes, got %d", hfserr.New(hfserr.CorruptNode, "truncated fork data"), len(data))
	}
	fd := types.HFSPlusForkData{
		LogicalSize: binary.BigEndian.Uint64(data[0:8]),
		ClumpSize:   binary.BigEndian.Uint32(data[8:12]),
		TotalBlocks: binary.BigEndian.Uint32(data[12:16]),
	}
	for i := 0; i < 8; i++ {
		off := 16 + i*8
		fd.Extents[i] = types.HFSPlusExtentDescriptor{
			StartBlock: binary.BigEndian.Uint32(data[off : off+4]),
			BlockCount: binary.BigEndian.Uint32(data[off+4 : off+8]),
		}
	}
	return fd, nil
}
