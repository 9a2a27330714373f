// Package container parses the fixed-offset volume-header region every HFS
// and HFS+ volume carries (the Master Directory Block or Volume Header),
// and the signature probing that locates it (spec.md §4.2, §4.3, C4/C5).
package container

import (
	"encoding/binary"
	"fmt"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/types"
)

// ParseMDB parses an HFS Standard Master Directory Block from a 512-byte
// region (Inside Macintosh: Files §2-56). data must be at least 162 bytes.
func ParseMDB(data []byte) (*types.MasterDirectoryBlock, error) {
	const size = 162
	if len(data) < size {
		return nil, fmt.Errorf("%w: MDB needs %d bytes, got %d", hfserr.New(hfserr.DeviceIo, "short read"), size, len(data))
	}
	m := &types.MasterDirectoryBlock{
		DrSigWord:  binary.BigEndian.Uint16(data[0:2]),
		DrCrDate:   binary.BigEndian.Uint32(data[2:6]),
		DrLsMod:    binary.BigEndian.Uint32(data[6:10]),
		DrAtrb:     binary.BigEndian.Uint16(data[10:12]),
		DrNmFls:    binary.BigEndian.Uint16(data[12:14]),
		DrVBMSt:    binary.BigEndian.Uint16(data[14:16]),
		DrAllocPtr: binary.BigEndian.Uint16(data[16:18]),
		DrNmAlBlks: binary.BigEndian.Uint16(data[18:20]),
		DrAlBlkSiz: binary.BigEndian.Uint32(data[20:24]),
		DrClpSiz:   binary.BigEndian.Uint32(data[24:28]),
		DrAlBlSt:   binary.BigEndian.Uint16(data[28:30]),
		DrNxtCNID:  binary.BigEndian.Uint32(data[30:34]),
		DrFreeBks:  binary.BigEndian.Uint16(data[34:36]),
	}
	copy(m.DrVN[:], data[36:64])
	m.DrVolBkUp = binary.BigEndian.Uint32(data[64:68])
	m.DrVSeqNum = binary.BigEndian.Uint16(data[68:70])
	m.DrWrCnt = binary.BigEndian.Uint32(data[70:74])
	m.DrXTClpSiz = binary.BigEndian.Uint32(data[74:78])
	m.DrCTClpSiz = binary.BigEndian.Uint32(data[78:82])
	m.DrNmRtDirs = binary.BigEndian.Uint16(data[82:84])
	m.DrFilCnt = binary.BigEndian.Uint32(data[84:88])
	m.DrDirCnt = binary.BigEndian.Uint32(data[88:92])
	copy(m.DrFndrInfo[:], data[92:124])
	m.DrVCSize = binary.BigEndian.Uint16(data[124:126])
	m.DrVBMCSize = binary.BigEndian.Uint16(data[126:128])
	m.DrCtlCSize = binary.BigEndian.Uint16(data[128:130])
	m.DrXTFlSize = binary.BigEndian.Uint32(data[130:134])
	parseHFSExtentRecord(data[134:146], &m.DrXTExtRec)
	m.DrCTFlSize = binary.BigEndian.Uint32(data[146:150])
	parseHFSExtentRecord(data[150:162], &m.DrCTExtRec)

	if m.DrSigWord != types.HFSSigWord {
		return nil, fmt.Errorf("%w: signature 0x%04X", hfserr.New(hfserr.UnknownVolume, "not an HFS MDB"), m.DrSigWord)
	}
	return m, nil
}

func parseHFSExtentRecord(data []byte, out *[3]types.HFSExtentDescriptor) {
	for i := 0; i < 3; i++ {
		off := i * 4
		out[i] = types.HFSExtentDescriptor{
			StartBlock: binary.BigEndian.Uint16(data[off : off+2]),
			BlockCount: binary.BigEndian.Uint16(data[off+2 : off+4]),
		}
	}
}

// VolumeNamePascal returns the volume name's raw Pascal-string bytes
// (length byte followed by up to 27 MacRoman bytes) from the MDB's DrVN
// field, undecoded.
func VolumeNamePascal(m *types.MasterDirectoryBlock) []byte {
	n := int(m.DrVN[0])
	if n > 27 {
		n = 27
	}
	return m.DrVN[1 : 1+n]
}
