package btrees

import (
	"encoding/binary"
	"fmt"

	"github.com/hfsreader/hfsreader/internal/types"
)

// ParseHeaderRec parses the BTHeaderRec payload carried in record 0 of node
// 0 (the header node), per Inside Macintosh: Files §4 and spec.md §4.5.
func ParseHeaderRec(payload []byte) (types.BTHeaderRec, error) {
	const size = 106
	if len(payload) < size {
		return types.BTHeaderRec{}, fmt.Errorf("%w: header record %d bytes, need %d", errCorruptNode, len(payload), size)
	}
	h := types.BTHeaderRec{
		TreeDepth:      binary.BigEndian.Uint16(payload[0:2]),
		RootNode:       binary.BigEndian.Uint32(payload[2:6]),
		LeafRecords:    binary.BigEndian.Uint32(payload[6:10]),
		FirstLeafNode:  binary.BigEndian.Uint32(payload[10:14]),
		LastLeafNode:   binary.BigEndian.Uint32(payload[14:18]),
		NodeSize:       binary.BigEndian.Uint16(payload[18:20]),
		MaxKeyLength:   binary.BigEndian.Uint16(payload[20:22]),
		TotalNodes:     binary.BigEndian.Uint32(payload[22:26]),
		FreeNodes:      binary.BigEndian.Uint32(payload[26:30]),
		Reserved1:      binary.BigEndian.Uint16(payload[30:32]),
		ClumpSize:      binary.BigEndian.Uint32(payload[32:36]),
		BTreeType:      payload[36],
		KeyCompareType: payload[37],
		Attributes:     binary.BigEndian.Uint32(payload[38:42]),
	}
	if h.NodeSize == 0 || h.NodeSize&(h.NodeSize-1) != 0 {
		return types.BTHeaderRec{}, fmt.Errorf("%w: node size %d is not a power of two", errCorruptNode, h.NodeSize)
	}
	return h, nil
}
