package services

import (
	"github.com/hfsreader/hfsreader/internal/interfaces"
	"github.com/hfsreader/hfsreader/internal/parsers/container"
	"github.com/hfsreader/hfsreader/internal/types"
)

// signatureProbe scans a device for HFS/HFS+ signatures at the three
// candidate offsets spec.md §4.2 names, non-fatally. Grounded on
// CheckpointDiscoveryService's scan-candidates-then-validate shape.
type signatureProbe struct{}

// NewVolumeProbe returns the default VolumeProbe.
func NewVolumeProbe() interfaces.VolumeProbe {
	return signatureProbe{}
}

func (signatureProbe) Probe(device interfaces.BlockDeviceReader) ([]interfaces.VolumeLocation, error) {
	var found []interfaces.VolumeLocation

	for _, candidate := range candidateOffsets(device.Size()) {
		loc, ok, err := probeOffset(device, candidate)
		if err != nil {
			continue // unreadable candidate region is non-fatal: spec.md §4.2
		}
		if !ok {
			continue
		}
		found = append(found, loc)

		if loc.Kind == types.VolumeKindHFS {
			if inner, ok := probeEmbedded(device, loc); ok {
				found = append(found, inner)
			}
		}
	}
	return found, nil
}

// candidateOffsets returns the byte-1024 standard location first, then 0
// for partitioned images, deduplicated when the device itself is smaller
// than the standard header's reach.
func candidateOffsets(deviceSize uint64) []int64 {
	offsets := []int64{types.HFSMasterDirectoryBlockOffset}
	if deviceSize > types.HFSMasterDirectoryBlockOffset+types.HFSMasterDirectoryBlockSize {
		offsets = append(offsets, 0)
	}
	return offsets
}

func probeOffset(device interfaces.BlockDeviceReader, offset int64) (interfaces.VolumeLocation, bool, error) {
	data, err := device.ReadAt(offset, types.HFSMasterDirectoryBlockSize)
	if err != nil {
		return interfaces.VolumeLocation{}, false, err
	}
	if len(data) < 2 {
		return interfaces.VolumeLocation{}, false, nil
	}
	sig := uint16(data[0])<<8 | uint16(data[1])
	switch sig {
	case types.HFSSigWord:
		return interfaces.VolumeLocation{StartByteOffset: offset, ByteLength: int64(device.Size()) - offset, Kind: types.VolumeKindHFS}, true, nil
	case types.HFSPlusSigWord, types.HFSXSigWord:
		return interfaces.VolumeLocation{StartByteOffset: offset, ByteLength: int64(device.Size()) - offset, Kind: types.VolumeKindHFSPlus}, true, nil
	default:
		return interfaces.VolumeLocation{}, false, nil
	}
}

// probeEmbedded checks an HFS wrapper's MDB for an embedded HFS+ volume
// (spec.md §4.2): drEmbedSigWord 'H+'/'HX' translates to an absolute byte
// offset via drAlBlSt + drEmbedExtent.startBlock * drAlBlkSiz, both of
// which are measured from the wrapper volume's own sector 0 - not from
// wherever its MDB happened to be found. outer.StartByteOffset is that
// MDB's own location, which the standard HFS layout always places exactly
// types.HFSMasterDirectoryBlockOffset bytes into the wrapper volume, so
// that preamble is subtracted back out before applying the wrapper's
// allocation-block-relative offsets.
func probeEmbedded(device interfaces.BlockDeviceReader, outer interfaces.VolumeLocation) (interfaces.VolumeLocation, bool) {
	data, err := device.ReadAt(outer.StartByteOffset, types.HFSMasterDirectoryBlockSize)
	if err != nil {
		return interfaces.VolumeLocation{}, false
	}
	mdb, err := container.ParseMDB(data)
	if err != nil {
		return interfaces.VolumeLocation{}, false
	}
	sigWord, startBlock, blockCount := mdb.EmbeddedVolume()
	if sigWord != types.HFSPlusSigWord && sigWord != types.HFSXSigWord {
		return interfaces.VolumeLocation{}, false
	}
	wrapperBase := outer.StartByteOffset - types.HFSMasterDirectoryBlockOffset
	innerOffset := wrapperBase + int64(mdb.DrAlBlSt)*512 + int64(startBlock)*int64(mdb.DrAlBlkSiz)
	innerLength := int64(blockCount) * int64(mdb.DrAlBlkSiz)
	return interfaces.VolumeLocation{StartByteOffset: innerOffset, ByteLength: innerLength, Kind: types.VolumeKindHFSPlus}, true
}
