package types

// Signature words recognized by the volume probe (C4).
const (
	SigHFS     uint16 = HFSSigWord
	SigHFSPlus uint16 = HFSPlusSigWord
	SigHFSX    uint16 = HFSXSigWord
)

// VolumeKind distinguishes the two filesystem generations the core parses.
type VolumeKind uint8

const (
	VolumeKindHFS VolumeKind = iota
	VolumeKindHFSPlus
)

func (k VolumeKind) String() string {
	if k == VolumeKindHFSPlus {
		return "HFS+"
	}
	return "HFS"
}
