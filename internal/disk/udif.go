package device

import (
	"encoding/binary"
)

// udifTrailerSize is the fixed size of a UDIF ('koly') trailer, located in
// the last 512 bytes of a genuine macOS-created .dmg file.
const udifTrailerSize = 512

// udifSignature is 'koly', big-endian, at the start of the trailer.
const udifSignature uint32 = 0x6B6F6C79

// udifTrailer holds the fields of a UDIF trailer relevant to locating the
// uncompressed data region it wraps.
type udifTrailer struct {
	dataOffset uint64
	dataSize   uint64
}

// detectUDIFTrailer looks for a UDIF trailer in the last 512 bytes of the
// file. It recognizes the trailer but only resolves a usable data region for
// the uncompressed case (dataOffset/dataSize point directly at image bytes);
// a compressed or segmented UDIF image (BLKX run-length-encoded, bzip2 or
// zlib-backed) has no flat byte range to expose through io.ReaderAt and is
// left undetected here.
func detectUDIFTrailer(file interface {
	ReadAt(p []byte, off int64) (int, error)
}, fileSize int64) (udifTrailer, bool) {
	if fileSize < udifTrailerSize {
		return udifTrailer{}, false
	}
	trailer := make([]byte, udifTrailerSize)
	n, err := file.ReadAt(trailer, fileSize-udifTrailerSize)
	if err != nil || n < udifTrailerSize {
		return udifTrailer{}, false
	}
	if binary.BigEndian.Uint32(trailer[0:4]) != udifSignature {
		return udifTrailer{}, false
	}

	dataOffset := binary.BigEndian.Uint64(trailer[16:24])
	dataSize := binary.BigEndian.Uint64(trailer[24:32])
	if dataSize == 0 || int64(dataOffset)+int64(dataSize) > fileSize-udifTrailerSize {
		return udifTrailer{}, false
	}
	return udifTrailer{dataOffset: dataOffset, dataSize: dataSize}, true
}
