package services

import (
	"fmt"
	"io"

	"github.com/hfsreader/hfsreader/internal/interfaces"
)

// ForkStream adapts a ForkReader to io.Reader/io.Seeker, the shape
// extract's host-side copy loop consumes. Grounded on the teacher's
// FileReaderAdapter/FileSeekerAdapter (offset-tracking wrapper around a
// random-access fork accessor), merged into one type since ForkReader's
// ReadAt already makes the reader/seeker split unnecessary.
type ForkStream struct {
	fork   interfaces.ForkReader
	offset int64
}

// NewForkStream wraps fork for sequential or seeked reading.
func NewForkStream(fork interfaces.ForkReader) *ForkStream {
	return &ForkStream{fork: fork}
}

func (s *ForkStream) Read(p []byte) (int, error) {
	if s.offset >= s.fork.LogicalSize() {
		return 0, io.EOF
	}
	toRead := int64(len(p))
	if remaining := s.fork.LogicalSize() - s.offset; toRead > remaining {
		toRead = remaining
	}
	if toRead == 0 {
		return 0, io.EOF
	}
	data, err := s.fork.ReadAt(s.offset, int(toRead))
	if err != nil {
		return 0, err
	}
	n := copy(p, data)
	s.offset += int64(n)
	return n, nil
}

func (s *ForkStream) Seek(offset int64, whence int) (int64, error) {
	var newOffset int64
	switch whence {
	case io.SeekStart:
		newOffset = offset
	case io.SeekCurrent:
		newOffset = s.offset + offset
	case io.SeekEnd:
		newOffset = s.fork.LogicalSize() + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if newOffset < 0 {
		return 0, fmt.Errorf("negative seek offset: %d", newOffset)
	}
	s.offset = newOffset
	return newOffset, nil
}
