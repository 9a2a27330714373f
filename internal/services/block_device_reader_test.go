package services

import (
	"bytes"
	"io"
	"testing"
)

type fakeReaderAtCloser struct {
	data   []byte
	closed bool
}

func (f *fakeReaderAtCloser) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *fakeReaderAtCloser) Close() error {
	f.closed = true
	return nil
}

func TestBlockDeviceReaderFromSourceReadBlocks(t *testing.T) {
	data := make([]byte, 4*512)
	for i := range data {
		data[i] = byte(i % 256)
	}
	src := &fakeReaderAtCloser{data: data}

	r, err := NewBlockDeviceReaderFromSource(src, uint64(len(data)), 512)
	if err != nil {
		t.Fatalf("NewBlockDeviceReaderFromSource: %v", err)
	}
	defer r.Close()

	got, err := r.ReadBlocks(1, 2)
	if err != nil {
		t.Fatalf("ReadBlocks: %v", err)
	}
	want := data[512:1536]
	if !bytes.Equal(got, want) {
		t.Fatalf("ReadBlocks(1,2) mismatch")
	}
}

func TestBlockDeviceReaderFromSourceCachesBlocks(t *testing.T) {
	data := make([]byte, 2*512)
	src := &fakeReaderAtCloser{data: data}

	r, err := NewBlockDeviceReaderFromSource(src, uint64(len(data)), 512)
	if err != nil {
		t.Fatalf("NewBlockDeviceReaderFromSource: %v", err)
	}
	defer r.Close()

	if _, err := r.ReadBlocks(0, 1); err != nil {
		t.Fatalf("ReadBlocks: %v", err)
	}
	br := r.(*blockDeviceReader)
	if _, ok := br.blockCache[0]; !ok {
		t.Fatal("expected block 0 to be cached after read")
	}
}

func TestBlockDeviceReaderFromSourceReadAtBeyondSize(t *testing.T) {
	src := &fakeReaderAtCloser{data: make([]byte, 512)}
	r, err := NewBlockDeviceReaderFromSource(src, 512, 512)
	if err != nil {
		t.Fatalf("NewBlockDeviceReaderFromSource: %v", err)
	}
	defer r.Close()

	if _, err := r.ReadAt(1024, 10); err == nil {
		t.Fatal("expected error reading beyond device size")
	}
}

func TestBlockDeviceReaderFromSourceClosesSource(t *testing.T) {
	src := &fakeReaderAtCloser{data: make([]byte, 512)}
	r, err := NewBlockDeviceReaderFromSource(src, 512, 512)
	if err != nil {
		t.Fatalf("NewBlockDeviceReaderFromSource: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !src.closed {
		t.Fatal("expected underlying source to be closed")
	}
}
