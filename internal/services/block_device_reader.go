package services

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/interfaces"
)

// readerAtCloser is the minimal shape blockDeviceReader needs from its
// underlying source: a plain *os.File, or internal/disk.Image when the
// source is a GPT-partitioned disk image.
type readerAtCloser interface {
	io.ReaderAt
	Close() error
}

// blockDeviceReader is a random-access reader over a seekable device or
// disk image, with a bounded allocation-block cache (spec.md §4.1, C2).
// startOffset shifts ReadBlocks (but not ReadAt) to a volume's allocation
// block 0, per interfaces.BlockDeviceReader's contract.
type blockDeviceReader struct {
	file           readerAtCloser
	ownsFile       bool
	startOffset    int64
	size           uint64
	allocBlockSize uint32

	mu               sync.RWMutex
	blockCache       map[uint64][]byte
	maxCacheBytes    int
	currentCacheSize int
}

// NewBlockDeviceReader opens path and wraps it with a cache sized to
// allocBlockSize-byte blocks. allocBlockSize is set once the volume
// header (C5) is known; callers probing for a volume (C4) first open with
// a conservative 512-byte block size, then construct a second reader once
// the true allocation block size is known.
func NewBlockDeviceReader(path string, allocBlockSize uint32) (interfaces.BlockDeviceReader, error) {
	if path == "" {
		return nil, hfserr.New(hfserr.DeviceIo, "device path is empty")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, hfserr.Wrap(hfserr.DeviceIo, "open device", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, hfserr.Wrap(hfserr.DeviceIo, "stat device", err)
	}
	if allocBlockSize == 0 {
		allocBlockSize = 512
	}
	return &blockDeviceReader{
		file:           file,
		ownsFile:       true,
		size:           uint64(info.Size()),
		allocBlockSize: allocBlockSize,
		blockCache:     make(map[uint64][]byte),
		maxCacheBytes:  50 * 1024 * 1024,
	}, nil
}

// NewBlockDeviceReaderFromSource wraps an already-open source (e.g.
// internal/disk.Image, once it has located a GPT Apple_HFS partition)
// instead of opening a path itself. The returned reader owns source and
// closes it.
func NewBlockDeviceReaderFromSource(source readerAtCloser, size uint64, allocBlockSize uint32) (interfaces.BlockDeviceReader, error) {
	if allocBlockSize == 0 {
		allocBlockSize = 512
	}
	return &blockDeviceReader{
		file:           source,
		ownsFile:       true,
		size:           size,
		allocBlockSize: allocBlockSize,
		blockCache:     make(map[uint64][]byte),
		maxCacheBytes:  50 * 1024 * 1024,
	}, nil
}

// NewVolumeScopedReader returns a BlockDeviceReader over the same open
// file as parent, with ReadBlocks shifted to start at startOffset and
// sized to volumeAllocBlockSize — used once a volume's location (C4) and
// allocation block size (C5) are known. The returned reader shares the
// parent's file handle; Close on either closes the shared handle only
// once a caller designates the owner (the orchestrator closes the
// original device, never a scoped one).
func NewVolumeScopedReader(parent interfaces.BlockDeviceReader, startOffset int64, volumeAllocBlockSize uint32) (interfaces.BlockDeviceReader, error) {
	base, ok := parent.(*blockDeviceReader)
	if !ok {
		return nil, hfserr.New(hfserr.DeviceIo, "parent reader is not a scopable block device reader")
	}
	return &blockDeviceReader{
		file:           base.file,
		ownsFile:       false,
		startOffset:    startOffset,
		size:           base.size - uint64(startOffset),
		allocBlockSize: volumeAllocBlockSize,
		blockCache:     make(map[uint64][]byte),
		maxCacheBytes:  50 * 1024 * 1024,
	}, nil
}

func (r *blockDeviceReader) ReadBlocks(firstAllocBlock uint64, count uint64) ([]byte, error) {
	if count == 0 {
		return []byte{}, nil
	}
	out := make([]byte, 0, count*uint64(r.allocBlockSize))
	for i := uint64(0); i < count; i++ {
		block, err := r.readOneBlock(firstAllocBlock + i)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}

func (r *blockDeviceReader) readOneBlock(blockNumber uint64) ([]byte, error) {
	r.mu.RLock()
	if cached, ok := r.blockCache[blockNumber]; ok {
		r.mu.RUnlock()
		return append([]byte(nil), cached...), nil
	}
	r.mu.RUnlock()

	offset := int64(blockNumber) * int64(r.allocBlockSize)
	if uint64(offset) >= r.size {
		return nil, hfserr.New(hfserr.DeviceIo, fmt.Sprintf("allocation block %d is beyond device size", blockNumber))
	}
	block := make([]byte, r.allocBlockSize)
	n, err := r.file.ReadAt(block, r.startOffset+offset)
	if err != nil && err != io.EOF {
		return nil, hfserr.Wrap(hfserr.DeviceIo, fmt.Sprintf("read allocation block %d", blockNumber), err)
	}
	if n < int(r.allocBlockSize) {
		return nil, hfserr.New(hfserr.DeviceIo, fmt.Sprintf("short read of allocation block %d: got %d of %d bytes", blockNumber, n, r.allocBlockSize))
	}

	r.mu.Lock()
	r.cacheBlock(blockNumber, block)
	r.mu.Unlock()
	return append([]byte(nil), block...), nil
}

// cacheBlock adds a block to the cache, resetting it wholesale once the
// size budget is exceeded rather than evicting individually (mu held).
func (r *blockDeviceReader) cacheBlock(blockNumber uint64, data []byte) {
	if r.currentCacheSize+len(data) > r.maxCacheBytes {
		r.blockCache = make(map[uint64][]byte)
		r.currentCacheSize = 0
	}
	r.blockCache[blockNumber] = append([]byte(nil), data...)
	r.currentCacheSize += len(data)
}

func (r *blockDeviceReader) ReadAt(offset int64, length int) ([]byte, error) {
	if offset < 0 || uint64(offset) >= r.size {
		return nil, hfserr.New(hfserr.DeviceIo, fmt.Sprintf("offset %d is beyond device size", offset))
	}
	buf := make([]byte, length)
	n, err := r.file.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, hfserr.Wrap(hfserr.DeviceIo, fmt.Sprintf("read at offset %d", offset), err)
	}
	if n < length {
		return nil, hfserr.New(hfserr.DeviceIo, fmt.Sprintf("short read at offset %d: got %d of %d bytes", offset, n, length))
	}
	return buf, nil
}

func (r *blockDeviceReader) AllocBlockSize() uint32 { return r.allocBlockSize }
func (r *blockDeviceReader) Size() uint64           { return r.size }

func (r *blockDeviceReader) Close() error {
	if r.file != nil && r.ownsFile {
		return r.file.Close()
	}
	return nil
}
