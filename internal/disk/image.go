// Package device opens the raw block device or disk image an HFS/HFS+
// volume lives on, locating a GPT-wrapped Apple_HFS partition when one is
// present (spec.md §6's "path to a block device or disk image").
package device

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"golang.org/x/sys/unix"

	"github.com/hfsreader/hfsreader/internal/types"
)

// hfsGPTPartitionTypeGUID identifies Apple_HFS partitions in a GPT
// partition table (little-endian byte order, as GPT stores it).
var hfsGPTPartitionTypeGUID = []byte{
	0x00, 0x53, 0x46, 0x48, 0x00, 0x00, 0xAA, 0x11,
	0xAA, 0x11, 0x00, 0x30, 0x65, 0x43, 0xEC, 0xAC,
}

// Image provides io.ReaderAt-shaped access to an HFS/HFS+ volume's bytes,
// whether the source is a raw device, a flat disk image, or a GPT-
// partitioned image containing an Apple_HFS partition alongside others.
type Image struct {
	file   *os.File
	size   int64
	offset int64 // byte offset of the HFS/HFS+ region within the file
	locked bool
}

// ImageConfig configures image opening via Viper (spec.md ambient config
// stack).
type ImageConfig struct {
	AutoDetectPartition bool  `mapstructure:"auto_detect_partition"`
	DefaultOffset       int64 `mapstructure:"default_offset"`
	ExclusiveLock       bool  `mapstructure:"exclusive_lock"`
}

// LoadImageConfig loads ImageConfig using Viper, defaulting to partition
// auto-detection and an advisory exclusive lock on the opened file.
func LoadImageConfig() (*ImageConfig, error) {
	viper.SetConfigName("hfs-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("../..")
	viper.AddConfigPath("$HOME/.hfsreader")
	viper.AddConfigPath("/etc/hfsreader")

	viper.SetDefault("auto_detect_partition", true)
	viper.SetDefault("default_offset", 0)
	viper.SetDefault("exclusive_lock", true)

	viper.SetEnvPrefix("HFSREADER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config ImageConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Open opens path and, per config, locates an Apple_HFS GPT partition
// within it or defaults to treating the whole file as the volume region.
// An exclusive advisory lock (flock) is taken on the underlying file
// descriptor when config.ExclusiveLock is set, since this reader assumes
// the device does not change under it for the lifetime of the process
// (spec.md §5's "Shared resources").
func Open(path string, config *ImageConfig) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open device or image: %w", err)
	}

	locked := false
	if config.ExclusiveLock {
		if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to acquire exclusive lock on %s: %w", path, err)
		}
		locked = true
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat device or image: %w", err)
	}

	img := &Image{file: file, size: stat.Size(), locked: locked}

	// A genuine macOS .dmg carries a UDIF ('koly') trailer; when present and
	// uncompressed, its data region replaces the raw file as the search
	// space for a GPT/Apple_HFS partition (or the bare volume itself).
	if trailer, ok := detectUDIFTrailer(file, stat.Size()); ok {
		img.size = int64(trailer.dataOffset) + int64(trailer.dataSize)
		img.offset = int64(trailer.dataOffset)
	}

	if config.AutoDetectPartition {
		if offset, found := img.detectHFSPartitionOffset(); found {
			img.offset = offset
		} else if img.offset == 0 {
			img.offset = config.DefaultOffset
		}
	} else if img.offset == 0 {
		img.offset = config.DefaultOffset
	}

	return img, nil
}

// detectHFSPartitionOffset looks for a GPT partition table and, within it,
// an Apple_HFS partition; returns false rather than erroring when none is
// found, since a bare volume image (no partition table at all) is just as
// valid an input (spec.md §4.2 probes several offsets for exactly this
// reason).
// detectHFSPartitionOffset scans for a GPT partition table starting at
// img.offset (the region a UDIF trailer, if any, already narrowed to) and
// returns an offset absolute to the file, not relative to that region.
func (img *Image) detectHFSPartitionOffset() (int64, bool) {
	base := img.offset
	buf := make([]byte, types.GPTEntriesStartOffset+128*types.GPTEntrySize)
	n, err := img.file.ReadAt(buf, base)
	if err != nil && n == 0 {
		return 0, false
	}
	buf = buf[:n]

	if len(buf) < types.GPTHeaderOffset+8 {
		return 0, false
	}
	if string(buf[types.GPTHeaderOffset:types.GPTHeaderOffset+8]) != "EFI PART" {
		return 0, false
	}

	for entryIdx := 0; entryIdx < 128; entryIdx++ {
		entryOffset := types.GPTEntriesStartOffset + entryIdx*types.GPTEntrySize
		if entryOffset+types.GPTEntrySize > len(buf) {
			break
		}
		entry := buf[entryOffset : entryOffset+types.GPTEntrySize]
		if !bytes.Equal(entry[0:16], hfsGPTPartitionTypeGUID) {
			continue
		}
		startLBA := binary.LittleEndian.Uint64(entry[32:40])
		return base + int64(startLBA)*512, true
	}
	return 0, false
}

// ReadAt implements io.ReaderAt relative to the detected volume region.
func (img *Image) ReadAt(p []byte, off int64) (int, error) {
	return img.file.ReadAt(p, img.offset+off)
}

// Size returns the size of the volume region (file size minus any leading
// partition-table offset).
func (img *Image) Size() int64 {
	return img.size - img.offset
}

// Close releases the advisory lock, if held, and closes the file.
func (img *Image) Close() error {
	if img.file == nil {
		return nil
	}
	if img.locked {
		unix.Flock(int(img.file.Fd()), unix.LOCK_UN)
	}
	return img.file.Close()
}
