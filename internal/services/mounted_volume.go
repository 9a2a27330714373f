package services

import (
	"github.com/hfsreader/hfsreader/internal/interfaces"
	catalogmw "github.com/hfsreader/hfsreader/internal/middleware/catalog"
	"github.com/hfsreader/hfsreader/internal/middleware/btrees"
	"github.com/hfsreader/hfsreader/internal/types"
)

// MountedVolume composes the per-volume wiring (C5-C9) the orchestrator
// (C10) drives: a volume header, its catalog walker, and the primitives
// needed to build a ForkReader for any file the catalog yields. Grounded
// on VolumeServiceImpl's resolve-then-expose-subsystems constructor shape,
// generalized from a single virtual-object resolution to the full
// HFS/HFS+ header+B-tree+catalog assembly.
type MountedVolume struct {
	Device interfaces.BlockDeviceReader
	Header interfaces.VolumeHeader
	Walker interfaces.CatalogWalker

	isHFSPlus bool
	overflow  interfaces.ExtentOverflowLookup
}

// MountVolume opens the volume at loc on rawDevice (the unscoped device
// the probe ran against) and assembles every subsystem needed to answer
// analyze/list/extract queries against it.
func MountVolume(rawDevice interfaces.BlockDeviceReader, loc interfaces.VolumeLocation) (*MountedVolume, error) {
	isHFSPlus := loc.Kind == types.VolumeKindHFSPlus

	var header interfaces.VolumeHeader
	var err error
	if isHFSPlus {
		header, err = NewVolumeHeaderHFSPlus(rawDevice, loc)
	} else {
		header, err = NewVolumeHeaderHFS(rawDevice, loc)
	}
	if err != nil {
		return nil, err
	}

	scoped, err := NewVolumeScopedReader(rawDevice, loc.StartByteOffset, header.AllocBlockSize())
	if err != nil {
		return nil, err
	}

	extentsFileReader, err := NewForkReader(scoped, header.ExtentsFork(), types.CNIDExtentsFile, byte(types.ForkTypeData), isHFSPlus, noOverflow{})
	if err != nil {
		return nil, err
	}
	extentsTree, err := NewBTreeFileReader(extentsFileReader)
	if err != nil {
		return nil, err
	}
	extentsNav := btrees.NewBTreeNavigator(extentsTree)
	extentsSearcher := btrees.NewBTreeSearcher(extentsNav)
	overflow := NewExtentOverflowLookup(extentsSearcher, isHFSPlus)

	catalogForkReader, err := NewForkReader(scoped, header.CatalogFork(), types.CNIDCatalogFile, byte(types.ForkTypeData), isHFSPlus, overflow)
	if err != nil {
		return nil, err
	}
	catalogTree, err := NewBTreeFileReader(catalogForkReader)
	if err != nil {
		return nil, err
	}
	catalogNav := btrees.NewBTreeNavigator(catalogTree)
	catalogSearcher := btrees.NewBTreeSearcher(catalogNav)
	catalogTraverser := btrees.NewBTreeTraverser(catalogTree, catalogNav)

	decoder := catalogmw.NewTextDecoder()
	walker := catalogmw.NewCatalogWalker(catalogSearcher, catalogNav, catalogTraverser, isHFSPlus, decoder)

	return &MountedVolume{
		Device:    scoped,
		Header:    header,
		Walker:    walker,
		isHFSPlus: isHFSPlus,
		overflow:  overflow,
	}, nil
}

// OpenFork builds a ForkReader for one of item's forks.
func (v *MountedVolume) OpenFork(item interfaces.DehydratedItem, resource bool) (interfaces.ForkReader, error) {
	fork := item.DataFork
	forkType := types.ForkTypeData
	if resource {
		fork = item.ResourceFork
		forkType = types.ForkTypeResource
	}
	return NewForkReader(v.Device, fork, item.CNID, byte(forkType), v.isHFSPlus, v.overflow)
}

func (v *MountedVolume) Close() error {
	return v.Device.Close()
}
