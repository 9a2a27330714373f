// Package services is the application-layer wiring between the CLI (cmd/)
// and the core HFS/HFS+ reader (internal/*): it owns device lifetime and
// formats the core's structured results for presentation.
package services

import (
	"fmt"
	"strings"

	device "github.com/hfsreader/hfsreader/internal/disk"
	"github.com/hfsreader/hfsreader/internal/hfserr"
	"github.com/hfsreader/hfsreader/internal/interfaces"
	catalogmw "github.com/hfsreader/hfsreader/internal/middleware/catalog"
	hfscore "github.com/hfsreader/hfsreader/internal/services"
	"github.com/hfsreader/hfsreader/internal/types"
)

// hfsOrchestrator implements interfaces.Orchestrator (C10), composing the
// volume probe (C4), per-volume mount (C5-C9), and path parser (S6) into
// the three operator-facing actions spec.md §4.9 names.
type hfsOrchestrator struct {
	pathParser interfaces.PathParser
}

// NewOrchestrator builds the default Orchestrator.
func NewOrchestrator() interfaces.Orchestrator {
	return &hfsOrchestrator{pathParser: catalogmw.NewPathParser()}
}

// openAndProbe opens devicePath and probes it for volumes, returning the
// raw (unscoped) device and the locations found. Callers must Close the
// returned device once done with it and any volumes mounted on it.
func openAndProbe(devicePath string) (interfaces.BlockDeviceReader, []interfaces.VolumeLocation, error) {
	imgConfig, err := device.LoadImageConfig()
	if err != nil {
		return nil, nil, err
	}
	img, err := device.Open(devicePath, imgConfig)
	if err != nil {
		return nil, nil, err
	}
	raw, err := hfscore.NewBlockDeviceReaderFromSource(img, uint64(img.Size()), 0)
	if err != nil {
		return nil, nil, err
	}
	probe := hfscore.NewVolumeProbe()
	locations, err := probe.Probe(raw)
	if err != nil {
		raw.Close()
		return nil, nil, err
	}
	if len(locations) == 0 {
		raw.Close()
		return nil, nil, fmt.Errorf("no HFS or HFS+ volume found on %s", devicePath)
	}
	return raw, locations, nil
}

// Analyze opens device, probes it, and for every volume found loads the
// header and catalog and reports structural diagnostics (spec.md §4.9).
func (o *hfsOrchestrator) Analyze(devicePath string) (interfaces.AnalyzeReport, error) {
	raw, locations, err := openAndProbe(devicePath)
	if err != nil {
		return interfaces.AnalyzeReport{}, err
	}
	defer raw.Close()

	report := interfaces.AnalyzeReport{Volumes: make([]interfaces.VolumeAnalysis, 0, len(locations))}
	for _, loc := range locations {
		mounted, err := hfscore.MountVolume(raw, loc)
		if err != nil {
			report.Volumes = append(report.Volumes, interfaces.VolumeAnalysis{
				Kind:        loc.Kind.String(),
				StartOffset: loc.StartByteOffset,
				Diagnostics: []interfaces.Diagnostic{{Check: "mount", Passed: false, Detail: err.Error()}},
			})
			continue
		}

		count := 0
		walkErr := mounted.Walker.WalkAll(func(interfaces.DehydratedItem) (bool, error) {
			count++
			return false, nil
		})
		diagnostics := mounted.Header.Diagnostics()
		if walkErr != nil {
			diagnostics = append(diagnostics, interfaces.Diagnostic{Check: "catalog walk", Passed: false, Detail: walkErr.Error()})
		}

		report.Volumes = append(report.Volumes, interfaces.VolumeAnalysis{
			Kind:        loc.Kind.String(),
			StartOffset: loc.StartByteOffset,
			Diagnostics: diagnostics,
			RecordCount: count,
		})
		mounted.Close()
	}
	return report, nil
}

// List walks volumeIndex's catalog in key order and renders one line per
// record, indented by its path depth (spec.md §4.9).
func (o *hfsOrchestrator) List(devicePath string, volumeIndex int) (interfaces.ListReport, error) {
	raw, locations, err := openAndProbe(devicePath)
	if err != nil {
		return interfaces.ListReport{}, err
	}
	defer raw.Close()

	if volumeIndex < 0 || volumeIndex >= len(locations) {
		return interfaces.ListReport{}, fmt.Errorf("volume index %d out of range (found %d)", volumeIndex, len(locations))
	}
	mounted, err := hfscore.MountVolume(raw, locations[volumeIndex])
	if err != nil {
		return interfaces.ListReport{}, err
	}
	defer mounted.Close()

	var lines []string
	err = mounted.Walker.WalkAll(func(item interfaces.DehydratedItem) (bool, error) {
		path, err := mounted.Walker.PathOf(item.ParentCNID)
		if err != nil {
			return false, err
		}
		depth := len(path)
		kind := "F"
		if item.IsFolder {
			kind = "D"
		}
		lines = append(lines, fmt.Sprintf("%s[%s] %s", strings.Repeat("  ", depth), kind, item.Name))
		return false, nil
	})
	if err != nil {
		return interfaces.ListReport{}, err
	}
	return interfaces.ListReport{Lines: lines}, nil
}

// Extract resolves quarry (a TN1041 path or bare name) against
// volumeIndex's catalog and hands the matched file's forks to dest
// (spec.md §4.9, §6 S6).
func (o *hfsOrchestrator) Extract(devicePath string, volumeIndex int, quarry string, dest interfaces.ForkWriter) error {
	raw, locations, err := openAndProbe(devicePath)
	if err != nil {
		return err
	}
	defer raw.Close()

	if volumeIndex < 0 || volumeIndex >= len(locations) {
		return fmt.Errorf("volume index %d out of range (found %d)", volumeIndex, len(locations))
	}
	mounted, err := hfscore.MountVolume(raw, locations[volumeIndex])
	if err != nil {
		return err
	}
	defer mounted.Close()

	item, err := o.resolveQuarry(mounted, quarry)
	if err != nil {
		return err
	}
	if item.IsFolder {
		return fmt.Errorf("%q is a folder, not a file", quarry)
	}

	if item.DataFork.LogicalSize > 0 || item.DataFork.TotalBlocks > 0 {
		if err := copyFork(mounted, item, false, dest); err != nil {
			return err
		}
	}
	if item.ResourceFork.LogicalSize > 0 || item.ResourceFork.TotalBlocks > 0 {
		if err := copyFork(mounted, item, true, dest); err != nil {
			return err
		}
	}
	return nil
}

func copyFork(mounted *hfscore.MountedVolume, item interfaces.DehydratedItem, resource bool, dest interfaces.ForkWriter) error {
	fork, err := mounted.OpenFork(item, resource)
	if err != nil {
		return err
	}
	data, err := fork.ReadAt(0, int(fork.LogicalSize()))
	if err != nil {
		return err
	}
	return dest.WriteFork(item.Name, resource, data)
}

// resolveQuarry walks quarry's path components from the volume root,
// following an empty component (".." per TN1041) by climbing to the
// current item's parent CNID, per spec.md §6 S6. A quarry with a single
// component and no colons is tried as a bare-name lookup across the whole
// catalog instead, matching spec.md §4.9's "match by either bare name or
// full path".
func (o *hfsOrchestrator) resolveQuarry(mounted *hfscore.MountedVolume, quarry string) (interfaces.DehydratedItem, error) {
	parsed, err := o.pathParser.Parse(quarry)
	if err != nil {
		return interfaces.DehydratedItem{}, err
	}

	if len(parsed.Components) == 1 && !strings.Contains(quarry, ":") {
		return o.findByBareName(mounted, parsed.Components[0])
	}

	current := types.CNIDRootFolder
	var item interfaces.DehydratedItem
	haveItem := false
	for _, c := range parsed.Components {
		if c == "" {
			if !haveItem {
				return interfaces.DehydratedItem{}, fmt.Errorf("%q: %w", quarry, hfserr.New(hfserr.PathSyntax, "cannot climb above volume root"))
			}
			current = item.ParentCNID
			haveItem = false
			continue
		}
		next, ok, err := mounted.Walker.Lookup(current, c)
		if err != nil {
			return interfaces.DehydratedItem{}, err
		}
		if !ok {
			return interfaces.DehydratedItem{}, fmt.Errorf("%q: no such file or folder: %q", quarry, c)
		}
		item, current, haveItem = next, next.CNID, true
	}
	if !haveItem {
		return interfaces.DehydratedItem{}, fmt.Errorf("%q: resolves to a folder, not a file", quarry)
	}
	return item, nil
}

// findByBareName searches the whole catalog for the first item whose name
// matches, used when quarry has no colons (spec.md §4.9's "match by either
// bare name or full path").
func (o *hfsOrchestrator) findByBareName(mounted *hfscore.MountedVolume, name string) (interfaces.DehydratedItem, error) {
	var match interfaces.DehydratedItem
	found := false
	err := mounted.Walker.WalkAll(func(item interfaces.DehydratedItem) (bool, error) {
		if item.Name == name {
			match = item
			found = true
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return interfaces.DehydratedItem{}, err
	}
	if !found {
		return interfaces.DehydratedItem{}, fmt.Errorf("no file or folder named %q found", name)
	}
	return match, nil
}
