// Package catalog dispatches catalog B-tree records by type and walks the
// catalog tree to answer directory-listing, lookup, and path-reconstruction
// queries (spec.md §4.7, §4.6 directory enumeration, C9).
package catalog

import "github.com/hfsreader/hfsreader/internal/types"

type recordTypeInfo struct {
	name     string
	category string
}

// StaticRecordTypeResolver maps a catalog record's leading type field to a
// human-readable name and category, for diagnostics and the analyze report.
type StaticRecordTypeResolver struct {
	registry map[types.CatalogRecordType]recordTypeInfo
}

// NewStaticRecordTypeResolver builds a resolver covering the four catalog
// record types HFS/HFS+ define.
func NewStaticRecordTypeResolver() *StaticRecordTypeResolver {
	return &StaticRecordTypeResolver{
		registry: map[types.CatalogRecordType]recordTypeInfo{
			types.RecordTypeFolder:       {"Folder", "Directory Entry"},
			types.RecordTypeFile:         {"File", "Directory Entry"},
			types.RecordTypeFolderThread: {"Folder Thread", "Path Reconstruction"},
			types.RecordTypeFileThread:   {"File Thread", "Path Reconstruction"},
		},
	}
}

// ResolveType returns the human-readable name of a catalog record type.
func (r *StaticRecordTypeResolver) ResolveType(recordType types.CatalogRecordType) string {
	if info, ok := r.registry[recordType]; ok {
		return info.name
	}
	return "Unknown"
}

// SupportedRecordTypes lists every record type this resolver recognizes.
func (r *StaticRecordTypeResolver) SupportedRecordTypes() []types.CatalogRecordType {
	out := make([]types.CatalogRecordType, 0, len(r.registry))
	for t := range r.registry {
		out = append(out, t)
	}
	return out
}

// GetRecordTypeCategory returns the category a catalog record type
// belongs to (directory entry vs. path-reconstruction thread).
func (r *StaticRecordTypeResolver) GetRecordTypeCategory(recordType types.CatalogRecordType) string {
	if info, ok := r.registry[recordType]; ok {
		return info.category
	}
	return "Unknown"
}

// IsDirectoryEntry reports whether recordType is a folder or file record
// (as opposed to a thread record).
func IsDirectoryEntry(recordType types.CatalogRecordType) bool {
	return recordType == types.RecordTypeFolder || recordType == types.RecordTypeFile
}

// IsThread reports whether recordType is a folder-thread or file-thread
// record.
func IsThread(recordType types.CatalogRecordType) bool {
	return recordType == types.RecordTypeFolderThread || recordType == types.RecordTypeFileThread
}
