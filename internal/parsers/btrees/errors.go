package btrees

import "github.com/hfsreader/hfsreader/internal/hfserr"

var (
	errCorruptNode      = hfserr.New(hfserr.CorruptNode, "node invariant violated")
	errInvalidNodeIndex = hfserr.New(hfserr.InvalidNodeIndex, "index out of range")
)
