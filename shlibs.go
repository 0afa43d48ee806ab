// Package shlibs discovers the shared libraries (and the executable itself)
// currently mapped into the process, exposes each object's loaded segments,
// and extracts the GNU build id used for symbol resolution and crash-report
// matching.
//
// Everything handed to a Visitor borrows the dynamic loader's own
// bookkeeping and is valid only until the visitor returns; use Snapshot to
// keep anything beyond that window.
package shlibs

import "encoding/hex"

// IterationControl tells Each whether to keep walking after a visit.
type IterationControl int

const (
	// Continue proceeds to the next mapped object.
	Continue IterationControl = iota
	// Break stops enumeration after the current object.
	Break
)

// Visitor observes one mapped object per call.
type Visitor func(*Library) IterationControl

// BuildID is the GNU build id of a mapped object: an opaque variable-length
// byte sequence assigned at link time, stable for a given on-disk image.
type BuildID []byte

// String returns the conventional lowercase hex form.
func (id BuildID) String() string { return hex.EncodeToString(id) }

// SVMA is a stated virtual memory address: the address recorded in the
// binary at link time, before the load bias is applied.
type SVMA uintptr

// Bias is the signed offset the loader applied when mapping a library:
// runtime address = Bias + SVMA.
type Bias int
