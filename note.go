package shlibs

import (
	"encoding/binary"
	"iter"
)

// ELF note records use a fixed 12-byte header (namesz, descsz, type; all
// 32-bit) regardless of the platform's pointer width. 64-bit note layouts
// exist on paper but have not been observed from real linkers, so they are
// intentionally not handled here.
const noteHeaderSize = 12

// NT_GNU_BUILD_ID; debug/elf does not export note types for program headers.
const ntGNUBuildID = 3

// noteRecord is one vendor-defined metadata record inside a NOTE segment.
// Name and Desc alias the window they were parsed from.
type noteRecord struct {
	Type uint32
	Name []byte
	Desc []byte
}

// parseNotes lazily walks the note records in window, a raw view of a NOTE
// segment's bytes, with name and descriptor each padded to align. The
// geometry is trusted as reported by the loader; a record that would overrun
// the window ends the walk.
func parseNotes(window []byte, align int) iter.Seq[noteRecord] {
	return func(yield func(noteRecord) bool) {
		off := 0
		for off+noteHeaderSize <= len(window) {
			namesz := int(binary.NativeEndian.Uint32(window[off:]))
			descsz := int(binary.NativeEndian.Uint32(window[off+4:]))
			typ := binary.NativeEndian.Uint32(window[off+8:])
			off += noteHeaderSize

			nameEnd := off + namesz
			if nameEnd < off || nameEnd > len(window) {
				return
			}
			name := window[off:nameEnd]
			off = alignUp(nameEnd, align)

			descEnd := off + descsz
			if descEnd < off || descEnd > len(window) {
				return
			}
			desc := window[off:descEnd]
			off = alignUp(descEnd, align)

			if !yield(noteRecord{Type: typ, Name: name, Desc: desc}) {
				return
			}
		}
	}
}

// findBuildID returns the descriptor of the first NT_GNU_BUILD_ID record in
// window. The returned bytes alias the window.
func findBuildID(window []byte, align int) ([]byte, bool) {
	for rec := range parseNotes(window, align) {
		if rec.Type == ntGNUBuildID {
			return rec.Desc, true
		}
	}
	return nil, false
}

// normalizeNoteAlign applies the readelf convention for note alignment:
// values below 4 are treated as 4, and anything other than 4 or 8 marks the
// segment as non-standard, to be skipped rather than parsed.
func normalizeNoteAlign(align uint64) (int, bool) {
	switch {
	case align < 4:
		return 4, true
	case align == 4 || align == 8:
		return int(align), true
	default:
		return 0, false
	}
}

func alignUp(n, align int) int {
	if rem := n % align; rem != 0 {
		n += align - rem
	}
	return n
}
