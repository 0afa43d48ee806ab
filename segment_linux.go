//go:build linux && cgo && (386 || amd64 || arm64)

package shlibs

import "debug/elf"

// PT_NUM, absent from debug/elf.
const ptNum = elf.ProgType(8)

// Segment is a read-only view of one program-header entry. It shares the
// loader-owned header table of the Library it came from and is valid for
// the same window.
type Segment struct {
	hdr *progHeader
}

// Type returns the raw segment type code.
func (s Segment) Type() elf.ProgType { return elf.ProgType(s.hdr.Type) }

// Name returns the canonical short label for the segment's type code.
func (s Segment) Name() string {
	switch s.Type() {
	case elf.PT_NULL:
		return "NULL"
	case elf.PT_LOAD:
		return "LOAD"
	case elf.PT_DYNAMIC:
		return "DYNAMIC"
	case elf.PT_INTERP:
		return "INTERP"
	case elf.PT_NOTE:
		return "NOTE"
	case elf.PT_SHLIB:
		return "SHLIB"
	case elf.PT_PHDR:
		return "PHDR"
	case elf.PT_TLS:
		return "TLS"
	case ptNum:
		return "NUM"
	case elf.PT_LOOS:
		return "LOOS"
	case elf.PT_GNU_EH_FRAME:
		return "GNU_EH_FRAME"
	case elf.PT_GNU_STACK:
		return "GNU_STACK"
	case elf.PT_GNU_RELRO:
		return "GNU_RELRO"
	default:
		return "(unknown segment type)"
	}
}

// IsCode reports whether the segment is loadable executable code.
func (s Segment) IsCode() bool {
	return elf.ProgType(s.hdr.Type) == elf.PT_LOAD && elf.ProgFlag(s.hdr.Flags)&elf.PF_X != 0
}

// StatedVirtualMemoryAddress returns the link-time virtual address, before
// the load bias is applied.
func (s Segment) StatedVirtualMemoryAddress() SVMA { return SVMA(s.hdr.Vaddr) }

// Len returns the in-memory size of the segment. It may exceed the on-disk
// size; the loader zero-fills the difference.
func (s Segment) Len() uintptr { return uintptr(s.hdr.Memsz) }
