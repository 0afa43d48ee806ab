//go:build linux && cgo && (386 || amd64 || arm64)

package shlibs

import (
	"debug/elf"
	"iter"
	"math"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Library is one object mapped into the current process. A handle borrows
// the dynamic loader's own bookkeeping: it is valid only inside the visitor
// callback that received it, because the loader may unload the object the
// moment the callback returns. Snapshot copies everything out.
type Library struct {
	name string
	// base is the load address as a pointer, materialized on the C side so
	// no integer-to-pointer conversion happens in Go. Nil for fixed-position
	// executables mapped at address zero is fine: it only ever feeds
	// pointer arithmetic against stated virtual addresses.
	base    unsafe.Pointer
	headers []progHeader
}

// live returns the header table, panicking if the handle escaped its
// enumeration callback.
func (l *Library) live() []progHeader {
	if l.headers == nil {
		panic("shlibs: Library handle used outside its enumeration callback")
	}
	return l.headers
}

// expire cuts the handle off from the loader-owned header table. The
// enumerator calls it as soon as the visitor returns, so a retained handle
// fails deterministically instead of reading unmapped memory.
func (l *Library) expire() {
	l.headers = nil
	l.base = nil
}

// Name returns the path the loader reported for the object, or the current
// executable's path when the loader reported an empty name. May be empty if
// both lookups come up short.
func (l *Library) Name() string {
	l.live()
	return l.name
}

// Segments returns the library's segments in program-header table order.
// The sequence is lazy and may be ranged over more than once; each pass
// re-scans the fixed table.
func (l *Library) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		hdrs := l.live()
		for i := range hdrs {
			if !yield(Segment{hdr: &hdrs[i]}) {
				return
			}
		}
	}
}

// Bias returns the offset the loader applied to the library's stated
// virtual addresses: runtime address = Bias + SVMA. A base address beyond
// the signed pointer range violates a precondition that never holds on
// supported targets, so it panics rather than returning an error.
func (l *Library) Bias() Bias {
	l.live()
	addr := uintptr(l.base)
	if uint64(addr) > math.MaxInt {
		panic("shlibs: library base address exceeds the signed pointer range")
	}
	return Bias(addr)
}

// ID returns the library's GNU build id, or nil when it carries none. The
// first NT_GNU_BUILD_ID record across the NOTE segments wins; NOTE segments
// with a non-standard alignment are skipped, not an error.
func (l *Library) ID() BuildID {
	l.live()
	for seg := range l.Segments() {
		if seg.Type() != elf.PT_NOTE {
			continue
		}
		align, ok := normalizeNoteAlign(uint64(seg.hdr.Align))
		if !ok {
			continue
		}
		// Note bytes are read from the live image at the segment's biased
		// virtual address. Loaders map notes by p_vaddr, which also covers
		// fixed-position executables, where the base is zero and p_offset
		// would point into unmapped low memory.
		window := unsafe.Slice((*byte)(unsafe.Add(l.base, uintptr(seg.hdr.Vaddr))), int(seg.hdr.Filesz))
		if desc, ok := findBuildID(window, align); ok {
			return BuildID(append([]byte(nil), desc...))
		}
	}
	return nil
}

// Snapshot copies the library's name, bias, build id, and segment table out
// of loader-owned memory so they can outlive the enumeration callback.
func (l *Library) Snapshot() LibraryInfo {
	info := LibraryInfo{
		Name:    l.Name(),
		Bias:    l.Bias(),
		BuildID: l.ID(),
	}
	for seg := range l.Segments() {
		info.Segments = append(info.Segments, SegmentInfo{
			Type:   seg.Type(),
			Name:   seg.Name(),
			IsCode: seg.IsCode(),
			SVMA:   seg.StatedVirtualMemoryAddress(),
			Len:    seg.Len(),
		})
	}
	return info
}

// executablePath resolves /proc/self/exe for the name fallback. Best
// effort: any failure yields "".
func executablePath() string {
	buf := make([]byte, 256)
	for {
		n, err := unix.Readlink("/proc/self/exe", buf)
		if err != nil {
			return ""
		}
		if n < len(buf) {
			return string(buf[:n])
		}
		buf = make([]byte, len(buf)*2)
	}
}
