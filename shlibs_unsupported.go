//go:build !linux || !cgo || (!386 && !amd64 && !arm64)

package shlibs

import (
	"debug/elf"
	"errors"
	"iter"
)

var errUnsupported = errors.New("shlibs: shared library enumeration requires linux with cgo")

type Library struct{}

type Segment struct{}

func Each(visitor Visitor) error {
	_ = visitor
	return errUnsupported
}

func (*Library) Name() string { return "" }

func (*Library) Segments() iter.Seq[Segment] {
	return func(func(Segment) bool) {}
}

func (*Library) Bias() Bias { return 0 }

func (*Library) ID() BuildID { return nil }

func (*Library) Snapshot() LibraryInfo { return LibraryInfo{} }

func (Segment) Type() elf.ProgType { return elf.PT_NULL }

func (Segment) Name() string { return "NULL" }

func (Segment) IsCode() bool { return false }

func (Segment) StatedVirtualMemoryAddress() SVMA { return 0 }

func (Segment) Len() uintptr { return 0 }
