package shlibs

import (
	"debug/elf"
	"errors"
)

// ErrNotFound reports that no mapped library covers the requested address.
var ErrNotFound = errors.New("shlibs: no library contains the address")

// SegmentInfo is a copied-out description of one loaded segment.
type SegmentInfo struct {
	Type   elf.ProgType
	Name   string
	IsCode bool
	SVMA   SVMA
	Len    uintptr
}

// LibraryInfo is a durable copy of everything a Library handle exposes.
// Unlike the handle it stays valid after enumeration, though the addresses
// it records are only meaningful while the object stays mapped.
type LibraryInfo struct {
	Name     string
	Bias     Bias
	BuildID  BuildID
	Segments []SegmentInfo
}

// Libraries snapshots every object currently mapped into the process.
func Libraries() ([]LibraryInfo, error) {
	var infos []LibraryInfo
	err := Each(func(lib *Library) IterationControl {
		infos = append(infos, lib.Snapshot())
		return Continue
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// LibraryContaining snapshots the library one of whose LOAD segments covers
// addr at its biased runtime range. It returns ErrNotFound when no mapped
// object claims the address.
func LibraryContaining(addr uintptr) (LibraryInfo, error) {
	var (
		found LibraryInfo
		ok    bool
	)
	err := Each(func(lib *Library) IterationControl {
		info := lib.Snapshot()
		for _, seg := range info.Segments {
			if seg.Type != elf.PT_LOAD {
				continue
			}
			start := uintptr(int(info.Bias) + int(seg.SVMA))
			if addr >= start && addr-start < seg.Len {
				found, ok = info, true
				return Break
			}
		}
		return Continue
	})
	if err != nil {
		return LibraryInfo{}, err
	}
	if !ok {
		return LibraryInfo{}, ErrNotFound
	}
	return found, nil
}
