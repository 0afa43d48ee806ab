package shlibs

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func appendNote(buf []byte, align int, name string, typ uint32, desc []byte) []byte {
	var hdr [noteHeaderSize]byte
	binary.NativeEndian.PutUint32(hdr[0:], uint32(len(name)))
	binary.NativeEndian.PutUint32(hdr[4:], uint32(len(desc)))
	binary.NativeEndian.PutUint32(hdr[8:], typ)
	buf = append(buf, hdr[:]...)
	buf = append(buf, name...)
	buf = padTo(buf, align)
	buf = append(buf, desc...)
	return padTo(buf, align)
}

func padTo(buf []byte, align int) []byte {
	for len(buf)%align != 0 {
		buf = append(buf, 0)
	}
	return buf
}

func TestFindBuildID(t *testing.T) {
	id := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}

	// ABI-tag note first, build id second, the usual glibc layout.
	window := appendNote(nil, 4, "GNU\x00", 1, make([]byte, 16))
	window = appendNote(window, 4, "GNU\x00", ntGNUBuildID, id)

	got, ok := findBuildID(window, 4)
	if !ok {
		t.Fatalf("findBuildID found nothing")
	}
	if !bytes.Equal(got, id) {
		t.Fatalf("findBuildID = %x, want %x", got, id)
	}
}

func TestFindBuildIDFirstRecordWins(t *testing.T) {
	first := []byte{1, 1, 1, 1, 1, 1, 1, 1}
	second := []byte{2, 2, 2, 2, 2, 2, 2, 2}

	window := appendNote(nil, 4, "GNU\x00", ntGNUBuildID, first)
	window = appendNote(window, 4, "GNU\x00", ntGNUBuildID, second)

	got, ok := findBuildID(window, 4)
	if !ok {
		t.Fatalf("findBuildID found nothing")
	}
	if !bytes.Equal(got, first) {
		t.Fatalf("findBuildID = %x, want first record %x", got, first)
	}
}

func TestFindBuildIDAbsent(t *testing.T) {
	window := appendNote(nil, 4, "GNU\x00", 1, make([]byte, 16))
	if got, ok := findBuildID(window, 4); ok {
		t.Fatalf("findBuildID = %x, want none", got)
	}
}

func TestParseNotesAlign8(t *testing.T) {
	id := []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee}
	window := appendNote(nil, 8, "CORE\x00", 2, []byte{9, 9, 9})
	window = appendNote(window, 8, "GNU\x00", ntGNUBuildID, id)

	var types []uint32
	for rec := range parseNotes(window, 8) {
		types = append(types, rec.Type)
	}
	if len(types) != 2 || types[0] != 2 || types[1] != ntGNUBuildID {
		t.Fatalf("unexpected record types: %v", types)
	}

	got, ok := findBuildID(window, 8)
	if !ok || !bytes.Equal(got, id) {
		t.Fatalf("findBuildID = %x, %t; want %x", got, ok, id)
	}
}

func TestParseNotesTruncatedWindow(t *testing.T) {
	window := appendNote(nil, 4, "GNU\x00", 1, make([]byte, 16))
	full := appendNote(window, 4, "GNU\x00", ntGNUBuildID, make([]byte, 20))

	// Cut into the second record's descriptor: the walk must stop without
	// yielding it, never read past the window.
	truncated := full[:len(full)-8]

	count := 0
	for range parseNotes(truncated, 4) {
		count++
	}
	if count != 1 {
		t.Fatalf("parsed %d records from truncated window, want 1", count)
	}
	if got, ok := findBuildID(truncated, 4); ok {
		t.Fatalf("findBuildID = %x on truncated window, want none", got)
	}
}

func TestParseNotesEmptyWindow(t *testing.T) {
	for rec := range parseNotes(nil, 4) {
		t.Fatalf("unexpected record %+v from empty window", rec)
	}
}

func TestParseNotesRestartable(t *testing.T) {
	window := appendNote(nil, 4, "GNU\x00", 1, make([]byte, 16))
	window = appendNote(window, 4, "GNU\x00", ntGNUBuildID, make([]byte, 20))

	seq := parseNotes(window, 4)
	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}
	if first, second := count(), count(); first != 2 || second != 2 {
		t.Fatalf("restarted walk yielded %d then %d records, want 2 and 2", first, second)
	}
}

func TestNormalizeNoteAlign(t *testing.T) {
	cases := []struct {
		in   uint64
		want int
		ok   bool
	}{
		{0, 4, true},
		{1, 4, true},
		{2, 4, true},
		{4, 4, true},
		{8, 8, true},
		{5, 0, false},
		{16, 0, false},
	}
	for _, c := range cases {
		got, ok := normalizeNoteAlign(c.in)
		if got != c.want || ok != c.ok {
			t.Errorf("normalizeNoteAlign(%d) = %d, %t; want %d, %t", c.in, got, ok, c.want, c.ok)
		}
	}
}
