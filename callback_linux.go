//go:build linux && cgo && (386 || amd64 || arm64)

package shlibs

/*
#define _GNU_SOURCE
#include <link.h>
#include <stddef.h>

extern void *shlibs_base(struct dl_phdr_info *info);
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

// shlibsVisit is the dl_iterate_phdr callback, reached through the typed C
// shim. It materializes a Library view over the loader-owned record, hands
// it to the visitor, and expires the view before returning control to the
// loader.
//
//export shlibsVisit
func shlibsVisit(infoPtr unsafe.Pointer, size C.size_t, data unsafe.Pointer) C.int {
	state := cgo.Handle(uintptr(data)).Value().(*iterState)
	info := (*C.struct_dl_phdr_info)(infoPtr)

	lib := &Library{
		name:    C.GoString(info.dlpi_name),
		base:    C.shlibs_base(info),
		headers: unsafe.Slice((*progHeader)(unsafe.Pointer(info.dlpi_phdr)), int(info.dlpi_phnum)),
	}
	if lib.name == "" {
		// Observed for the main executable on some systems.
		lib.name = executablePath()
	}
	defer lib.expire()

	if state.call(lib) == Break {
		return dlBreak
	}
	return dlContinue
}
