//go:build linux && cgo && (386 || amd64 || arm64)

package shlibs

/*
#define _GNU_SOURCE
#include <link.h>
#include <stddef.h>
#include <stdint.h>

extern int shlibsVisit(void *info, size_t size, void *data);

// The exported callback takes void* so that cgo's generated header does not
// declare struct dl_phdr_info at prototype scope, where it would conflict
// with the file-scope definition from link.h. This shim gives
// dl_iterate_phdr the properly typed callback and forwards to Go.
static int shlibs_visit_shim(struct dl_phdr_info *info, size_t size, void *data) {
	return shlibsVisit(info, size, data);
}

static int shlibs_iterate(uintptr_t handle) {
	return dl_iterate_phdr(shlibs_visit_shim, (void *)handle);
}

// Non-static: the callback file may only declare C functions, not define
// them, because it exports a Go one.
void *shlibs_base(struct dl_phdr_info *info) {
	return (void *)info->dlpi_addr;
}
*/
import "C"

import "runtime/cgo"

// dl_iterate_phdr callback return codes: zero continues the walk, any other
// value stops it.
const (
	dlContinue C.int = 0
	dlBreak    C.int = 1
)

// iterState is the per-call context threaded through dl_iterate_phdr's
// opaque data pointer: the visitor plus a slot for a failure captured on
// the far side of the C frame. It is owned by a single Each call and never
// shared across goroutines.
type iterState struct {
	visitor Visitor
	failed  bool
	payload any
}

// call runs the visitor, converting a panic into a captured failure so that
// nothing ever unwinds across the native call frame beneath the callback.
func (s *iterState) call(lib *Library) (control IterationControl) {
	defer func() {
		if r := recover(); r != nil {
			s.failed = true
			s.payload = r
			control = Break
		}
	}()
	return s.visitor(lib)
}

// Each invokes visitor once per object currently mapped into the process,
// synchronously on the calling goroutine, in the loader's own iteration
// order. The *Library argument is valid only until the visitor returns.
// A panic in the visitor stops the walk and is re-raised here once
// dl_iterate_phdr has fully returned. The error is non-nil only on
// platforms where enumeration is unsupported.
func Each(visitor Visitor) error {
	state := &iterState{visitor: visitor}
	h := cgo.NewHandle(state)
	defer h.Delete()

	C.shlibs_iterate(C.uintptr_t(h))

	if state.failed {
		panic(state.payload)
	}
	return nil
}
