//go:build linux && cgo && 386

package shlibs

import "debug/elf"

// progHeader is the program-header layout for 32-bit targets; debug/elf's
// Prog32 matches Elf32_Phdr field for field. Prog32 and Prog64 share field
// names, so all code using the alias is layout-agnostic.
type progHeader = elf.Prog32
