//go:build linux && cgo && (amd64 || arm64)

package shlibs

import "debug/elf"

// progHeader is the program-header layout for 64-bit targets; debug/elf's
// Prog64 matches Elf64_Phdr field for field. Prog32 and Prog64 share field
// names, so all code using the alias is layout-agnostic.
type progHeader = elf.Prog64
