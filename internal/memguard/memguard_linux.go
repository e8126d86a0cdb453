//go:build linux

package memguard

import "syscall"

// setHardLimit caps the process's virtual address space at ceilingMB,
// so an allocation past the ceiling fails instead of the OS reclaiming
// memory from elsewhere on the machine.
func setHardLimit(ceilingMB int) error {
	limit := uint64(ceilingMB) * 1 << 20
	rlimit := syscall.Rlimit{Cur: limit, Max: limit}
	return syscall.Setrlimit(syscall.RLIMIT_AS, &rlimit)
}
