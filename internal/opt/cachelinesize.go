//go:build !qlock_cachelinesize_32 && !qlock_cachelinesize_64 && !qlock_cachelinesize_128 && !qlock_cachelinesize_256

package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is used to pad queue nodes so that every waiter spins on
// its own cache line. It's taken from the `golang.org/x/sys` package.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})
