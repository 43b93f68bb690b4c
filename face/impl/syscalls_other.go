//go:build !linux
// +build !linux

/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package impl

import (
	"syscall"
)

// SyscallGetSocketSendQueueSize is not available on this platform and returns 0.
func SyscallGetSocketSendQueueSize(c syscall.RawConn) uint64 {
	return 0
}
