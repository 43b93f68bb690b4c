//go:build linux
// +build linux

/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package impl

import (
	"syscall"

	"github.com/named-data/ndnc/core"
	"golang.org/x/sys/unix"
)

// SyscallGetSocketSendQueueSize returns the number of unsent bytes queued on the specified socket.
func SyscallGetSocketSendQueueSize(c syscall.RawConn) uint64 {
	var val int
	err := c.Control(func(fd uintptr) {
		var err error
		val, err = unix.IoctlGetInt(int(fd), unix.SIOCOUTQ)
		if err != nil {
			core.LogDebug("Face-Syscall", "Unable to get size of socket send queue for fd=", fd, ": ", err)
			val = 0
		}
	})
	if err != nil || val < 0 {
		return 0
	}
	return uint64(val)
}
