/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

// State indicates the connection state of a face
type State int

const (
	// Unopen indicates the transport has not been asked to connect
	Unopen State = iota
	// OpenRequested indicates the transport is connecting and actions are queued
	OpenRequested
	// Opened indicates the transport is connected
	Opened
	// Closed indicates the face was closed or the transport went away
	Closed
)

func (s State) String() string {
	switch s {
	case Unopen:
		return "Unopen"
	case OpenRequested:
		return "OpenRequested"
	case Opened:
		return "Opened"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}
