/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

// NFD route flags.
const (
	FlagChildInherit uint64 = 1
	FlagCapture      uint64 = 2
)

// DefaultFlags are the route flags of default RegistrationOptions.
const DefaultFlags = FlagChildInherit

// RegistrationOptions are the route options of a prefix registration.
type RegistrationOptions struct {
	ChildInherit bool
	Capture      bool
	// Origin is the route origin, or nil for the forwarder default.
	Origin *uint64
}

// NewRegistrationOptions returns options with ChildInherit set and Capture cleared.
func NewRegistrationOptions() *RegistrationOptions {
	return &RegistrationOptions{ChildInherit: true}
}

// Flags returns the options as NFD route flags.
func (o *RegistrationOptions) Flags() uint64 {
	var flags uint64
	if o.ChildInherit {
		flags |= FlagChildInherit
	}
	if o.Capture {
		flags |= FlagCapture
	}
	return flags
}

// SetFlags sets ChildInherit and Capture from NFD route flags.
func (o *RegistrationOptions) SetFlags(flags uint64) {
	o.ChildInherit = flags&FlagChildInherit != 0
	o.Capture = flags&FlagCapture != 0
}
