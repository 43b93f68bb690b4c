/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import "errors"

// Error definitions
var (
	ErrPacketTooLarge   = errors.New("encoding is larger than the maximum packet size")
	ErrFaceClosed       = errors.New("face is closed")
	ErrUnsupportedURI   = errors.New("unsupported face URI")
	ErrNotConnected     = errors.New("transport is not connected")
	ErrAlreadyConnected = errors.New("transport is already connected")
)
