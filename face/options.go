/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"time"

	"github.com/named-data/ndnc/core"
	"github.com/named-data/ndnc/ndn/security"
	"github.com/named-data/ndnc/ndn/wire"
)

// Option configures a Face.
type Option func(f *Face)

// WithWireFormat sets the codec used for every packet. The default is wire.Default.
func WithWireFormat(format wire.Format) Option {
	return func(f *Face) {
		f.wireFormat = format
	}
}

// WithTimer sets the timer for Interest lifetimes, nonces and command timestamps.
func WithTimer(timer core.Timer) Option {
	return func(f *Face) {
		f.timer = timer
	}
}

// WithSigner sets the signer for prefix registration commands. The default is DigestSha256.
func WithSigner(signer security.Signer) Option {
	return func(f *Face) {
		f.signer = signer
	}
}

// WithMaxPacketSize sets the largest encoding the face will send.
func WithMaxPacketSize(size int) Option {
	return func(f *Face) {
		f.maxPacketSize = size
	}
}

// WithCommandTimeout sets the lifetime of prefix registration command Interests.
func WithCommandTimeout(timeout time.Duration) Option {
	return func(f *Face) {
		f.commandTimeout = timeout
	}
}
