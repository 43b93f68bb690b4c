/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/ndnc/ndn/tlv"
)

// Transport carries TLV elements between a face and a forwarder.
type Transport interface {
	// Connect starts connecting to info. Once connected, onOpen is called and every element
	// received is passed to listener. onClose is called once when the connection fails or ends.
	Connect(info *URI, listener tlv.ElementListener, onOpen func(), onClose func()) error
	// Send writes one encoded element.
	Send(wire []byte) error
	// IsLocal returns whether info points at the local machine.
	IsLocal(info *URI) (bool, error)
	// Close tears down the connection.
	Close() error
}

// NewTransport creates the transport for the scheme of info.
func NewTransport(info *URI) (Transport, error) {
	switch info.uriType {
	case tcpURI, unixURI:
		return NewStreamTransport(), nil
	case wsURI:
		return NewWebSocketTransport(), nil
	}
	return nil, ErrUnsupportedURI
}
