/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package dummy

import (
	"sync"

	"github.com/named-data/ndnc/face"
	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/tlv"
)

// Transport is an in-memory face.Transport. Sent packets are recorded for Consume, and
// FeedPacket delivers packets as if the forwarder had sent them.
type Transport struct {
	lock         sync.Mutex
	autoOpen     bool
	local        bool
	connected    bool
	closed       bool
	connectCalls int
	listener     tlv.ElementListener
	reader       *tlv.ElementReader
	onOpen       func()
	onClose      func()
	sent         [][]byte
}

var _ face.Transport = (*Transport)(nil)

// NewTransport creates a transport to a local forwarder. If autoOpen is set, Connect opens it
// immediately; otherwise the test calls Open.
func NewTransport(autoOpen bool) *Transport {
	return &Transport{autoOpen: autoOpen, local: true}
}

func (t *Transport) String() string {
	return "DummyTransport"
}

// Connect records the callbacks, and opens the transport if autoOpen is set.
func (t *Transport) Connect(info *face.URI, listener tlv.ElementListener, onOpen func(), onClose func()) error {
	t.lock.Lock()
	if t.connectCalls > 0 {
		t.lock.Unlock()
		return face.ErrAlreadyConnected
	}
	t.connectCalls++
	t.listener = listener
	t.reader = tlv.NewElementReader(listener, ndn.MaxNDNPacketSize)
	t.onOpen = onOpen
	t.onClose = onClose
	t.lock.Unlock()

	if t.autoOpen {
		t.Open()
	}
	return nil
}

// Open completes the connection.
func (t *Transport) Open() {
	t.lock.Lock()
	t.connected = true
	onOpen := t.onOpen
	t.lock.Unlock()

	if onOpen != nil {
		onOpen()
	}
}

// Disconnect drops the connection as if the forwarder went away.
func (t *Transport) Disconnect() {
	t.lock.Lock()
	t.connected = false
	onClose := t.onClose
	t.lock.Unlock()

	if onClose != nil {
		onClose()
	}
}

// Send records a copy of wire.
func (t *Transport) Send(wire []byte) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if !t.connected {
		return face.ErrNotConnected
	}
	t.sent = append(t.sent, append([]byte(nil), wire...))
	return nil
}

// Consume returns and forgets the packets sent so far.
func (t *Transport) Consume() [][]byte {
	t.lock.Lock()
	defer t.lock.Unlock()
	sent := t.sent
	t.sent = nil
	return sent
}

// FeedPacket delivers one complete element to the listener.
func (t *Transport) FeedPacket(wire []byte) {
	t.lock.Lock()
	listener := t.listener
	t.lock.Unlock()

	if listener != nil {
		listener.OnReceivedElement(wire)
	}
}

// FeedBytes delivers a chunk of a byte stream through an ElementReader.
func (t *Transport) FeedBytes(chunk []byte) error {
	t.lock.Lock()
	reader := t.reader
	t.lock.Unlock()

	if reader == nil {
		return face.ErrNotConnected
	}
	return reader.OnReceivedData(chunk)
}

// SetLocal sets what IsLocal reports.
func (t *Transport) SetLocal(local bool) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.local = local
}

// IsLocal reports the value given to SetLocal, true by default.
func (t *Transport) IsLocal(info *face.URI) (bool, error) {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.local, nil
}

// ConnectCalls returns how many times Connect was called.
func (t *Transport) ConnectCalls() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.connectCalls
}

// IsClosed returns whether Close was called.
func (t *Transport) IsClosed() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.closed
}

// Close stops the transport without calling onClose.
func (t *Transport) Close() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.closed = true
	t.connected = false
	return nil
}
