/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/named-data/ndnc/core"
	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/tlv"
	"go.uber.org/multierr"
)

// WebSocketTransport connects to a forwarder's WebSocket channel. Each binary message
// carries one or more TLV elements.
type WebSocketTransport struct {
	nInBytes  uint64
	nOutBytes uint64

	mutex         sync.Mutex
	writeMutex    sync.Mutex
	dialer        websocket.Dialer
	c             *websocket.Conn
	info          *URI
	reader        *tlv.ElementReader
	onClose       func()
	closed        bool
	closeNotified bool
}

var _ Transport = &WebSocketTransport{}

// NewWebSocketTransport creates an unconnected WebSocket transport.
func NewWebSocketTransport() *WebSocketTransport {
	t := new(WebSocketTransport)
	t.dialer = *websocket.DefaultDialer
	t.dialer.HandshakeTimeout = time.Duration(core.GetConfigIntDefault("face.connect_timeout_ms", 10000)) * time.Millisecond
	return t
}

func (t *WebSocketTransport) String() string {
	if t.info == nil {
		return "WebSocketTransport"
	}
	return "WebSocketTransport, RemoteURI=" + t.info.String()
}

// Connect performs the WebSocket handshake in the background.
func (t *WebSocketTransport) Connect(info *URI, listener tlv.ElementListener, onOpen func(), onClose func()) error {
	if info.uriType != wsURI {
		return ErrUnsupportedURI
	}

	t.mutex.Lock()
	if t.info != nil || t.closed {
		t.mutex.Unlock()
		return ErrAlreadyConnected
	}
	t.info = info
	t.reader = tlv.NewElementReader(listener, ndn.MaxNDNPacketSize)
	t.onClose = onClose
	t.mutex.Unlock()

	go func() {
		c, _, err := t.dialer.Dial(info.URL(), nil)
		if err != nil {
			core.LogError(t, "Unable to connect to remote endpoint: ", err)
			t.notifyClosed()
			return
		}

		t.mutex.Lock()
		if t.closed {
			t.mutex.Unlock()
			c.Close()
			t.notifyClosed()
			return
		}
		t.c = c
		t.mutex.Unlock()

		core.LogInfo(t, "Connected")
		if onOpen != nil {
			onOpen()
		}
		t.runReceive(c)
	}()
	return nil
}

func (t *WebSocketTransport) runReceive(c *websocket.Conn) {
	core.LogTrace(t, "Starting receive thread")
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				core.LogDebug(t, "Connection closed")
			} else {
				core.LogWarn(t, "Unable to read from socket (", err, ") - Transport DOWN")
			}
			break
		}

		if mt != websocket.BinaryMessage {
			core.LogWarn(t, "Ignored non-binary message")
			continue
		}

		core.LogTrace(t, "Receive of size ", len(message))
		atomic.AddUint64(&t.nInBytes, uint64(len(message)))
		if err := t.reader.OnReceivedData(message); err != nil {
			core.LogWarn(t, "Unable to frame received message (", err, ") - DROP")
		}
	}
	t.notifyClosed()
}

func (t *WebSocketTransport) notifyClosed() {
	t.mutex.Lock()
	if t.closeNotified {
		t.mutex.Unlock()
		return
	}
	t.closeNotified = true
	onClose := t.onClose
	t.mutex.Unlock()

	if onClose != nil {
		core.SafeCall(t, "onClose", onClose)
	}
}

// Send writes wire as one binary message.
func (t *WebSocketTransport) Send(wire []byte) error {
	t.mutex.Lock()
	c := t.c
	t.mutex.Unlock()
	if c == nil {
		return ErrNotConnected
	}

	core.LogTrace(t, "Sending frame of size ", len(wire))
	t.writeMutex.Lock()
	err := c.WriteMessage(websocket.BinaryMessage, wire)
	t.writeMutex.Unlock()
	if err != nil {
		core.LogWarn(t, "Unable to send on socket: ", err)
		return err
	}
	atomic.AddUint64(&t.nOutBytes, uint64(len(wire)))
	return nil
}

// IsLocal returns whether info points at the local machine.
func (t *WebSocketTransport) IsLocal(info *URI) (bool, error) {
	return info.IsLocal()
}

// NInBytes returns the number of bytes received.
func (t *WebSocketTransport) NInBytes() uint64 {
	return atomic.LoadUint64(&t.nInBytes)
}

// NOutBytes returns the number of bytes sent.
func (t *WebSocketTransport) NOutBytes() uint64 {
	return atomic.LoadUint64(&t.nOutBytes)
}

// Close sends a close message and closes the connection.
func (t *WebSocketTransport) Close() error {
	t.mutex.Lock()
	if t.closed {
		t.mutex.Unlock()
		return nil
	}
	t.closed = true
	c := t.c
	t.mutex.Unlock()

	if c == nil {
		return nil
	}
	core.LogInfo(t, "Closing WebSocket")
	t.writeMutex.Lock()
	err := c.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	t.writeMutex.Unlock()
	if err == websocket.ErrCloseSent {
		err = nil
	}
	return multierr.Append(err, c.Close())
}
