/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/named-data/ndnc/core"
	"github.com/named-data/ndnc/face/impl"
	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/tlv"
)

// Send queue backlog, in bytes, above which a warning is logged.
const sendQueueWarnSize = 256 * 1024

// StreamTransport connects to a forwarder over a Unix stream socket or TCP.
type StreamTransport struct {
	nInBytes  uint64
	nOutBytes uint64

	mutex         sync.Mutex
	dialer        net.Dialer
	conn          net.Conn
	info          *URI
	reader        *tlv.ElementReader
	onClose       func()
	closed        bool
	closeNotified bool
}

var _ Transport = &StreamTransport{}

// NewStreamTransport creates an unconnected stream transport.
func NewStreamTransport() *StreamTransport {
	t := new(StreamTransport)
	t.dialer.Timeout = time.Duration(core.GetConfigIntDefault("face.connect_timeout_ms", 10000)) * time.Millisecond
	return t
}

func (t *StreamTransport) String() string {
	if t.info == nil {
		return "StreamTransport"
	}
	return "StreamTransport, RemoteURI=" + t.info.String()
}

// Connect dials info in the background.
func (t *StreamTransport) Connect(info *URI, listener tlv.ElementListener, onOpen func(), onClose func()) error {
	if info.uriType != tcpURI && info.uriType != unixURI {
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
		conn, err := t.dialer.Dial(info.Network(), info.Address())
		if err != nil {
			core.LogError(t, "Unable to connect to remote endpoint: ", err)
			t.notifyClosed()
			return
		}

		t.mutex.Lock()
		if t.closed {
			t.mutex.Unlock()
			conn.Close()
			t.notifyClosed()
			return
		}
		t.conn = conn
		t.mutex.Unlock()

		core.LogInfo(t, "Connected, LocalAddr=", conn.LocalAddr())
		if onOpen != nil {
			onOpen()
		}
		t.runReceive(conn)
	}()
	return nil
}

func (t *StreamTransport) runReceive(conn net.Conn) {
	core.LogTrace(t, "Starting receive thread")
	recvBuf := make([]byte, ndn.MaxNDNPacketSize)
	for {
		readSize, err := conn.Read(recvBuf)
		if readSize > 0 {
			core.LogTrace(t, "Receive of size ", readSize)
			atomic.AddUint64(&t.nInBytes, uint64(readSize))
			if err := t.reader.OnReceivedData(recvBuf[:readSize]); err != nil {
				core.LogWarn(t, "Unable to frame received data (", err, ") - DROP")
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
				core.LogDebug(t, "Connection closed")
			} else {
				core.LogWarn(t, "Unable to read from socket (", err, ") - Transport DOWN")
			}
			break
		}
	}
	t.notifyClosed()
}

func (t *StreamTransport) notifyClosed() {
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

// Send writes wire to the socket.
func (t *StreamTransport) Send(wire []byte) error {
	t.mutex.Lock()
	conn := t.conn
	t.mutex.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	core.LogTrace(t, "Sending frame of size ", len(wire))
	if _, err := conn.Write(wire); err != nil {
		core.LogWarn(t, "Unable to send on socket: ", err)
		return err
	}
	atomic.AddUint64(&t.nOutBytes, uint64(len(wire)))

	if size := t.SendQueueSize(); size > sendQueueWarnSize {
		core.LogWarn(t, "Send queue backlog is ", size, " bytes")
	}
	return nil
}

// SendQueueSize returns the number of bytes queued on the socket but not yet sent.
// It is 0 where the platform cannot report it.
func (t *StreamTransport) SendQueueSize() uint64 {
	t.mutex.Lock()
	conn := t.conn
	t.mutex.Unlock()

	sc, ok := conn.(syscall.Conn)
	if !ok {
		return 0
	}
	rawConn, err := sc.SyscallConn()
	if err != nil {
		core.LogDebug(t, "Unable to get raw connection to get socket length: ", err)
		return 0
	}
	return impl.SyscallGetSocketSendQueueSize(rawConn)
}

// IsLocal returns whether info points at the local machine.
func (t *StreamTransport) IsLocal(info *URI) (bool, error) {
	return info.IsLocal()
}

// NInBytes returns the number of bytes received.
func (t *StreamTransport) NInBytes() uint64 {
	return atomic.LoadUint64(&t.nInBytes)
}

// NOutBytes returns the number of bytes sent.
func (t *StreamTransport) NOutBytes() uint64 {
	return atomic.LoadUint64(&t.nOutBytes)
}

// Close closes the socket. The receive loop then reports the close.
func (t *StreamTransport) Close() error {
	t.mutex.Lock()
	if t.closed {
		t.mutex.Unlock()
		return nil
	}
	t.closed = true
	conn := t.conn
	t.mutex.Unlock()

	if conn == nil {
		return nil
	}
	core.LogInfo(t, "Closing stream socket")
	return conn.Close()
}
