/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face_test

import (
	"testing"

	"github.com/named-data/ndnc/face"
	"github.com/stretchr/testify/assert"
)

func TestUnix(t *testing.T) {
	uri := face.MakeUnixFaceURI("/run/nfd/nfd.sock")
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "unix", uri.Scheme())
	assert.Equal(t, "/run/nfd/nfd.sock", uri.Path())
	assert.Equal(t, "unix", uri.Network())
	assert.Equal(t, "/run/nfd/nfd.sock", uri.Address())
	assert.Equal(t, "unix:///run/nfd/nfd.sock", uri.String())

	uri, err := face.DecodeURIString("unix:///run/nfd/nfd.sock")
	assert.NoError(t, err)
	assert.Equal(t, "/run/nfd/nfd.sock", uri.Path())
	isLocal, err := uri.IsLocal()
	assert.NoError(t, err)
	assert.True(t, isLocal)
}

func TestTCP4(t *testing.T) {
	uri := face.MakeTCPFaceURI("192.0.2.1", 6363)
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "tcp4", uri.Scheme())
	assert.Equal(t, "192.0.2.1", uri.Host())
	assert.Equal(t, uint16(6363), uri.Port())
	assert.Equal(t, "tcp4://192.0.2.1:6363", uri.String())

	uri, err := face.DecodeURIString("tcp://192.0.2.1")
	assert.NoError(t, err)
	assert.False(t, uri.IsCanonical())
	assert.Equal(t, uint16(face.DefaultTCPPort), uri.Port())
	assert.NoError(t, uri.Canonize())
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "tcp4", uri.Network())
	assert.Equal(t, "192.0.2.1:6363", uri.Address())

	uri, err = face.DecodeURIString("tcp4://127.0.0.1:7000")
	assert.NoError(t, err)
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, uint16(7000), uri.Port())
	isLocal, err := uri.IsLocal()
	assert.NoError(t, err)
	assert.True(t, isLocal)
}

func TestTCP6(t *testing.T) {
	uri, err := face.DecodeURIString("tcp6://[2001:db8::1]:6363")
	assert.NoError(t, err)
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "2001:db8::1", uri.Host())
	assert.Equal(t, "tcp6://[2001:db8::1]:6363", uri.String())
	isLocal, err := uri.IsLocal()
	assert.NoError(t, err)
	assert.False(t, isLocal)

	uri = face.MakeTCPFaceURI("::1", 6363)
	assert.Equal(t, "tcp6", uri.Scheme())
	isLocal, err = uri.IsLocal()
	assert.NoError(t, err)
	assert.True(t, isLocal)
}

func TestWebSocket(t *testing.T) {
	uri, err := face.DecodeURIString("ws://localhost")
	assert.NoError(t, err)
	assert.Equal(t, "ws", uri.Scheme())
	assert.Equal(t, uint16(face.DefaultWebSocketPort), uri.Port())
	assert.Equal(t, "tcp", uri.Network())
	assert.Equal(t, "ws://localhost:9696", uri.URL())
	isLocal, err := uri.IsLocal()
	assert.NoError(t, err)
	assert.True(t, isLocal)

	uri, err = face.DecodeURIString("wss://example.net:443/ndn")
	assert.NoError(t, err)
	assert.Equal(t, "/ndn", uri.Path())
	assert.Equal(t, "wss://example.net:443/ndn", uri.String())

	uri = face.MakeWebSocketFaceURI(false, "192.0.2.7", 9696, "/")
	assert.True(t, uri.IsCanonical())
	assert.Equal(t, "ws://192.0.2.7:9696/", uri.URL())
}

func TestDecodeURIStringErrors(t *testing.T) {
	for _, str := range []string{
		"",
		"nfd.sock",
		"udp4://127.0.0.1:6363",
		"tcp://user@127.0.0.1:6363",
		"tcp://127.0.0.1:0",
		"tcp://127.0.0.1:70000",
		"tcp://127.0.0.1:6363/path",
		"unix://",
	} {
		_, err := face.DecodeURIString(str)
		assert.ErrorIs(t, err, face.ErrUnsupportedURI, str)
	}
}
