/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/named-data/ndnc/dummy"
	"github.com/named-data/ndnc/face"
	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/lpv2"
	"github.com/named-data/ndnc/ndn/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFace(autoOpen bool, opts ...face.Option) (*face.Face, *dummy.Transport, *dummy.Timer) {
	transport := dummy.NewTransport(autoOpen)
	timer := dummy.NewTimer()
	opts = append([]face.Option{face.WithTimer(timer)}, opts...)
	f := face.NewFace(transport, face.MakeUnixFaceURI("/run/nfd/nfd.sock"), opts...)
	return f, transport, timer
}

func parseName(t *testing.T, s string) *ndn.Name {
	n, err := ndn.NameFromString(s)
	require.NoError(t, err)
	return n
}

func dataWire(t *testing.T, name *ndn.Name, content []byte) []byte {
	wire, err := security.SignData(ndn.NewData(name, content), security.NewDigestSha256Signer())
	require.NoError(t, err)
	return wire
}

func sentInterests(t *testing.T, transport *dummy.Transport) []*ndn.Interest {
	var interests []*ndn.Interest
	for _, wire := range transport.Consume() {
		interest, err := ndn.DecodeInterest(wire)
		require.NoError(t, err)
		interests = append(interests, interest)
	}
	return interests
}

func TestExpressInterestData(t *testing.T) {
	f, transport, _ := newTestFace(true)
	assert.Equal(t, face.Unopen, f.State())

	var received []*ndn.Data
	id, err := f.ExpressInterest(ndn.NewInterest(parseName(t, "/a/b")),
		func(interest *ndn.Interest, data *ndn.Data) {
			assert.Equal(t, "/a/b", interest.Name().String())
			received = append(received, data)
		}, nil, nil)
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, face.Opened, f.State())
	assert.Equal(t, 1, transport.ConnectCalls())

	interests := sentInterests(t, transport)
	require.Len(t, interests, 1)
	assert.Equal(t, "/a/b", interests[0].Name().String())
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, interests[0].Nonce())

	// Unrelated Data is ignored
	transport.FeedPacket(dataWire(t, parseName(t, "/a/c"), []byte("x")))
	assert.Empty(t, received)

	transport.FeedPacket(dataWire(t, parseName(t, "/a/b/1"), []byte("hello")))
	require.Len(t, received, 1)
	assert.Equal(t, "/a/b/1", received[0].Name().String())
	assert.Equal(t, []byte("hello"), received[0].Content())

	// The entry was consumed
	transport.FeedPacket(dataWire(t, parseName(t, "/a/b/2"), nil))
	assert.Len(t, received, 1)
}

func TestExpressInterestAllMatches(t *testing.T) {
	f, transport, _ := newTestFace(true)

	var order []uint64
	ids := make([]uint64, 3)
	for i, name := range []string{"/a", "/a/b", "/a/b/c/d"} {
		i := i
		id, err := f.ExpressInterest(ndn.NewInterest(parseName(t, name)),
			func(*ndn.Interest, *ndn.Data) {
				order = append(order, ids[i])
			}, nil, nil)
		require.NoError(t, err)
		ids[i] = id
	}
	assert.Len(t, transport.Consume(), 3)

	transport.FeedPacket(dataWire(t, parseName(t, "/a/b/c"), nil))
	assert.Equal(t, []uint64{ids[0], ids[1]}, order)
}

func TestExpressInterestFreshNonce(t *testing.T) {
	f, transport, _ := newTestFace(true)

	preset := []byte{0x09, 0x09, 0x09, 0x09}
	interest := ndn.NewInterest(parseName(t, "/a"))
	require.NoError(t, interest.SetNonce(preset))

	nNack := 0
	for i := 0; i < 2; i++ {
		_, err := f.ExpressInterest(interest, nil, nil,
			func(*ndn.Interest, *ndn.NetworkNack) { nNack++ })
		require.NoError(t, err)
	}
	assert.Equal(t, preset, interest.Nonce())

	sent := transport.Consume()
	require.Len(t, sent, 2)
	first, err := ndn.DecodeInterest(sent[0])
	require.NoError(t, err)
	second, err := ndn.DecodeInterest(sent[1])
	require.NoError(t, err)
	assert.NotEqual(t, preset, first.Nonce())
	assert.NotEqual(t, preset, second.Nonce())
	assert.NotEqual(t, first.Nonce(), second.Nonce())

	// A Nack answers only the Interest it carries
	transport.FeedPacket(lpv2.NewNackPacket(ndn.NackReasonDuplicate, sent[0]).Encode())
	assert.Equal(t, 1, nNack)
}

func TestExpressInterestTimeout(t *testing.T) {
	f, transport, timer := newTestFace(true)

	interest := ndn.NewInterest(parseName(t, "/a"))
	interest.SetLifetime(time.Second)
	nData, nTimeout := 0, 0
	_, err := f.ExpressInterest(interest,
		func(*ndn.Interest, *ndn.Data) { nData++ },
		func(i *ndn.Interest) {
			assert.Equal(t, "/a", i.Name().String())
			nTimeout++
		}, nil)
	require.NoError(t, err)

	timer.MoveForward(999 * time.Millisecond)
	assert.Equal(t, 0, nTimeout)
	timer.MoveForward(time.Millisecond)
	assert.Equal(t, 1, nTimeout)

	transport.FeedPacket(dataWire(t, parseName(t, "/a/1"), nil))
	assert.Equal(t, 0, nData)
	timer.MoveForward(10 * time.Second)
	assert.Equal(t, 1, nTimeout)
}

func TestExpressInterestNameDefaultLifetime(t *testing.T) {
	f, transport, timer := newTestFace(true)

	nTimeout := 0
	_, err := f.ExpressInterestName(parseName(t, "/a"), nil, nil,
		func(*ndn.Interest) { nTimeout++ }, nil)
	require.NoError(t, err)

	interests := sentInterests(t, transport)
	require.Len(t, interests, 1)
	require.NotNil(t, interests[0].Lifetime())
	assert.Equal(t, 4*time.Second, *interests[0].Lifetime())

	timer.MoveForward(3999 * time.Millisecond)
	assert.Equal(t, 0, nTimeout)
	timer.MoveForward(time.Millisecond)
	assert.Equal(t, 1, nTimeout)

	template := ndn.NewInterest(parseName(t, "/ignored"))
	template.SetMustBeFresh(true)
	template.SetLifetime(500 * time.Millisecond)
	_, err = f.ExpressInterestName(parseName(t, "/b"), template, nil, nil, nil)
	require.NoError(t, err)
	interests = sentInterests(t, transport)
	require.Len(t, interests, 1)
	assert.Equal(t, "/b", interests[0].Name().String())
	assert.True(t, interests[0].MustBeFresh())
	assert.Equal(t, 500*time.Millisecond, *interests[0].Lifetime())
}

func TestNetworkNack(t *testing.T) {
	f, transport, timer := newTestFace(true)

	var nacks []*ndn.NetworkNack
	_, err := f.ExpressInterest(ndn.NewInterest(parseName(t, "/a")), nil, nil,
		func(interest *ndn.Interest, nack *ndn.NetworkNack) {
			assert.Equal(t, "/a", interest.Name().String())
			nacks = append(nacks, nack)
		})
	require.NoError(t, err)
	sent := transport.Consume()
	require.Len(t, sent, 1)

	transport.FeedPacket(lpv2.NewNackPacket(ndn.NackReasonNoRoute, sent[0]).Encode())
	require.Len(t, nacks, 1)
	assert.Equal(t, ndn.NackReasonNoRoute, nacks[0].Reason())

	// Without a Nack callback the entry stays until it times out
	nTimeout := 0
	_, err = f.ExpressInterest(ndn.NewInterest(parseName(t, "/b")), nil,
		func(*ndn.Interest) { nTimeout++ }, nil)
	require.NoError(t, err)
	sent = transport.Consume()
	require.Len(t, sent, 1)
	transport.FeedPacket(lpv2.NewNackPacket(ndn.NackReasonCongestion, sent[0]).Encode())
	assert.Len(t, nacks, 1)
	timer.MoveForward(4 * time.Second)
	assert.Equal(t, 1, nTimeout)
}

func TestNackForDifferentEncoding(t *testing.T) {
	f, transport, _ := newTestFace(true)

	nNack := 0
	interest := ndn.NewInterest(parseName(t, "/a"))
	_, err := f.ExpressInterest(interest, nil, nil,
		func(*ndn.Interest, *ndn.NetworkNack) { nNack++ })
	require.NoError(t, err)
	transport.Consume()

	other := ndn.NewInterest(parseName(t, "/a"))
	require.NoError(t, other.SetNonce([]byte{0xff, 0xff, 0xff, 0xff}))
	transport.FeedPacket(lpv2.NewNackPacket(ndn.NackReasonNoRoute, other.Encode()).Encode())
	assert.Equal(t, 0, nNack)
}

func TestQueueBeforeOpen(t *testing.T) {
	f, transport, _ := newTestFace(false)

	_, err := f.ExpressInterest(ndn.NewInterest(parseName(t, "/1")), nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, face.OpenRequested, f.State())
	_, err = f.ExpressInterest(ndn.NewInterest(parseName(t, "/2")), nil, nil, nil)
	require.NoError(t, err)
	require.NoError(t, f.Send(dataWire(t, parseName(t, "/3"), nil)))

	assert.Equal(t, 1, transport.ConnectCalls())
	assert.Empty(t, transport.Consume())

	transport.Open()
	assert.Equal(t, face.Opened, f.State())
	sent := transport.Consume()
	require.Len(t, sent, 3)
	first, err := ndn.DecodeInterest(sent[0])
	require.NoError(t, err)
	assert.Equal(t, "/1", first.Name().String())
	second, err := ndn.DecodeInterest(sent[1])
	require.NoError(t, err)
	assert.Equal(t, "/2", second.Name().String())
	third, err := ndn.DecodeData(sent[2])
	require.NoError(t, err)
	assert.Equal(t, "/3", third.Name().String())
}

func TestRemovePendingInterest(t *testing.T) {
	f, transport, timer := newTestFace(false)

	// Removed before the transport opened: never sent
	called := false
	id, err := f.ExpressInterest(ndn.NewInterest(parseName(t, "/a")),
		func(*ndn.Interest, *ndn.Data) { called = true },
		func(*ndn.Interest) { called = true }, nil)
	require.NoError(t, err)
	f.RemovePendingInterest(id)
	transport.Open()
	assert.Empty(t, transport.Consume())

	// Removed after it was sent
	id, err = f.ExpressInterest(ndn.NewInterest(parseName(t, "/b")),
		func(*ndn.Interest, *ndn.Data) { called = true },
		func(*ndn.Interest) { called = true }, nil)
	require.NoError(t, err)
	assert.Len(t, transport.Consume(), 1)
	f.RemovePendingInterest(id)
	transport.FeedPacket(dataWire(t, parseName(t, "/b"), nil))
	timer.MoveForward(10 * time.Second)
	assert.False(t, called)
	assert.Zero(t, timer.Pending())
}

func TestPacketTooLarge(t *testing.T) {
	f, transport, _ := newTestFace(true, face.WithMaxPacketSize(100))

	name := ndn.NewName().Append(ndn.NewGenericNameComponent(bytes.Repeat([]byte{'x'}, 200)))
	_, err := f.ExpressInterest(ndn.NewInterest(name), nil, nil, nil)
	assert.ErrorIs(t, err, face.ErrPacketTooLarge)
	assert.ErrorIs(t, f.Send(make([]byte, 101)), face.ErrPacketTooLarge)
	assert.Equal(t, 0, transport.ConnectCalls())
	assert.Equal(t, face.Unopen, f.State())
}

func TestClose(t *testing.T) {
	f, transport, timer := newTestFace(true)

	nTimeout := 0
	_, err := f.ExpressInterest(ndn.NewInterest(parseName(t, "/a")), nil,
		func(*ndn.Interest) { nTimeout++ }, nil)
	require.NoError(t, err)

	require.NoError(t, f.Close())
	assert.True(t, transport.IsClosed())
	assert.Equal(t, face.Closed, f.State())
	timer.MoveForward(10 * time.Second)
	assert.Equal(t, 0, nTimeout)

	_, err = f.ExpressInterest(ndn.NewInterest(parseName(t, "/b")), nil, nil, nil)
	assert.ErrorIs(t, err, face.ErrFaceClosed)
	assert.NoError(t, f.Close())
}

func TestTransportDisconnect(t *testing.T) {
	f, transport, _ := newTestFace(true)
	require.NoError(t, f.Send(dataWire(t, parseName(t, "/a"), nil)))
	transport.Disconnect()
	assert.Equal(t, face.Closed, f.State())
	assert.ErrorIs(t, f.Send(dataWire(t, parseName(t, "/a"), nil)), face.ErrFaceClosed)
}

func TestTransportClosedBeforeOpen(t *testing.T) {
	f, transport, timer := newTestFace(false)

	nTimeout := 0
	_, err := f.ExpressInterest(ndn.NewInterest(parseName(t, "/a")), nil,
		func(interest *ndn.Interest) {
			assert.Equal(t, "/a", interest.Name().String())
			nTimeout++
		}, nil)
	require.NoError(t, err)
	removedID, err := f.ExpressInterest(ndn.NewInterest(parseName(t, "/b")), nil,
		func(*ndn.Interest) { nTimeout++ }, nil)
	require.NoError(t, err)
	f.RemovePendingInterest(removedID)

	var failedPrefixes []string
	_, err = f.RegisterPrefix(parseName(t, "/p"), nil,
		func(prefix *ndn.Name) { failedPrefixes = append(failedPrefixes, prefix.String()) },
		func(*ndn.Name, uint64) { t.Error("unexpected registration success") }, nil)
	require.NoError(t, err)
	require.NoError(t, f.Send(dataWire(t, parseName(t, "/d"), nil)))

	transport.Disconnect()
	assert.Equal(t, face.Closed, f.State())
	assert.Equal(t, []string{"/p"}, failedPrefixes)
	assert.Empty(t, transport.Consume())

	timer.MoveForward(ndn.DefaultInterestLifetime)
	assert.Equal(t, 1, nTimeout)
	timer.MoveForward(time.Minute)
	assert.Equal(t, 1, nTimeout)
	assert.Zero(t, timer.Pending())
}

func TestInterestFilter(t *testing.T) {
	f, transport, _ := newTestFace(true)

	type call struct {
		prefix   string
		filterID uint64
	}
	var calls []call
	onInterest := func(prefix *ndn.Name, interest *ndn.Interest, fc *face.Face, filterID uint64,
		filter *ndn.InterestFilter) {
		assert.Same(t, f, fc)
		assert.Equal(t, "/a/b/c", interest.Name().String())
		calls = append(calls, call{prefix.String(), filterID})
	}
	id1 := f.SetInterestFilter(ndn.NewInterestFilter(parseName(t, "/a")), onInterest)
	id2 := f.SetInterestFilter(ndn.NewInterestFilter(parseName(t, "/a/b")), onInterest)
	f.SetInterestFilter(ndn.NewInterestFilter(parseName(t, "/x")), onInterest)
	regexFilter, err := ndn.NewInterestFilterWithRegex(parseName(t, "/a"), "<b><d>")
	require.NoError(t, err)
	f.SetInterestFilter(regexFilter, onInterest)

	interest := ndn.NewInterest(parseName(t, "/a/b/c"))
	transport.FeedPacket(interest.Encode())
	assert.Equal(t, []call{{"/a", id1}, {"/a/b", id2}}, calls)

	calls = nil
	f.UnsetInterestFilter(id1)
	transport.FeedPacket(interest.Encode())
	assert.Equal(t, []call{{"/a/b", id2}}, calls)
}

func TestCallbackPanic(t *testing.T) {
	f, transport, _ := newTestFace(true)

	_, err := f.ExpressInterest(ndn.NewInterest(parseName(t, "/a")),
		func(*ndn.Interest, *ndn.Data) { panic("application error") }, nil, nil)
	require.NoError(t, err)
	reached := false
	_, err = f.ExpressInterest(ndn.NewInterest(parseName(t, "/a/b")),
		func(*ndn.Interest, *ndn.Data) { reached = true }, nil, nil)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		transport.FeedPacket(dataWire(t, parseName(t, "/a/b"), nil))
	})
	assert.True(t, reached)
}

func TestReceiveStream(t *testing.T) {
	f, transport, _ := newTestFace(true)

	var names []string
	for _, name := range []string{"/a", "/b"} {
		_, err := f.ExpressInterest(ndn.NewInterest(parseName(t, name)),
			func(_ *ndn.Interest, data *ndn.Data) {
				names = append(names, data.Name().String())
			}, nil, nil)
		require.NoError(t, err)
	}

	stream := append(dataWire(t, parseName(t, "/a/1"), []byte("one")),
		dataWire(t, parseName(t, "/b/2"), []byte("two"))...)
	split := len(stream) - 5
	require.NoError(t, transport.FeedBytes(stream[:split]))
	assert.Equal(t, []string{"/a/1"}, names)
	require.NoError(t, transport.FeedBytes(stream[split:]))
	assert.Equal(t, []string{"/a/1", "/b/2"}, names)
}

func TestMalformedAndIdlePackets(t *testing.T) {
	f, transport, _ := newTestFace(true)

	nData := 0
	_, err := f.ExpressInterest(ndn.NewInterest(parseName(t, "/a")),
		func(*ndn.Interest, *ndn.Data) { nData++ }, nil, nil)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		transport.FeedPacket([]byte{0x06, 0x02, 0x07, 0x00})
		transport.FeedPacket(lpv2.NewIDLEPacket().Encode())
		transport.FeedPacket([]byte{0x80, 0x00})
	})

	fragmented := lpv2.NewPacket(dataWire(t, parseName(t, "/a"), nil))
	fragmented.SetFragmentation(0, 2)
	transport.FeedPacket(fragmented.Encode())
	assert.Equal(t, 0, nData)

	// A single-fragment LpPacket is unwrapped
	whole := lpv2.NewPacket(dataWire(t, parseName(t, "/a"), nil))
	whole.SetFragmentation(0, 1)
	transport.FeedPacket(whole.Encode())
	assert.Equal(t, 1, nData)
}

func TestPutDataAndNack(t *testing.T) {
	f, transport, _ := newTestFace(true)

	data := ndn.NewData(parseName(t, "/a/1"), []byte("content"))
	_, err := security.SignData(data, security.NewDigestSha256Signer())
	require.NoError(t, err)
	require.NoError(t, f.PutData(data))

	interest := ndn.NewInterest(parseName(t, "/b"))
	require.NoError(t, interest.SetNonce([]byte{0x0a, 0x0b, 0x0c, 0x0d}))
	require.NoError(t, f.PutNack(interest, ndn.NackReasonDuplicate))

	sent := transport.Consume()
	require.Len(t, sent, 2)
	decoded, err := ndn.DecodeData(sent[0])
	require.NoError(t, err)
	assert.Equal(t, []byte("content"), decoded.Content())

	packet, err := lpv2.DecodePacket(sent[1])
	require.NoError(t, err)
	require.NotNil(t, packet.Nack())
	assert.Equal(t, ndn.NackReasonDuplicate, packet.Nack().Reason())
	assert.Equal(t, interest.Encode(), packet.Fragment())
}
