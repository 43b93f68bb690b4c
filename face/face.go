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

	"github.com/benbjohnson/clock"
	"github.com/named-data/ndnc/core"
	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/lpv2"
	"github.com/named-data/ndnc/ndn/security"
	"github.com/named-data/ndnc/ndn/tlv"
	"github.com/named-data/ndnc/ndn/wire"
	"github.com/named-data/ndnc/table"
)

// DefaultTransportURI is used when the configuration names no transport.
const DefaultTransportURI = "unix:///run/nfd/nfd.sock"

// OnData is called with the expressed Interest and the Data that satisfied it.
type OnData = table.OnData

// OnTimeout is called with the expressed Interest when its lifetime runs out.
type OnTimeout = table.OnTimeout

// OnNetworkNack is called with the expressed Interest and the Nack received for it.
type OnNetworkNack = table.OnNetworkNack

// OnInterest is called for an incoming Interest that matches an interest filter.
type OnInterest func(prefix *ndn.Name, interest *ndn.Interest, face *Face, filterID uint64, filter *ndn.InterestFilter)

// Face is an application's connection to a forwarder. It sends Interests and matches the Data
// and Nacks that come back, and hands incoming Interests to registered filters.
//
// The transport connects on first use. Until it is open, operations are queued and run in
// order once it opens.
type Face struct {
	lastEntryID uint64

	transport        Transport
	info             *URI
	wireFormat       wire.Format
	timer            core.Timer
	signer           security.Signer
	commandGenerator *security.CommandInterestGenerator
	maxPacketSize    int
	commandTimeout   time.Duration

	mutex sync.Mutex
	state State
	queue []queuedAction

	pit      *table.PendingInterestTable
	filters  *table.InterestFilterTable
	prefixes *table.RegisteredPrefixTable
}

var _ tlv.ElementListener = &Face{}

// queuedAction waits for the transport to open. fail completes it instead if the transport
// closes first.
type queuedAction struct {
	run  func()
	fail func()
}

// NewFace creates a face that will connect transport to info.
func NewFace(transport Transport, info *URI, opts ...Option) *Face {
	f := &Face{
		transport:      transport,
		info:           info,
		wireFormat:     wire.Default,
		maxPacketSize:  core.GetConfigIntDefault("face.max_packet_size", ndn.MaxNDNPacketSize),
		commandTimeout: time.Duration(core.GetConfigIntDefault("face.command_timeout_ms", 4000)) * time.Millisecond,
		state:          Unopen,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.timer == nil {
		f.timer = core.NewTimer(clock.New())
	}
	if f.signer == nil {
		f.signer = security.NewDigestSha256Signer()
	}
	f.commandGenerator = security.NewCommandInterestGenerator(f.timer)
	f.pit = table.NewPendingInterestTable(f.timer)
	f.filters = table.NewInterestFilterTable()
	f.prefixes = table.NewRegisteredPrefixTable(f.filters)
	return f
}

// NewFaceFromURI creates a face with the transport for uri.
func NewFaceFromURI(uri string, opts ...Option) (*Face, error) {
	info, err := DecodeURIString(uri)
	if err != nil {
		return nil, err
	}
	transport, err := NewTransport(info)
	if err != nil {
		return nil, err
	}
	return NewFace(transport, info, opts...), nil
}

// NewDefaultFace creates a face for the configured face.transport, or DefaultTransportURI.
func NewDefaultFace(opts ...Option) (*Face, error) {
	return NewFaceFromURI(core.GetConfigStringDefault("face.transport", DefaultTransportURI), opts...)
}

func (f *Face) String() string {
	return "Face, URI=" + f.info.String()
}

// State returns the connection state.
func (f *Face) State() State {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.state
}

// IsLocal returns whether the forwarder is on the local machine.
func (f *Face) IsLocal() (bool, error) {
	return f.transport.IsLocal(f.info)
}

func (f *Face) nextEntryID() uint64 {
	return atomic.AddUint64(&f.lastEntryID, 1)
}

// runWhenOpened runs action now if the transport is open, or queues it and starts connecting.
// If the transport closes before it opens, fail is called instead of action. fail may be nil.
func (f *Face) runWhenOpened(action func(), fail func()) error {
	f.mutex.Lock()
	switch f.state {
	case Opened:
		f.mutex.Unlock()
		action()
		return nil
	case OpenRequested:
		f.queue = append(f.queue, queuedAction{action, fail})
		f.mutex.Unlock()
		return nil
	case Closed:
		f.mutex.Unlock()
		return ErrFaceClosed
	}

	f.state = OpenRequested
	f.queue = append(f.queue, queuedAction{action, fail})
	f.mutex.Unlock()

	core.LogInfo(f, "Connecting")
	if err := f.transport.Connect(f.info, f, f.onOpen, f.onClose); err != nil {
		core.LogError(f, "Unable to connect transport: ", err)
		f.mutex.Lock()
		f.state = Closed
		queue := f.queue
		f.queue = nil
		f.mutex.Unlock()
		// the first action is the caller's own, reported through err
		if len(queue) > 0 {
			failQueued(queue[1:])
		}
		return err
	}
	return nil
}

func failQueued(queue []queuedAction) {
	for _, action := range queue {
		if action.fail != nil {
			action.fail()
		}
	}
}

func (f *Face) onOpen() {
	for {
		f.mutex.Lock()
		if f.state != OpenRequested {
			f.mutex.Unlock()
			return
		}
		if len(f.queue) == 0 {
			f.state = Opened
			f.mutex.Unlock()
			break
		}
		queue := f.queue
		f.queue = nil
		f.mutex.Unlock()

		for _, action := range queue {
			action.run()
		}
	}
	core.LogInfo(f, "state: ", OpenRequested, " -> ", Opened)
}

func (f *Face) onClose() {
	f.mutex.Lock()
	old := f.state
	f.state = Closed
	queue := f.queue
	f.queue = nil
	f.mutex.Unlock()

	if old != Closed {
		core.LogInfo(f, "state: ", old, " -> ", Closed)
	}
	if len(queue) > 0 {
		core.LogWarn(f, "Transport closed before it opened, failing ", len(queue), " queued operations")
		failQueued(queue)
	}
}

// ExpressInterest sends a copy of interest with a fresh nonce and returns the ID of its pending
// Interest entry.
// Exactly one of onData, onTimeout or onNetworkNack is called for it, unless it is removed
// with RemovePendingInterest first. If onNetworkNack is nil, a Nack is ignored and the
// Interest times out instead.
func (f *Face) ExpressInterest(interest *ndn.Interest, onData OnData, onTimeout OnTimeout,
	onNetworkNack OnNetworkNack) (uint64, error) {
	interestCopy := interest.DeepCopy()
	interestCopy.SetNonce(f.timer.Nonce()[:4])
	wire := f.wireFormat.EncodeInterest(interestCopy)
	if len(wire) > f.maxPacketSize {
		return 0, ErrPacketTooLarge
	}

	id := f.nextEntryID()
	err := f.runWhenOpened(func() {
		if f.pit.Add(id, interestCopy, wire, onData, onTimeout, onNetworkNack) == nil {
			return
		}
		if err := f.transport.Send(wire); err != nil {
			core.LogWarn(f, "Unable to send Interest ", interestCopy.Name(), ": ", err)
		}
	}, func() {
		// never sent; the entry times out like any unanswered Interest
		f.pit.Add(id, interestCopy, wire, onData, onTimeout, onNetworkNack)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ExpressInterestName expresses an Interest for name. Selectors, lifetime and the other fields
// come from template if it is not nil; otherwise the lifetime is 4 seconds.
func (f *Face) ExpressInterestName(name *ndn.Name, template *ndn.Interest, onData OnData,
	onTimeout OnTimeout, onNetworkNack OnNetworkNack) (uint64, error) {
	var interest *ndn.Interest
	if template != nil {
		interest = template.DeepCopy()
		interest.SetName(name)
		interest.ResetNonce()
	} else {
		interest = ndn.NewInterest(name)
		interest.SetLifetime(ndn.DefaultInterestLifetime)
	}
	return f.ExpressInterest(interest, onData, onTimeout, onNetworkNack)
}

// RemovePendingInterest removes the pending Interest so that none of its callbacks is called.
// This may be called before the Interest has been sent.
func (f *Face) RemovePendingInterest(id uint64) {
	f.pit.RemovePendingInterest(id)
}

// SetInterestFilter routes incoming Interests matching filter to onInterest without
// registering a prefix with the forwarder. It returns the interest filter ID.
func (f *Face) SetInterestFilter(filter *ndn.InterestFilter, onInterest OnInterest) uint64 {
	id := f.nextEntryID()
	f.setInterestFilter(id, filter, onInterest)
	return id
}

func (f *Face) setInterestFilter(id uint64, filter *ndn.InterestFilter, onInterest OnInterest) {
	f.filters.SetInterestFilter(id, filter,
		func(prefix *ndn.Name, interest *ndn.Interest, filterID uint64, filter *ndn.InterestFilter) {
			onInterest(prefix, interest, f, filterID, filter)
		})
}

// UnsetInterestFilter removes the interest filter with the given ID.
func (f *Face) UnsetInterestFilter(id uint64) {
	f.filters.UnsetInterestFilter(id)
}

// PutData sends a Data packet, typically in reply to an Interest.
func (f *Face) PutData(data *ndn.Data) error {
	wire, _, _ := f.wireFormat.EncodeData(data)
	return f.Send(wire)
}

// PutNack sends a Nack for an incoming Interest.
func (f *Face) PutNack(interest *ndn.Interest, reason ndn.NackReason) error {
	packet := lpv2.NewNackPacket(reason, f.wireFormat.EncodeInterest(interest))
	return f.Send(f.wireFormat.EncodeLpPacket(packet))
}

// Send writes an encoded packet to the transport.
func (f *Face) Send(wire []byte) error {
	if len(wire) > f.maxPacketSize {
		return ErrPacketTooLarge
	}
	return f.runWhenOpened(func() {
		if err := f.transport.Send(wire); err != nil {
			core.LogWarn(f, "Unable to send packet: ", err)
		}
	}, nil)
}

// OnReceivedElement dispatches an element received from the transport. Data goes to the
// pending Interests it satisfies, Nacks to the pending Interest they refer to, and Interests
// to every matching interest filter.
func (f *Face) OnReceivedElement(element []byte) {
	packet, err := f.wireFormat.DecodeLpPacket(element)
	if err != nil {
		core.LogWarn(f, "Unable to decode received packet (", err, ") - DROP")
		return
	}
	if packet.IsIdle() {
		core.LogTrace(f, "Received IDLE frame - DROP")
		return
	}
	if packet.IsFragmented() {
		core.LogWarn(f, "Received fragmented LpPacket, reassembly is not supported - DROP")
		return
	}

	fragment := packet.Fragment()
	d := tlv.NewDecoder(fragment)
	switch {
	case d.PeekType(tlv.Interest, len(fragment)):
		if nack := packet.Nack(); nack != nil {
			f.dispatchNack(fragment, nack)
		} else {
			f.dispatchInterest(fragment)
		}
	case d.PeekType(tlv.Data, len(fragment)):
		if packet.Nack() != nil {
			core.LogWarn(f, "Received Nack with Data fragment - DROP")
			return
		}
		f.dispatchData(fragment)
	default:
		core.LogDebug(f, "Received packet of unknown type - DROP")
	}
}

func (f *Face) dispatchInterest(wire []byte) {
	interest, err := f.wireFormat.DecodeInterest(wire)
	if err != nil {
		core.LogWarn(f, "Unable to decode Interest (", err, ") - DROP")
		return
	}
	core.LogTrace(f, "OnIncomingInterest: ", interest.Name())

	matched := f.filters.GetMatchedFilters(interest)
	if len(matched) == 0 {
		core.LogDebug(f, "No interest filter for ", interest.Name(), " - DROP")
		return
	}
	for _, entry := range matched {
		entry.CallOnInterest(interest)
	}
}

func (f *Face) dispatchData(wire []byte) {
	data, err := f.wireFormat.DecodeData(wire)
	if err != nil {
		core.LogWarn(f, "Unable to decode Data (", err, ") - DROP")
		return
	}
	core.LogTrace(f, "OnIncomingData: ", data.Name())

	entries := f.pit.ExtractEntriesForExpressedInterest(data)
	if len(entries) == 0 {
		core.LogDebug(f, "Unsolicited Data ", data.Name(), " - DROP")
		return
	}
	for _, entry := range entries {
		entry.CallOnData(data)
	}
}

func (f *Face) dispatchNack(wire []byte, nack *ndn.NetworkNack) {
	core.LogTrace(f, "OnIncomingNack: ", nack)
	entries := f.pit.ExtractEntriesForNackInterest(wire)
	if len(entries) == 0 {
		core.LogDebug(f, "No pending Interest with a Nack callback for ", nack, " - DROP")
		return
	}
	for _, entry := range entries {
		entry.CallOnNetworkNack(nack)
	}
}

// Close closes the transport. Pending Interests are dropped without their callbacks being
// called, and later operations return ErrFaceClosed.
func (f *Face) Close() error {
	f.mutex.Lock()
	old := f.state
	f.state = Closed
	f.queue = nil
	f.mutex.Unlock()

	if old == Closed {
		return nil
	}
	core.LogInfo(f, "state: ", old, " -> ", Closed)
	f.pit.Clear()
	if old == Unopen {
		return nil
	}
	return f.transport.Close()
}
