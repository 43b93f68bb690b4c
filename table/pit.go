/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"bytes"
	"strconv"
	"sync"

	"github.com/cespare/xxhash"
	"github.com/named-data/ndnc/core"
	"github.com/named-data/ndnc/ndn"
	"golang.org/x/exp/slices"
)

// OnData is called with the expressed Interest and the Data that satisfied it.
type OnData func(interest *ndn.Interest, data *ndn.Data)

// OnTimeout is called with the expressed Interest when its lifetime runs out.
type OnTimeout func(interest *ndn.Interest)

// OnNetworkNack is called with the expressed Interest and the Nack received for it.
type OnNetworkNack func(interest *ndn.Interest, nack *ndn.NetworkNack)

// PitEntry is an Interest waiting for Data.
type PitEntry struct {
	id            uint64
	interest      *ndn.Interest
	wire          []byte
	fingerprint   uint64
	onData        OnData
	onTimeout     OnTimeout
	onNetworkNack OnNetworkNack
	cancelTimeout func() error
}

// ID returns the pending Interest ID.
func (e *PitEntry) ID() uint64 {
	return e.id
}

// Interest returns the expressed Interest.
func (e *PitEntry) Interest() *ndn.Interest {
	return e.interest
}

// Wire returns the encoding the Interest was sent with.
func (e *PitEntry) Wire() []byte {
	return e.wire
}

// CallOnData invokes the Data callback. A panic in the callback is logged.
func (e *PitEntry) CallOnData(data *ndn.Data) {
	if e.onData == nil {
		return
	}
	core.SafeCall(e, "onData", func() {
		e.onData(e.interest, data)
	})
}

// CallOnNetworkNack invokes the Nack callback. A panic in the callback is logged.
func (e *PitEntry) CallOnNetworkNack(nack *ndn.NetworkNack) {
	if e.onNetworkNack == nil {
		return
	}
	core.SafeCall(e, "onNetworkNack", func() {
		e.onNetworkNack(e.interest, nack)
	})
}

func (e *PitEntry) callOnTimeout() {
	if e.onTimeout == nil {
		return
	}
	core.SafeCall(e, "onTimeout", func() {
		e.onTimeout(e.interest)
	})
}

func (e *PitEntry) String() string {
	return "PitEntry(ID=" + strconv.FormatUint(e.id, 10) + ", " + e.interest.Name().String() + ")"
}

// PendingInterestTable holds the Interests a Face has expressed and not yet seen answered.
// Entries are kept in insertion order. Callbacks are never invoked with the table locked.
type PendingInterestTable struct {
	mutex          sync.Mutex
	timer          core.Timer
	entries        []*PitEntry
	removeRequests map[uint64]struct{}
}

// NewPendingInterestTable creates an empty PIT whose timeouts are scheduled on timer.
func NewPendingInterestTable(timer core.Timer) *PendingInterestTable {
	return &PendingInterestTable{
		timer:          timer,
		removeRequests: make(map[uint64]struct{}),
	}
}

func (p *PendingInterestTable) String() string {
	return "PIT"
}

// Add inserts an entry for interest, sent as wire, and starts its lifetime timer.
// If RemovePendingInterest(id) was already called, nothing is added and nil is returned.
func (p *PendingInterestTable) Add(id uint64, interest *ndn.Interest, wire []byte,
	onData OnData, onTimeout OnTimeout, onNetworkNack OnNetworkNack) *PitEntry {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, ok := p.removeRequests[id]; ok {
		delete(p.removeRequests, id)
		core.LogDebug(p, "Pending Interest ", id, " was removed before it was added")
		return nil
	}

	entry := &PitEntry{
		id:            id,
		interest:      interest,
		wire:          wire,
		fingerprint:   xxhash.Sum64(wire),
		onData:        onData,
		onTimeout:     onTimeout,
		onNetworkNack: onNetworkNack,
	}
	p.entries = append(p.entries, entry)
	entry.cancelTimeout = p.timer.Schedule(interest.LifetimeOrDefault(), func() {
		p.expire(entry)
	})
	core.LogTrace(p, "Added ", entry)
	return entry
}

func (p *PendingInterestTable) expire(entry *PitEntry) {
	if !p.remove(entry) {
		return
	}
	core.LogDebug(p, "Timeout for ", entry)
	entry.callOnTimeout()
}

// remove deletes entry if it is still present and reports whether it was.
func (p *PendingInterestTable) remove(entry *PitEntry) bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	i := slices.Index(p.entries, entry)
	if i < 0 {
		return false
	}
	p.entries = slices.Delete(p.entries, i, i+1)
	return true
}

// ExtractEntriesForExpressedInterest removes and returns every entry whose Interest is
// satisfied by data, in insertion order. Their timers are stopped.
func (p *PendingInterestTable) ExtractEntriesForExpressedInterest(data *ndn.Data) []*PitEntry {
	return p.extract(func(e *PitEntry) bool {
		return e.interest.MatchesData(data)
	})
}

// ExtractEntriesForNackInterest removes and returns every entry with a Nack callback whose
// Interest was sent with exactly the encoding wire. Entries without a Nack callback stay.
func (p *PendingInterestTable) ExtractEntriesForNackInterest(wire []byte) []*PitEntry {
	fingerprint := xxhash.Sum64(wire)
	return p.extract(func(e *PitEntry) bool {
		return e.onNetworkNack != nil && e.fingerprint == fingerprint && bytes.Equal(e.wire, wire)
	})
}

func (p *PendingInterestTable) extract(match func(e *PitEntry) bool) []*PitEntry {
	p.mutex.Lock()
	var extracted []*PitEntry
	kept := p.entries[:0]
	for _, e := range p.entries {
		if match(e) {
			extracted = append(extracted, e)
		} else {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(p.entries); i++ {
		p.entries[i] = nil
	}
	p.entries = kept
	p.mutex.Unlock()

	for _, e := range extracted {
		e.cancelTimeout()
	}
	return extracted
}

// RemovePendingInterest removes every entry with the given ID and stops their timers. If there
// is no such entry yet, the ID is remembered so that a later Add with it is dropped.
func (p *PendingInterestTable) RemovePendingInterest(id uint64) {
	p.mutex.Lock()
	var removed []*PitEntry
	hasID := func(e *PitEntry) bool { return e.id == id }
	for i := slices.IndexFunc(p.entries, hasID); i >= 0; i = slices.IndexFunc(p.entries, hasID) {
		removed = append(removed, p.entries[i])
		p.entries = slices.Delete(p.entries, i, i+1)
	}
	if len(removed) == 0 {
		p.removeRequests[id] = struct{}{}
	}
	p.mutex.Unlock()

	for _, e := range removed {
		e.cancelTimeout()
		core.LogTrace(p, "Removed ", e)
	}
}

// Clear removes every entry without invoking any callback.
func (p *PendingInterestTable) Clear() {
	p.mutex.Lock()
	entries := p.entries
	p.entries = nil
	p.mutex.Unlock()

	for _, e := range entries {
		e.cancelTimeout()
	}
}

// Size returns the number of pending Interests.
func (p *PendingInterestTable) Size() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.entries)
}
