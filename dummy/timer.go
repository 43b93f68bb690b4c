/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package dummy provides a manually advanced timer and an in-memory transport for tests.
package dummy

import (
	"encoding/binary"
	"sort"
	"sync"
	"time"

	"github.com/named-data/ndnc/core"
)

type event struct {
	id uint64
	t  time.Time
	f  func()
}

// Timer is a core.Timer whose clock only moves when MoveForward is called.
type Timer struct {
	lock   sync.Mutex
	now    time.Time
	nextID uint64
	events []event

	nNonces uint64
}

var _ core.Timer = (*Timer)(nil)

// NewTimer creates a timer starting at the Unix epoch.
func NewTimer() *Timer {
	return &Timer{now: time.Unix(0, 0).UTC()}
}

// Now returns the current fake time.
func (tm *Timer) Now() time.Time {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	return tm.now
}

// MoveForward advances the clock by d and runs, in deadline order, every event that is due.
// Events scheduled by those callbacks run too if they fall due within the same step.
func (tm *Timer) MoveForward(d time.Duration) {
	tm.lock.Lock()
	tm.now = tm.now.Add(d)
	tm.lock.Unlock()

	for {
		e, ok := tm.popDue()
		if !ok {
			return
		}
		e.f()
	}
}

func (tm *Timer) popDue() (event, bool) {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	sort.SliceStable(tm.events, func(i, j int) bool {
		return tm.events[i].t.Before(tm.events[j].t)
	})
	if len(tm.events) == 0 || tm.events[0].t.After(tm.now) {
		return event{}, false
	}
	e := tm.events[0]
	tm.events = tm.events[1:]
	return e, true
}

// Schedule runs f once the clock has moved forward by at least d.
func (tm *Timer) Schedule(d time.Duration, f func()) func() error {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	tm.nextID++
	id := tm.nextID
	tm.events = append(tm.events, event{id: id, t: tm.now.Add(d), f: f})

	return func() error {
		tm.lock.Lock()
		defer tm.lock.Unlock()
		for i, e := range tm.events {
			if e.id == id {
				tm.events = append(tm.events[:i], tm.events[i+1:]...)
				return nil
			}
		}
		return core.ErrTimerStopped
	}
}

// Pending returns the number of events that have not fired or been canceled.
func (tm *Timer) Pending() int {
	tm.lock.Lock()
	defer tm.lock.Unlock()
	return len(tm.events)
}

// Nonce returns 01 02 03 04 05 06 07 08 on the first call. Each later call adds one to the
// first four bytes, so nonces differ while staying predictable.
func (tm *Timer) Nonce() []byte {
	tm.lock.Lock()
	n := tm.nNonces
	tm.nNonces++
	tm.lock.Unlock()

	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, 0x0102030405060708+n<<32)
	return nonce
}
