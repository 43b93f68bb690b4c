/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import (
	"crypto/rand"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// Timer schedules callbacks and supplies the current time and random nonces.
type Timer interface {
	// Now returns the current time.
	Now() time.Time
	// Schedule runs f once after d and returns a function that cancels it.
	// Canceling an event that already fired or was canceled returns an error.
	Schedule(d time.Duration, f func()) func() error
	// Nonce returns 8 random bytes.
	Nonce() []byte
}

// ClockTimer is a Timer backed by a clock.Clock.
type ClockTimer struct {
	clock clock.Clock
}

// NewTimer creates a Timer on the given clock. Use clock.New() for wall time.
func NewTimer(c clock.Clock) *ClockTimer {
	return &ClockTimer{clock: c}
}

// Now returns the current time.
func (t *ClockTimer) Now() time.Time {
	return t.clock.Now()
}

// Schedule runs f after d on its own goroutine.
func (t *ClockTimer) Schedule(d time.Duration, f func()) func() error {
	var done int32
	timer := t.clock.AfterFunc(d, func() {
		if atomic.CompareAndSwapInt32(&done, 0, 1) {
			f()
		}
	})
	return func() error {
		if !atomic.CompareAndSwapInt32(&done, 0, 1) {
			return ErrTimerStopped
		}
		timer.Stop()
		return nil
	}
}

// Nonce returns 8 random bytes.
func (t *ClockTimer) Nonce() []byte {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		LogWarn("Timer", "Unable to read random nonce: ", err)
	}
	return buf
}
