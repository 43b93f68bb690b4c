/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"strconv"
	"sync"

	"github.com/named-data/ndnc/core"
	"github.com/named-data/ndnc/ndn"
	"golang.org/x/exp/slices"
)

// OnInterest is called for an incoming Interest matching a filter.
type OnInterest func(prefix *ndn.Name, interest *ndn.Interest, filterID uint64, filter *ndn.InterestFilter)

// InterestFilterEntry routes matching incoming Interests to a callback.
type InterestFilterEntry struct {
	id         uint64
	filter     *ndn.InterestFilter
	onInterest OnInterest
}

// ID returns the interest filter ID.
func (e *InterestFilterEntry) ID() uint64 {
	return e.id
}

// Filter returns the filter.
func (e *InterestFilterEntry) Filter() *ndn.InterestFilter {
	return e.filter
}

// CallOnInterest invokes the callback. A panic in the callback is logged.
func (e *InterestFilterEntry) CallOnInterest(interest *ndn.Interest) {
	core.SafeCall(e, "onInterest", func() {
		e.onInterest(e.filter.Prefix(), interest, e.id, e.filter)
	})
}

func (e *InterestFilterEntry) String() string {
	return "InterestFilterEntry(ID=" + strconv.FormatUint(e.id, 10) + ", " + e.filter.String() + ")"
}

// InterestFilterTable holds the interest filters of a Face.
type InterestFilterTable struct {
	mutex   sync.Mutex
	entries []*InterestFilterEntry
}

// NewInterestFilterTable creates an empty table.
func NewInterestFilterTable() *InterestFilterTable {
	return new(InterestFilterTable)
}

func (t *InterestFilterTable) String() string {
	return "InterestFilterTable"
}

// SetInterestFilter adds a filter under id.
func (t *InterestFilterTable) SetInterestFilter(id uint64, filter *ndn.InterestFilter, onInterest OnInterest) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.entries = append(t.entries, &InterestFilterEntry{id: id, filter: filter, onInterest: onInterest})
}

// GetMatchedFilters returns every entry whose filter matches the Interest name, in insertion order.
func (t *InterestFilterTable) GetMatchedFilters(interest *ndn.Interest) []*InterestFilterEntry {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	var matched []*InterestFilterEntry
	for _, e := range t.entries {
		if e.filter.DoesMatch(interest.Name()) {
			matched = append(matched, e)
		}
	}
	return matched
}

// UnsetInterestFilter removes every filter with the given ID. An unknown ID is ignored.
func (t *InterestFilterTable) UnsetInterestFilter(id uint64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	n := len(t.entries)
	hasID := func(e *InterestFilterEntry) bool { return e.id == id }
	for i := slices.IndexFunc(t.entries, hasID); i >= 0; i = slices.IndexFunc(t.entries, hasID) {
		t.entries = slices.Delete(t.entries, i, i+1)
	}
	if len(t.entries) == n {
		core.LogDebug(t, "UnsetInterestFilter: no entry with ID ", id)
	}
}

// Size returns the number of filters.
func (t *InterestFilterTable) Size() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.entries)
}
