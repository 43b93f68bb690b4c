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

// RegisteredPrefixEntry is a prefix the forwarder accepted a registration for.
type RegisteredPrefixEntry struct {
	id              uint64
	prefix          *ndn.Name
	relatedFilterID uint64
}

// ID returns the registered prefix ID.
func (e *RegisteredPrefixEntry) ID() uint64 {
	return e.id
}

// Prefix returns the registered prefix.
func (e *RegisteredPrefixEntry) Prefix() *ndn.Name {
	return e.prefix
}

// RelatedFilterID returns the ID of the interest filter created with the registration, or 0.
func (e *RegisteredPrefixEntry) RelatedFilterID() uint64 {
	return e.relatedFilterID
}

func (e *RegisteredPrefixEntry) String() string {
	return "RegisteredPrefixEntry(ID=" + strconv.FormatUint(e.id, 10) + ", " + e.prefix.String() + ")"
}

// RegisteredPrefixTable holds the registered prefixes of a Face. Removing a prefix also unsets
// its related interest filter.
type RegisteredPrefixTable struct {
	mutex          sync.Mutex
	filters        *InterestFilterTable
	entries        []*RegisteredPrefixEntry
	removeRequests map[uint64]struct{}
}

// NewRegisteredPrefixTable creates an empty table that cascades removals into filters.
func NewRegisteredPrefixTable(filters *InterestFilterTable) *RegisteredPrefixTable {
	return &RegisteredPrefixTable{
		filters:        filters,
		removeRequests: make(map[uint64]struct{}),
	}
}

func (t *RegisteredPrefixTable) String() string {
	return "RegisteredPrefixTable"
}

// Add records a registration. relatedFilterID is 0 if no filter goes with it.
// It returns false, adding nothing, if RemoveRegisteredPrefix(id) was already called.
func (t *RegisteredPrefixTable) Add(id uint64, prefix *ndn.Name, relatedFilterID uint64) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if _, ok := t.removeRequests[id]; ok {
		delete(t.removeRequests, id)
		core.LogDebug(t, "Registered prefix ", id, " was removed before it was added")
		return false
	}
	t.entries = append(t.entries, &RegisteredPrefixEntry{id: id, prefix: prefix.DeepCopy(), relatedFilterID: relatedFilterID})
	return true
}

// RemoveRegisteredPrefix removes the entry with the given ID and unsets its related filter.
// If there is no such entry yet, the ID is remembered so that a later Add with it is refused.
// The removed entry is returned, or nil.
func (t *RegisteredPrefixTable) RemoveRegisteredPrefix(id uint64) *RegisteredPrefixEntry {
	t.mutex.Lock()
	var removed *RegisteredPrefixEntry
	if i := t.index(id); i >= 0 {
		removed = t.entries[i]
		t.entries = slices.Delete(t.entries, i, i+1)
	} else {
		t.removeRequests[id] = struct{}{}
	}
	t.mutex.Unlock()

	if removed != nil && removed.relatedFilterID != 0 {
		t.filters.UnsetInterestFilter(removed.relatedFilterID)
	}
	return removed
}

// Entry returns the entry with the given ID, or nil.
func (t *RegisteredPrefixTable) Entry(id uint64) *RegisteredPrefixEntry {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if i := t.index(id); i >= 0 {
		return t.entries[i]
	}
	return nil
}

func (t *RegisteredPrefixTable) index(id uint64) int {
	return slices.IndexFunc(t.entries, func(e *RegisteredPrefixEntry) bool { return e.id == id })
}

// Size returns the number of registered prefixes.
func (t *RegisteredPrefixTable) Size() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.entries)
}
