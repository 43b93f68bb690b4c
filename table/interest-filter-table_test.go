/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table_test

import (
	"testing"

	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeName(t *testing.T, s string) *ndn.Name {
	n, err := ndn.NameFromString(s)
	require.NoError(t, err)
	return n
}

func TestInterestFilterTableMatch(t *testing.T) {
	ift := table.NewInterestFilterTable()
	var calls []uint64
	record := func(prefix *ndn.Name, interest *ndn.Interest, filterID uint64, filter *ndn.InterestFilter) {
		calls = append(calls, filterID)
	}
	regexFilter, err := ndn.NewInterestFilterWithRegex(makeName(t, "/hello"), "<world><>*")
	require.NoError(t, err)

	ift.SetInterestFilter(1, ndn.NewInterestFilter(makeName(t, "/hello")), record)
	ift.SetInterestFilter(2, ndn.NewInterestFilter(makeName(t, "/other")), record)
	ift.SetInterestFilter(3, regexFilter, func(*ndn.Name, *ndn.Interest, uint64, *ndn.InterestFilter) {
		panic("callback failure")
	})
	ift.SetInterestFilter(4, ndn.NewInterestFilter(makeName(t, "/")), record)
	assert.Equal(t, 4, ift.Size())

	interest := ndn.NewInterest(makeName(t, "/hello/world"))
	matched := ift.GetMatchedFilters(interest)
	require.Len(t, matched, 3)
	assert.Equal(t, uint64(1), matched[0].ID())
	assert.Equal(t, uint64(3), matched[1].ID())
	assert.Equal(t, uint64(4), matched[2].ID())

	// A panicking callback does not stop the others
	for _, e := range matched {
		e.CallOnInterest(interest)
	}
	assert.Equal(t, []uint64{1, 4}, calls)
}

func TestInterestFilterTableUnset(t *testing.T) {
	ift := table.NewInterestFilterTable()
	onInterest := func(*ndn.Name, *ndn.Interest, uint64, *ndn.InterestFilter) {}
	ift.SetInterestFilter(1, ndn.NewInterestFilter(makeName(t, "/a")), onInterest)
	ift.SetInterestFilter(2, ndn.NewInterestFilter(makeName(t, "/a")), onInterest)
	ift.SetInterestFilter(1, ndn.NewInterestFilter(makeName(t, "/b")), onInterest)

	ift.UnsetInterestFilter(1)
	ift.UnsetInterestFilter(1)
	ift.UnsetInterestFilter(99)
	assert.Equal(t, 1, ift.Size())
	matched := ift.GetMatchedFilters(ndn.NewInterest(makeName(t, "/a")))
	require.Len(t, matched, 1)
	assert.Equal(t, uint64(2), matched[0].ID())
}

func TestRegisteredPrefixTable(t *testing.T) {
	ift := table.NewInterestFilterTable()
	rpt := table.NewRegisteredPrefixTable(ift)
	onInterest := func(*ndn.Name, *ndn.Interest, uint64, *ndn.InterestFilter) {}

	assert.True(t, rpt.Add(1, makeName(t, "/a"), 2))
	ift.SetInterestFilter(2, ndn.NewInterestFilter(makeName(t, "/a")), onInterest)
	assert.True(t, rpt.Add(3, makeName(t, "/b"), 0))
	assert.Equal(t, 2, rpt.Size())
	require.NotNil(t, rpt.Entry(1))
	assert.Equal(t, "/a", rpt.Entry(1).Prefix().String())
	assert.Equal(t, uint64(2), rpt.Entry(1).RelatedFilterID())

	removed := rpt.RemoveRegisteredPrefix(1)
	require.NotNil(t, removed)
	assert.Equal(t, uint64(1), removed.ID())
	assert.Equal(t, 0, ift.Size())
	assert.Nil(t, rpt.Entry(1))

	// Removal requested before the registration completes
	assert.Nil(t, rpt.RemoveRegisteredPrefix(5))
	assert.False(t, rpt.Add(5, makeName(t, "/c"), 0))
	assert.Equal(t, 1, rpt.Size())
	assert.True(t, rpt.Add(5, makeName(t, "/c"), 0))
	assert.Equal(t, 2, rpt.Size())
}
