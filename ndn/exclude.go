/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"strings"

	"github.com/named-data/ndnc/ndn/tlv"
)

// ExcludeEntry is either a name component or the ANY wildcard.
type ExcludeEntry struct {
	Any       bool
	Component NameComponent
}

// Exclude is the ordered list of components and ANY ranges carried in Interest selectors.
type Exclude struct {
	entries []ExcludeEntry
}

// NewExclude creates an empty Exclude.
func NewExclude() *Exclude {
	return new(Exclude)
}

// AppendAny appends the ANY wildcard.
func (x *Exclude) AppendAny() *Exclude {
	x.entries = append(x.entries, ExcludeEntry{Any: true})
	return x
}

// AppendComponent appends a component.
func (x *Exclude) AppendComponent(c NameComponent) *Exclude {
	x.entries = append(x.entries, ExcludeEntry{Component: c})
	return x
}

// Size returns the number of entries.
func (x *Exclude) Size() int {
	if x == nil {
		return 0
	}
	return len(x.entries)
}

// Entries returns the entries.
func (x *Exclude) Entries() []ExcludeEntry {
	return x.entries
}

// Matches returns whether the component is excluded, either listed explicitly or
// inside a range bounded by ANY.
func (x *Exclude) Matches(c NameComponent) bool {
	if x == nil {
		return false
	}
	for i := 0; i < len(x.entries); i++ {
		if !x.entries[i].Any {
			if c.Equals(x.entries[i].Component) {
				return true
			}
			continue
		}

		var lowerBound *NameComponent
		if i > 0 {
			lowerBound = &x.entries[i-1].Component
		}
		// Skip over consecutive ANY entries to find the upper bound
		var upperBound *NameComponent
		iUpperBound := i + 1
		for ; iUpperBound < len(x.entries); iUpperBound++ {
			if !x.entries[iUpperBound].Any {
				upperBound = &x.entries[iUpperBound].Component
				break
			}
		}

		if upperBound != nil {
			if lowerBound != nil {
				if c.Compare(*lowerBound) > 0 && c.Compare(*upperBound) < 0 {
					return true
				}
			} else if c.Compare(*upperBound) < 0 {
				return true
			}
			i = iUpperBound - 1
		} else {
			if lowerBound == nil || c.Compare(*lowerBound) > 0 {
				return true
			}
		}
	}
	return false
}

func (x *Exclude) String() string {
	parts := make([]string, 0, len(x.entries))
	for _, entry := range x.entries {
		if entry.Any {
			parts = append(parts, "*")
		} else {
			parts = append(parts, entry.Component.String())
		}
	}
	return strings.Join(parts, ",")
}

// DeepCopy returns a deep copy.
func (x *Exclude) DeepCopy() *Exclude {
	if x == nil {
		return nil
	}
	out := &Exclude{entries: make([]ExcludeEntry, len(x.entries))}
	for i, entry := range x.entries {
		out.entries[i] = ExcludeEntry{Any: entry.Any, Component: entry.Component.DeepCopy()}
	}
	return out
}

func (x *Exclude) encode(e *tlv.Encoder) {
	e.WriteNested(tlv.Exclude, func(e *tlv.Encoder) {
		for i := len(x.entries) - 1; i >= 0; i-- {
			if x.entries[i].Any {
				e.WriteTypeAndLength(tlv.Any, 0)
			} else {
				x.entries[i].Component.encode(e)
			}
		}
	})
}

func decodeExclude(d *tlv.Decoder) (*Exclude, error) {
	end, err := d.ReadNestedTlvsStart(tlv.Exclude)
	if err != nil {
		return nil, err
	}
	x := new(Exclude)
	for d.Offset() < end {
		if d.PeekType(tlv.Any, end) {
			if _, err := d.ReadBooleanTlv(tlv.Any, end); err != nil {
				return nil, err
			}
			x.AppendAny()
			continue
		}
		tlvType, value, err := d.ReadTypeAndValue()
		if err != nil {
			return nil, err
		}
		x.AppendComponent(NewNameComponent(tlvType, append([]byte(nil), value...)))
	}
	if err := d.FinishNestedTlvs(end, false); err != nil {
		return nil, err
	}
	return x, nil
}
