/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"strconv"

	"github.com/named-data/ndnc/ndn/tlv"
)

// Delegation is a single preference/name pair in a ForwardingHint.
type Delegation struct {
	preference uint64
	name       *Name
}

// NewDelegation creates a new delegation.
func NewDelegation(preference uint64, name *Name) *Delegation {
	return &Delegation{preference: preference, name: name.DeepCopy()}
}

func decodeDelegation(d *tlv.Decoder) (*Delegation, error) {
	end, err := d.ReadNestedTlvsStart(tlv.Delegation)
	if err != nil {
		return nil, err
	}
	delegation := new(Delegation)
	if delegation.preference, err = d.ReadNonNegativeIntegerTlv(tlv.Preference); err != nil {
		return nil, err
	}
	if delegation.name, err = DecodeName(d); err != nil {
		return nil, err
	}
	if err := d.FinishNestedTlvs(end, false); err != nil {
		return nil, err
	}
	return delegation, nil
}

func (d *Delegation) String() string {
	return "Delegation(" + strconv.FormatUint(d.preference, 10) + ", " + d.name.String() + ")"
}

// DeepCopy returns a deep copy of the delegation.
func (d *Delegation) DeepCopy() *Delegation {
	return NewDelegation(d.preference, d.name)
}

// Preference returns the preference set in the delegation.
func (d *Delegation) Preference() uint64 {
	return d.preference
}

// Name returns the name set in the delegation.
func (d *Delegation) Name() *Name {
	return d.name
}

func (d *Delegation) encode(e *tlv.Encoder) {
	e.WriteNested(tlv.Delegation, func(e *tlv.Encoder) {
		d.name.Encode(e)
		e.WriteNonNegativeIntegerTlv(tlv.Preference, d.preference)
	})
}
