/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"strconv"
	"strings"

	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/tlv"
)

// ControlParameters represents the parameters of a management command.
// A nil field is omitted from the encoding.
type ControlParameters struct {
	Name                *ndn.Name
	FaceID              *uint64
	URI                 string
	LocalControlFeature *uint64
	Origin              *uint64
	Cost                *uint64
	// Flags is only encoded if it differs from DefaultFlags.
	Flags            *uint64
	Strategy         *ndn.Name
	ExpirationPeriod *uint64
}

// NewControlParameters creates a ControlParameters for the given name.
func NewControlParameters(name *ndn.Name) *ControlParameters {
	c := new(ControlParameters)
	if name != nil {
		c.Name = name.DeepCopy()
	}
	return c
}

// SetRegistrationOptions sets Flags and Origin from the options.
func (c *ControlParameters) SetRegistrationOptions(options *RegistrationOptions) {
	if options == nil {
		return
	}
	flags := options.Flags()
	c.Flags = &flags
	if options.Origin != nil {
		origin := *options.Origin
		c.Origin = &origin
	}
}

// RegistrationOptions returns the options carried by Flags and Origin.
func (c *ControlParameters) RegistrationOptions() *RegistrationOptions {
	options := NewRegistrationOptions()
	if c.Flags != nil {
		options.SetFlags(*c.Flags)
	}
	options.Origin = c.Origin
	return options
}

// DecodeControlParameters decodes a ControlParameters element at the decoder's offset.
// Fields this library does not use are skipped.
func DecodeControlParameters(d *tlv.Decoder) (*ControlParameters, error) {
	end, err := d.ReadNestedTlvsStart(tlv.ControlParameters)
	if err != nil {
		return nil, err
	}

	c := new(ControlParameters)
	if d.PeekType(tlv.Name, end) {
		if c.Name, err = ndn.DecodeName(d); err != nil {
			return nil, err
		}
	}
	if c.FaceID, err = d.ReadOptionalNonNegativeIntegerTlv(tlv.FaceID, end); err != nil {
		return nil, err
	}
	uri, err := d.ReadOptionalBlobTlv(tlv.URI, end)
	if err != nil {
		return nil, err
	}
	c.URI = string(uri)
	if err = d.SkipOptionalTlv(tlv.LocalURI, end); err != nil {
		return nil, err
	}
	if c.LocalControlFeature, err = d.ReadOptionalNonNegativeIntegerTlv(tlv.LocalControlFeature, end); err != nil {
		return nil, err
	}
	if c.Origin, err = d.ReadOptionalNonNegativeIntegerTlv(tlv.Origin, end); err != nil {
		return nil, err
	}
	if c.Cost, err = d.ReadOptionalNonNegativeIntegerTlv(tlv.Cost, end); err != nil {
		return nil, err
	}
	for _, skipped := range []uint64{tlv.Capacity, tlv.Count, tlv.BaseCongestionMarkingInterval,
		tlv.DefaultCongestionThreshold, tlv.MTU} {
		if err = d.SkipOptionalTlv(skipped, end); err != nil {
			return nil, err
		}
	}
	if c.Flags, err = d.ReadOptionalNonNegativeIntegerTlv(tlv.Flags, end); err != nil {
		return nil, err
	}
	if err = d.SkipOptionalTlv(tlv.Mask, end); err != nil {
		return nil, err
	}
	if d.PeekType(tlv.Strategy, end) {
		strategyEnd, err := d.ReadNestedTlvsStart(tlv.Strategy)
		if err != nil {
			return nil, err
		}
		if c.Strategy, err = ndn.DecodeName(d); err != nil {
			return nil, err
		}
		if err = d.FinishNestedTlvs(strategyEnd, false); err != nil {
			return nil, err
		}
	}
	if c.ExpirationPeriod, err = d.ReadOptionalNonNegativeIntegerTlv(tlv.ExpirationPeriod, end); err != nil {
		return nil, err
	}
	if err = d.FinishNestedTlvs(end, false); err != nil {
		return nil, err
	}
	return c, nil
}

// DecodeControlParametersWire decodes a ControlParameters from a complete wire encoding.
func DecodeControlParametersWire(wire []byte) (*ControlParameters, error) {
	return DecodeControlParameters(tlv.NewDecoder(wire))
}

// Encode prepends the ControlParameters element to the encoder.
func (c *ControlParameters) Encode(e *tlv.Encoder) {
	e.WriteNested(tlv.ControlParameters, func(e *tlv.Encoder) {
		e.WriteOptionalNonNegativeIntegerTlv(tlv.ExpirationPeriod, c.ExpirationPeriod)
		if c.Strategy.Size() > 0 {
			e.WriteNested(tlv.Strategy, c.Strategy.Encode)
		}
		if c.Flags != nil && *c.Flags != DefaultFlags {
			e.WriteNonNegativeIntegerTlv(tlv.Flags, *c.Flags)
		}
		e.WriteOptionalNonNegativeIntegerTlv(tlv.Cost, c.Cost)
		e.WriteOptionalNonNegativeIntegerTlv(tlv.Origin, c.Origin)
		e.WriteOptionalNonNegativeIntegerTlv(tlv.LocalControlFeature, c.LocalControlFeature)
		if c.URI != "" {
			e.WriteBlobTlv(tlv.URI, []byte(c.URI))
		}
		e.WriteOptionalNonNegativeIntegerTlv(tlv.FaceID, c.FaceID)
		if c.Name != nil {
			c.Name.Encode(e)
		}
	})
}

// Wire returns the wire encoding of the ControlParameters.
func (c *ControlParameters) Wire() []byte {
	e := tlv.NewEncoder(128)
	c.Encode(e)
	return e.Output()
}

func (c *ControlParameters) String() string {
	parts := make([]string, 0, 9)
	if c.Name != nil {
		parts = append(parts, "Name="+c.Name.String())
	}
	appendUint := func(field string, v *uint64) {
		if v != nil {
			parts = append(parts, field+"="+strconv.FormatUint(*v, 10))
		}
	}
	appendUint("FaceId", c.FaceID)
	if c.URI != "" {
		parts = append(parts, "Uri="+c.URI)
	}
	appendUint("LocalControlFeature", c.LocalControlFeature)
	appendUint("Origin", c.Origin)
	appendUint("Cost", c.Cost)
	appendUint("Flags", c.Flags)
	if c.Strategy != nil {
		parts = append(parts, "Strategy="+c.Strategy.String())
	}
	appendUint("ExpirationPeriod", c.ExpirationPeriod)
	return "ControlParameters(" + strings.Join(parts, ", ") + ")"
}
