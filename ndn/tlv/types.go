/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

// TLV types for NDN packet format 0.2.
const (
	// Packet types
	Interest = 0x05
	Data     = 0x06

	// Name and components
	Name                          = 0x07
	ImplicitSha256DigestComponent = 0x01
	GenericNameComponent          = 0x08

	// Interest packets
	Selectors        = 0x09
	Nonce            = 0x0a
	InterestLifetime = 0x0c
	ForwardingHint   = 0x1e
	CanBePrefix      = 0x21
	HopLimit         = 0x22

	ApplicationParameters = 0x24

	// Interest/Selectors
	MinSuffixComponents       = 0x0d
	MaxSuffixComponents       = 0x0e
	PublisherPublicKeyLocator = 0x0f
	Exclude                   = 0x10
	ChildSelector             = 0x11
	MustBeFresh               = 0x12
	Any                       = 0x13

	// Data packets
	MetaInfo       = 0x14
	Content        = 0x15
	SignatureInfo  = 0x16
	SignatureValue = 0x17

	// Data/MetaInfo
	ContentType     = 0x18
	FreshnessPeriod = 0x19
	FinalBlockID    = 0x1a

	// Signature
	SignatureType = 0x1b
	KeyLocator    = 0x1c
	KeyDigest     = 0x1d

	// Link Object
	Delegation = 0x1f
	Preference = 0x1e
)
