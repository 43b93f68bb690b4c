/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import "strconv"

// NackReason is the reason code carried in an NDNLPv2 Nack.
type NackReason uint64

// Nack reason codes.
const (
	NackReasonNone       NackReason = 0
	NackReasonCongestion NackReason = 50
	NackReasonDuplicate  NackReason = 100
	NackReasonNoRoute    NackReason = 150
)

func (r NackReason) String() string {
	switch r {
	case NackReasonNone:
		return "None"
	case NackReasonCongestion:
		return "Congestion"
	case NackReasonDuplicate:
		return "Duplicate"
	case NackReasonNoRoute:
		return "NoRoute"
	default:
		return "Other(" + strconv.FormatUint(uint64(r), 10) + ")"
	}
}

// NetworkNack is a network-layer negative acknowledgement of an Interest.
type NetworkNack struct {
	reason NackReason
}

// NewNetworkNack creates a NetworkNack with the given reason.
func NewNetworkNack(reason NackReason) *NetworkNack {
	return &NetworkNack{reason: reason}
}

// Reason returns the reason. Codes other than the known ones are returned as-is.
func (n *NetworkNack) Reason() NackReason {
	return n.reason
}

// IsOtherReason returns whether the reason is not one of the known codes.
func (n *NetworkNack) IsOtherReason() bool {
	switch n.reason {
	case NackReasonNone, NackReasonCongestion, NackReasonDuplicate, NackReasonNoRoute:
		return false
	}
	return true
}

func (n *NetworkNack) String() string {
	return "NetworkNack(Reason=" + n.reason.String() + ")"
}
