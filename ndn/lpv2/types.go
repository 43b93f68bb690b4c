/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package lpv2

// TLV types for NDNLPv2.
const (
	Fragment       = 0x50
	Sequence       = 0x51
	FragIndex      = 0x52
	FragCount      = 0x53
	PitToken       = 0x62
	LpPacket       = 0x64
	Nack           = 0x0320
	NackReason     = 0x0321
	NextHopFaceID  = 0x0330
	IncomingFaceID = 0x0331
	CongestionMark = 0x0340
	Ack            = 0x0344
	TxSequence     = 0x0348
	NonDiscovery   = 0x034c
)

// IsCritical returns whether an unknown NDNLPv2 header field must cause the frame to be dropped.
// Fields in 800-959 whose two low bits are not zero may be ignored.
func IsCritical(tlvType uint64) bool {
	if tlvType >= 800 && tlvType <= 959 {
		return tlvType&0x3 == 0
	}
	return true
}
