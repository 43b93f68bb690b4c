/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package wire selects the codec a Face uses for packets and management messages.
package wire

import (
	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/lpv2"
	"github.com/named-data/ndnc/ndn/mgmt"
)

// Format encodes and decodes everything a Face puts on or takes off the wire.
type Format interface {
	EncodeInterest(interest *ndn.Interest) []byte
	DecodeInterest(wire []byte) (*ndn.Interest, error)
	// EncodeData also returns the signed portion of the encoding.
	EncodeData(data *ndn.Data) (wire []byte, signedBegin int, signedEnd int)
	DecodeData(wire []byte) (*ndn.Data, error)
	EncodeControlParameters(params *mgmt.ControlParameters) []byte
	DecodeControlParameters(wire []byte) (*mgmt.ControlParameters, error)
	EncodeControlResponse(response *mgmt.ControlResponse) []byte
	DecodeControlResponse(wire []byte) (*mgmt.ControlResponse, error)
	EncodeLpPacket(packet *lpv2.Packet) []byte
	DecodeLpPacket(wire []byte) (*lpv2.Packet, error)
}

// TLV is the NDN-TLV wire format.
type TLV struct{}

var _ Format = TLV{}

// Default is the wire format used when none is given.
var Default Format = TLV{}

// EncodeInterest encodes an Interest.
func (TLV) EncodeInterest(interest *ndn.Interest) []byte {
	return interest.Encode()
}

// DecodeInterest decodes an Interest.
func (TLV) DecodeInterest(wire []byte) (*ndn.Interest, error) {
	return ndn.DecodeInterest(wire)
}

// EncodeData encodes a Data packet.
func (TLV) EncodeData(data *ndn.Data) ([]byte, int, int) {
	return data.Encode()
}

// DecodeData decodes a Data packet.
func (TLV) DecodeData(wire []byte) (*ndn.Data, error) {
	return ndn.DecodeData(wire)
}

// EncodeControlParameters encodes a ControlParameters.
func (TLV) EncodeControlParameters(params *mgmt.ControlParameters) []byte {
	return params.Wire()
}

// DecodeControlParameters decodes a ControlParameters.
func (TLV) DecodeControlParameters(wire []byte) (*mgmt.ControlParameters, error) {
	return mgmt.DecodeControlParametersWire(wire)
}

// EncodeControlResponse encodes a ControlResponse.
func (TLV) EncodeControlResponse(response *mgmt.ControlResponse) []byte {
	return response.Encode()
}

// DecodeControlResponse decodes a ControlResponse.
func (TLV) DecodeControlResponse(wire []byte) (*mgmt.ControlResponse, error) {
	return mgmt.DecodeControlResponse(wire)
}

// EncodeLpPacket encodes an NDNLPv2 frame.
func (TLV) EncodeLpPacket(packet *lpv2.Packet) []byte {
	return packet.Encode()
}

// DecodeLpPacket decodes an NDNLPv2 frame or a bare network-layer packet.
func (TLV) DecodeLpPacket(wire []byte) (*lpv2.Packet, error) {
	return lpv2.DecodePacket(wire)
}
