/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package lpv2

import (
	"errors"

	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/tlv"
)

// Packet represents an NDNLPv2 frame.
type Packet struct {
	sequence       *uint64
	fragIndex      *uint64
	fragCount      *uint64
	pitToken       []byte
	nack           *ndn.NetworkNack
	nextHopFaceID  *uint64
	incomingFaceID *uint64
	congestionMark *uint64
	txSequence     *uint64
	acks           []uint64
	nonDiscovery   bool
	fragment       []byte
}

// NewPacket returns an NDNLPv2 frame carrying the provided network-layer packet.
func NewPacket(fragment []byte) *Packet {
	p := new(Packet)
	p.fragment = fragment
	return p
}

// NewIDLEPacket returns an NDNLPv2 IDLE frame.
func NewIDLEPacket() *Packet {
	return new(Packet)
}

// NewNackPacket returns a frame carrying a Nack with the given reason for the encoded Interest.
func NewNackPacket(reason ndn.NackReason, interest []byte) *Packet {
	p := NewPacket(interest)
	p.nack = ndn.NewNetworkNack(reason)
	return p
}

// DecodePacket decodes an NDNLPv2 frame. Anything other than an LpPacket is treated as a bare
// network-layer packet and becomes the fragment of an otherwise empty frame.
func DecodePacket(wire []byte) (*Packet, error) {
	d := tlv.NewDecoder(wire)
	p, err := decodePacket(d, wire)
	if err != nil {
		return nil, tlv.NewDecodeError(d.Offset(), err)
	}
	return p, nil
}

func decodePacket(d *tlv.Decoder, wire []byte) (*Packet, error) {
	if len(wire) == 0 {
		return nil, errors.New("wire is empty")
	}

	p := new(Packet)
	if !d.PeekType(LpPacket, len(wire)) {
		p.fragment = wire
		return p, nil
	}
	end, err := d.ReadNestedTlvsStart(LpPacket)
	if err != nil {
		return nil, err
	}

	for d.Offset() < end {
		tlvType, value, err := d.ReadTypeAndValue()
		if err != nil {
			return nil, err
		}
		if p.fragment != nil {
			return nil, errors.New("header field after Fragment")
		}
		switch tlvType {
		case Fragment:
			p.fragment = value
		case Sequence:
			if p.sequence, err = decodeNNIField(value, "Sequence"); err != nil {
				return nil, err
			}
		case FragIndex:
			if p.fragIndex, err = decodeNNIField(value, "FragIndex"); err != nil {
				return nil, err
			}
		case FragCount:
			if p.fragCount, err = decodeNNIField(value, "FragCount"); err != nil {
				return nil, err
			}
		case PitToken:
			p.pitToken = append([]byte(nil), value...)
		case Nack:
			if p.nack, err = decodeNack(value); err != nil {
				return nil, err
			}
		case NextHopFaceID:
			if p.nextHopFaceID, err = decodeNNIField(value, "NextHopFaceId"); err != nil {
				return nil, err
			}
		case IncomingFaceID:
			if p.incomingFaceID, err = decodeNNIField(value, "IncomingFaceId"); err != nil {
				return nil, err
			}
		case CongestionMark:
			if p.congestionMark, err = decodeNNIField(value, "CongestionMark"); err != nil {
				return nil, err
			}
		case Ack:
			ack, err := tlv.DecodeNNI(value)
			if err != nil {
				return nil, errors.New("unable to decode Ack")
			}
			p.acks = append(p.acks, ack)
		case TxSequence:
			if p.txSequence, err = decodeNNIField(value, "TxSequence"); err != nil {
				return nil, err
			}
		case NonDiscovery:
			p.nonDiscovery = true
		default:
			if IsCritical(tlvType) {
				return nil, tlv.ErrUnrecognizedCritical
			}
		}
	}

	return p, nil
}

func decodeNNIField(value []byte, field string) (*uint64, error) {
	v, err := tlv.DecodeNNI(value)
	if err != nil {
		return nil, errors.New("unable to decode " + field)
	}
	return &v, nil
}

func decodeNack(value []byte) (*ndn.NetworkNack, error) {
	d := tlv.NewDecoder(value)
	reason, err := d.ReadOptionalNonNegativeIntegerTlv(NackReason, len(value))
	if err != nil {
		return nil, errors.New("unable to decode NackReason")
	}
	if err := d.FinishNestedTlvs(len(value), false); err != nil {
		return nil, err
	}
	if reason == nil {
		return ndn.NewNetworkNack(ndn.NackReasonNone), nil
	}
	return ndn.NewNetworkNack(ndn.NackReason(*reason)), nil
}

// Encode returns the wire encoding of the frame. A frame with only a fragment is encoded bare.
func (p *Packet) Encode() []byte {
	if p.IsBare() {
		return p.fragment
	}

	e := tlv.NewEncoder(len(p.fragment) + 64)
	e.WriteNested(LpPacket, func(e *tlv.Encoder) {
		if p.fragment != nil {
			e.WriteBlobTlv(Fragment, p.fragment)
		}
		if p.nonDiscovery {
			e.WriteTypeAndLength(NonDiscovery, 0)
		}
		e.WriteOptionalNonNegativeIntegerTlv(TxSequence, p.txSequence)
		for i := len(p.acks) - 1; i >= 0; i-- {
			e.WriteNonNegativeIntegerTlv(Ack, p.acks[i])
		}
		e.WriteOptionalNonNegativeIntegerTlv(CongestionMark, p.congestionMark)
		e.WriteOptionalNonNegativeIntegerTlv(IncomingFaceID, p.incomingFaceID)
		e.WriteOptionalNonNegativeIntegerTlv(NextHopFaceID, p.nextHopFaceID)
		if p.nack != nil {
			e.WriteNested(Nack, func(e *tlv.Encoder) {
				if p.nack.Reason() != ndn.NackReasonNone {
					e.WriteNonNegativeIntegerTlv(NackReason, uint64(p.nack.Reason()))
				}
			})
		}
		e.WriteOptionalBlobTlv(PitToken, p.pitToken)
		e.WriteOptionalNonNegativeIntegerTlv(FragCount, p.fragCount)
		e.WriteOptionalNonNegativeIntegerTlv(FragIndex, p.fragIndex)
		e.WriteOptionalNonNegativeIntegerTlv(Sequence, p.sequence)
	})
	return e.Output()
}

// IsBare returns whether the frame only contains a fragment and has no header fields.
func (p *Packet) IsBare() bool {
	return p.fragment != nil && p.sequence == nil && p.fragIndex == nil && p.fragCount == nil &&
		len(p.pitToken) == 0 && p.nack == nil && p.nextHopFaceID == nil && p.incomingFaceID == nil &&
		p.congestionMark == nil && p.txSequence == nil && len(p.acks) == 0 && !p.nonDiscovery
}

// IsIdle returns whether the frame is an IDLE frame that does not contain a fragment.
func (p *Packet) IsIdle() bool {
	return p.fragment == nil
}

// IsFragmented returns whether the fragment is only one piece of a larger network-layer packet.
func (p *Packet) IsFragmented() bool {
	return p.fragCount != nil && *p.fragCount > 1
}

// Fragment returns the network-layer packet carried by the frame, or nil.
func (p *Packet) Fragment() []byte {
	return p.fragment
}

// Nack returns the Nack header, or nil if the frame is not a Nack.
func (p *Packet) Nack() *ndn.NetworkNack {
	return p.nack
}

// SetNack sets the Nack header.
func (p *Packet) SetNack(nack *ndn.NetworkNack) {
	p.nack = nack
}

// Sequence returns the Sequence of the frame or nil if it is unset.
func (p *Packet) Sequence() *uint64 {
	return p.sequence
}

// SetSequence sets the Sequence of the frame.
func (p *Packet) SetSequence(sequence uint64) {
	p.sequence = &sequence
}

// FragIndex returns the FragIndex of the frame or nil if it is unset.
func (p *Packet) FragIndex() *uint64 {
	return p.fragIndex
}

// FragCount returns the FragCount of the frame or nil if it is unset.
func (p *Packet) FragCount() *uint64 {
	return p.fragCount
}

// SetFragmentation sets FragIndex and FragCount.
func (p *Packet) SetFragmentation(index uint64, count uint64) {
	p.fragIndex = &index
	p.fragCount = &count
}

// PitToken returns the PitToken of the frame.
func (p *Packet) PitToken() []byte {
	return p.pitToken
}

// SetPitToken sets the PitToken of the frame.
func (p *Packet) SetPitToken(pitToken []byte) {
	p.pitToken = append([]byte(nil), pitToken...)
}

// NextHopFaceID returns the NextHopFaceId of the frame or nil if it is unset.
func (p *Packet) NextHopFaceID() *uint64 {
	return p.nextHopFaceID
}

// SetNextHopFaceID sets the NextHopFaceId of the frame.
func (p *Packet) SetNextHopFaceID(faceID uint64) {
	p.nextHopFaceID = &faceID
}

// IncomingFaceID returns the IncomingFaceId of the frame or nil if it is unset.
func (p *Packet) IncomingFaceID() *uint64 {
	return p.incomingFaceID
}

// SetIncomingFaceID sets the IncomingFaceId of the frame.
func (p *Packet) SetIncomingFaceID(faceID uint64) {
	p.incomingFaceID = &faceID
}

// CongestionMark returns the CongestionMark of the frame or nil if it is unset.
func (p *Packet) CongestionMark() *uint64 {
	return p.congestionMark
}

// SetCongestionMark sets the CongestionMark of the frame.
func (p *Packet) SetCongestionMark(mark uint64) {
	p.congestionMark = &mark
}

// TxSequence returns the TxSequence of the frame or nil if it is unset.
func (p *Packet) TxSequence() *uint64 {
	return p.txSequence
}

// Acks returns the acknowledged TxSequence numbers.
func (p *Packet) Acks() []uint64 {
	return p.acks
}

// NonDiscovery returns whether the NonDiscovery header is present.
func (p *Packet) NonDiscovery() bool {
	return p.nonDiscovery
}
