/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"crypto/sha256"
	"errors"
	"strconv"

	"github.com/named-data/ndnc/ndn/tlv"
)

// Data represents an NDN Data packet.
type Data struct {
	name     *Name
	metaInfo *MetaInfo
	content  []byte
	sigInfo  *SignatureInfo
	sigValue []byte

	// wire is the encoding this packet was decoded from, if any.
	wire []byte
}

// NewData creates a new Data packet with the given name and content.
func NewData(name *Name, content []byte) *Data {
	d := new(Data)
	d.name = name.DeepCopy()
	d.metaInfo = NewMetaInfo()
	d.content = make([]byte, len(content))
	copy(d.content, content)
	d.sigInfo = NewSignatureInfo(SignatureDigestSha256, nil)
	return d
}

// DecodeData decodes a Data packet from its wire encoding. The packet keeps a reference to wire.
func DecodeData(wire []byte) (*Data, error) {
	dec := tlv.NewDecoder(wire)
	d, err := decodeData(dec, wire)
	if err != nil {
		return nil, tlv.NewDecodeError(dec.Offset(), err)
	}
	return d, nil
}

func decodeData(dec *tlv.Decoder, wire []byte) (*Data, error) {
	end, err := dec.ReadNestedTlvsStart(tlv.Data)
	if err != nil {
		return nil, err
	}

	d := new(Data)
	d.wire = wire[:end]
	mostRecentElem := 0
	for dec.Offset() < end {
		elemStart := dec.Offset()
		tlvType, value, err := dec.ReadTypeAndValue()
		if err != nil {
			return nil, err
		}
		switch tlvType {
		case tlv.Name:
			if mostRecentElem >= 1 {
				return nil, errors.New("Name is duplicate or out-of-order")
			}
			mostRecentElem = 1
			dec.Seek(elemStart)
			if d.name, err = DecodeName(dec); err != nil {
				return nil, err
			}
		case tlv.MetaInfo:
			if mostRecentElem >= 2 {
				return nil, errors.New("MetaInfo is duplicate or out-of-order")
			}
			mostRecentElem = 2
			dec.Seek(elemStart)
			if d.metaInfo, err = decodeMetaInfo(dec); err != nil {
				return nil, err
			}
		case tlv.Content:
			if mostRecentElem >= 3 {
				return nil, errors.New("Content is duplicate or out-or-order")
			}
			mostRecentElem = 3
			d.content = value
		case tlv.SignatureInfo:
			if mostRecentElem >= 4 {
				return nil, errors.New("SignatureInfo is duplicate or out-of-order")
			}
			mostRecentElem = 4
			dec.Seek(elemStart)
			if d.sigInfo, err = DecodeSignatureInfo(dec); err != nil {
				return nil, err
			}
		case tlv.SignatureValue:
			if mostRecentElem >= 5 {
				return nil, errors.New("SignatureValue is duplicate or out-of-order")
			}
			mostRecentElem = 5
			d.sigValue = value
		default:
			if tlv.IsCritical(tlvType) {
				return nil, tlv.ErrUnrecognizedCritical
			}
			// If non-critical, ignore
		}
	}

	if d.name == nil || d.sigInfo == nil {
		return nil, errors.New("Data missing required field")
	}
	if d.metaInfo == nil {
		d.metaInfo = NewMetaInfo()
	}
	return d, nil
}

func (d *Data) String() string {
	str := "Data(Name=" + d.name.String()
	if d.metaInfo != nil {
		str += ", " + d.metaInfo.String()
	}
	str += ", ContentLen=" + strconv.Itoa(len(d.content)) + ")"
	return str
}

// Encode returns the wire encoding of the Data packet, along with the range of the encoding
// covered by the signature (from the start of Name to the end of SignatureInfo).
func (d *Data) Encode() (wire []byte, signedBegin int, signedEnd int) {
	e := tlv.NewEncoder(len(d.content) + 256)
	e.WriteBlobTlv(tlv.SignatureValue, d.sigValue)
	afterSigInfo := e.Length()
	d.sigInfo.Encode(e)
	e.WriteBlobTlv(tlv.Content, d.content)
	d.metaInfo.encode(e)
	d.name.Encode(e)
	signedLength := e.Length()
	e.WriteTypeAndLength(tlv.Data, e.Length())

	wire = e.Output()
	signedBegin = len(wire) - signedLength
	signedEnd = len(wire) - afterSigInfo
	return wire, signedBegin, signedEnd
}

// Wire returns the encoding this packet was decoded from, or nil.
func (d *Data) Wire() []byte {
	return d.wire
}

// ImplicitDigest returns the SHA-256 digest of the wire encoding.
func (d *Data) ImplicitDigest() []byte {
	wire := d.wire
	if wire == nil {
		wire, _, _ = d.Encode()
	}
	digest := sha256.Sum256(wire)
	return digest[:]
}

// Name returns the name of the Data packet.
func (d *Data) Name() *Name {
	return d.name
}

// SetName sets the name of the Data packet.
func (d *Data) SetName(name *Name) {
	d.name = name.DeepCopy()
	d.wire = nil
}

// MetaInfo returns the MetaInfo of the Data packet.
func (d *Data) MetaInfo() *MetaInfo {
	return d.metaInfo
}

// SetMetaInfo sets the MetaInfo of the Data packet.
func (d *Data) SetMetaInfo(metaInfo *MetaInfo) {
	d.metaInfo = metaInfo
	d.wire = nil
}

// Content returns the content of the Data packet.
func (d *Data) Content() []byte {
	return d.content
}

// SetContent sets the content of the Data packet.
func (d *Data) SetContent(content []byte) {
	d.content = content
	d.wire = nil
}

// SignatureInfo returns the SignatureInfo of the Data packet.
func (d *Data) SignatureInfo() *SignatureInfo {
	return d.sigInfo
}

// SetSignatureInfo sets the SignatureInfo of the Data packet.
func (d *Data) SetSignatureInfo(sigInfo *SignatureInfo) {
	d.sigInfo = sigInfo
	d.wire = nil
}

// SignatureValue returns the SignatureValue of the Data packet.
func (d *Data) SignatureValue() []byte {
	return d.sigValue
}

// SetSignatureValue sets the SignatureValue of the Data packet.
func (d *Data) SetSignatureValue(sigValue []byte) {
	d.sigValue = sigValue
	d.wire = nil
}
