/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"encoding/hex"
	"strconv"

	"github.com/named-data/ndnc/ndn/tlv"
)

// SignatureType values.
const (
	SignatureDigestSha256    uint64 = 0
	SignatureSha256WithRsa   uint64 = 1
	SignatureSha256WithEcdsa uint64 = 3
	SignatureHmacWithSha256  uint64 = 4
)

// KeyLocator identifies a signing key either by name or by digest.
type KeyLocator struct {
	Name      *Name
	KeyDigest []byte
}

func decodeKeyLocator(d *tlv.Decoder) (*KeyLocator, error) {
	end, err := d.ReadNestedTlvsStart(tlv.KeyLocator)
	if err != nil {
		return nil, err
	}
	k := new(KeyLocator)
	if d.PeekType(tlv.Name, end) {
		if k.Name, err = DecodeName(d); err != nil {
			return nil, err
		}
	} else if d.PeekType(tlv.KeyDigest, end) {
		digest, err := d.ReadBlobTlv(tlv.KeyDigest)
		if err != nil {
			return nil, err
		}
		k.KeyDigest = append([]byte(nil), digest...)
	}
	if err := d.FinishNestedTlvs(end, false); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *KeyLocator) encode(e *tlv.Encoder) {
	e.WriteNested(tlv.KeyLocator, func(e *tlv.Encoder) {
		if k.Name != nil {
			k.Name.Encode(e)
		} else if k.KeyDigest != nil {
			e.WriteBlobTlv(tlv.KeyDigest, k.KeyDigest)
		}
	})
}

func (k *KeyLocator) String() string {
	if k.Name != nil {
		return k.Name.String()
	}
	return "KeyDigest=" + hex.EncodeToString(k.KeyDigest)
}

// SignatureInfo holds the signature type and the optional key locator.
type SignatureInfo struct {
	signatureType uint64
	keyLocator    *KeyLocator
}

// NewSignatureInfo creates a SignatureInfo of the given type.
func NewSignatureInfo(signatureType uint64, keyLocator *KeyLocator) *SignatureInfo {
	return &SignatureInfo{signatureType: signatureType, keyLocator: keyLocator}
}

// DecodeSignatureInfo decodes a SignatureInfo element at the decoder's offset.
func DecodeSignatureInfo(d *tlv.Decoder) (*SignatureInfo, error) {
	end, err := d.ReadNestedTlvsStart(tlv.SignatureInfo)
	if err != nil {
		return nil, err
	}
	s := new(SignatureInfo)
	if s.signatureType, err = d.ReadNonNegativeIntegerTlv(tlv.SignatureType); err != nil {
		return nil, err
	}
	if d.PeekType(tlv.KeyLocator, end) {
		if s.keyLocator, err = decodeKeyLocator(d); err != nil {
			return nil, err
		}
	}
	if err := d.FinishNestedTlvs(end, true); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode prepends the SignatureInfo element to the encoder.
func (s *SignatureInfo) Encode(e *tlv.Encoder) {
	e.WriteNested(tlv.SignatureInfo, func(e *tlv.Encoder) {
		if s.keyLocator != nil {
			s.keyLocator.encode(e)
		}
		e.WriteNonNegativeIntegerTlv(tlv.SignatureType, s.signatureType)
	})
}

// Type returns the signature type.
func (s *SignatureInfo) Type() uint64 {
	return s.signatureType
}

// KeyLocator returns the key locator or nil.
func (s *SignatureInfo) KeyLocator() *KeyLocator {
	return s.keyLocator
}

func (s *SignatureInfo) String() string {
	str := "SignatureInfo(Type=" + strconv.FormatUint(s.signatureType, 10)
	if s.keyLocator != nil {
		str += ", KeyLocator=" + s.keyLocator.String()
	}
	return str + ")"
}
