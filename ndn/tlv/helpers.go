/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"encoding/binary"
	"math"
)

// EncodeNNI encodes a non-negative integer value into a TLV value slice of 1, 2, 4, or 8 bytes.
func EncodeNNI(v uint64) []byte {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, v)
	return value[8-NNISize(v):]
}

// NNISize returns the minimal encoded size of a non-negative integer.
func NNISize(v uint64) int {
	if v <= math.MaxUint8 {
		return 1
	} else if v <= math.MaxUint16 {
		return 2
	} else if v <= math.MaxUint32 {
		return 4
	}
	return 8
}

// DecodeNNI decodes a non-negative integer value from a TLV value slice.
func DecodeNNI(value []byte) (uint64, error) {
	switch len(value) {
	case 1:
		return uint64(value[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(value)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(value)), nil
	case 8:
		return binary.BigEndian.Uint64(value), nil
	default:
		return 0, decodeError(0, ErrInvalidNNILength)
	}
}

// IsCritical returns whether a TLV type is critical.
func IsCritical(tlvType uint64) bool {
	if tlvType <= 31 {
		return true
	}
	return tlvType&0x1 == 1
}
