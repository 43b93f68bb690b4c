/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"encoding/binary"
)

// EncodeVarNum encodes a non-negative integer as a TLV VAR-NUMBER.
func EncodeVarNum(in uint64) []byte {
	bytes := make([]byte, VarNumSize(in))
	putVarNum(bytes, in)
	return bytes
}

// VarNumSize returns the number of bytes the VAR-NUMBER encoding of in occupies.
func VarNumSize(in uint64) int {
	if in < 0xFD {
		return 1
	} else if in <= 0xFFFF {
		return 3
	} else if in <= 0xFFFFFFFF {
		return 5
	}
	return 9
}

// putVarNum writes in at the start of out, which must be at least VarNumSize(in) long.
func putVarNum(out []byte, in uint64) int {
	if in < 0xFD {
		out[0] = byte(in)
		return 1
	} else if in <= 0xFFFF {
		out[0] = 0xFD
		binary.BigEndian.PutUint16(out[1:], uint16(in))
		return 3
	} else if in <= 0xFFFFFFFF {
		out[0] = 0xFE
		binary.BigEndian.PutUint32(out[1:], uint32(in))
		return 5
	}
	out[0] = 0xFF
	binary.BigEndian.PutUint64(out[1:], in)
	return 9
}

// extendedVarNumSize returns the number of bytes following a first octet of 253, 254, or 255.
func extendedVarNumSize(firstOctet byte) int {
	switch firstOctet {
	case 0xFD:
		return 2
	case 0xFE:
		return 4
	default:
		return 8
	}
}

// DecodeVarNum decodes a VAR-NUMBER from the start of in, returning the value and the number of bytes read.
func DecodeVarNum(in []byte) (uint64, int, error) {
	if len(in) < 1 {
		return 0, 0, decodeError(0, ErrBufferTooShort)
	}

	if in[0] < 0xFD {
		return uint64(in[0]), 1, nil
	}
	size := extendedVarNumSize(in[0])
	if len(in) < 1+size {
		return 0, 0, decodeError(len(in), ErrBufferTooShort)
	}
	return readExtendedVarNum(in[1:], size), 1 + size, nil
}

func readExtendedVarNum(in []byte, size int) uint64 {
	switch size {
	case 2:
		return uint64(binary.BigEndian.Uint16(in))
	case 4:
		return uint64(binary.BigEndian.Uint32(in))
	default:
		return binary.BigEndian.Uint64(in)
	}
}
