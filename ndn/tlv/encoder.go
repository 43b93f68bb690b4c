/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import "encoding/binary"

// Encoder builds a TLV encoding from back to front, so that an element's value is written
// before its type and length. Write the fields of a packet in reverse order, then call
// WriteTypeAndLength with the number of bytes written since the element started.
type Encoder struct {
	buf    []byte
	length int
}

// NewEncoder creates an encoder with the given initial capacity.
func NewEncoder(initialCapacity int) *Encoder {
	if initialCapacity < 16 {
		initialCapacity = 16
	}
	return &Encoder{buf: make([]byte, initialCapacity)}
}

// Length returns the number of bytes written so far.
func (e *Encoder) Length() int {
	return e.length
}

// Output returns the encoding. The slice is valid until the next write.
func (e *Encoder) Output() []byte {
	return e.buf[len(e.buf)-e.length:]
}

// reserve makes room for n more bytes in front of the current output and returns them.
func (e *Encoder) reserve(n int) []byte {
	if len(e.buf)-e.length < n {
		newSize := 2 * len(e.buf)
		if newSize < e.length+n {
			newSize = e.length + n
		}
		newBuf := make([]byte, newSize)
		copy(newBuf[newSize-e.length:], e.Output())
		e.buf = newBuf
	}
	e.length += n
	start := len(e.buf) - e.length
	return e.buf[start : start+n]
}

// WriteVarNumber prepends a VAR-NUMBER.
func (e *Encoder) WriteVarNumber(v uint64) {
	putVarNum(e.reserve(VarNumSize(v)), v)
}

// WriteTypeAndLength prepends a TLV type and length.
func (e *Encoder) WriteTypeAndLength(tlvType uint64, length int) {
	e.WriteVarNumber(uint64(length))
	e.WriteVarNumber(tlvType)
}

// WriteNonNegativeInteger prepends the minimal 1, 2, 4, or 8 byte encoding of v.
func (e *Encoder) WriteNonNegativeInteger(v uint64) {
	out := e.reserve(NNISize(v))
	switch len(out) {
	case 1:
		out[0] = byte(v)
	case 2:
		binary.BigEndian.PutUint16(out, uint16(v))
	case 4:
		binary.BigEndian.PutUint32(out, uint32(v))
	default:
		binary.BigEndian.PutUint64(out, v)
	}
}

// WriteNonNegativeIntegerTlv prepends an element of tlvType holding v.
func (e *Encoder) WriteNonNegativeIntegerTlv(tlvType uint64, v uint64) {
	saveLength := e.length
	e.WriteNonNegativeInteger(v)
	e.WriteTypeAndLength(tlvType, e.length-saveLength)
}

// WriteOptionalNonNegativeIntegerTlv prepends the integer element only if v is not nil.
func (e *Encoder) WriteOptionalNonNegativeIntegerTlv(tlvType uint64, v *uint64) {
	if v != nil {
		e.WriteNonNegativeIntegerTlv(tlvType, *v)
	}
}

// WriteBuffer prepends raw bytes.
func (e *Encoder) WriteBuffer(b []byte) {
	copy(e.reserve(len(b)), b)
}

// WriteBlobTlv prepends an element of tlvType with the given value.
func (e *Encoder) WriteBlobTlv(tlvType uint64, value []byte) {
	e.WriteBuffer(value)
	e.WriteTypeAndLength(tlvType, len(value))
}

// WriteOptionalBlobTlv prepends the element only if value is not nil.
func (e *Encoder) WriteOptionalBlobTlv(tlvType uint64, value []byte) {
	if value != nil {
		e.WriteBlobTlv(tlvType, value)
	}
}

// WriteNested prepends an element of tlvType whose value is produced by writeValue.
func (e *Encoder) WriteNested(tlvType uint64, writeValue func(e *Encoder)) {
	saveLength := e.length
	writeValue(e)
	e.WriteTypeAndLength(tlvType, e.length-saveLength)
}
