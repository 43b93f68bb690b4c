/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

// Decoder reads TLV elements from a byte slice, tracking the current offset.
// Slices returned by the Read methods alias the input.
type Decoder struct {
	input  []byte
	offset int
}

// NewDecoder creates a decoder positioned at the start of input.
func NewDecoder(input []byte) *Decoder {
	return &Decoder{input: input}
}

// Offset returns the current read position.
func (d *Decoder) Offset() int {
	return d.offset
}

// Seek moves the read position.
func (d *Decoder) Seek(offset int) {
	d.offset = offset
}

// Slice returns input[begin:end].
func (d *Decoder) Slice(begin int, end int) []byte {
	return d.input[begin:end]
}

// ReadVarNumber reads a VAR-NUMBER and advances the offset past it.
func (d *Decoder) ReadVarNumber() (uint64, error) {
	if d.offset >= len(d.input) {
		return 0, decodeError(d.offset, ErrBufferTooShort)
	}
	firstOctet := d.input[d.offset]
	d.offset++
	if firstOctet < 253 {
		return uint64(firstOctet), nil
	}
	value, err := d.ReadExtendedVarNumber(firstOctet)
	if err != nil {
		d.offset--
		return 0, err
	}
	return value, nil
}

// ReadTypeAndLength reads a TLV type, which must equal expectedType, and its length.
// The length must fit inside the remaining input.
func (d *Decoder) ReadTypeAndLength(expectedType uint64) (int, error) {
	start := d.offset
	tlvType, err := d.ReadVarNumber()
	if err != nil {
		return 0, err
	}
	if tlvType != expectedType {
		return 0, decodeError(start, ErrUnexpected)
	}
	return d.readLength()
}

func (d *Decoder) readLength() (int, error) {
	start := d.offset
	length, err := d.ReadVarNumber()
	if err != nil {
		return 0, decodeError(start, ErrMissingLength)
	}
	if length > uint64(len(d.input)-d.offset) {
		return 0, decodeError(start, ErrBufferTooShort)
	}
	return int(length), nil
}

// ReadNestedTlvsStart reads the type and length of an element that contains nested TLVs
// and returns the offset just past its value.
func (d *Decoder) ReadNestedTlvsStart(expectedType uint64) (int, error) {
	length, err := d.ReadTypeAndLength(expectedType)
	if err != nil {
		return 0, err
	}
	return d.offset + length, nil
}

// FinishNestedTlvs skips any elements remaining before endOffset.
// A remaining critical element is an error unless skipCritical is set.
// The offset must land exactly on endOffset.
func (d *Decoder) FinishNestedTlvs(endOffset int, skipCritical bool) error {
	if d.offset == endOffset {
		return nil
	}

	for d.offset < endOffset {
		start := d.offset
		tlvType, err := d.ReadVarNumber()
		if err != nil {
			return err
		}
		length, err := d.readLength()
		if err != nil {
			return err
		}
		if IsCritical(tlvType) && !skipCritical {
			return decodeError(start, ErrUnrecognizedCritical)
		}
		d.offset += length
	}

	if d.offset != endOffset {
		return decodeError(d.offset, ErrNestedLength)
	}
	return nil
}

// PeekType returns whether the next element before endOffset has the expected type.
// The offset is not changed.
func (d *Decoder) PeekType(expectedType uint64, endOffset int) bool {
	if d.offset >= endOffset {
		return false
	}
	saved := d.offset
	defer func() { d.offset = saved }()
	tlvType, err := d.ReadVarNumber()
	if err != nil {
		return false
	}
	return tlvType == expectedType
}

// ReadNonNegativeInteger reads a big-endian integer of the given length, which must be 1, 2, 4, or 8.
func (d *Decoder) ReadNonNegativeInteger(length int) (uint64, error) {
	if length != 1 && length != 2 && length != 4 && length != 8 {
		return 0, decodeError(d.offset, ErrInvalidNNILength)
	}
	if d.offset+length > len(d.input) {
		return 0, decodeError(d.offset, ErrBufferTooShort)
	}
	value, _ := DecodeNNI(d.input[d.offset : d.offset+length])
	d.offset += length
	return value, nil
}

// ReadNonNegativeIntegerTlv reads an element of expectedType holding a non-negative integer.
func (d *Decoder) ReadNonNegativeIntegerTlv(expectedType uint64) (uint64, error) {
	length, err := d.ReadTypeAndLength(expectedType)
	if err != nil {
		return 0, err
	}
	return d.ReadNonNegativeInteger(length)
}

// ReadOptionalNonNegativeIntegerTlv reads the integer element if the next element before endOffset
// has expectedType, or returns nil.
func (d *Decoder) ReadOptionalNonNegativeIntegerTlv(expectedType uint64, endOffset int) (*uint64, error) {
	if !d.PeekType(expectedType, endOffset) {
		return nil, nil
	}
	value, err := d.ReadNonNegativeIntegerTlv(expectedType)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// ReadBlobTlv reads an element of expectedType and returns its value.
func (d *Decoder) ReadBlobTlv(expectedType uint64) ([]byte, error) {
	length, err := d.ReadTypeAndLength(expectedType)
	if err != nil {
		return nil, err
	}
	value := d.input[d.offset : d.offset+length]
	d.offset += length
	return value, nil
}

// ReadOptionalBlobTlv reads the element value if the next element before endOffset has expectedType,
// or returns nil.
func (d *Decoder) ReadOptionalBlobTlv(expectedType uint64, endOffset int) ([]byte, error) {
	if !d.PeekType(expectedType, endOffset) {
		return nil, nil
	}
	return d.ReadBlobTlv(expectedType)
}

// ReadBooleanTlv returns true and skips the element if the next element before endOffset
// has expectedType.
func (d *Decoder) ReadBooleanTlv(expectedType uint64, endOffset int) (bool, error) {
	if !d.PeekType(expectedType, endOffset) {
		return false, nil
	}
	length, err := d.ReadTypeAndLength(expectedType)
	if err != nil {
		return false, err
	}
	d.offset += length
	return true, nil
}

// SkipTlv skips the next element, whatever its type.
func (d *Decoder) SkipTlv() error {
	if _, err := d.ReadVarNumber(); err != nil {
		return err
	}
	length, err := d.readLength()
	if err != nil {
		return err
	}
	d.offset += length
	return nil
}

// SkipOptionalTlv skips the next element if it has expectedType and starts before endOffset.
func (d *Decoder) SkipOptionalTlv(expectedType uint64, endOffset int) error {
	if !d.PeekType(expectedType, endOffset) {
		return nil
	}
	return d.SkipTlv()
}

// ReadExtendedVarNumber reads the 2, 4, or 8 bytes that follow a VAR-NUMBER first octet of 253, 254, or 255.
func (d *Decoder) ReadExtendedVarNumber(firstOctet byte) (uint64, error) {
	size := extendedVarNumSize(firstOctet)
	if d.offset+size > len(d.input) {
		return 0, decodeError(d.offset, ErrBufferTooShort)
	}
	value := readExtendedVarNum(d.input[d.offset:], size)
	d.offset += size
	return value, nil
}

// ReadTypeAndValue reads the next element, whatever its type, and returns its type and value.
func (d *Decoder) ReadTypeAndValue() (uint64, []byte, error) {
	tlvType, err := d.ReadVarNumber()
	if err != nil {
		return 0, nil, err
	}
	length, err := d.readLength()
	if err != nil {
		return 0, nil, err
	}
	value := d.input[d.offset : d.offset+length]
	d.offset += length
	return tlvType, value, nil
}
