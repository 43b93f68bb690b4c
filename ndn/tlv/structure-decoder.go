/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

type structureState int

const (
	readType structureState = iota
	readTypeBytes
	readLength
	readLengthBytes
	readValueBytes
)

// StructureDecoder finds the end of a TLV element that may arrive split across many inputs.
// It only parses the outer type and length; the value is skipped.
type StructureDecoder struct {
	gotElementEnd   bool
	offset          int
	state           structureState
	headerLength    int
	useHeaderBuffer bool
	// Partial extended-length bytes, at most 8.
	headerBuffer [8]byte
	nBytesToRead int
	firstOctet   byte
}

// NewStructureDecoder creates a structure decoder at the start of an element.
func NewStructureDecoder() *StructureDecoder {
	return new(StructureDecoder)
}

// Reset prepares the decoder for the next element.
func (s *StructureDecoder) Reset() {
	*s = StructureDecoder{}
}

// Offset returns the position in the most recent input just past the bytes consumed.
// When FindElementEnd returned true, this is the end of the element within that input.
func (s *StructureDecoder) Offset() int {
	return s.offset
}

// Seek sets the position in the next input at which to continue.
func (s *StructureDecoder) Seek(offset int) {
	s.offset = offset
}

// FindElementEnd continues reading input from Offset(). It returns true once the end of the element
// has been found, and keeps returning true until Reset is called.
func (s *StructureDecoder) FindElementEnd(input []byte) (bool, error) {
	if s.gotElementEnd {
		return true, nil
	}

	for {
		if s.offset >= len(input) {
			return false, nil
		}

		switch s.state {
		case readType:
			firstOctet := input[s.offset]
			s.offset++
			if firstOctet < 0xFD {
				s.state = readLength
			} else {
				s.nBytesToRead = extendedVarNumSize(firstOctet)
				s.state = readTypeBytes
			}

		case readTypeBytes:
			nRemainingBytes := len(input) - s.offset
			if nRemainingBytes < s.nBytesToRead {
				s.offset += nRemainingBytes
				s.nBytesToRead -= nRemainingBytes
				return false, nil
			}
			s.offset += s.nBytesToRead
			s.state = readLength

		case readLength:
			firstOctet := input[s.offset]
			s.offset++
			if firstOctet < 0xFD {
				s.nBytesToRead = int(firstOctet)
				if s.nBytesToRead == 0 {
					s.gotElementEnd = true
					return true, nil
				}
				s.state = readValueBytes
			} else {
				s.nBytesToRead = extendedVarNumSize(firstOctet)
				s.firstOctet = firstOctet
				s.state = readLengthBytes
			}

		case readLengthBytes:
			nRemainingBytes := len(input) - s.offset
			var length uint64
			if !s.useHeaderBuffer && nRemainingBytes >= s.nBytesToRead {
				length = readExtendedVarNum(input[s.offset:], s.nBytesToRead)
				s.offset += s.nBytesToRead
			} else {
				s.useHeaderBuffer = true
				nNeededBytes := s.nBytesToRead - s.headerLength
				if nNeededBytes > nRemainingBytes {
					if s.headerLength+nRemainingBytes > len(s.headerBuffer) {
						return false, decodeError(s.offset, ErrBufferTooShort)
					}
					copy(s.headerBuffer[s.headerLength:], input[s.offset:])
					s.offset += nRemainingBytes
					s.headerLength += nRemainingBytes
					return false, nil
				}
				copy(s.headerBuffer[s.headerLength:], input[s.offset:s.offset+nNeededBytes])
				s.offset += nNeededBytes
				length = readExtendedVarNum(s.headerBuffer[:], s.nBytesToRead)
			}
			if length > uint64(maxInt) {
				return false, decodeError(s.offset, ErrBufferTooShort)
			}
			s.nBytesToRead = int(length)
			if s.nBytesToRead == 0 {
				s.gotElementEnd = true
				return true, nil
			}
			s.state = readValueBytes

		case readValueBytes:
			nRemainingBytes := len(input) - s.offset
			if nRemainingBytes < s.nBytesToRead {
				s.offset += nRemainingBytes
				s.nBytesToRead -= nRemainingBytes
				return false, nil
			}
			s.offset += s.nBytesToRead
			s.gotElementEnd = true
			return true, nil
		}
	}
}

const maxInt = int(^uint(0) >> 1)
