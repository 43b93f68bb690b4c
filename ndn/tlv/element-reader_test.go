/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv_test

import (
	"errors"
	"testing"

	"github.com/named-data/ndnc/ndn/tlv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	elements [][]byte
}

func (c *collector) OnReceivedElement(element []byte) {
	c.elements = append(c.elements, element)
}

func makeElement(tlvType uint64, valueSize int) []byte {
	e := tlv.NewEncoder(valueSize + 16)
	value := make([]byte, valueSize)
	for i := range value {
		value[i] = byte(i * 7)
	}
	e.WriteBlobTlv(tlvType, value)
	return append([]byte(nil), e.Output()...)
}

func TestStructureDecoderWholeElement(t *testing.T) {
	element := makeElement(tlv.Data, 10)
	s := tlv.NewStructureDecoder()
	found, err := s.FindElementEnd(append(element, 0xFF, 0xFF))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, len(element), s.Offset())

	// Sticky until reset
	found, err = s.FindElementEnd([]byte{0x01})
	require.NoError(t, err)
	assert.True(t, found)

	s.Reset()
	assert.Equal(t, 0, s.Offset())
	found, err = s.FindElementEnd([]byte{0x06})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStructureDecoderZeroLength(t *testing.T) {
	s := tlv.NewStructureDecoder()
	found, err := s.FindElementEnd([]byte{0x12, 0x00, 0x05})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, s.Offset())
}

func TestStructureDecoderByteAtATime(t *testing.T) {
	// Extended type and extended length
	e := tlv.NewEncoder(0)
	e.WriteBlobTlv(0x0320, make([]byte, 70000))
	element := e.Output()

	s := tlv.NewStructureDecoder()
	for i, b := range element {
		s.Seek(0)
		found, err := s.FindElementEnd([]byte{b})
		require.NoError(t, err)
		assert.Equal(t, i == len(element)-1, found)
	}
}

func TestElementReaderSplitAtEveryOffset(t *testing.T) {
	for _, size := range []int{0, 5, 252, 253, 300, 1000} {
		element := makeElement(tlv.Data, size)
		for split := 0; split <= len(element); split++ {
			c := new(collector)
			r := tlv.NewElementReader(c, 8800)
			require.NoError(t, r.OnReceivedData(element[:split]))
			require.NoError(t, r.OnReceivedData(element[split:]))
			require.Len(t, c.elements, 1, "size=%d split=%d", size, split)
			assert.Equal(t, element, c.elements[0])
		}
	}
}

func TestElementReaderThreeWaySplit(t *testing.T) {
	element := makeElement(tlv.Interest, 300)
	for i := 1; i < len(element); i += 13 {
		for j := i; j < len(element); j += 17 {
			c := new(collector)
			r := tlv.NewElementReader(c, 8800)
			require.NoError(t, r.OnReceivedData(element[:i]))
			require.NoError(t, r.OnReceivedData(element[i:j]))
			require.NoError(t, r.OnReceivedData(element[j:]))
			require.Len(t, c.elements, 1)
			assert.Equal(t, element, c.elements[0])
		}
	}
}

func TestElementReaderMultipleElementsInOneChunk(t *testing.T) {
	first := makeElement(tlv.Interest, 20)
	second := makeElement(tlv.Data, 400)
	third := makeElement(tlv.Data, 3)

	stream := append(append(append([]byte(nil), first...), second...), third...)
	c := new(collector)
	r := tlv.NewElementReader(c, 8800)
	// Deliver the first two plus part of the third
	require.NoError(t, r.OnReceivedData(stream[:len(first)+len(second)+2]))
	require.Len(t, c.elements, 2)
	assert.Equal(t, first, c.elements[0])
	assert.Equal(t, second, c.elements[1])

	require.NoError(t, r.OnReceivedData(stream[len(first)+len(second)+2:]))
	require.Len(t, c.elements, 3)
	assert.Equal(t, third, c.elements[2])
}

func TestElementReaderCopiesInput(t *testing.T) {
	element := makeElement(tlv.Data, 4)
	buf := append([]byte(nil), element...)
	c := new(collector)
	r := tlv.NewElementReader(c, 8800)
	require.NoError(t, r.OnReceivedData(buf))
	for i := range buf {
		buf[i] = 0
	}
	assert.Equal(t, element, c.elements[0])
}

func TestElementReaderTooLarge(t *testing.T) {
	element := makeElement(tlv.Data, 9000)
	c := new(collector)
	r := tlv.NewElementReader(c, 8800)

	assert.NoError(t, r.OnReceivedData(element[:4000]))
	err := r.OnReceivedData(element[4000:])
	assert.True(t, errors.Is(err, tlv.ErrDecode))
	assert.True(t, errors.Is(err, tlv.ErrElementTooLarge))
	assert.Empty(t, c.elements)

	// Buffering more than the limit fails before the element completes
	assert.NoError(t, r.OnReceivedData(element[:8000]))
	err = r.OnReceivedData(element[8000:8900])
	assert.True(t, errors.Is(err, tlv.ErrElementTooLarge))

	// The reader starts over with the next chunk
	next := makeElement(tlv.Interest, 10)
	assert.NoError(t, r.OnReceivedData(next))
	require.Len(t, c.elements, 1)
	assert.Equal(t, next, c.elements[0])
}

func TestElementReaderListenerPanic(t *testing.T) {
	first := makeElement(tlv.Interest, 2)
	second := makeElement(tlv.Data, 2)
	n := 0
	r := tlv.NewElementReader(tlv.ElementListenerFunc(func(element []byte) {
		n++
		if n == 1 {
			panic("listener failure")
		}
	}), 8800)
	assert.NoError(t, r.OnReceivedData(append(append([]byte(nil), first...), second...)))
	assert.Equal(t, 2, n)
}
