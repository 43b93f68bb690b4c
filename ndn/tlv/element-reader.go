/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"github.com/named-data/ndnc/core"
)

// ElementListener receives complete TLV elements.
type ElementListener interface {
	OnReceivedElement(element []byte)
}

// ElementListenerFunc adapts a function to ElementListener.
type ElementListenerFunc func(element []byte)

// OnReceivedElement calls f(element).
func (f ElementListenerFunc) OnReceivedElement(element []byte) {
	f(element)
}

// ElementReader frames a byte stream into whole TLV elements. Each element is delivered
// to the listener as a freshly allocated slice, so transports may reuse their read buffers.
type ElementReader struct {
	listener       ElementListener
	decoder        StructureDecoder
	partial        []byte
	maxElementSize int
}

// NewElementReader creates an element reader. Elements, including any partial element being
// buffered, may not exceed maxElementSize bytes.
func NewElementReader(listener ElementListener, maxElementSize int) *ElementReader {
	return &ElementReader{
		listener:       listener,
		maxElementSize: maxElementSize,
	}
}

func (r *ElementReader) String() string {
	return "ElementReader"
}

// OnReceivedData consumes the next chunk of the stream. Every element completed by this chunk
// is delivered before it returns. On error, buffered state is discarded and the reader
// starts again at the next chunk.
func (r *ElementReader) OnReceivedData(data []byte) error {
	for len(data) > 0 {
		r.decoder.Seek(0)
		gotElementEnd, err := r.decoder.FindElementEnd(data)
		if err != nil {
			r.reset()
			return err
		}
		offset := r.decoder.Offset()

		if !gotElementEnd {
			if len(r.partial)+len(data) > r.maxElementSize {
				r.reset()
				return decodeError(len(r.partial)+len(data), ErrElementTooLarge)
			}
			r.partial = append(r.partial, data...)
			return nil
		}

		if len(r.partial)+offset > r.maxElementSize {
			r.reset()
			return decodeError(len(r.partial)+offset, ErrElementTooLarge)
		}
		element := make([]byte, 0, len(r.partial)+offset)
		element = append(element, r.partial...)
		element = append(element, data[:offset]...)
		r.reset()

		r.deliver(element)
		data = data[offset:]
	}
	return nil
}

func (r *ElementReader) deliver(element []byte) {
	core.SafeCall(r, "OnReceivedElement", func() {
		r.listener.OnReceivedElement(element)
	})
}

func (r *ElementReader) reset() {
	r.partial = r.partial[:0]
	r.decoder.Reset()
}
