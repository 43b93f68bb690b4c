/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"errors"
	"strconv"
)

// TLV errors.
var (
	ErrDecode               = errors.New("TLV decode error")
	ErrBufferTooShort       = errors.New("TLV length exceeds buffer size")
	ErrMissingLength        = errors.New("missing TLV length")
	ErrUnexpected           = errors.New("unexpected TLV type")
	ErrUnrecognizedCritical = errors.New("unrecognized critical TLV type")
	ErrInvalidNNILength     = errors.New("invalid length for a TLV NonNegativeInteger")
	ErrNestedLength         = errors.New("TLV length does not equal the total length of the nested TLVs")
	ErrElementTooLarge      = errors.New("incoming element exceeds the maximum size")
)

// DecodeError is returned by every decoding routine in this package.
// errors.Is(err, ErrDecode) holds for all of them, and the wrapped error
// identifies the specific failure.
type DecodeError struct {
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return "TLV decode error at offset " + strconv.Itoa(e.Offset) + ": " + e.Err.Error()
}

// Unwrap returns the specific failure.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// NewDecodeError reports err, found at offset, as a decode error. An err that already is one
// is returned unchanged.
func NewDecodeError(offset int, err error) error {
	if errors.Is(err, ErrDecode) {
		return err
	}
	return decodeError(offset, err)
}

func decodeError(offset int, err error) error {
	return &DecodeError{Offset: offset, Err: err}
}
