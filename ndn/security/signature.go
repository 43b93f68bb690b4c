/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package security

import (
	"errors"

	"github.com/named-data/ndnc/ndn"
)

// Signer represents an implementation of a signature type.
type Signer interface {
	// SignatureInfo returns the SignatureInfo describing signatures made by this signer.
	SignatureInfo() *ndn.SignatureInfo
	Sign(buffer []byte) ([]byte, error)
}

// Validator checks signatures of one type.
type Validator interface {
	Validate(buffer []byte, signature []byte) bool
}

// ErrUnsupportedSignature is returned for signature types that cannot be produced or checked.
var ErrUnsupportedSignature = errors.New("unsupported SignatureType")

// Verify verifies the provided signature against the provided buffer. Only DigestSha256 can be
// checked without a key.
func Verify(signatureType uint64, buffer []byte, signature []byte) (bool, error) {
	switch signatureType {
	case ndn.SignatureDigestSha256:
		var validator DigestSha256
		return validator.Validate(buffer, signature), nil
	default:
		return false, ErrUnsupportedSignature
	}
}
