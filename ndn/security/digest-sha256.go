/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package security

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/named-data/ndnc/ndn"
)

// DigestSha256 is the DigestSha256 signature type: a plain SHA-256 digest with no key.
type DigestSha256 struct{}

// NewDigestSha256Signer returns a DigestSha256 signer.
func NewDigestSha256Signer() *DigestSha256 {
	return new(DigestSha256)
}

// SignatureInfo returns a DigestSha256 SignatureInfo with no KeyLocator.
func (DigestSha256) SignatureInfo() *ndn.SignatureInfo {
	return ndn.NewSignatureInfo(ndn.SignatureDigestSha256, nil)
}

// Sign returns the SHA-256 digest of buffer.
func (DigestSha256) Sign(buffer []byte) ([]byte, error) {
	digest := sha256.Sum256(buffer)
	return digest[:], nil
}

// Validate returns whether signature is the SHA-256 digest of buffer.
func (DigestSha256) Validate(buffer []byte, signature []byte) bool {
	digest := sha256.Sum256(buffer)
	return subtle.ConstantTimeCompare(digest[:], signature) == 1
}
