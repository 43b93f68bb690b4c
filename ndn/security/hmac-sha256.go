/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package security

import (
	"crypto/hmac"
	"crypto/sha256"

	"github.com/named-data/ndnc/ndn"
)

// HmacWithSha256 signs with a shared secret key identified by name.
type HmacWithSha256 struct {
	keyName *ndn.Name
	key     []byte
}

// NewHmacWithSha256Signer creates an HMAC signer. keyName goes into the KeyLocator.
func NewHmacWithSha256Signer(keyName *ndn.Name, key []byte) *HmacWithSha256 {
	return &HmacWithSha256{keyName: keyName.DeepCopy(), key: append([]byte(nil), key...)}
}

// SignatureInfo returns a SignatureHmacWithSha256 SignatureInfo naming the key.
func (h *HmacWithSha256) SignatureInfo() *ndn.SignatureInfo {
	return ndn.NewSignatureInfo(ndn.SignatureHmacWithSha256, &ndn.KeyLocator{Name: h.keyName})
}

// Sign returns the HMAC-SHA256 of buffer.
func (h *HmacWithSha256) Sign(buffer []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, h.key)
	mac.Write(buffer)
	return mac.Sum(nil), nil
}

// Validate returns whether signature is the HMAC-SHA256 of buffer.
func (h *HmacWithSha256) Validate(buffer []byte, signature []byte) bool {
	expected, _ := h.Sign(buffer)
	return hmac.Equal(expected, signature)
}
