/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package security

import (
	"github.com/named-data/ndnc/ndn"
)

// SignData sets the SignatureInfo of d from signer, signs the Name through SignatureInfo,
// and returns the signed wire encoding.
func SignData(d *ndn.Data, signer Signer) ([]byte, error) {
	d.SetSignatureInfo(signer.SignatureInfo())
	// The SignatureValue is outside the signed portion, so its length does not matter here
	d.SetSignatureValue(nil)
	wire, signedBegin, signedEnd := d.Encode()
	signature, err := signer.Sign(wire[signedBegin:signedEnd])
	if err != nil {
		return nil, err
	}
	d.SetSignatureValue(signature)
	wire, _, _ = d.Encode()
	return wire, nil
}

// VerifyData checks the signature of d with validator.
func VerifyData(d *ndn.Data, validator Validator) bool {
	wire, signedBegin, signedEnd := d.Encode()
	return validator.Validate(wire[signedBegin:signedEnd], d.SignatureValue())
}
