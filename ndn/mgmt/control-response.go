/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import (
	"strconv"

	"github.com/named-data/ndnc/ndn/tlv"
)

// StatusOK is the status code of a successful command.
const StatusOK = 200

// ControlResponse is the reply to a management command.
type ControlResponse struct {
	StatusCode uint64
	StatusText string
	Body       *ControlParameters
}

// NewControlResponse creates a ControlResponse.
func NewControlResponse(statusCode uint64, statusText string, body *ControlParameters) *ControlResponse {
	return &ControlResponse{StatusCode: statusCode, StatusText: statusText, Body: body}
}

// DecodeControlResponse decodes a ControlResponse from its wire encoding.
func DecodeControlResponse(wire []byte) (*ControlResponse, error) {
	d := tlv.NewDecoder(wire)
	end, err := d.ReadNestedTlvsStart(tlv.ControlResponse)
	if err != nil {
		return nil, err
	}

	r := new(ControlResponse)
	if r.StatusCode, err = d.ReadNonNegativeIntegerTlv(tlv.StatusCode); err != nil {
		return nil, err
	}
	statusText, err := d.ReadBlobTlv(tlv.StatusText)
	if err != nil {
		return nil, err
	}
	r.StatusText = string(statusText)
	if d.PeekType(tlv.ControlParameters, end) {
		if r.Body, err = DecodeControlParameters(d); err != nil {
			return nil, err
		}
	}
	if err = d.FinishNestedTlvs(end, false); err != nil {
		return nil, err
	}
	return r, nil
}

// Encode returns the wire encoding of the ControlResponse.
func (r *ControlResponse) Encode() []byte {
	e := tlv.NewEncoder(256)
	e.WriteNested(tlv.ControlResponse, func(e *tlv.Encoder) {
		if r.Body != nil {
			r.Body.Encode(e)
		}
		e.WriteBlobTlv(tlv.StatusText, []byte(r.StatusText))
		e.WriteNonNegativeIntegerTlv(tlv.StatusCode, r.StatusCode)
	})
	return e.Output()
}

// IsSuccess returns whether the command succeeded.
func (r *ControlResponse) IsSuccess() bool {
	return r.StatusCode == StatusOK
}

func (r *ControlResponse) String() string {
	return "ControlResponse(" + strconv.FormatUint(r.StatusCode, 10) + " " + r.StatusText + ")"
}
