/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt_test

import (
	"testing"

	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/mgmt"
	"github.com/named-data/ndnc/ndn/tlv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u64(v uint64) *uint64 {
	return &v
}

func TestControlParametersEncode(t *testing.T) {
	name, err := ndn.NameFromString("/a")
	require.NoError(t, err)
	c := mgmt.NewControlParameters(name)
	c.FaceID = u64(5)
	c.Cost = u64(10)
	c.ExpirationPeriod = u64(1000)
	options := mgmt.NewRegistrationOptions()
	options.Capture = true
	options.Origin = u64(0)
	c.SetRegistrationOptions(options)

	assert.Equal(t, []byte{tlv.ControlParameters, 0x15,
		tlv.Name, 0x03, tlv.GenericNameComponent, 0x01, 'a',
		tlv.FaceID, 0x01, 0x05,
		tlv.Origin, 0x01, 0x00,
		tlv.Cost, 0x01, 0x0a,
		tlv.Flags, 0x01, 0x03,
		tlv.ExpirationPeriod, 0x02, 0x03, 0xe8}, c.Wire())
}

func TestControlParametersDefaultFlagsOmitted(t *testing.T) {
	name, err := ndn.NameFromString("/a")
	require.NoError(t, err)
	c := mgmt.NewControlParameters(name)
	c.SetRegistrationOptions(mgmt.NewRegistrationOptions())
	assert.Equal(t, []byte{tlv.ControlParameters, 0x05,
		tlv.Name, 0x03, tlv.GenericNameComponent, 0x01, 'a'}, c.Wire())
}

func TestControlParametersDecode(t *testing.T) {
	name, err := ndn.NameFromString("/a/b")
	require.NoError(t, err)
	strategy, err := ndn.NameFromString("/localhost/nfd/strategy/multicast")
	require.NoError(t, err)
	c := mgmt.NewControlParameters(name)
	c.FaceID = u64(300)
	c.URI = "udp4://127.0.0.1:6363"
	c.LocalControlFeature = u64(1)
	c.Origin = u64(255)
	c.Cost = u64(0)
	c.Flags = u64(mgmt.FlagCapture)
	c.Strategy = strategy
	c.ExpirationPeriod = u64(3600000)

	decoded, err := mgmt.DecodeControlParametersWire(c.Wire())
	require.NoError(t, err)
	assert.Equal(t, "/a/b", decoded.Name.String())
	assert.Equal(t, uint64(300), *decoded.FaceID)
	assert.Equal(t, "udp4://127.0.0.1:6363", decoded.URI)
	assert.Equal(t, uint64(1), *decoded.LocalControlFeature)
	assert.Equal(t, uint64(255), *decoded.Origin)
	assert.Equal(t, uint64(0), *decoded.Cost)
	assert.Equal(t, mgmt.FlagCapture, *decoded.Flags)
	assert.Equal(t, "/localhost/nfd/strategy/multicast", decoded.Strategy.String())
	assert.Equal(t, uint64(3600000), *decoded.ExpirationPeriod)

	options := decoded.RegistrationOptions()
	assert.False(t, options.ChildInherit)
	assert.True(t, options.Capture)
	assert.Equal(t, uint64(255), *options.Origin)
}

func TestControlParametersDecodeSkipsUnusedFields(t *testing.T) {
	wire := []byte{tlv.ControlParameters, 0x0c,
		tlv.FaceID, 0x01, 0x07,
		0x81, 0x00, // LocalUri
		tlv.MTU, 0x02, 0x05, 0xdc,
		tlv.Mask, 0x01, 0x01}
	c, err := mgmt.DecodeControlParametersWire(wire)
	require.NoError(t, err)
	assert.Nil(t, c.Name)
	assert.Equal(t, uint64(7), *c.FaceID)
	assert.Nil(t, c.Flags)

	// Out-of-order critical element
	_, err = mgmt.DecodeControlParametersWire([]byte{tlv.ControlParameters, 0x06,
		tlv.Cost, 0x01, 0x01,
		tlv.FaceID, 0x01, 0x07})
	assert.Error(t, err)
}

func TestRegistrationOptionsFlags(t *testing.T) {
	o := mgmt.NewRegistrationOptions()
	assert.Equal(t, mgmt.DefaultFlags, o.Flags())
	o.Capture = true
	assert.Equal(t, uint64(3), o.Flags())
	o.SetFlags(0)
	assert.False(t, o.ChildInherit)
	assert.False(t, o.Capture)
}

func TestControlResponse(t *testing.T) {
	wire := []byte{tlv.ControlResponse, 0x07,
		tlv.StatusCode, 0x01, 0xc8,
		tlv.StatusText, 0x02, 'O', 'K'}
	r, err := mgmt.DecodeControlResponse(wire)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), r.StatusCode)
	assert.Equal(t, "OK", r.StatusText)
	assert.True(t, r.IsSuccess())
	assert.Nil(t, r.Body)
	assert.Equal(t, wire, r.Encode())

	name, err := ndn.NameFromString("/a")
	require.NoError(t, err)
	body := mgmt.NewControlParameters(name)
	body.FaceID = u64(1)
	r = mgmt.NewControlResponse(403, "authorization rejected", body)
	decoded, err := mgmt.DecodeControlResponse(r.Encode())
	require.NoError(t, err)
	assert.False(t, decoded.IsSuccess())
	assert.Equal(t, "authorization rejected", decoded.StatusText)
	require.NotNil(t, decoded.Body)
	assert.Equal(t, "/a", decoded.Body.Name.String())

	_, err = mgmt.DecodeControlResponse([]byte{tlv.ControlResponse, 0x03, tlv.StatusCode, 0x01, 0xc8})
	assert.ErrorIs(t, err, tlv.ErrDecode)
}
