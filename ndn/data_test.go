/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn_test

import (
	"crypto/sha256"
	"testing"
	"time"

	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/tlv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dataWire = []byte{tlv.Data, 0x2e,
	tlv.Name, 0x0f, tlv.GenericNameComponent, 0x02, 0x67, 0x6f, tlv.GenericNameComponent, 0x03, 0x6e, 0x64, 0x6e, tlv.GenericNameComponent, 0x04, 0x32, 0x30, 0x32, 0x30,
	tlv.MetaInfo, 0x0e,
	tlv.ContentType, 0x01, 0x04,
	tlv.FreshnessPeriod, 0x02, 0x13, 0x88,
	tlv.FinalBlockID, 0x05, tlv.GenericNameComponent, 0x03, 0x6e, 0x64, 0x6e,
	tlv.Content, 0x04, 0x01, 0x02, 0x03, 0x04,
	tlv.SignatureInfo, 0x03, tlv.SignatureType, 0x01, 0x00,
	tlv.SignatureValue, 0x00}

func TestDataNew(t *testing.T) {
	name, err := ndn.NameFromString("/go/ndn/2020")
	assert.NotNil(t, name)
	assert.NoError(t, err)
	d := ndn.NewData(name, []byte{0x01, 0x02, 0x03, 0x04})
	assert.NotNil(t, d)
	assert.Equal(t, "/go/ndn/2020", d.Name().String())
	assert.NotNil(t, d.MetaInfo())
	assert.Equal(t, ndn.ContentTypeBlob, d.MetaInfo().ContentType())
	assert.Nil(t, d.MetaInfo().FreshnessPeriod())
	assert.Nil(t, d.MetaInfo().FinalBlockID())
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, d.Content())
	assert.Equal(t, ndn.SignatureDigestSha256, d.SignatureInfo().Type())
}

func TestDataDecode(t *testing.T) {
	d, err := ndn.DecodeData(dataWire)
	require.NoError(t, err)

	assert.Equal(t, "/go/ndn/2020", d.Name().String())
	assert.Equal(t, uint64(4), d.MetaInfo().ContentType())
	require.NotNil(t, d.MetaInfo().FreshnessPeriod())
	assert.Equal(t, 5000*time.Millisecond, *d.MetaInfo().FreshnessPeriod())
	require.NotNil(t, d.MetaInfo().FinalBlockID())
	assert.Equal(t, "ndn", d.MetaInfo().FinalBlockID().String())
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, d.Content())
	assert.Equal(t, dataWire, d.Wire())
	digest := sha256.Sum256(dataWire)
	assert.Equal(t, digest[:], d.ImplicitDigest())
	assert.Equal(t, "Data(Name=/go/ndn/2020, MetaInfo(ContentType=4, FreshnessPeriod=5000ms, FinalBlockID=ndn), ContentLen=4)", d.String())
}

func TestDataDecodeErrors(t *testing.T) {
	// Missing SignatureInfo
	_, err := ndn.DecodeData([]byte{tlv.Data, 0x05, tlv.Name, 0x03, tlv.GenericNameComponent, 0x01, 'a'})
	assert.ErrorIs(t, err, tlv.ErrDecode)

	// Content before Name
	_, err = ndn.DecodeData([]byte{tlv.Data, 0x0c,
		tlv.Content, 0x00,
		tlv.Name, 0x03, tlv.GenericNameComponent, 0x01, 'a',
		tlv.SignatureInfo, 0x03, tlv.SignatureType, 0x01, 0x00})
	assert.ErrorIs(t, err, tlv.ErrDecode)

	// Unknown critical element
	_, err = ndn.DecodeData([]byte{tlv.Data, 0x0c,
		tlv.Name, 0x03, tlv.GenericNameComponent, 0x01, 'a',
		0x1f, 0x00,
		tlv.SignatureInfo, 0x03, tlv.SignatureType, 0x01, 0x00})
	assert.ErrorIs(t, err, tlv.ErrUnrecognizedCritical)
	assert.ErrorIs(t, err, tlv.ErrDecode)

	// Truncated
	_, err = ndn.DecodeData(dataWire[:20])
	assert.ErrorIs(t, err, tlv.ErrDecode)
}

func TestDataEncode(t *testing.T) {
	name, err := ndn.NameFromString("/go/ndn/2020")
	require.NoError(t, err)
	d := ndn.NewData(name, []byte{0x01, 0x02, 0x03, 0x04})
	m := ndn.NewMetaInfo()
	m.SetContentType(0x04)
	freshness := 5000 * time.Millisecond
	m.SetFreshnessPeriod(&freshness)
	finalBlockID := ndn.NewGenericNameComponent([]byte("ndn"))
	m.SetFinalBlockID(&finalBlockID)
	d.SetMetaInfo(m)

	wire, signedBegin, signedEnd := d.Encode()
	assert.Equal(t, dataWire, wire)
	assert.Equal(t, 2, signedBegin)
	assert.Equal(t, len(dataWire)-2, signedEnd)
}

func TestDataEncodeDefaults(t *testing.T) {
	name, err := ndn.NameFromString("/a")
	require.NoError(t, err)
	d := ndn.NewData(name, nil)
	d.SetSignatureValue([]byte{0xAA})
	wire, _, _ := d.Encode()
	assert.Equal(t, []byte{tlv.Data, 0x11,
		tlv.Name, 0x03, tlv.GenericNameComponent, 0x01, 'a',
		tlv.MetaInfo, 0x00,
		tlv.Content, 0x00,
		tlv.SignatureInfo, 0x03, tlv.SignatureType, 0x01, 0x00,
		tlv.SignatureValue, 0x01, 0xAA}, wire)

	decoded, err := ndn.DecodeData(wire)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA}, decoded.SignatureValue())
	assert.True(t, decoded.Name().Equals(name))
}
