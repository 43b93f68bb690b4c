/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package security_test

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"testing"
	"time"

	"github.com/named-data/ndnc/dummy"
	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/security"
	"github.com/named-data/ndnc/ndn/tlv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestSha256Sign(t *testing.T) {
	// https://www.di-mgt.com.au/sha_testvectors.html
	buf := []byte("abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq")
	ref, _ := hex.DecodeString("248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1")

	signer := security.NewDigestSha256Signer()
	sig, e := signer.Sign(buf)
	assert.NoError(t, e)
	assert.Equal(t, 1, subtle.ConstantTimeCompare(sig, ref))
	assert.Equal(t, ndn.SignatureDigestSha256, signer.SignatureInfo().Type())
	assert.Nil(t, signer.SignatureInfo().KeyLocator())
}

func TestDigestSha256Verify(t *testing.T) {
	// https://www.di-mgt.com.au/sha_testvectors.html
	buf := []byte{}
	ref, _ := hex.DecodeString("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
	wrongA := ref[1:]
	wrongB := append([]byte{0x00}, ref...)
	wrongC := append([]byte{}, ref...)
	wrongC[4] ^= 0x01

	var signer security.DigestSha256
	assert.True(t, signer.Validate(buf, ref))
	assert.False(t, signer.Validate(buf, wrongA))
	assert.False(t, signer.Validate(buf, wrongB))
	assert.False(t, signer.Validate(buf, wrongC))

	ok, err := security.Verify(ndn.SignatureDigestSha256, buf, ref)
	assert.NoError(t, err)
	assert.True(t, ok)
	_, err = security.Verify(ndn.SignatureSha256WithEcdsa, buf, ref)
	assert.ErrorIs(t, err, security.ErrUnsupportedSignature)
}

func TestSignData(t *testing.T) {
	name, err := ndn.NameFromString("/go/ndn/data")
	require.NoError(t, err)
	d := ndn.NewData(name, []byte("hello"))
	wire, err := security.SignData(d, security.NewDigestSha256Signer())
	require.NoError(t, err)

	decoded, err := ndn.DecodeData(wire)
	require.NoError(t, err)
	assert.Len(t, decoded.SignatureValue(), 32)
	assert.True(t, security.VerifyData(decoded, security.DigestSha256{}))

	decoded.SetContent([]byte("jello"))
	assert.False(t, security.VerifyData(decoded, security.DigestSha256{}))
}

func TestHmacWithSha256(t *testing.T) {
	keyName, err := ndn.NameFromString("/key/1")
	require.NoError(t, err)
	signer := security.NewHmacWithSha256Signer(keyName, []byte("secret"))
	info := signer.SignatureInfo()
	assert.Equal(t, ndn.SignatureHmacWithSha256, info.Type())
	require.NotNil(t, info.KeyLocator())
	assert.Equal(t, "/key/1", info.KeyLocator().Name.String())

	name, err := ndn.NameFromString("/a")
	require.NoError(t, err)
	wire, err := security.SignData(ndn.NewData(name, []byte{0x01}), signer)
	require.NoError(t, err)
	decoded, err := ndn.DecodeData(wire)
	require.NoError(t, err)
	assert.Equal(t, ndn.SignatureHmacWithSha256, decoded.SignatureInfo().Type())
	assert.True(t, security.VerifyData(decoded, signer))
	assert.False(t, security.VerifyData(decoded, security.NewHmacWithSha256Signer(keyName, []byte("other"))))
}

func TestCommandInterest(t *testing.T) {
	timer := dummy.NewTimer()
	timer.MoveForward(1000 * time.Second)
	g := security.NewCommandInterestGenerator(timer)

	name, err := ndn.NameFromString("/localhost/nfd/rib/register")
	require.NoError(t, err)
	interest := ndn.NewInterest(name)
	require.NoError(t, g.Generate(interest, security.NewDigestSha256Signer()))

	signed := interest.Name()
	require.Equal(t, 8, signed.Size())
	assert.True(t, name.PrefixOf(signed))
	timestamp, err := signed.At(4).ToNumber()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000000), timestamp)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, signed.At(5).Value())
	assert.Equal(t, []byte{tlv.SignatureInfo, 0x03, tlv.SignatureType, 0x01, 0x00}, signed.At(6).Value())

	var covered []byte
	for _, component := range signed.Prefix(-1).Components() {
		e := tlv.NewEncoder(16)
		e.WriteBlobTlv(component.Type(), component.Value())
		covered = append(covered, e.Output()...)
	}
	digest := sha256.Sum256(covered)
	assert.Equal(t, append([]byte{tlv.SignatureValue, 0x20}, digest[:]...), signed.At(7).Value())

	// Same clock reading still yields a later timestamp
	second := ndn.NewInterest(name)
	require.NoError(t, g.Generate(second, security.NewDigestSha256Signer()))
	timestamp, err = second.Name().At(4).ToNumber()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000001), timestamp)
}
