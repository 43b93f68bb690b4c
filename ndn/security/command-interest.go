/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package security

import (
	"sync"

	"github.com/named-data/ndnc/core"
	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/tlv"
)

// CommandInterestGenerator turns Interests into signed command Interests by appending
// a timestamp, a random value, a SignatureInfo and a SignatureValue to the name.
// Timestamps are strictly increasing across calls.
type CommandInterestGenerator struct {
	mutex         sync.Mutex
	timer         core.Timer
	lastTimestamp uint64
}

// NewCommandInterestGenerator creates a generator using timer for timestamps and nonces.
func NewCommandInterestGenerator(timer core.Timer) *CommandInterestGenerator {
	return &CommandInterestGenerator{timer: timer}
}

func (g *CommandInterestGenerator) String() string {
	return "CommandInterestGenerator"
}

// Generate appends the command components to the name of interest and signs it with signer.
func (g *CommandInterestGenerator) Generate(interest *ndn.Interest, signer Signer) error {
	g.mutex.Lock()
	timestamp := uint64(g.timer.Now().UnixMilli())
	if timestamp <= g.lastTimestamp {
		timestamp = g.lastTimestamp + 1
	}
	g.lastTimestamp = timestamp
	g.mutex.Unlock()

	name := interest.Name().DeepCopy()
	name.Append(ndn.NewNumberNameComponent(timestamp))
	name.Append(ndn.NewGenericNameComponent(g.timer.Nonce()))
	if err := SignInterestName(name, signer); err != nil {
		return err
	}
	interest.SetName(name)
	core.LogTrace(g, "Generated command Interest ", name)
	return nil
}

// SignInterestName appends a SignatureInfo component and a SignatureValue component to name.
// The signature covers the encoded components up to and including the SignatureInfo component.
func SignInterestName(name *ndn.Name, signer Signer) error {
	e := tlv.NewEncoder(64)
	signer.SignatureInfo().Encode(e)
	name.Append(ndn.NewGenericNameComponent(e.Output()))

	signed := make([]byte, 0, 256)
	for _, component := range name.Components() {
		signed = append(signed, encodeComponent(component)...)
	}
	signature, err := signer.Sign(signed)
	if err != nil {
		return err
	}

	e = tlv.NewEncoder(len(signature) + 8)
	e.WriteBlobTlv(tlv.SignatureValue, signature)
	name.Append(ndn.NewGenericNameComponent(e.Output()))
	return nil
}

func encodeComponent(c ndn.NameComponent) []byte {
	e := tlv.NewEncoder(len(c.Value()) + 8)
	e.WriteBlobTlv(c.Type(), c.Value())
	return e.Output()
}
