/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tools

import (
	"fmt"
	"time"

	"github.com/named-data/ndnc/core"
	"github.com/named-data/ndnc/face"
	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/security"
)

// Poke publishes one Data packet and serves it to the first Interest that asks for it.
type Poke struct {
	Face      *face.Face
	Name      *ndn.Name
	Content   []byte
	Freshness *time.Duration
	Signer    security.Signer
	// Timeout bounds the wait for an Interest. Zero waits until stop is closed.
	Timeout time.Duration
}

func (p *Poke) String() string {
	return "Poke"
}

// Run registers Name and returns once the Data has been sent, the registration fails,
// Timeout passes, or stop is closed.
func (p *Poke) Run(stop <-chan struct{}) error {
	data := ndn.NewData(p.Name, p.Content)
	if p.Freshness != nil {
		data.MetaInfo().SetFreshnessPeriod(p.Freshness)
	}
	wire, err := security.SignData(data, p.Signer)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	served := make(chan struct{})
	var registeredPrefixID uint64
	registeredPrefixID, err = p.Face.RegisterPrefix(p.Name,
		func(_ *ndn.Name, interest *ndn.Interest, f *face.Face, _ uint64, _ *ndn.InterestFilter) {
			if !interest.MatchesData(data) {
				core.LogDebug(p, "Interest ", interest.Name(), " does not match - DROP")
				return
			}
			select {
			case <-served:
				return
			default:
				close(served)
			}
			done <- f.Send(wire)
		},
		func(prefix *ndn.Name) {
			done <- fmt.Errorf("%w: %s", ErrRegisterFailed, prefix)
		},
		nil, nil)
	if err != nil {
		return err
	}
	defer p.Face.RemoveRegisteredPrefix(registeredPrefixID)

	var timeout <-chan time.Time
	if p.Timeout > 0 {
		timer := time.NewTimer(p.Timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case err = <-done:
		return err
	case <-timeout:
		return ErrTimeout
	case <-stop:
		return nil
	}
}
