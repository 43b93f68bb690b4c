/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tools

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/named-data/ndnc/face"
	"github.com/named-data/ndnc/ndn"
)

// ErrTimeout is returned when no Data arrives within the Interest lifetime.
var ErrTimeout = errors.New("Interest timed out")

// Peek fetches one Data packet and writes its content to Out.
type Peek struct {
	Face        *face.Face
	Name        *ndn.Name
	Lifetime    time.Duration
	MustBeFresh bool
	// Exact limits the match to Data named exactly Name.
	Exact bool
	Out   io.Writer
}

// Run expresses the Interest and waits for its outcome.
func (p *Peek) Run() error {
	interest := ndn.NewInterest(p.Name)
	interest.SetLifetime(p.Lifetime)
	interest.SetMustBeFresh(p.MustBeFresh)
	if p.Exact {
		maxSuffix := uint64(1)
		interest.SetMaxSuffixComponents(&maxSuffix)
	}

	result := make(chan error, 1)
	_, err := p.Face.ExpressInterest(interest,
		func(_ *ndn.Interest, data *ndn.Data) {
			_, err := p.Out.Write(data.Content())
			result <- err
		},
		func(*ndn.Interest) {
			result <- ErrTimeout
		},
		func(_ *ndn.Interest, nack *ndn.NetworkNack) {
			result <- fmt.Errorf("Nack received: %s", nack.Reason())
		})
	if err != nil {
		return err
	}
	return <-result
}
