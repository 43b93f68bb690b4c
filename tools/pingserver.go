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
	"sync/atomic"

	"github.com/named-data/ndnc/core"
	"github.com/named-data/ndnc/face"
	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/security"
)

// ErrRegisterFailed is returned when the forwarder refuses a prefix registration.
var ErrRegisterFailed = errors.New("prefix registration failed")

// PingServer answers every Interest under <prefix>/ping.
type PingServer struct {
	Face   *face.Face
	Prefix *ndn.Name
	Signer security.Signer
	Out    io.Writer

	nRecv uint64
}

func (ps *PingServer) String() string {
	return "PingServer"
}

func (ps *PingServer) onInterest(_ *ndn.Name, interest *ndn.Interest, f *face.Face, _ uint64, _ *ndn.InterestFilter) {
	fmt.Fprintf(ps.Out, "interest received: %s\n", interest.Name())
	atomic.AddUint64(&ps.nRecv, 1)

	data := ndn.NewData(interest.Name(), interest.ApplicationParameters())
	wire, err := security.SignData(data, ps.Signer)
	if err != nil {
		core.LogError(ps, "Unable to encode data: ", err)
		return
	}
	if err := f.Send(wire); err != nil {
		core.LogError(ps, "Unable to reply with data: ", err)
	}
}

// Start registers the ping prefix. failed receives an error if the forwarder refuses it.
func (ps *PingServer) Start(failed chan<- error) error {
	name := ps.Prefix.DeepCopy().AppendString("ping")
	_, err := ps.Face.RegisterPrefix(name, ps.onInterest,
		func(prefix *ndn.Name) {
			failed <- fmt.Errorf("%w: %s", ErrRegisterFailed, prefix)
		},
		func(prefix *ndn.Name, _ uint64) {
			fmt.Fprintf(ps.Out, "PING SERVER %s\n", prefix)
		}, nil)
	return err
}

// Run serves until stop is closed or the registration fails.
func (ps *PingServer) Run(stop <-chan struct{}) error {
	failed := make(chan error, 1)
	if err := ps.Start(failed); err != nil {
		return err
	}

	var err error
	select {
	case <-stop:
	case err = <-failed:
	}

	fmt.Fprintf(ps.Out, "\n--- %s ping server statistics ---\n", ps.Prefix)
	fmt.Fprintf(ps.Out, "%d Interests processed\n", atomic.LoadUint64(&ps.nRecv))
	return err
}
