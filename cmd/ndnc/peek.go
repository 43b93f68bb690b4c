/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package main

import (
	"io"
	"os"
	"time"

	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/security"
	"github.com/named-data/ndnc/tools"
	"github.com/urfave/cli/v2"
)

func init() {
	var name string
	var lifetime time.Duration
	var mustBeFresh, exact bool
	defineCommand(&cli.Command{
		Name:  "peek",
		Usage: "Fetch one Data packet and write its content to stdout.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Usage:       "Interest `name`.",
				Destination: &name,
				Required:    true,
			},
			&cli.DurationFlag{
				Name:        "lifetime",
				Usage:       "Interest `lifetime`.",
				Value:       4 * time.Second,
				Destination: &lifetime,
			},
			&cli.BoolFlag{
				Name:        "fresh",
				Usage:       "Set MustBeFresh.",
				Destination: &mustBeFresh,
			},
			&cli.BoolFlag{
				Name:        "exact",
				Usage:       "Only accept Data named exactly `name`.",
				Destination: &exact,
			},
		},
		Before: openUplink,
		Action: func(c *cli.Context) error {
			n, e := ndn.NameFromString(name)
			if e != nil {
				return e
			}
			peek := &tools.Peek{
				Face:        uplink,
				Name:        n,
				Lifetime:    lifetime,
				MustBeFresh: mustBeFresh,
				Exact:       exact,
				Out:         os.Stdout,
			}
			return peek.Run()
		},
	})
}

func init() {
	var name string
	var freshness, timeout time.Duration
	defineCommand(&cli.Command{
		Name:  "poke",
		Usage: "Publish stdin as one Data packet and serve it to the first Interest.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Usage:       "Data `name`.",
				Destination: &name,
				Required:    true,
			},
			&cli.DurationFlag{
				Name:        "freshness",
				Usage:       "FreshnessPeriod, omitted if 0.",
				Destination: &freshness,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Usage:       "How long to wait for an Interest, 0 for no limit.",
				Value:       10 * time.Second,
				Destination: &timeout,
			},
		},
		Before: openUplink,
		Action: func(c *cli.Context) error {
			n, e := ndn.NameFromString(name)
			if e != nil {
				return e
			}
			content, e := io.ReadAll(io.LimitReader(os.Stdin, ndn.MaxNDNPacketSize))
			if e != nil {
				return e
			}
			poke := &tools.Poke{
				Face:    uplink,
				Name:    n,
				Content: content,
				Signer:  security.NewDigestSha256Signer(),
				Timeout: timeout,
			}
			if freshness > 0 {
				poke.Freshness = &freshness
			}
			return poke.Run(interrupt)
		},
	})
}
