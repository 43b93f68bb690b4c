/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/ndn/security"
	"github.com/named-data/ndnc/tools"
	"github.com/urfave/cli/v2"
)

func init() {
	var prefix string
	var interval, timeout time.Duration
	var count int
	var seq uint64
	defineCommand(&cli.Command{
		Name:  "ping",
		Usage: "Send Interests to an NDN ping server.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "prefix",
				Usage:       "Ping server name `prefix`.",
				Destination: &prefix,
				Required:    true,
			},
			&cli.DurationFlag{
				Name:        "interval",
				Aliases:     []string{"i"},
				Usage:       "The `interval` between Interests.",
				Value:       time.Second,
				Destination: &interval,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Aliases:     []string{"t"},
				Usage:       "Interest `lifetime`.",
				Value:       4 * time.Second,
				Destination: &timeout,
			},
			&cli.IntFlag{
				Name:        "count",
				Aliases:     []string{"c"},
				Usage:       "Number of pings to send, 0 for unlimited.",
				Destination: &count,
			},
			&cli.Uint64Flag{
				Name:        "seq",
				Aliases:     []string{"s"},
				Usage:       "Start sequence number, random if 0.",
				Destination: &seq,
			},
		},
		Before: openUplink,
		Action: func(c *cli.Context) error {
			name, e := ndn.NameFromString(prefix)
			if e != nil {
				return e
			}
			if seq == 0 {
				seq = rand.Uint64()
			}
			pc := &tools.PingClient{
				Face:     uplink,
				Prefix:   name,
				Interval: interval,
				Timeout:  timeout,
				Count:    count,
				Seq:      seq,
				Out:      os.Stdout,
			}
			pc.Run(interrupt)
			return nil
		},
	})
}

func init() {
	var prefix string
	defineCommand(&cli.Command{
		Name:  "pingserver",
		Usage: "Answer ping Interests under a prefix.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "prefix",
				Usage:       "Ping server name `prefix`.",
				Destination: &prefix,
				Required:    true,
			},
		},
		Before: openUplink,
		Action: func(c *cli.Context) error {
			name, e := ndn.NameFromString(prefix)
			if e != nil {
				return e
			}
			ps := &tools.PingServer{
				Face:   uplink,
				Prefix: name,
				Signer: security.NewDigestSha256Signer(),
				Out:    os.Stdout,
			}
			return ps.Run(interrupt)
		},
	})
}
