/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Command ndnc talks to an NDN forwarder: ping, serve pings, fetch and publish Data.
package main

import (
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/named-data/ndnc/core"
	"github.com/named-data/ndnc/face"
	"github.com/urfave/cli/v2"
)

// Version of ndnc.
var Version string

// BuildTime contains the timestamp of when the version of ndnc was built.
var BuildTime string

var (
	// interrupt is closed on SIGINT or SIGTERM.
	interrupt = make(chan struct{})
	uplink    *face.Face
)

func openUplink(c *cli.Context) (e error) {
	uri := c.String("transport")
	if uri == "" {
		uplink, e = face.NewDefaultFace()
	} else {
		uplink, e = face.NewFaceFromURI(uri)
	}
	return e
}

var app = &cli.App{
	Name:  "ndnc",
	Usage: "NDN client tools.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "TOML configuration `file`.",
			EnvVars: []string{"NDNC_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "transport",
			Usage:   "Forwarder face `URI`, overriding face.transport.",
			EnvVars: []string{"NDNC_TRANSPORT"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log `level`, overriding core.log_level.",
		},
	},
	Before: func(c *cli.Context) error {
		if file := c.String("config"); file != "" {
			if e := core.LoadConfig(file); e != nil {
				return e
			}
		}
		core.InitializeLogger(os.Stderr)
		if level := c.String("log-level"); level != "" {
			core.SetLogLevel(level)
		}

		sigchan := make(chan os.Signal, 1)
		signal.Notify(sigchan, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigchan
			close(interrupt)
		}()
		return nil
	},
	After: func(c *cli.Context) error {
		if uplink != nil {
			return uplink.Close()
		}
		return nil
	},
}

func defineCommand(command *cli.Command) {
	app.Commands = append(app.Commands, command)
}

func main() {
	core.Version = Version
	core.BuildTime = BuildTime
	app.Version = Version

	sort.Sort(cli.CommandsByName(app.Commands))
	if e := app.Run(os.Args); e != nil {
		core.LogFatal("Main", e)
	}
}
