/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tools

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/named-data/ndnc/core"
	"github.com/named-data/ndnc/face"
	"github.com/named-data/ndnc/ndn"
	"github.com/named-data/ndnc/utils/comparison"
)

// PingClient sends Interests named <prefix>/ping/<seq> and reports round-trip times.
type PingClient struct {
	Face     *face.Face
	Prefix   *ndn.Name
	Interval time.Duration
	Timeout  time.Duration
	// Count is the number of pings to send, or 0 to ping until stopped.
	Count int
	Seq   uint64
	Out   io.Writer

	name *ndn.Name

	mutex sync.Mutex
	// stat counters
	nSent    int
	nRecv    int
	nNack    int
	nTimeout int
	// rtt counters
	totalTime time.Duration
	rttMin    time.Duration
	rttMax    time.Duration
}

func (pc *PingClient) String() string {
	return "PingClient"
}

func (pc *PingClient) send(seq uint64) {
	name := pc.name.DeepCopy().Append(ndn.NewNumberNameComponent(seq))
	interest := ndn.NewInterest(name)
	interest.SetMustBeFresh(true)
	interest.SetLifetime(pc.Timeout)

	pc.mutex.Lock()
	pc.nSent++
	pc.mutex.Unlock()
	t1 := time.Now()

	_, err := pc.Face.ExpressInterest(interest,
		func(*ndn.Interest, *ndn.Data) {
			rtt := time.Since(t1)
			fmt.Fprintf(pc.Out, "content from %s: seq=%d, time=%f ms\n",
				pc.Prefix, seq, float64(rtt.Microseconds())/1000.0)
			pc.mutex.Lock()
			defer pc.mutex.Unlock()
			if pc.nRecv == 0 {
				pc.rttMin, pc.rttMax = rtt, rtt
			}
			pc.nRecv++
			pc.totalTime += rtt
			pc.rttMin = comparison.Min(pc.rttMin, rtt)
			pc.rttMax = comparison.Max(pc.rttMax, rtt)
		},
		func(*ndn.Interest) {
			fmt.Fprintf(pc.Out, "timeout from %s: seq=%d\n", pc.Prefix, seq)
			pc.mutex.Lock()
			pc.nTimeout++
			pc.mutex.Unlock()
		},
		func(_ *ndn.Interest, nack *ndn.NetworkNack) {
			fmt.Fprintf(pc.Out, "nack from %s: seq=%d with reason=%s\n", pc.Prefix, seq, nack.Reason())
			pc.mutex.Lock()
			pc.nNack++
			pc.mutex.Unlock()
		})
	if err != nil {
		core.LogError(pc, "Unable to send Interest: ", err)
	}
}

// Stats writes the ping statistics to Out.
func (pc *PingClient) Stats() {
	pc.mutex.Lock()
	defer pc.mutex.Unlock()

	if pc.nSent == 0 {
		fmt.Fprintf(pc.Out, "No interests transmitted\n")
		return
	}

	var rttAvg time.Duration
	if pc.nRecv > 0 {
		rttAvg = pc.totalTime / time.Duration(pc.nRecv)
	}
	fmt.Fprintf(pc.Out, "\n--- %s ping statistics ---\n", pc.Prefix)
	fmt.Fprintf(pc.Out, "%d interests transmitted, %d received, %d%% lost\n",
		pc.nSent, pc.nRecv, (pc.nNack+pc.nTimeout)*100/pc.nSent)
	fmt.Fprintf(pc.Out, "rtt min/avg/max = %f/%f/%f ms\n",
		float64(pc.rttMin.Microseconds())/1000.0,
		float64(rttAvg.Microseconds())/1000.0,
		float64(pc.rttMax.Microseconds())/1000.0)
}

// Run pings until Count pings were sent and answered or timed out, or until stop is closed.
func (pc *PingClient) Run(stop <-chan struct{}) {
	pc.name = pc.Prefix.DeepCopy().AppendString("ping")
	fmt.Fprintf(pc.Out, "PING %s\n", pc.name)
	defer pc.Stats()

	pc.send(pc.Seq)
	ticker := time.NewTicker(pc.Interval)
	defer ticker.Stop()
	for {
		pc.mutex.Lock()
		nSent := pc.nSent
		pc.mutex.Unlock()
		if pc.Count > 0 && nSent >= pc.Count {
			select {
			case <-time.After(pc.Timeout):
			case <-stop:
			}
			return
		}

		select {
		case <-ticker.C:
			pc.Seq++
			pc.send(pc.Seq)
		case <-stop:
			return
		}
	}
}
