/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import "time"

// MaxNDNPacketSize is the largest encoding a face will send or buffer.
const MaxNDNPacketSize = 8800

// DefaultInterestLifetime applies when an Interest carries no InterestLifetime.
const DefaultInterestLifetime = 4000 * time.Millisecond
