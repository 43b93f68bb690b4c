/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/named-data/ndnc/core"
)

type uriType int

const (
	unknownURI uriType = iota
	tcpURI
	unixURI
	wsURI
)

// Default forwarder ports
const (
	DefaultTCPPort       uint16 = 6363
	DefaultWebSocketPort uint16 = 9696
)

const unixPattern = `^unix://(?P<path>[/\\A-Za-z0-9\:\.\-_]+)$`

var unixRegex = regexp.MustCompile(unixPattern)

// URI identifies the forwarder a face connects to.
type URI struct {
	uriType uriType
	scheme  string
	host    string
	port    uint16
	path    string
}

// MakeTCPFaceURI constructs a URI for a TCP connection. IPv6 hosts are given without brackets.
func MakeTCPFaceURI(host string, port uint16) *URI {
	u := &URI{uriType: tcpURI, scheme: "tcp", host: host, port: port}
	if ip := net.ParseIP(hostWithoutZone(host)); ip != nil {
		if ip.To4() != nil {
			u.scheme = "tcp4"
		} else {
			u.scheme = "tcp6"
		}
	}
	return u
}

// MakeUnixFaceURI constructs a URI for a Unix stream socket.
func MakeUnixFaceURI(path string) *URI {
	return &URI{uriType: unixURI, scheme: "unix", path: path}
}

// MakeWebSocketFaceURI constructs a URI for a WebSocket connection.
func MakeWebSocketFaceURI(secure bool, host string, port uint16, path string) *URI {
	scheme := "ws"
	if secure {
		scheme = "wss"
	}
	return &URI{uriType: wsURI, scheme: scheme, host: host, port: port, path: path}
}

// DecodeURIString decodes a face URI from a string. TCP URIs default to port 6363 and
// WebSocket URIs to port 9696.
func DecodeURIString(str string) (*URI, error) {
	schemeSplit := strings.SplitN(str, ":", 2)
	if len(schemeSplit) < 2 {
		return nil, ErrUnsupportedURI
	}

	switch scheme := strings.ToLower(schemeSplit[0]); scheme {
	case "unix":
		matches := unixRegex.FindStringSubmatch(str)
		if matches == nil {
			return nil, ErrUnsupportedURI
		}
		return MakeUnixFaceURI(matches[unixRegex.SubexpIndex("path")]), nil
	case "tcp", "tcp4", "tcp6", "ws", "wss":
		parsed, err := url.Parse(str)
		if err != nil || parsed.User != nil || parsed.Hostname() == "" ||
			parsed.RawQuery != "" || parsed.Fragment != "" {
			return nil, ErrUnsupportedURI
		}
		u := &URI{scheme: scheme, host: parsed.Hostname()}
		if strings.HasPrefix(scheme, "tcp") {
			if strings.Trim(parsed.Path, "/") != "" {
				return nil, ErrUnsupportedURI
			}
			u.uriType = tcpURI
			u.port = DefaultTCPPort
		} else {
			u.uriType = wsURI
			u.port = DefaultWebSocketPort
			u.path = parsed.Path
		}
		if parsed.Port() != "" {
			port, err := strconv.ParseUint(parsed.Port(), 10, 16)
			if err != nil || port == 0 {
				return nil, ErrUnsupportedURI
			}
			u.port = uint16(port)
		}
		return u, nil
	}
	return nil, ErrUnsupportedURI
}

// Scheme returns the scheme of the face URI.
func (u *URI) Scheme() string {
	return u.scheme
}

// Host returns the host of a TCP or WebSocket URI, including any IPv6 zone.
func (u *URI) Host() string {
	return u.host
}

// Port returns the port of a TCP or WebSocket URI.
func (u *URI) Port() uint16 {
	return u.port
}

// Path returns the socket path of a Unix URI or the request path of a WebSocket URI.
func (u *URI) Path() string {
	return u.path
}

// Network returns the network name to dial, as understood by package net.
func (u *URI) Network() string {
	switch u.uriType {
	case tcpURI:
		return u.scheme
	case unixURI:
		return "unix"
	case wsURI:
		return "tcp"
	}
	return ""
}

// Address returns the address to dial, as understood by package net.
func (u *URI) Address() string {
	if u.uriType == unixURI {
		return u.path
	}
	return net.JoinHostPort(u.host, strconv.FormatUint(uint64(u.port), 10))
}

// URL returns the WebSocket URL of a WebSocket URI.
func (u *URI) URL() string {
	return u.scheme + "://" + u.Address() + u.path
}

// IsCanonical returns whether the face URI names a literal address of the scheme's family.
func (u *URI) IsCanonical() bool {
	switch u.uriType {
	case tcpURI:
		ip := net.ParseIP(hostWithoutZone(u.host))
		return ip != nil && u.port > 0 && ((u.scheme == "tcp4" && ip.To4() != nil) ||
			(u.scheme == "tcp6" && ip.To4() == nil))
	case unixURI:
		return u.scheme == "unix" && u.path != "" && u.port == 0
	case wsURI:
		return u.host != "" && u.port > 0
	}
	return false
}

// Canonize resolves the host of a TCP URI and picks tcp4 or tcp6 accordingly.
func (u *URI) Canonize() error {
	switch u.uriType {
	case unixURI, wsURI:
		return nil
	case tcpURI:
		host := hostWithoutZone(u.host)
		zone := strings.TrimPrefix(u.host, host)
		ip := net.ParseIP(host)
		if ip == nil {
			resolvedIPs, err := net.LookupHost(host)
			if err != nil || len(resolvedIPs) == 0 {
				return core.ErrNotCanonical
			}
			ip = net.ParseIP(resolvedIPs[0])
			if ip == nil {
				return core.ErrNotCanonical
			}
		}
		if ip.To4() != nil {
			u.scheme = "tcp4"
		} else {
			u.scheme = "tcp6"
		}
		u.host = ip.String() + zone
		return nil
	}
	return core.ErrNotCanonical
}

// IsLocal returns whether the URI points at the local machine. Unix sockets are always local.
// Host names other than "localhost" are resolved and are local only if every address is a loopback.
func (u *URI) IsLocal() (bool, error) {
	switch u.uriType {
	case unixURI:
		return true, nil
	case tcpURI, wsURI:
		host := hostWithoutZone(u.host)
		if strings.EqualFold(host, "localhost") {
			return true, nil
		}
		if ip := net.ParseIP(host); ip != nil {
			return ip.IsLoopback(), nil
		}
		ips, err := net.LookupIP(host)
		if err != nil {
			return false, err
		}
		for _, ip := range ips {
			if !ip.IsLoopback() {
				return false, nil
			}
		}
		return len(ips) > 0, nil
	}
	return false, ErrUnsupportedURI
}

func (u *URI) String() string {
	switch u.uriType {
	case tcpURI:
		return u.scheme + "://" + u.Address()
	case unixURI:
		return "unix://" + u.path
	case wsURI:
		return u.URL()
	default:
		return "unknown://"
	}
}

func hostWithoutZone(host string) string {
	if i := strings.IndexByte(host, '%'); i >= 0 {
		return host[:i]
	}
	return host
}
