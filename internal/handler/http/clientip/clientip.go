// Package clientip extracts the client address of a request.
//
// Only the TCP peer address is used. Forwarding headers are ignored because a
// client can set them freely.
package clientip

import (
	"net"
	"net/http"
)

// FromRequest returns the IP of r.RemoteAddr without the port.
//
// Examples:
//   - "192.168.1.1:54321" → "192.168.1.1"
//   - "[2001:db8::1]:8080" → "2001:db8::1"
//   - "127.0.0.1" → "127.0.0.1" (no port)
func FromRequest(r *http.Request) string {
	return FromAddr(r.RemoteAddr)
}

// FromAddr strips the port from an "IP:port" address.
func FromAddr(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
