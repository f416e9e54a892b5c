package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Endpoint is a WebSocket service advertised over mDNS.
type Endpoint struct {
	// Instance is the advertised service instance name (e.g., "wsdemo echo")
	Instance string

	// Host is the mDNS hostname (e.g., "devbox.local.")
	Host string

	// IP is the preferred address, IPv4 when available
	IP string

	Port int

	// Path is the request path, from the "path" TXT record
	Path string

	// Metadata contains every TXT record as key/value pairs
	Metadata map[string]string

	DiscoveredAt time.Time
}

// URL returns the ws:// URL for the endpoint.
func (e *Endpoint) URL() string {
	path := e.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "ws://" + net.JoinHostPort(e.IP, strconv.Itoa(e.Port)) + path
}

// String returns a human-readable string representation of the endpoint
func (e *Endpoint) String() string {
	return fmt.Sprintf("%s (%s) at %s", e.Instance, e.Host, e.URL())
}
