package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   *zeroconf.ServiceEntry
		wantNil bool
		wantURL string
	}{
		{
			name: "IPv4 with path record",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "echo"},
				HostName:      "devbox.local.",
				Port:          1323,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.20")},
				Text:          []string{"path=/ws"},
			},
			wantURL: "ws://192.168.1.20:1323/ws",
		},
		{
			name: "missing path falls back to default",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "echo"},
				HostName:      "devbox.local.",
				Port:          8080,
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.5")},
			},
			wantURL: "ws://10.0.0.5:8080/ws",
		},
		{
			name: "path without leading slash",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "chat"},
				Port:          9000,
				AddrIPv4:      []net.IP{net.ParseIP("10.0.0.6")},
				Text:          []string{"path=socket"},
			},
			wantURL: "ws://10.0.0.6:9000/socket",
		},
		{
			name: "IPv6 only",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "v6"},
				Port:          1323,
				AddrIPv6:      []net.IP{net.ParseIP("fe80::1")},
			},
			wantURL: "ws://[fe80::1]:1323/ws",
		},
		{
			name: "prefers IPv4",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "dual"},
				Port:          1323,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.50")},
				AddrIPv6:      []net.IP{net.ParseIP("fe80::2")},
			},
			wantURL: "ws://192.168.1.50:1323/ws",
		},
		{
			name: "no address",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "ghost"},
				Port:          1323,
			},
			wantNil: true,
		},
		{
			name: "no port",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "noport"},
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.1")},
			},
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if endpoint != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", endpoint)
				}
				return
			}

			if endpoint == nil {
				t.Fatal("parseServiceEntry() = nil, want endpoint")
			}
			if got := endpoint.URL(); got != tt.wantURL {
				t.Errorf("URL() = %v, want %v", got, tt.wantURL)
			}
			if endpoint.Instance != tt.entry.Instance {
				t.Errorf("Instance = %v, want %v", endpoint.Instance, tt.entry.Instance)
			}
			if time.Since(endpoint.DiscoveredAt) > time.Second {
				t.Errorf("DiscoveredAt is not recent: %v", endpoint.DiscoveredAt)
			}
		})
	}
}

func TestParseServiceEntryMetadata(t *testing.T) {
	entry := &zeroconf.ServiceEntry{
		ServiceRecord: zeroconf.ServiceRecord{Instance: "echo"},
		Port:          1323,
		AddrIPv4:      []net.IP{net.ParseIP("192.168.4.16")},
		Text:          []string{"path=/ws", "proto=text", "flag", "note=a=b"},
	}

	endpoint := parseServiceEntry(entry)
	if endpoint == nil {
		t.Fatal("parseServiceEntry() = nil")
	}

	want := map[string]string{
		"path":  "/ws",
		"proto": "text",
		"flag":  "",
		"note":  "a=b",
	}
	if len(endpoint.Metadata) != len(want) {
		t.Errorf("Metadata has %d entries, want %d", len(endpoint.Metadata), len(want))
	}
	for k, v := range want {
		if got, ok := endpoint.Metadata[k]; !ok || got != v {
			t.Errorf("Metadata[%q] = %q, want %q", k, got, v)
		}
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()
	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}
