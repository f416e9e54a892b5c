// Package discovery finds WebSocket endpoints on the local network.
//
// Endpoints are expected to advertise a DNS-SD service of type _ws._tcp in
// the local. domain, with an optional "path" TXT record naming the request
// path. For example, with avahi:
//
//	avahi-publish -s "wsdemo echo" _ws._tcp 1323 path=/ws
//
// A Scanner collects answers until its Timeout elapses:
//
//	endpoints, err := discovery.NewScanner().Scan(ctx)
//	for _, e := range endpoints {
//	    fmt.Println(e.URL()) // ws://192.168.1.20:1323/ws
//	}
package discovery
