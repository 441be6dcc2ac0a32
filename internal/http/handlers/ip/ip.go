package ip

import (
	"fmt"
	"net/http"
	"net/netip"
)

// IP_HEADER is set by the reverse proxy in front of the service.
const IP_HEADER = "X-Real-IP"

// FromRequest returns the client address, falling back to the peer address
// when the service is reached without a proxy.
func FromRequest(r *http.Request) (netip.Addr, error) {
	if raw := r.Header.Get(IP_HEADER); raw != "" {
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return addr, fmt.Errorf("invalid %s header value", IP_HEADER)
		}
		return addr, nil
	}
	addrPort, err := netip.ParseAddrPort(r.RemoteAddr)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("could not parse remote address")
	}
	return addrPort.Addr(), nil
}
