package metadata

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"syscall"
	"time"
)

const maxRedirects = 5

// ErrForbiddenAddress is returned when a fetch would connect to a loopback,
// private, link-local, multicast or otherwise non-public address.
var ErrForbiddenAddress = errors.New("address not allowed")

// sharedAddressSpace is the carrier-grade NAT range, which netip does not
// classify as private.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// publicAddr reports whether a is routable on the public internet.
func publicAddr(a netip.Addr) bool {
	a = a.Unmap()
	switch {
	case !a.IsValid(),
		a.IsUnspecified(),
		a.IsLoopback(),
		a.IsPrivate(),
		a.IsLinkLocalUnicast(),
		a.IsLinkLocalMulticast(),
		a.IsInterfaceLocalMulticast(),
		a.IsMulticast(),
		sharedAddressSpace.Contains(a):
		return false
	}
	return a.Is6() || a.As4()[0] != 0
}

// dialControl runs after DNS resolution on every connection attempt, so
// redirects and rebinding are checked against the address actually dialed.
func dialControl(allow func(netip.AddrPort) bool) func(network, address string, _ syscall.RawConn) error {
	return func(network, address string, _ syscall.RawConn) error {
		ap, err := netip.ParseAddrPort(address)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrForbiddenAddress, address)
		}
		if !allow(ap) {
			return fmt.Errorf("%w: %s", ErrForbiddenAddress, ap.Addr())
		}
		return nil
	}
}

func allowPublic(ap netip.AddrPort) bool { return publicAddr(ap.Addr()) }

// newGuardedClient returns a client that only connects to addresses accepted
// by allow. Proxies are disabled because they would dial on our behalf.
func newGuardedClient(allow func(netip.AddrPort) bool) *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   dialControl(allow),
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.Proxy = nil
	tr.DialContext = dialer.DialContext

	return &http.Client{
		Transport: tr,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}
