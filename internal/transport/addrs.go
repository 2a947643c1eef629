// ABOUTME: Local interface enumeration and listen-address selection
// ABOUTME: Picks the first private IPv4 address on an up, non-loopback interface
package transport

import (
	"errors"
	"fmt"
	"net"
)

// ErrNoSuitableAddress is returned when no interface carries a usable
// private IPv4 address.
var ErrNoSuitableAddress = errors.New("no suitable local IPv4 address found")

// localIPv4 walks the network interfaces and returns the first private
// IPv4 address on an interface that is up and not loopback. Link-local
// and non-IPv4 addresses are skipped.
func localIPv4() (net.IP, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipnet.IP.To4()
			if ip == nil || ip.IsLoopback() || ip.IsLinkLocalUnicast() {
				continue
			}
			if !ip.IsPrivate() {
				continue
			}
			return ip, nil
		}
	}

	return nil, ErrNoSuitableAddress
}
