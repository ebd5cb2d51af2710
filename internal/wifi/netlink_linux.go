//go:build linux

package wifi

import (
	"context"
	"errors"
	"fmt"
	"os"

	nl "github.com/mdlayher/wifi"
)

// NetlinkProbe asks the kernel over nl80211 which BSS each station
// interface is associated with, without running any program.
type NetlinkProbe struct {
	Interface string // empty checks every station interface
	c         *nl.Client
}

// NewNetlinkProbe opens an nl80211 connection. Close releases it.
func NewNetlinkProbe(iface string) (*NetlinkProbe, error) {
	c, err := nl.New()
	if err != nil {
		return nil, fmt.Errorf("wifi probe: nl80211: %w", err)
	}
	return &NetlinkProbe{Interface: iface, c: c}, nil
}

// Check reports Associated for the first station interface with an
// associated BSS.
func (p *NetlinkProbe) Check(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	ifis, err := p.c.Interfaces()
	if err != nil {
		return Result{}, fmt.Errorf("wifi probe: list interfaces: %w", err)
	}
	seen := false
	for _, ifi := range ifis {
		if ifi.Type != nl.InterfaceTypeStation {
			continue
		}
		if p.Interface != "" && ifi.Name != p.Interface {
			continue
		}
		seen = true
		bss, err := p.c.BSS(ifi)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return Result{}, fmt.Errorf("wifi probe: %s: %w", ifi.Name, err)
		}
		if bss.Status == nl.BSSStatusAssociated {
			return Result{Status: Associated, SSID: bss.SSID}, nil
		}
	}
	if p.Interface != "" && !seen {
		return Result{}, fmt.Errorf("wifi probe: %s: %w", p.Interface, ErrNoInterface)
	}
	return Result{Status: NotAssociated}, nil
}

// Close releases the netlink connection.
func (p *NetlinkProbe) Close() error { return p.c.Close() }
