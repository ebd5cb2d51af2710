//go:build !linux

package wifi

import (
	"context"
	"errors"
)

// NetlinkProbe is only implemented on Linux.
type NetlinkProbe struct {
	Interface string
}

func NewNetlinkProbe(iface string) (*NetlinkProbe, error) {
	return nil, errors.New("wifi probe: nl80211 is only supported on linux")
}

func (p *NetlinkProbe) Check(ctx context.Context) (Result, error) {
	return Result{}, errors.New("wifi probe: nl80211 is only supported on linux")
}

func (p *NetlinkProbe) Close() error { return nil }
