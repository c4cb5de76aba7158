package allocator

import (
	"context"
	"net"
	"strconv"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

const (
	defProbeTimeout = 2 * time.Second
)

// NetProber pings and dials boxes.
type NetProber struct {
	Timeout time.Duration

	// Privileged sends raw ICMP (needs CAP_NET_RAW), otherwise UDP pings are used
	Privileged bool
}

func NewNetProber(timeout time.Duration, privileged bool) *NetProber {
	if timeout <= 0 {
		timeout = defProbeTimeout
	}
	return &NetProber{Timeout: timeout, Privileged: privileged}
}

func (p *NetProber) Reachable(ctx context.Context, ip string) bool {
	pinger, err := probing.NewPinger(ip)
	if err != nil {
		return false
	}
	pinger.Count = 1
	pinger.Timeout = p.Timeout
	pinger.SetPrivileged(p.Privileged)

	err = pinger.RunWithContext(ctx)
	if err != nil {
		return false
	}
	return pinger.Statistics().PacketsRecv > 0
}

func (p *NetProber) Accepts(ctx context.Context, ip string, port int) bool {
	d := net.Dialer{Timeout: p.Timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(ip, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
