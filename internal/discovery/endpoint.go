// Package discovery implements the offer broadcast/listen mechanism used to
// find speed-test servers on the local network.
package discovery

import (
	"fmt"
	"sync/atomic"
)

// Endpoint is a candidate server populated from a received offer.
type Endpoint struct {
	Addr    string // server IP address as seen on the offer datagram
	UDPPort uint16
	TCPPort uint16
}

func (e Endpoint) String() string {
	return fmt.Sprintf("%s (TCP:%d, UDP:%d)", e.Addr, e.TCPPort, e.UDPPort)
}

// Gate is the shared busy condition between the listener and the test flow.
// While held, freshly received offers are dropped instead of queued, so a
// running test is never interrupted by offer buildup.
type Gate struct {
	busy atomic.Bool
}

// NewGate creates an idle gate.
func NewGate() *Gate {
	return &Gate{}
}

// TryAcquire marks the gate busy. Returns false if it already was.
func (g *Gate) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release marks the gate idle again.
func (g *Gate) Release() {
	g.busy.Store(false)
}

// Busy reports whether a test is currently in progress.
func (g *Gate) Busy() bool {
	return g.busy.Load()
}
