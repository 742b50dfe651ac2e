package discovery

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/a1amit/lanspeed/internal/config"
	"github.com/a1amit/lanspeed/internal/protocol"
	"github.com/a1amit/lanspeed/internal/util"
)

// Tuning constants.
const (
	pollInterval   = time.Second // read deadline, doubles as the ctx check period
	offerQueueSize = 16          // buffered endpoints awaiting the test flow
)

// Listen binds the discovery port (with address/port sharing, so several
// clients can coexist on one host) and surfaces decoded offers on the
// returned channel. Offers arriving while gate is busy are dropped, as are
// offers nobody is draining. The channel closes when ctx is cancelled.
func Listen(ctx context.Context, cfg config.Config, gate *Gate) (<-chan Endpoint, error) {
	conn, err := util.ListenPacketShared("udp4", fmt.Sprintf(":%d", cfg.OfferPort))
	if err != nil {
		return nil, fmt.Errorf("failed to bind discovery port %d: %w", cfg.OfferPort, err)
	}

	offers := make(chan Endpoint, offerQueueSize)

	go func() {
		defer conn.Close()
		defer close(offers)

		buf := make([]byte, cfg.UDPBufferSize)
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			// Short deadline so the loop periodically re-checks ctx.
			conn.SetReadDeadline(time.Now().Add(pollInterval))
			n, addr, err := conn.ReadFrom(buf)
			if err != nil {
				if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
					continue
				}
				util.LogWarning("discovery read error: %v", err)
				continue
			}

			offer, ok := protocol.DecodeOffer(buf[:n])
			if !ok {
				// Not protocol traffic — ignore.
				continue
			}

			ep := Endpoint{
				Addr:    addr.(*net.UDPAddr).IP.String(),
				UDPPort: offer.UDPPort,
				TCPPort: offer.TCPPort,
			}

			if gate.Busy() {
				util.LogDebug("dropping offer from %s: transfer in progress", ep.Addr)
				continue
			}

			select {
			case offers <- ep:
				util.LogDebug("queued offer from %s", ep)
			default:
				util.LogDebug("dropping offer from %s: queue full", ep.Addr)
			}
		}
	}()

	return offers, nil
}
