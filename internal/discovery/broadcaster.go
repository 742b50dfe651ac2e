package discovery

import (
	"context"
	"net"
	"time"

	"github.com/a1amit/lanspeed/internal/config"
	"github.com/a1amit/lanspeed/internal/protocol"
	"github.com/a1amit/lanspeed/internal/util"
)

// Broadcast announces the server's transfer ports on the discovery port every
// cfg.OfferInterval until ctx is cancelled. The offer is encoded once — the
// ports are fixed for the process lifetime. Send failures are logged and the
// next tick retries; they are never fatal.
func Broadcast(ctx context.Context, cfg config.Config, udpPort, tcpPort uint16) error {
	dst := &net.UDPAddr{IP: net.IPv4bcast, Port: cfg.OfferPort}
	return broadcastTo(ctx, cfg, dst, udpPort, tcpPort)
}

// broadcastTo runs the announce loop against an explicit destination.
func broadcastTo(ctx context.Context, cfg config.Config, dst *net.UDPAddr, udpPort, tcpPort uint16) error {
	conn, err := util.ListenPacketBroadcast("udp4", ":0")
	if err != nil {
		return err
	}
	defer conn.Close()

	offer := protocol.EncodeOffer(udpPort, tcpPort)

	util.LogInfo("broadcasting offers to port %d (TCP:%d, UDP:%d)", dst.Port, tcpPort, udpPort)

	ticker := time.NewTicker(cfg.OfferInterval)
	defer ticker.Stop()

	for {
		if _, err := conn.WriteTo(offer, dst); err != nil {
			util.LogWarning("offer broadcast failed: %v", err)
		} else {
			util.LogDebug("broadcasted offer (TCP:%d, UDP:%d)", tcpPort, udpPort)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil
		}
	}
}
