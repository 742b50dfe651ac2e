// Package app contains the top-level orchestration for the server and client roles.
package app

import (
	"context"
	"fmt"
	"net"

	"github.com/a1amit/lanspeed/internal/config"
	"github.com/a1amit/lanspeed/internal/discovery"
	"github.com/a1amit/lanspeed/internal/transfer"
	"github.com/a1amit/lanspeed/internal/util"
)

// RunServer wires up and runs the full server side:
//  1. Bind the TCP and UDP transfer ports
//  2. Start the offer broadcaster
//  3. Start the TCP accept loop and UDP request loop
//  4. Block until ctx is cancelled or a listener fails
//
// In-flight transfers are not drained on shutdown; they are abandoned with
// the process.
func RunServer(ctx context.Context, cfg config.Config, tcpPort, udpPort int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", tcpPort))
	if err != nil {
		return fmt.Errorf("failed to bind TCP port %d: %w", tcpPort, err)
	}
	pc, err := net.ListenPacket("udp4", fmt.Sprintf(":%d", udpPort))
	if err != nil {
		ln.Close()
		return fmt.Errorf("failed to bind UDP port %d: %w", udpPort, err)
	}

	// Resolve the actual ports in case 0 was requested.
	tcpPort = ln.Addr().(*net.TCPAddr).Port
	udpPort = pc.LocalAddr().(*net.UDPAddr).Port

	stats := util.NewTrafficStats()
	stats.StartReporter(ctx)
	dispatcher := transfer.NewDispatcher(cfg, stats)

	go func() {
		if err := discovery.Broadcast(ctx, cfg, uint16(udpPort), uint16(tcpPort)); err != nil {
			util.LogError("offer broadcaster failed to start: %v", err)
		}
	}()

	errCh := make(chan error, 2)
	go func() { errCh <- dispatcher.ServeTCP(ctx, ln) }()
	go func() { errCh <- dispatcher.ServeUDP(ctx, pc) }()

	util.LogSuccess("server started, listening on IP address %s (TCP:%d, UDP:%d)",
		util.LocalIP(), tcpPort, udpPort)

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}
