package transfer

import (
	"bufio"
	"context"
	"net"
	"strconv"
	"strings"

	"github.com/a1amit/lanspeed/internal/config"
	"github.com/a1amit/lanspeed/internal/util"
)

// Dispatcher owns the server-side accept/receive loops and hands each
// transfer to a bounded pool of handler goroutines.
type Dispatcher struct {
	cfg   config.Config
	stats *util.TrafficStats
}

// NewDispatcher creates a dispatcher with the given tuning and counters.
func NewDispatcher(cfg config.Config, stats *util.TrafficStats) *Dispatcher {
	return &Dispatcher{cfg: cfg, stats: stats}
}

// ServeTCP accepts connections on ln until ctx is cancelled. For each
// connection it reads the newline-terminated ASCII size line, then submits
// the streaming work to a bounded worker pool. When the pool is saturated,
// submission blocks and the accept backlog absorbs the delay — clients are
// never sent an explicit rejection.
func (d *Dispatcher) ServeTCP(ctx context.Context, ln net.Listener) error {
	// Close the listener when context is done so Accept() returns an error.
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	util.LogInfo("[TCP] listening on %s", ln.Addr())

	sem := make(chan struct{}, d.cfg.WorkerPoolSize)
	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil // normal shutdown
			default:
				util.LogWarning("[TCP] accept error: %v", err)
				continue
			}
		}

		fileSize, err := readSizeLine(conn)
		if err != nil {
			// Connection closed or garbage before the newline — drop it.
			util.LogWarning("[TCP] no size line from %s: %v", conn.RemoteAddr(), err)
			conn.Close()
			continue
		}

		d.stats.AddTCPConn()
		util.LogDebug("[TCP] accepted %s requesting %d bytes", conn.RemoteAddr(), fileSize)

		sem <- struct{}{} // blocks while the pool is saturated
		go func(conn net.Conn, fileSize uint64) {
			defer func() { <-sem }()
			d.handleTCPClient(conn, fileSize)
		}(conn, fileSize)
	}
}

// ServeUDP reads request datagrams from conn until ctx is cancelled and
// answers each from a handler goroutine. The same bound as the TCP pool caps
// how many bursts run at once, so a request flood cannot grow goroutines
// without limit. Replies go out on the shared socket, which is safe for
// concurrent sends.
func (d *Dispatcher) ServeUDP(ctx context.Context, conn net.PacketConn) error {
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	util.LogInfo("[UDP] listening on %s", conn.LocalAddr())

	sem := make(chan struct{}, d.cfg.WorkerPoolSize)
	buf := make([]byte, d.cfg.UDPBufferSize)
	for {
		n, addr, err := conn.ReadFrom(buf)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				util.LogWarning("[UDP] receive error: %v", err)
				continue
			}
		}

		// The read buffer is reused — hand the handler its own copy.
		data := make([]byte, n)
		copy(data, buf[:n])

		d.stats.AddUDPRequest()

		sem <- struct{}{}
		go func(addr net.Addr, data []byte) {
			defer func() { <-sem }()
			d.handleUDPRequest(conn, addr, data)
		}(addr, data)
	}
}

// readSizeLine reads the client's control line: the requested transfer size
// as decimal ASCII terminated by a newline.
func readSizeLine(conn net.Conn) (uint64, error) {
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(line), 10, 64)
}
