package transfer

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/net/ipv4"

	"github.com/a1amit/lanspeed/internal/config"
	"github.com/a1amit/lanspeed/internal/util"
)

// Tuning constants.
const (
	tcpChunkSize      = 4096      // server-side write granularity
	tcpReadBufferSize = 64 * 1024 // client-side read granularity
)

// fillerChunk is the dummy content streamed to clients. Only its length matters.
var fillerChunk = makeFiller(tcpChunkSize)

func makeFiller(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return b
}

// ---------------------------------------------------------------------------
// Server side
// ---------------------------------------------------------------------------

// handleTCPClient streams exactly fileSize filler bytes to an accepted
// connection and closes it. Errors abort only this connection.
func (d *Dispatcher) handleTCPClient(conn net.Conn, fileSize uint64) {
	defer conn.Close()
	addr := conn.RemoteAddr()

	util.LogDebug("[TCP] streaming %d bytes to %s", fileSize, addr)
	start := time.Now()

	var sent uint64
	for sent < fileSize {
		chunk := fillerChunk
		if remaining := fileSize - sent; remaining < tcpChunkSize {
			chunk = fillerChunk[:remaining]
		}
		n, err := conn.Write(chunk)
		sent += uint64(n)
		if err != nil {
			util.LogWarning("[TCP] write to %s failed after %d bytes: %v", addr, sent, err)
			return
		}
	}

	elapsed := time.Since(start)
	d.stats.AddTCPBytes(int64(sent))
	util.LogInfo("[TCP] sent %s to %s in %.2fs (%s)",
		util.FormatBytes(float64(sent)), addr, elapsed.Seconds(),
		util.FormatBitRate(throughput(sent, elapsed)))
}

// ---------------------------------------------------------------------------
// Client side
// ---------------------------------------------------------------------------

// RunTCP performs one TCP transfer unit: connect, send the requested size as
// an ASCII decimal line, then read until fileSize bytes arrived or the peer
// closed. The timer spans the whole exchange including connect.
func RunTCP(job Job, cfg config.Config) Result {
	res := Result{ID: job.ID, Proto: ProtoTCP}
	addr := fmt.Sprintf("%s:%d", job.Endpoint.Addr, job.Endpoint.TCPPort)

	start := time.Now()
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		res.Err = fmt.Errorf("connect to %s: %w", addr, err)
		return res
	}
	defer conn.Close()

	// Mark for high-throughput handling. Best effort: some platforms ignore it.
	ipv4.NewConn(conn).SetTOS(cfg.DSCP)

	if _, err := fmt.Fprintf(conn, "%d\n", job.FileSize); err != nil {
		res.Err = fmt.Errorf("send size line: %w", err)
		return res
	}

	buf := make([]byte, tcpReadBufferSize)
	var received uint64
	for received < job.FileSize {
		n, err := conn.Read(buf)
		received += uint64(n)
		if err != nil {
			break
		}
	}

	res.Elapsed = time.Since(start)
	res.Bytes = received
	res.BitsPerSec = throughput(received, res.Elapsed)
	if received < job.FileSize {
		res.Err = fmt.Errorf("short transfer: got %d of %d bytes", received, job.FileSize)
	}
	return res
}
