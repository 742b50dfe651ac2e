package transfer

import (
	"fmt"
	"net"
	"time"

	"github.com/a1amit/lanspeed/internal/config"
	"github.com/a1amit/lanspeed/internal/protocol"
	"github.com/a1amit/lanspeed/internal/util"
)

// ---------------------------------------------------------------------------
// Server side
// ---------------------------------------------------------------------------

// handleUDPRequest decodes an inbound request datagram and answers it with a
// burst of numbered payload segments sent back-to-back on the shared socket.
// Every segment carries a full SegmentSize filler block, including the last
// one, so the total sent may slightly exceed the requested size when it is
// not an exact multiple. Invalid datagrams are dropped.
func (d *Dispatcher) handleUDPRequest(conn net.PacketConn, addr net.Addr, data []byte) {
	fileSize, ok := protocol.DecodeRequest(data)
	if !ok {
		util.LogWarning("[UDP] invalid request from %s", addr)
		return
	}

	total := SegmentCount(fileSize, uint64(d.cfg.SegmentSize))
	util.LogDebug("[UDP] request from %s for %d bytes (%d segments)", addr, fileSize, total)

	filler := makeFiller(d.cfg.SegmentSize)
	var sent uint64
	for seg := uint64(1); seg <= total; seg++ {
		pkt := protocol.EncodePayload(total, seg, filler)
		if _, err := conn.WriteTo(pkt, addr); err != nil {
			util.LogWarning("[UDP] send segment %d/%d to %s failed: %v", seg, total, addr, err)
			return
		}
		sent += uint64(len(filler))
		// Throttle to avoid flooding ourselves off the wire.
		if d.cfg.NetworkDelay > 0 {
			time.Sleep(d.cfg.NetworkDelay)
		}
	}

	d.stats.AddUDPBytes(int64(sent))
	util.LogInfo("[UDP] sent %d segments (%s) to %s", total, util.FormatBytes(float64(sent)), addr)
}

// ---------------------------------------------------------------------------
// Client side
// ---------------------------------------------------------------------------

// RunUDP performs one UDP transfer unit: send a single request, then collect
// payload segments until one read-timeout interval passes with no datagram,
// which marks the end of the stream. Duplicate segment ids count once toward
// bytes and loss; jitter is the spread of inter-arrival gaps across every
// received datagram.
func RunUDP(job Job, cfg config.Config) Result {
	res := Result{ID: job.ID, Proto: ProtoUDP}

	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		res.Err = fmt.Errorf("open UDP socket: %w", err)
		return res
	}
	defer conn.Close()

	dst := &net.UDPAddr{IP: net.ParseIP(job.Endpoint.Addr), Port: int(job.Endpoint.UDPPort)}
	if _, err := conn.WriteTo(protocol.EncodeRequest(job.FileSize), dst); err != nil {
		res.Err = fmt.Errorf("send request to %s: %w", dst, err)
		return res
	}

	start := time.Now()
	seen := make(map[uint64]struct{})
	var gaps gapTracker
	var totalSegments, received uint64

	buf := make([]byte, cfg.UDPBufferSize)
	for {
		conn.SetReadDeadline(time.Now().Add(cfg.UDPTimeout))
		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				break // silence for one timeout period = end of stream
			}
			res.Err = fmt.Errorf("receive payload: %w", err)
			break
		}

		payload, ok := protocol.DecodePayload(buf[:n])
		if !ok {
			continue
		}

		gaps.observe(time.Now())
		if totalSegments == 0 {
			totalSegments = payload.TotalSegments
		}
		if _, dup := seen[payload.CurrentSegment]; !dup {
			seen[payload.CurrentSegment] = struct{}{}
			received += uint64(len(payload.Data))
		}
	}

	res.Elapsed = time.Since(start)
	res.Bytes = received
	res.BitsPerSec = throughput(received, res.Elapsed)
	res.LossPct = lossPercent(totalSegments, uint64(len(seen)))
	res.Jitter = gaps.jitter()
	return res
}
