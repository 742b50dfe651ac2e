// Package transfer implements the TCP and UDP transfer engines, the client
// orchestrator that fans tests out, and the server dispatcher that serves them.
package transfer

import (
	"time"

	"github.com/a1amit/lanspeed/internal/discovery"
)

// Proto tags a transfer unit's protocol.
type Proto uint8

const (
	ProtoTCP Proto = iota
	ProtoUDP
)

func (p Proto) String() string {
	if p == ProtoUDP {
		return "UDP"
	}
	return "TCP"
}

// Job describes one transfer unit. IDs are sequential within a test run,
// issued in creation order (TCP before UDP).
type Job struct {
	ID       int
	Proto    Proto
	Endpoint discovery.Endpoint
	FileSize uint64
}

// Result is the immutable outcome of one transfer unit. A non-nil Err marks
// a failed or short transfer; the measured fields still reflect whatever was
// received before the failure.
type Result struct {
	ID         int
	Proto      Proto
	Elapsed    time.Duration
	Bytes      uint64
	BitsPerSec float64
	LossPct    float64       // UDP only
	Jitter     time.Duration // UDP only
	Err        error
}

// Failed reports whether the unit recorded an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

// SegmentCount returns ceil(fileSize/segmentSize); zero for a zero fileSize.
// Divide-then-round keeps the math exact for sizes near the u64 boundary,
// where adding segmentSize-1 first would wrap.
func SegmentCount(fileSize, segmentSize uint64) uint64 {
	if fileSize == 0 {
		return 0
	}
	count := fileSize / segmentSize
	if fileSize%segmentSize != 0 {
		count++
	}
	return count
}

// throughput converts a byte count over a duration into bits per second.
// A zero or negative elapsed time yields 0 rather than dividing by it.
func throughput(bytes uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(bytes) * 8 / elapsed.Seconds()
}

// lossPercent computes the share of segments that never arrived. An unknown
// total (no payload ever decoded) counts as total loss.
func lossPercent(totalSegments, received uint64) float64 {
	if totalSegments == 0 {
		return 100
	}
	if received >= totalSegments {
		return 0
	}
	return float64(totalSegments-received) / float64(totalSegments) * 100
}

// gapTracker records inter-arrival gaps between consecutive packets and
// reports jitter as the spread between the largest and smallest gap.
// Fewer than two arrivals means no gap and therefore zero jitter.
type gapTracker struct {
	last     time.Time
	minGap   time.Duration
	maxGap   time.Duration
	gapCount int
}

func (g *gapTracker) observe(now time.Time) {
	if !g.last.IsZero() {
		gap := now.Sub(g.last)
		if g.gapCount == 0 || gap < g.minGap {
			g.minGap = gap
		}
		if gap > g.maxGap {
			g.maxGap = gap
		}
		g.gapCount++
	}
	g.last = now
}

func (g *gapTracker) jitter() time.Duration {
	if g.gapCount == 0 {
		return 0
	}
	return g.maxGap - g.minGap
}
