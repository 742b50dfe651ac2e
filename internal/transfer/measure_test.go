package transfer

import (
	"testing"
	"time"
)

// TestSegmentCount verifies the ceiling division across exact multiples,
// remainders, and the zero-size edge case.
func TestSegmentCount(t *testing.T) {
	testCases := []struct {
		name        string
		fileSize    uint64
		segmentSize uint64
		want        uint64
	}{
		{"zero file size", 0, 1024, 0},
		{"one byte", 1, 1024, 1},
		{"exact multiple", 4096, 1024, 4},
		{"one over a multiple", 4097, 1024, 5},
		{"one under a multiple", 4095, 1024, 4},
		{"segment larger than file", 10, 1024, 1},
		{"segment size one", 7, 1, 7},
		{"max u64 file size", ^uint64(0), 1024, 1 << 54},
		{"near-max with remainder", ^uint64(0) - 500, 1024, 1 << 54},
		{"near-max exact multiple", (1<<54 - 1) * 1024, 1024, 1<<54 - 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SegmentCount(tc.fileSize, tc.segmentSize); got != tc.want {
				t.Errorf("SegmentCount(%d, %d) = %d, want %d", tc.fileSize, tc.segmentSize, got, tc.want)
			}
		})
	}
}

// TestLossPercent verifies the loss formula, including total loss when no
// payload was ever received so the segment total is unknown.
func TestLossPercent(t *testing.T) {
	testCases := []struct {
		name     string
		total    uint64
		received uint64
		want     float64
	}{
		{"nothing received, total unknown", 0, 0, 100},
		{"all segments received", 10, 10, 0},
		{"half lost", 10, 5, 50},
		{"one of four lost", 4, 3, 25},
		{"all lost", 8, 0, 100},
		{"duplicates never push past zero", 10, 12, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := lossPercent(tc.total, tc.received); got != tc.want {
				t.Errorf("lossPercent(%d, %d) = %v, want %v", tc.total, tc.received, got, tc.want)
			}
		})
	}
}

// TestThroughput verifies bits-per-second math and the zero-elapsed guard.
func TestThroughput(t *testing.T) {
	if got := throughput(1000, 0); got != 0 {
		t.Errorf("throughput with zero elapsed = %v, want 0", got)
	}
	if got := throughput(1000, time.Second); got != 8000 {
		t.Errorf("throughput(1000 bytes, 1s) = %v, want 8000", got)
	}
	if got := throughput(500, 500*time.Millisecond); got != 8000 {
		t.Errorf("throughput(500 bytes, 0.5s) = %v, want 8000", got)
	}
}

// TestGapTracker verifies jitter as the spread between the largest and
// smallest inter-arrival gap.
func TestGapTracker(t *testing.T) {
	base := time.Now()

	t.Run("no arrivals", func(t *testing.T) {
		var g gapTracker
		if got := g.jitter(); got != 0 {
			t.Errorf("jitter with no arrivals = %v, want 0", got)
		}
	})

	t.Run("single arrival has no gap", func(t *testing.T) {
		var g gapTracker
		g.observe(base)
		if got := g.jitter(); got != 0 {
			t.Errorf("jitter with one arrival = %v, want 0", got)
		}
	})

	t.Run("uniform gaps give zero jitter", func(t *testing.T) {
		var g gapTracker
		for i := 0; i < 5; i++ {
			g.observe(base.Add(time.Duration(i) * 10 * time.Millisecond))
		}
		if got := g.jitter(); got != 0 {
			t.Errorf("jitter with uniform gaps = %v, want 0", got)
		}
	})

	t.Run("spread of gaps", func(t *testing.T) {
		var g gapTracker
		g.observe(base)
		g.observe(base.Add(10 * time.Millisecond))  // gap 10ms
		g.observe(base.Add(40 * time.Millisecond))  // gap 30ms
		g.observe(base.Add(45 * time.Millisecond))  // gap 5ms
		if got, want := g.jitter(), 25*time.Millisecond; got != want {
			t.Errorf("jitter = %v, want %v", got, want)
		}
	})
}
