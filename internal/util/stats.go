package util

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/pterm/pterm"
)

// reportInterval is how often the reporter goroutine logs traffic totals.
const reportInterval = 10 * time.Second

// TrafficStats counts served transfers and bytes. One instance is created by
// the server app and shared with the dispatcher; all fields are atomic.
type TrafficStats struct {
	TCPConns    atomic.Int64 // cumulative TCP transfers served
	UDPRequests atomic.Int64 // cumulative UDP requests served
	TCPBytes    atomic.Int64 // cumulative bytes streamed over TCP
	UDPBytes    atomic.Int64 // cumulative payload bytes sent over UDP
}

// NewTrafficStats creates a zeroed counter set.
func NewTrafficStats() *TrafficStats {
	return &TrafficStats{}
}

func (s *TrafficStats) AddTCPConn()         { s.TCPConns.Add(1) }
func (s *TrafficStats) AddUDPRequest()      { s.UDPRequests.Add(1) }
func (s *TrafficStats) AddTCPBytes(n int64) { s.TCPBytes.Add(n) }
func (s *TrafficStats) AddUDPBytes(n int64) { s.UDPBytes.Add(n) }

// StartReporter launches a goroutine that logs traffic deltas every
// reportInterval while there is activity. It stops when ctx is cancelled.
func (s *TrafficStats) StartReporter(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(reportInterval)
		defer ticker.Stop()

		var prevTCP, prevUDP, prevTCPBytes, prevUDPBytes int64
		for {
			select {
			case <-ticker.C:
				tcp := s.TCPConns.Load()
				udp := s.UDPRequests.Load()
				tcpBytes := s.TCPBytes.Load()
				udpBytes := s.UDPBytes.Load()

				if tcp != prevTCP || udp != prevUDP || tcpBytes != prevTCPBytes || udpBytes != prevUDPBytes {
					pterm.DefaultLogger.Info(fmt.Sprintf(
						"TCP: %d conns, %s | UDP: %d reqs, %s",
						tcp, FormatBytes(float64(tcpBytes)),
						udp, FormatBytes(float64(udpBytes)),
					))
				}

				prevTCP = tcp
				prevUDP = udp
				prevTCPBytes = tcpBytes
				prevUDPBytes = udpBytes

			case <-ctx.Done():
				return
			}
		}
	}()
}
