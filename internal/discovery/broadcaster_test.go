package discovery

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/a1amit/lanspeed/internal/config"
	"github.com/a1amit/lanspeed/internal/protocol"
)

func TestBroadcastResendsIdenticalOffers(t *testing.T) {
	sink, err := net.ListenPacket("udp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer sink.Close()
	dst := sink.LocalAddr().(*net.UDPAddr)

	cfg := config.Default()
	cfg.OfferInterval = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- broadcastTo(ctx, cfg, dst, 5002, 5001)
	}()

	var first []byte
	buf := make([]byte, 64)
	for i := 0; i < 3; i++ {
		if err := sink.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
			t.Fatalf("set deadline: %v", err)
		}
		n, _, err := sink.ReadFrom(buf)
		if err != nil {
			t.Fatalf("read offer %d: %v", i+1, err)
		}
		got := append([]byte(nil), buf[:n]...)

		offer, ok := protocol.DecodeOffer(got)
		if !ok {
			t.Fatalf("offer %d did not decode: % x", i+1, got)
		}
		if offer.UDPPort != 5002 || offer.TCPPort != 5001 {
			t.Fatalf("offer %d ports = UDP:%d TCP:%d, want UDP:5002 TCP:5001",
				i+1, offer.UDPPort, offer.TCPPort)
		}

		if first == nil {
			first = got
		} else if !bytes.Equal(got, first) {
			t.Fatalf("offer %d differs from first: % x vs % x", i+1, got, first)
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("broadcast returned error after cancel: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("broadcast did not stop after cancel")
	}
}
