package util

import (
	"context"
	"net"
	"syscall"
)

// LocalIP returns the machine's preferred outbound IPv4 address. The dial
// target never has to be reachable — no packets are sent on a UDP dial.
func LocalIP() string {
	conn, err := net.Dial("udp4", "10.255.255.255:1")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP.String()
}

// ListenPacketShared binds a UDP socket with address/port sharing enabled so
// that multiple processes on one host can listen on the same discovery port.
func ListenPacketShared(network, address string) (net.PacketConn, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			return setSockoptShared(c)
		},
	}
	return lc.ListenPacket(context.Background(), network, address)
}

// ListenPacketBroadcast binds a UDP socket permitted to send to the limited
// broadcast address.
func ListenPacketBroadcast(network, address string) (net.PacketConn, error) {
	lc := net.ListenConfig{
		Control: func(network, address string, c syscall.RawConn) error {
			return setSockoptBroadcast(c)
		},
	}
	return lc.ListenPacket(context.Background(), network, address)
}
