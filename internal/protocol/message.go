// Package protocol defines the wire format of the speed-test messages.
package protocol

// MagicCookie prefixes every message; datagrams without it are not protocol
// traffic and are ignored.
const MagicCookie uint32 = 0xABCDDCBA

// Message type constants.
const (
	TypeOffer   uint8 = 0x02 // Server availability broadcast
	TypeRequest uint8 = 0x03 // Client UDP transfer request
	TypePayload uint8 = 0x04 // One segment of server filler data
)

// Fixed message sizes: Magic(4) + Type(1) + the per-message fields.
const (
	OfferSize         = 9  // + UDPPort(2) + TCPPort(2)
	RequestSize       = 13 // + FileSize(8)
	PayloadHeaderSize = 21 // + TotalSegments(8) + CurrentSegment(8), then raw bytes
)

// Offer announces a server's transfer ports on the discovery port.
type Offer struct {
	UDPPort uint16
	TCPPort uint16
}

// Payload carries one numbered segment of a UDP transfer.
// CurrentSegment ranges 1..TotalSegments inclusive.
type Payload struct {
	TotalSegments  uint64
	CurrentSegment uint64
	Data           []byte
}
