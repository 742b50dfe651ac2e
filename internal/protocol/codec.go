package protocol

import "encoding/binary"

// All integers are big-endian. Decoding is deliberately forgiving: a buffer
// that is too short, or whose magic/type does not match, yields ok=false and
// nothing else — malformed datagrams are noise, not errors. Buffers longer
// than the fixed layout decode from the prefix.

// EncodeOffer serializes an offer announcing the given transfer ports.
func EncodeOffer(udpPort, tcpPort uint16) []byte {
	buf := make([]byte, OfferSize)
	binary.BigEndian.PutUint32(buf[0:4], MagicCookie)
	buf[4] = TypeOffer
	binary.BigEndian.PutUint16(buf[5:7], udpPort)
	binary.BigEndian.PutUint16(buf[7:9], tcpPort)
	return buf
}

// DecodeOffer parses an offer message. ok is false if data is not one.
func DecodeOffer(data []byte) (Offer, bool) {
	if len(data) < OfferSize {
		return Offer{}, false
	}
	if binary.BigEndian.Uint32(data[0:4]) != MagicCookie || data[4] != TypeOffer {
		return Offer{}, false
	}
	return Offer{
		UDPPort: binary.BigEndian.Uint16(data[5:7]),
		TCPPort: binary.BigEndian.Uint16(data[7:9]),
	}, true
}

// EncodeRequest serializes a UDP transfer request for fileSize bytes.
func EncodeRequest(fileSize uint64) []byte {
	buf := make([]byte, RequestSize)
	binary.BigEndian.PutUint32(buf[0:4], MagicCookie)
	buf[4] = TypeRequest
	binary.BigEndian.PutUint64(buf[5:13], fileSize)
	return buf
}

// DecodeRequest parses a request message and returns the requested file size.
func DecodeRequest(data []byte) (uint64, bool) {
	if len(data) < RequestSize {
		return 0, false
	}
	if binary.BigEndian.Uint32(data[0:4]) != MagicCookie || data[4] != TypeRequest {
		return 0, false
	}
	return binary.BigEndian.Uint64(data[5:13]), true
}

// EncodePayload serializes one numbered segment of filler data.
func EncodePayload(totalSegments, currentSegment uint64, payload []byte) []byte {
	buf := make([]byte, PayloadHeaderSize+len(payload))
	binary.BigEndian.PutUint32(buf[0:4], MagicCookie)
	buf[4] = TypePayload
	binary.BigEndian.PutUint64(buf[5:13], totalSegments)
	binary.BigEndian.PutUint64(buf[13:21], currentSegment)
	copy(buf[PayloadHeaderSize:], payload)
	return buf
}

// DecodePayload parses a payload message. The returned Data is a copy and
// does not alias the input buffer, so callers may reuse their read buffer.
// A buffer of exactly PayloadHeaderSize bytes decodes to an empty Data.
func DecodePayload(data []byte) (Payload, bool) {
	if len(data) < PayloadHeaderSize {
		return Payload{}, false
	}
	if binary.BigEndian.Uint32(data[0:4]) != MagicCookie || data[4] != TypePayload {
		return Payload{}, false
	}
	p := Payload{
		TotalSegments:  binary.BigEndian.Uint64(data[5:13]),
		CurrentSegment: binary.BigEndian.Uint64(data[13:21]),
	}
	if len(data) > PayloadHeaderSize {
		p.Data = make([]byte, len(data)-PayloadHeaderSize)
		copy(p.Data, data[PayloadHeaderSize:])
	}
	return p, true
}
