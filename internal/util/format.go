package util

import "fmt"

// byteUnits defines the units for formatting byte counts in a human-readable way.
var byteUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

// FormatBytes formats a byte count into a human-readable string,
// for example: "99.0 B", "1.5 KiB", "98.9 GiB".
func FormatBytes(b float64) string {
	unitIdx := 0
	for b >= 1024 && unitIdx < len(byteUnits)-1 {
		b /= 1024
		unitIdx++
	}
	return fmt.Sprintf("%.1f %s", b, byteUnits[unitIdx])
}

// bitUnits follow network convention: decimal multiples of bits per second.
var bitUnits = []string{"bit/s", "Kbit/s", "Mbit/s", "Gbit/s", "Tbit/s"}

// FormatBitRate formats a throughput in bits per second,
// for example: "512.0 bit/s", "94.3 Mbit/s".
func FormatBitRate(bps float64) string {
	unitIdx := 0
	for bps >= 1000 && unitIdx < len(bitUnits)-1 {
		bps /= 1000
		unitIdx++
	}
	return fmt.Sprintf("%.1f %s", bps, bitUnits[unitIdx])
}
