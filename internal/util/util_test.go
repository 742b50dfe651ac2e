package util_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a1amit/lanspeed/internal/util"
)

// TestFormatBitRate verifies unit selection across magnitudes.
func TestFormatBitRate(t *testing.T) {
	testCases := []struct {
		bps  float64
		want string
	}{
		{0, "0.0 bit/s"},
		{512, "512.0 bit/s"},
		{1500, "1.5 Kbit/s"},
		{94_300_000, "94.3 Mbit/s"},
		{2_000_000_000, "2.0 Gbit/s"},
	}

	for _, tc := range testCases {
		if got := util.FormatBitRate(tc.bps); got != tc.want {
			t.Errorf("FormatBitRate(%v) = %q, want %q", tc.bps, got, tc.want)
		}
	}
}

// TestFormatBytes verifies binary unit selection.
func TestFormatBytes(t *testing.T) {
	testCases := []struct {
		b    float64
		want string
	}{
		{99, "99.0 B"},
		{1536, "1.5 KiB"},
		{10 << 20, "10.0 MiB"},
	}

	for _, tc := range testCases {
		if got := util.FormatBytes(tc.b); got != tc.want {
			t.Errorf("FormatBytes(%v) = %q, want %q", tc.b, got, tc.want)
		}
	}
}

// TestRotatingWriter verifies that the writer rotates at the size cap and
// keeps only the configured number of backups.
func TestRotatingWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")

	w, err := util.NewRotatingWriter(path, 100, 2)
	if err != nil {
		t.Fatalf("NewRotatingWriter failed: %v", err)
	}
	defer w.Close()

	line := strings.Repeat("x", 40) + "\n"
	for i := 0; i < 10; i++ {
		if _, err := w.Write([]byte(line)); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	// Live file plus at most two backups.
	if _, err := os.Stat(path); err != nil {
		t.Errorf("live log file missing: %v", err)
	}
	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("first backup missing: %v", err)
	}
	if _, err := os.Stat(path + ".3"); err == nil {
		t.Error("backup beyond the cap was kept")
	}

	// The live file must respect the size cap.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() > 100 {
		t.Errorf("live file size %d exceeds cap 100", info.Size())
	}
}
