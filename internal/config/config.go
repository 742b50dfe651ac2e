// Package config holds the externally supplied tuning parameters.
// The core packages consume a Config read-only and never validate it —
// out-of-range user input is rejected at the CLI layer before it gets here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every tunable the transfer and discovery code reads.
type Config struct {
	OfferPort      int           // UDP discovery port offers are broadcast to
	OfferInterval  time.Duration // time between offer broadcasts
	UDPBufferSize  int           // receive buffer for UDP datagrams
	UDPTimeout     time.Duration // silence on a UDP transfer socket that ends the stream
	SegmentSize    int           // filler bytes per UDP payload segment
	NetworkDelay   time.Duration // pause between consecutive UDP segment sends
	WorkerPoolSize int           // bound on concurrent transfer handlers per protocol
	MaxFileSize    uint64        // largest transfer a user may request
	MaxConnections int           // largest per-protocol connection count a user may request
	DSCP           int           // TOS/DSCP value stamped on transfer sockets

	LogFilePath   string // rotating log file; empty disables file logging
	LogMaxSize    int64  // bytes before the log file rotates
	LogMaxBackups int    // rotated log files to keep
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		OfferPort:      13117,
		OfferInterval:  time.Second,
		UDPBufferSize:  65507, // maximum UDP datagram size
		UDPTimeout:     2 * time.Second,
		SegmentSize:    1024,
		NetworkDelay:   time.Millisecond,
		WorkerPoolSize: 50,
		MaxFileSize:    10 << 30, // 10 GiB
		MaxConnections: 100,
		DSCP:           0x0A,
		LogMaxSize:     10 << 20,
		LogMaxBackups:  5,
	}
}

// Load builds a Config from the defaults, an optional dotenv file, and
// LANSPEED_* environment variables (in increasing precedence). envFile may
// be empty, in which case only the process environment is consulted.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		// A .env next to the binary is optional.
		godotenv.Load()
	}

	cfg := Default()
	var err error
	lookInt("LANSPEED_OFFER_PORT", &cfg.OfferPort, &err)
	lookDuration("LANSPEED_OFFER_INTERVAL", &cfg.OfferInterval, &err)
	lookInt("LANSPEED_UDP_BUFFER_SIZE", &cfg.UDPBufferSize, &err)
	lookDuration("LANSPEED_UDP_TIMEOUT", &cfg.UDPTimeout, &err)
	lookInt("LANSPEED_SEGMENT_SIZE", &cfg.SegmentSize, &err)
	lookDuration("LANSPEED_NETWORK_DELAY", &cfg.NetworkDelay, &err)
	lookInt("LANSPEED_WORKER_POOL_SIZE", &cfg.WorkerPoolSize, &err)
	lookUint64("LANSPEED_MAX_FILE_SIZE", &cfg.MaxFileSize, &err)
	lookInt("LANSPEED_MAX_CONNECTIONS", &cfg.MaxConnections, &err)
	lookInt("LANSPEED_DSCP", &cfg.DSCP, &err)
	lookString("LANSPEED_LOG_FILE", &cfg.LogFilePath)
	lookInt64("LANSPEED_LOG_MAX_SIZE", &cfg.LogMaxSize, &err)
	lookInt("LANSPEED_LOG_MAX_BACKUPS", &cfg.LogMaxBackups, &err)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// The look* helpers overwrite dst only when the variable is set, and record
// the first parse failure in err.

func lookString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func lookInt(key string, dst *int, err *error) {
	v, ok := os.LookupEnv(key)
	if !ok || *err != nil {
		return
	}
	n, parseErr := strconv.Atoi(v)
	if parseErr != nil {
		*err = fmt.Errorf("invalid %s=%q: %w", key, v, parseErr)
		return
	}
	*dst = n
}

func lookInt64(key string, dst *int64, err *error) {
	v, ok := os.LookupEnv(key)
	if !ok || *err != nil {
		return
	}
	n, parseErr := strconv.ParseInt(v, 10, 64)
	if parseErr != nil {
		*err = fmt.Errorf("invalid %s=%q: %w", key, v, parseErr)
		return
	}
	*dst = n
}

func lookUint64(key string, dst *uint64, err *error) {
	v, ok := os.LookupEnv(key)
	if !ok || *err != nil {
		return
	}
	n, parseErr := strconv.ParseUint(v, 10, 64)
	if parseErr != nil {
		*err = fmt.Errorf("invalid %s=%q: %w", key, v, parseErr)
		return
	}
	*dst = n
}

func lookDuration(key string, dst *time.Duration, err *error) {
	v, ok := os.LookupEnv(key)
	if !ok || *err != nil {
		return
	}
	d, parseErr := time.ParseDuration(v)
	if parseErr != nil {
		*err = fmt.Errorf("invalid %s=%q: %w", key, v, parseErr)
		return
	}
	*dst = d
}
