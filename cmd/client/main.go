// Speed-test client — CLI entry point.
//
// The client waits for a server offer broadcast, interactively asks for the
// transfer size and the TCP/UDP connection mix, runs all transfers in
// parallel against the offering server, and prints per-transfer throughput,
// loss, and jitter. It then goes back to listening for offers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/pterm/pterm"

	"github.com/a1amit/lanspeed/internal/app"
	"github.com/a1amit/lanspeed/internal/config"
	"github.com/a1amit/lanspeed/internal/discovery"
	"github.com/a1amit/lanspeed/internal/transfer"
	"github.com/a1amit/lanspeed/internal/util"
)

var version = "dev"

func main() {
	args := argparse.NewParser("lanspeed-client", "LAN network speed test client")

	envFile := args.String("e", "env", &argparse.Options{Required: false, Help: "Path to a dotenv configuration file"})
	debugMode := args.Flag("d", "debug", &argparse.Options{Required: false, Help: "Enable debug logging"})

	if err := args.Parse(os.Args); err != nil {
		fmt.Print(args.Usage(err))
		os.Exit(1)
	}

	if *debugMode {
		util.EnableDebug()
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		util.LogError("%v", err)
		os.Exit(1)
	}

	if cfg.LogFilePath != "" {
		closer, err := util.TeeLogFile(cfg.LogFilePath, cfg.LogMaxSize, cfg.LogMaxBackups)
		if err != nil {
			util.LogError("failed to set up log file: %v", err)
			os.Exit(1)
		}
		defer closer.Close()
	}

	pterm.Info.Println(fmt.Sprintf("lanspeed client — v%s", version))
	pterm.Println()

	// Root context — cancelled on Ctrl+C.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ask := func(ep discovery.Endpoint) (app.Params, bool) {
		pterm.Success.Printfln("Received offer from %s", ep)
		for {
			params := app.Params{
				FileSize: askFileSize(cfg),
				TCPConns: askCount("Number of TCP connections", cfg),
				UDPConns: askCount("Number of UDP connections", cfg),
			}
			if params.TCPConns == 0 && params.UDPConns == 0 {
				util.LogWarning("at least one TCP or UDP connection is required")
				pterm.Println()
				continue
			}
			return params, true
		}
	}

	if err := app.RunClient(ctx, cfg, ask, printResults); err != nil {
		util.LogError("client failed: %v", err)
		os.Exit(1)
	}

	util.LogInfo("client shutting down")
}

// ---------------------------------------------------------------------------
// Interactive prompts
// ---------------------------------------------------------------------------

// askFileSize prompts for the transfer size until a valid one is entered.
func askFileSize(cfg config.Config) uint64 {
	for {
		raw, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText("File size to download (in bytes)").
			Show()

		size, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err == nil && size > 0 && size <= cfg.MaxFileSize {
			pterm.Println()
			return size
		}

		util.LogWarning("invalid file size: must be 1 ~ %d", cfg.MaxFileSize)
		pterm.Println()
	}
}

// askCount prompts for a connection count until a valid one is entered.
func askCount(prompt string, cfg config.Config) int {
	for {
		raw, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText(prompt).
			Show()

		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil && n >= 0 && n <= cfg.MaxConnections {
			pterm.Println()
			return n
		}

		util.LogWarning("invalid connection count: must be 0 ~ %d", cfg.MaxConnections)
		pterm.Println()
	}
}

// ---------------------------------------------------------------------------
// Result rendering
// ---------------------------------------------------------------------------

// printResults renders one colored line per transfer, in id order.
func printResults(results []transfer.Result) {
	pterm.Println()
	for _, r := range results {
		switch {
		case r.Failed():
			pterm.Error.Printfln("%s transfer #%d failed: %v", r.Proto, r.ID, r.Err)
		case r.Proto == transfer.ProtoTCP:
			pterm.Success.Printfln("TCP transfer #%d finished, total time: %.2f seconds, total speed: %s",
				r.ID, r.Elapsed.Seconds(), util.FormatBitRate(r.BitsPerSec))
		default:
			pterm.Warning.Printfln("UDP transfer #%d finished, total time: %.2f seconds, total speed: %s, "+
				"packets received successfully: %.2f%%, jitter: %s",
				r.ID, r.Elapsed.Seconds(), util.FormatBitRate(r.BitsPerSec), 100-r.LossPct, r.Jitter)
		}
	}
	pterm.Println()
}
