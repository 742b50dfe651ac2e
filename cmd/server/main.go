// Speed-test server — CLI entry point.
//
// The server announces itself by periodic UDP broadcast and serves bulk
// filler data over TCP and UDP to any client that asks. Transfer ports are
// chosen on the command line; everything else comes from the environment.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/akamensky/argparse"
	"github.com/pterm/pterm"

	"github.com/a1amit/lanspeed/internal/app"
	"github.com/a1amit/lanspeed/internal/config"
	"github.com/a1amit/lanspeed/internal/util"
)

var version = "dev"

func main() {
	args := argparse.NewParser("lanspeed-server", "LAN network speed test server")

	tcpPort := args.Int("t", "tcp_port", &argparse.Options{Required: false, Help: "TCP port to listen on (0 picks a free port)",
		Default: 5001})
	udpPort := args.Int("u", "udp_port", &argparse.Options{Required: false, Help: "UDP port to listen on (0 picks a free port)",
		Default: 5002})
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

	pterm.Info.Println(fmt.Sprintf("lanspeed server — v%s", version))
	pterm.Println()

	// Root context — cancelled on Ctrl+C.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunServer(ctx, cfg, *tcpPort, *udpPort); err != nil {
		util.LogError("server failed: %v", err)
		os.Exit(1)
	}

	util.LogInfo("server shutting down")
}
