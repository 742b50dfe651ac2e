package app

import (
	"context"

	"github.com/a1amit/lanspeed/internal/config"
	"github.com/a1amit/lanspeed/internal/discovery"
	"github.com/a1amit/lanspeed/internal/transfer"
	"github.com/a1amit/lanspeed/internal/util"
)

// Params are the user-chosen test parameters for one run. The collecting
// layer validates them against the config limits before they reach the core.
type Params struct {
	FileSize uint64
	TCPConns int
	UDPConns int
}

// ParamSource collects test parameters for the given server endpoint, for
// example by prompting the user. Returning false skips the endpoint.
type ParamSource func(ep discovery.Endpoint) (Params, bool)

// Reporter renders the results of one completed test run.
type Reporter func(results []transfer.Result)

// RunClient drives the client lifecycle:
//  1. Start the discovery listener, gated on the shared busy condition
//  2. For each discovered endpoint: mark busy, collect parameters, run the
//     orchestrated transfers, report, mark idle
//  3. Loop back to listening until ctx is cancelled
func RunClient(ctx context.Context, cfg config.Config, ask ParamSource, report Reporter) error {
	gate := discovery.NewGate()
	offers, err := discovery.Listen(ctx, cfg, gate)
	if err != nil {
		return err
	}

	util.LogSuccess("client started, listening for offer requests on port %d", cfg.OfferPort)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ep, ok := <-offers:
			if !ok {
				return nil
			}

			// Hold the gate while the user decides and while transfers run,
			// so the listener drops offers instead of piling them up.
			gate.TryAcquire()
			params, accepted := ask(ep)
			if !accepted {
				gate.Release()
				continue
			}

			util.LogInfo("starting test against %s: %d bytes, %d TCP + %d UDP",
				ep, params.FileSize, params.TCPConns, params.UDPConns)

			results := transfer.Run(ep, params.FileSize, params.TCPConns, params.UDPConns, cfg)
			report(results)
			gate.Release()

			util.LogSuccess("all transfers complete, listening to offer requests")
		}
	}
}
