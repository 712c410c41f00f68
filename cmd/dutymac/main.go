// Copyright (c) 2026, The OT Duty-MAC Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

// dutymac runs a duty-cycled leaf-node MAC against a simulated parent router
// and exposes an interactive console.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"golang.org/x/term"

	"github.com/openthread/ot-dutymac/cli"
	"github.com/openthread/ot-dutymac/logger"
	"github.com/openthread/ot-dutymac/mac"
	"github.com/openthread/ot-dutymac/macmetrics"
	"github.com/openthread/ot-dutymac/netdev"
	"github.com/openthread/ot-dutymac/progctx"
	"github.com/openthread/ot-dutymac/prng"
	"github.com/openthread/ot-dutymac/types"
)

type mainArgs struct {
	configFile string
	logLevel   string
	seed       int64
	dutyCycle  bool
}

func parseArgs() mainArgs {
	var args mainArgs
	flag.StringVar(&args.configFile, "config", "", "yaml configuration file")
	flag.StringVar(&args.logLevel, "log", "info", "log level (trace|debug|info|note|warn|error)")
	flag.Int64Var(&args.seed, "seed", 0, "prng root seed (0 = time-based)")
	flag.BoolVar(&args.dutyCycle, "dutycycle", true, "enable duty-cycling at startup")
	flag.Parse()
	return args
}

func main() {
	args := parseArgs()

	lv, err := logger.ParseLevel(args.logLevel)
	logger.FatalIfError(err)
	logger.SetLevel(lv)
	prng.Init(args.seed)

	cfg := mac.DefaultConfig()
	if args.configFile != "" {
		cfg, err = mac.LoadConfig(args.configFile)
		logger.FatalIfError(err)
	}

	ctx := progctx.New(context.Background())
	handleSignals(ctx)

	clock := clockwork.NewRealClock()
	sim := netdev.NewSimDevice(netdev.DefaultSimConfig(), clock)
	collector := macmetrics.NewCollector(nil)

	ctrl, err := mac.NewController(cfg, sim, clock, collector)
	logger.FatalIfError(err)
	ctrl.RegisterListener(types.FrameTypeData, func(f *types.Frame) {
		logger.Infof("received %d-byte downlink frame", f.Len())
		f.Release()
	})

	ctx.WaitAdd("mac", 1)
	go func() {
		defer ctx.WaitDone("mac")
		if err := ctrl.Run(); err != nil {
			ctx.Cancel(err)
		}
	}()

	if args.dutyCycle {
		logger.FatalIfError(ctrl.Set(types.OptDutyCycle, true))
	}

	rt := cli.NewCmdRunner(ctx, ctrl, sim)
	logger.SetStdoutCallback(cli.Cli)
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	ctx.WaitAdd("cli", 1)
	go func() {
		defer ctx.WaitDone("cli")
		err := cli.Cli.Run(rt, &cli.CliOptions{EchoInput: !interactive})
		ctx.Cancel(err)
	}()

	<-ctx.Done()
	cli.Cli.Stop()
	ctrl.Stop()
	ctx.Wait()
}

func handleSignals(ctx *progctx.ProgCtx) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	ctx.WaitAdd("signals", 1)
	go func() {
		defer ctx.WaitDone("signals")
		for {
			select {
			case sig := <-c:
				ctx.Cancel(sig.String())
			case <-ctx.Done():
				return
			}
		}
	}()
}
