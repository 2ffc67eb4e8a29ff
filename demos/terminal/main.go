// terminal draws a simulation in the terminal. The worker runs in-process, or
// on a demos/server instance when -remote is given.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/collide"
	"github.com/phanxgames/collide/termview"
	"github.com/phanxgames/collide/wsbridge"
)

var (
	count    = flag.Int("n", 12, "number of random bodies")
	seed     = flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	scenario = flag.String("scenario", "", "JSON scenario file (overrides -n and -seed)")
	remote   = flag.String("remote", "", "websocket URL of a collide server, e.g. ws://localhost:8080/ws")
	fps      = flag.Int("fps", 30, "screen refresh rate")
	debug    = flag.Bool("debug", false, "write logs to "+logDir+"/"+logFileName)
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debug)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	s := collide.RandomScenario(*count, *seed, collide.Bounds{Width: 640, Height: 360})
	if *scenario != "" {
		var err error
		if s, err = collide.LoadScenarioFile(*scenario); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Everything logs through the redirected standard logger so nothing is
	// written over the screen.
	logger := log.New(log.Writer(), "[collide] ", log.LstdFlags)

	var sim collide.Simulation
	if *remote != "" {
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		client, err := wsbridge.Dial(dialCtx, *remote)
		cancel()
		if err != nil {
			return err
		}
		defer client.Close()
		sim = client
	} else {
		cfg := collide.DefaultConfig()
		cfg.Logger = logger
		cfg.Debug = *debug
		if s.TickRate > 0 {
			cfg.TickRate = s.TickRate
		}
		worker := collide.NewWorker(cfg)
		worker.Start()
		defer worker.Stop()
		sim = worker
	}

	coord := collide.NewCoordinator(sim, logger)
	if err := coord.Setup(s.Bounds, s.Build()); err != nil {
		return err
	}
	go func() {
		if err := coord.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Print(err)
		}
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	err = termview.Run(ctx, screen, termview.NewView(coord, s.Bounds), *fps)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}
