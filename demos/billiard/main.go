// billiard runs a simulation worker on its own goroutine and draws its frames
// in a window. Bodies flash briefly when they bounce.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/phanxgames/collide"
	"github.com/phanxgames/collide/ebitenview"
)

const (
	screenW = 1280
	screenH = 720
)

var (
	count    = flag.Int("n", 40, "number of random bodies")
	seed     = flag.Uint64("seed", 1, "random seed")
	scenario = flag.String("scenario", "", "JSON scenario file (overrides -n and -seed)")
	tps      = flag.Int("tps", collide.DefaultTickRate, "simulation ticks per second")
	vectors  = flag.Bool("vectors", false, "draw velocity vectors")
	debug    = flag.Bool("debug", false, "log per-tick stats")
)

func main() {
	flag.Parse()

	s := collide.RandomScenario(*count, *seed, collide.Bounds{Width: screenW, Height: screenH})
	if *scenario != "" {
		var err error
		if s, err = collide.LoadScenarioFile(*scenario); err != nil {
			log.Fatal(err)
		}
	}

	cfg := collide.DefaultConfig()
	cfg.TickRate = *tps
	if s.TickRate > 0 {
		cfg.TickRate = s.TickRate
	}
	cfg.Debug = *debug

	worker := collide.NewWorker(cfg)
	worker.Start()
	defer worker.Stop()

	coord := collide.NewCoordinator(worker, cfg.Logger)
	if err := coord.Setup(s.Bounds, s.Build()); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := coord.Run(ctx); err != nil && ctx.Err() == nil {
			log.Print(err)
		}
	}()

	title := "collide - billiard"
	if s.Name != "" && s.Name != "random" {
		title += " - " + s.Name
	}
	if err := ebitenview.Run(coord, ebitenview.RunConfig{
		Title:        title,
		Width:        int(s.Bounds.Width),
		Height:       int(s.Bounds.Height),
		ShowHUD:      true,
		ShowVelocity: *vectors,
	}); err != nil {
		log.Fatal(err)
	}
	if err := coord.Err(); err != nil {
		log.Printf("last worker error: %v", err)
	}
}
