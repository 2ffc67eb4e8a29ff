// Package collide is a fixed-rate 2D collision simulation for circular
// bodies that runs on its own goroutine, apart from whatever draws it.
//
// A [Worker] owns the authoritative [World]. Each tick it moves every body by
// its velocity, resolves every overlapping pair as an elastic collision along
// the line of centers, and bounces bodies off the walls of the [Bounds]. It
// then posts a frame holding a copy of all bodies. A render loop, usually
// through a [Coordinator], keeps the latest frame and draws it at its own
// rate.
//
// # Quick start
//
//	w := collide.NewWorker(collide.Config{})
//	w.Start()
//	defer w.Stop()
//
//	c := collide.NewCoordinator(w, nil)
//	if err := c.Setup(collide.Bounds{Width: 640, Height: 480}, bodies); err != nil {
//		log.Fatal(err)
//	}
//	go c.Run(ctx)
//
//	// In the draw loop:
//	snap := c.Snapshot()
//
// # Protocol
//
// The worker and coordinator share no memory. They exchange [Message] values
// tagged by [Kind]: bounds, then init (which starts ticking), and optionally
// stop. The worker answers with frame messages, or error messages when a
// well-formed message arrives in the wrong state. See [State] for the
// lifecycle.
//
// # Collision model
//
// All pairs are tested every tick in index order (i < j), so results are
// deterministic for a given starting body order. There is no continuous
// collision detection: fast bodies can pass through each other between
// ticks. Pairs whose centers coincide are skipped for the tick.
//
// Renderers for Ebitengine and terminals live in the ebitenview and termview
// packages; wsbridge serves the same protocol over WebSockets.
package collide
