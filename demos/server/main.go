// server hosts simulation workers over WebSockets at /ws, one per connection.
// Connect with demos/terminal -remote ws://localhost:8080/ws.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/phanxgames/collide"
	"github.com/phanxgames/collide/wsbridge"
)

var (
	addr      = flag.String("addr", ":8080", "listen address")
	tps       = flag.Int("tps", collide.DefaultTickRate, "ticks per second for every worker")
	maxBodies = flag.Int("max-bodies", 500, "largest accepted init message, 0 for no limit")
	debug     = flag.Bool("debug", false, "log per-tick stats")
)

func main() {
	flag.Parse()

	cfg := collide.DefaultConfig()
	cfg.TickRate = *tps
	cfg.Debug = *debug

	bridge := wsbridge.NewServer(cfg)
	bridge.MaxBodies = *maxBodies

	mux := http.NewServeMux()
	mux.Handle("/ws", bridge)
	mux.HandleFunc("/healthz", healthz)

	srv := &http.Server{Addr: *addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Printf("shutting down with %d connections", bridge.Active())
		if err := shutdown(srv, bridge, 5*time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("listening on %s", *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func healthz(w http.ResponseWriter, r *http.Request) {
	if _, err := w.Write([]byte("ok\n")); err != nil {
		log.Printf("healthz: %v", err)
	}
}

// shutdown stops every worker, then waits up to timeout for in-flight
// requests to finish.
func shutdown(srv *http.Server, bridge *wsbridge.Server, timeout time.Duration) error {
	bridge.Close()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
