// Command skirmishd is the movement engine's daemon: it wires the task
// microkernel's nameserver/timeserver, a nav.Grid instance, the movement
// engine, and an HTTP/websocket server together and runs them to
// completion or until interrupted.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/mwanga/skirmish-engine/config"
	"github.com/mwanga/skirmish-engine/kernel"
	"github.com/mwanga/skirmish-engine/movement"
	"github.com/mwanga/skirmish-engine/nav"
	"github.com/mwanga/skirmish-engine/server"
	"github.com/mwanga/skirmish-engine/telemetry"
)

func main() {
	cfg, err := config.Load(".", "/etc/skirmishd")
	if err != nil {
		log.Fatalf("skirmishd: load config: %v", err)
	}

	stats := telemetry.New(cfg.MetricsNamespace)
	if err := stats.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatalf("skirmishd: register metrics: %v", err)
	}

	grid := nav.NewGrid(cfg.GridWidth, cfg.GridDepth, cfg.TileWidth, cfg.TileDepth)
	entities := newEntityTable()

	srv := server.New(nil) // engine wired in below once constructed
	k := kernel.New()
	bus := kernel.NewEventBus()

	k.Create(kernel.NullTid, kernel.RunNameserver)
	k.Create(kernel.NullTid, kernel.RunTimeserver(bus, "60HZ_TICK"))

	engine := movement.New(grid, entities, srv, stats)
	srv.SetEngine(engine)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	httpSrv := &http.Server{Addr: cfg.ListenAddr, Handler: withMetrics(srv.Handler())}
	g.Go(func() error {
		log.Printf("skirmishd: listening on %s", cfg.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return runTickLoop(gctx, cfg, bus, engine)
	})

	g.Go(func() error {
		<-gctx.Done()
		return httpSrv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		log.Printf("skirmishd: exiting: %v", err)
	}
}

func withMetrics(h http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", h)
	return mux
}
