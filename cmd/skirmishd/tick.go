package main

import (
	"context"
	"time"

	"github.com/mwanga/skirmish-engine/config"
	"github.com/mwanga/skirmish-engine/kernel"
	"github.com/mwanga/skirmish-engine/movement"
)

// runTickLoop drives both clocks the rest of the system depends on: the
// movement engine's configured tick rate, and the fixed 60Hz pulse the
// task microkernel's timeserver uses to advance its logical clock.
func runTickLoop(ctx context.Context, cfg config.Config, bus *kernel.EventBus, engine *movement.Engine) error {
	moveTicker := time.NewTicker(cfg.TickPeriod())
	defer moveTicker.Stop()

	const kernelHz = 60
	kernelTicker := time.NewTicker(time.Second / kernelHz)
	defer kernelTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-moveTicker.C:
			engine.Tick()
		case <-kernelTicker.C:
			bus.Publish("60HZ_TICK", nil)
		}
	}
}
