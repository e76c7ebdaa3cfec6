package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	softbody "github.com/0442/soft-body-simulation"
	"github.com/0442/soft-body-simulation/vec"
)

// RunHeadless runs conf.Steps time steps without display and logs a summary
// every conf.LogEvery steps.
func RunHeadless(ctx context.Context, conf *Config, sim *softbody.Simulator, log *slog.Logger) error {
	start := time.Now()
	for k := 1; k <= conf.Steps; k++ {
		if ctx.Err() != nil {
			log.Warn("interrupted", "step", k)
			return nil
		}
		sim.Step(conf.Dt)
		if err := checkFinite(sim); err != nil {
			return fmt.Errorf("step %d: %w", k, err)
		}
		if k%conf.LogEvery == 0 || k == conf.Steps {
			summary(log, sim, k, conf.Dt)
		}
	}
	log.Info("done", "steps", conf.Steps, "elapsed", time.Since(start))
	return nil
}

// summary logs the global state of the simulation.
func summary(log *slog.Logger, sim *softbody.Simulator, step int, dt float64) {
	attrs := []any{
		"step", step,
		"time", float64(step) * dt,
		"energy", sim.KineticEnergy(),
		"edges", len(sim.Edges()),
	}
	for _, b := range sim.Bodies() {
		lo, hi := b.Bounds()
		attrs = append(attrs, slog.Group(b.Name(), "min", lo, "max", hi))
	}
	log.Info("summary", attrs...)
}

// checkFinite fails if any node has left the reals.
func checkFinite(sim *softbody.Simulator) error {
	for _, b := range sim.Bodies() {
		for i, n := range b.Nodes() {
			if !vec.IsFinite(n.Position()) || !vec.IsFinite(n.Velocity()) {
				return fmt.Errorf("node %d of body %q is not finite: position %v, velocity %v",
					i, b.Name(), n.Position(), n.Velocity())
			}
		}
	}
	return nil
}
