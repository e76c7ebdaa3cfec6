package main

import (
	"context"
	"fmt"
	"io"
	"time"

	softbody "github.com/0442/soft-body-simulation"
	"github.com/0442/soft-body-simulation/render"
)

// RunTerminal runs a simulation drawn with characters on w.
// It stops after conf.Steps time steps, or when ctx is done if conf.Steps is 0.
func RunTerminal(ctx context.Context, conf *Config, sim *softbody.Simulator, w io.Writer) (err error) {
	term, err := render.NewTerminal(w, conf.Columns, conf.Rows, conf.Width, conf.Height)
	if err != nil {
		return err
	}
	defer checkQuit(&err, term)

	opts := render.DefaultOptions
	opts.Vectors = conf.Vectors
	n := stepsPerFrame(conf)

	ticker := time.NewTicker(time.Duration(float64(time.Second) / conf.FrameRate))
	defer ticker.Stop()
	for k := 0; conf.Steps == 0 || k < conf.Steps; {
		for i := 0; i < n && (conf.Steps == 0 || k < conf.Steps); i++ {
			sim.Step(conf.Dt)
			k++
			if err := checkFinite(sim); err != nil {
				return fmt.Errorf("step %d: %w", k, err)
			}
		}
		if err := render.Draw(term, sim, &opts); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	return nil
}

// checkQuit quits r and reports its error if there is no other.
func checkQuit(err *error, r render.Renderer) {
	if e := r.Quit(); *err == nil {
		*err = e
	}
}
