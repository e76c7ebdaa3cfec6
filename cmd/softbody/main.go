// Command softbody runs soft body simulations.
//
// Usage
//
// The softbody command takes one optional argument:
//
//	softbody [config_file]
//
// It is the path to a TOML config file.
// If no config file is specified, an interactive simulation
// with default parameters will run in an OpenGL window.
//
// Config file
//
// The config file is written in TOML. Any parameter it sets overrides the
// default. Bodies are listed as [[body]] tables, either from a preset:
//
//	[[body]]
//	name = "jelly"
//	preset = "grid"
//	columns = 4
//	rows = 2
//	spacing = 0.6
//	position = [1, 0.1]
//
// or from explicit [[body.node]] and [[body.edge]] tables.
//
// Interactive mode
//
// In interactive mode, the simulation can be paused/resumed with space.
// While in pause, pressing right arrow will perform a single step.
// N, E and V toggle the display of nodes, edges and force vectors.
// Nodes can be dragged with the mouse.
// Pressing Esc or closing the window will quit.
//
// Terminal and headless modes
//
// With renderer = "terminal" the simulation is drawn with characters.
// With renderer = "none" it runs for the configured number of steps and
// logs a summary periodically. Both stop on interrupt.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/0442/soft-body-simulation/interact"
	"github.com/0442/soft-body-simulation/opengl"
	"github.com/0442/soft-body-simulation/render"
)

const usage = `Usage: softbody [config_file]

The first argument is optional and is the path to a TOML config file.
If no config file is specified, an interactive simulation
with default parameters will run in an OpenGL window.
`

func init() {
	// Most OpenGL functions have to run from the main thread.
	// This is needed to arrange that main() runs on main thread.
	// See https://github.com/golang/go/wiki/LockOSThread for more info.
	runtime.LockOSThread()
}

func main() {
	var conf *Config
	var err error
	switch len(os.Args) {
	case 1:
		conf = DefaultConf
	case 2:
		conf, err = ParseConfig(os.Args[1])
	default:
		err = fmt.Errorf("%d arguments provided (0 required, 1 optional)\n\n%s", len(os.Args)-1, usage)
	}
	if err != nil {
		Fatal(err)
	}
	if err := conf.Validate(); err != nil {
		Fatal(err)
	}

	level, _ := conf.Level()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// setup simulation
	sim, err := setup(conf, log)
	if err != nil {
		Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// run with the renderer selected in config
	switch conf.Renderer {
	case "opengl":
		opts := render.DefaultOptions
		opts.Vectors = conf.Vectors
		n := stepsPerFrame(conf)
		err = opengl.Run(sim, &opengl.Config{
			Step: func() {
				for i := 0; i < n; i++ {
					sim.Step(conf.Dt)
				}
			},
			ForcePause: conf.Manual,
			FrameRate:  conf.FrameRate,
			Size:       800,
			Options:    opts,
			Dragger:    interact.NewDragger(),
		})
	case "terminal":
		err = RunTerminal(ctx, conf, sim, os.Stdout)
	case "none":
		err = RunHeadless(ctx, conf, sim, log)
	}
	if err != nil {
		stop()
		Fatal(err)
	}
}

// Fatal prints an error on the standard error and exits with a non-zero status.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	os.Exit(1)
}
