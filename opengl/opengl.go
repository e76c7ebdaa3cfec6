//go:build !nogl
// +build !nogl

package opengl

import (
	"image/color"
	"math"
	"time"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/glfw/v3.1/glfw"

	softbody "github.com/0442/soft-body-simulation"
	"github.com/0442/soft-body-simulation/interact"
	"github.com/0442/soft-body-simulation/render"
	"github.com/0442/soft-body-simulation/vec"
)

// Config holds the parameters of the OpenGL driver.
type Config struct {
	Step       func()  // advance the simulation by one frame
	ForcePause bool    // step manually only?
	FrameRate  float64 // frames per second
	Size       int     // length of the longest window side in pixels

	Options render.Options   // what to draw
	Dragger *interact.Dragger // mouse interaction, none if nil
}

// Run runs an interactive simulation in an OpenGL window.
//
// Keys: space pauses, right arrow steps once while paused, N, E and V
// toggle nodes, edges and force vectors, escape quits.
// Nodes can be pulled with the left mouse button.
func Run(s *softbody.Simulator, conf *Config) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	// pixels per meter
	ppm := float64(conf.Size) / math.Max(s.Width(), s.Height())
	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	w, err := glfw.CreateWindow(int(s.Width()*ppm), int(s.Height()*ppm), "Soft bodies", nil, nil)
	if err != nil {
		return err
	}
	defer w.Destroy()
	w.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return err
	}
	glfw.SwapInterval(1)

	d := &display{w: w, ppm: ppm}
	d.setup(s.Width(), s.Height())

	opts := conf.Options
	cursor := func() vec.Vec {
		x, y := w.GetCursorPos()
		return vec.Vec{x / ppm, y / ppm}
	}

	var quit, step bool
	pause := conf.ForcePause
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		switch key {
		case glfw.KeyEscape:
			quit = true
		case glfw.KeySpace:
			if action == glfw.Press && !conf.ForcePause {
				pause = !pause
			}
		case glfw.KeyRight:
			if pause {
				pause = false
				step = true
			}
		case glfw.KeyN:
			opts.Nodes = !opts.Nodes
		case glfw.KeyE:
			opts.Edges = !opts.Edges
		case glfw.KeyV:
			opts.Vectors = !opts.Vectors
		}
	})

	if conf.Dragger != nil {
		w.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
			if button != glfw.MouseButtonLeft {
				return
			}
			switch action {
			case glfw.Press:
				conf.Dragger.Grab(s, cursor())
			case glfw.Release:
				conf.Dragger.Release()
			}
		})
	}

	ticker := time.NewTicker(time.Duration(float64(time.Second) / conf.FrameRate))
	defer ticker.Stop()
	for !(quit || w.ShouldClose()) {
		if conf.Dragger != nil {
			if err := conf.Dragger.Pull(cursor()); err != nil {
				return err
			}
		}
		if step {
			pause = true
			step = false
			conf.Step()
		}
		if !pause {
			conf.Step()
		}
		if err := render.Draw(d, s, &opts); err != nil {
			return err
		}
		glfw.PollEvents()
		<-ticker.C
	}
	if conf.Dragger != nil {
		conf.Dragger.Release()
	}
	return d.Quit()
}

// display draws with the OpenGL fixed pipeline in simulation units.
type display struct {
	w   *glfw.Window
	ppm float64 // pixels per meter
}

// setup maps the domain onto the window, origin at the top left and y down.
func (d *display) setup(width, height float64) {
	fw, fh := d.w.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fw), int32(fh))
	gl.MatrixMode(gl.PROJECTION)
	gl.LoadIdentity()
	gl.Ortho(0, width, height, 0, -1, 1)
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadIdentity()

	gl.Enable(gl.BLEND)
	gl.Enable(gl.LINE_SMOOTH)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0, 0, 0, 1)
}

func (d *display) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *display) AddLine(p1, p2 vec.Vec, width float64, c color.RGBA) {
	gl.LineWidth(float32(math.Max(1, width*d.ppm)))
	gl.Color4ub(c.R, c.G, c.B, c.A)
	gl.Begin(gl.LINES)
	gl.Vertex2d(p1[0], p1[1])
	gl.Vertex2d(p2[0], p2[1])
	gl.End()
}

func (d *display) AddCircle(center vec.Vec, radius float64, c color.RGBA) {
	const sides = 16
	gl.Color4ub(c.R, c.G, c.B, c.A)
	gl.Begin(gl.TRIANGLE_FAN)
	gl.Vertex2d(center[0], center[1])
	for i := 0; i <= sides; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / sides)
		gl.Vertex2d(center[0]+radius*cos, center[1]+radius*sin)
	}
	gl.End()
}

func (d *display) AddRectangle(topLeft vec.Vec, width, height float64, c color.RGBA) {
	x, y := topLeft[0], topLeft[1]
	gl.Color4ub(c.R, c.G, c.B, c.A)
	gl.Begin(gl.QUADS)
	gl.Vertex2d(x, y)
	gl.Vertex2d(x+width, y)
	gl.Vertex2d(x+width, y+height)
	gl.Vertex2d(x, y+height)
	gl.End()
}

func (d *display) Render() error {
	d.w.SwapBuffers()
	return nil
}

func (d *display) Quit() error {
	return nil
}
