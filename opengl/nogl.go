//go:build nogl
// +build nogl

package opengl

import (
	"fmt"
	"os"

	softbody "github.com/0442/soft-body-simulation"
	"github.com/0442/soft-body-simulation/interact"
	"github.com/0442/soft-body-simulation/render"
)

// Config holds the parameters of the OpenGL driver.
type Config struct {
	Step       func()
	ForcePause bool
	FrameRate  float64
	Size       int

	Options render.Options
	Dragger *interact.Dragger
}

// Run returns an error explaining that OpenGL support is disabled.
func Run(s *softbody.Simulator, conf *Config) error {
	return fmt.Errorf("%s was built without OpenGL support", os.Args[0])
}
