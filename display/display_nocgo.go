//go:build !cgo

package display

import (
	"errors"

	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/sampler"
	"github.com/max-kay/linewise/storage"
)

var errNoCgo = errors.New("display: needs cgo (GLFW/OpenGL)")

// Config configures the window a Window opens.
type Config struct {
	Title         string
	Width, Height int
	Boundary      geom.Rect
	Precision     int
	Potential     *sampler.Sampler2D[float32]
}

// Window is a no-op stand-in when cgo is unavailable.
type Window struct{}

// NewWindow always fails without cgo.
func NewWindow(cfg Config) (*Window, error) { return nil, errNoCgo }

func (w *Window) Close() {}

func (w *Window) ShouldClose() bool { return true }

func (w *Window) DrawSnapshot(s *storage.SplineStorage) error { return errNoCgo }

// Run always fails without cgo.
func Run(w *Window, snapshots <-chan *storage.SplineStorage, cancel func() bool) error {
	return errNoCgo
}
