//go:build cgo

// Package display implements an optional live viewer for the snapshot
// channel the Monte-Carlo engine hands spline arenas over: a GLFW/OpenGL
// window redrawing every spline as a sampled line strip, one frame per
// snapshot received.
package display

import (
	_ "embed"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/max-kay/linewise/geom"
	"github.com/max-kay/linewise/sampler"
	"github.com/max-kay/linewise/storage"
	"github.com/max-kay/linewise/v4.6-core/glgl"
)

//go:embed viewer.glsl
var viewerShader string

//go:embed background.glsl
var backgroundShader string

// backgroundQuadVerts is a full-screen quad in NDC, interleaved with the
// texture coordinates the background sampler is indexed by: x, y, u, v.
var backgroundQuadVerts = []float32{
	-1, -1, 0, 0,
	1, -1, 1, 0,
	1, 1, 1, 1,
	-1, 1, 0, 1,
}

var backgroundQuadIndices = []uint32{0, 1, 2, 0, 2, 3}

func init() {
	runtime.LockOSThread()
}

// Config configures the window a Window opens.
type Config struct {
	Title         string
	Width, Height int
	// Boundary is the simulation region mapped to normalized device
	// coordinates [-1,1]x[-1,1].
	Boundary geom.Rect
	// Precision sets how many points sample each segment's drawn polyline.
	Precision int
	// Potential, if set, is drawn as a grayscale background quad beneath the
	// splines, one texel per sample.
	Potential *sampler.Sampler2D[float32]
}

// Window is a minimal GLFW/OpenGL snapshot viewer.
type Window struct {
	win       *glgl.Window
	terminate func()
	prog      glgl.Program
	vao       glgl.VertexArray
	cfg       Config

	hasBackground bool
	bgProg        glgl.Program
	bgVAO         glgl.VertexArray
	bgVBO         glgl.VertexBuffer
	bgIBO         glgl.IndexBuffer
	bgTex         glgl.Texture
	bgUniform     int32
}

// NewWindow opens a window and compiles the line-strip shader. The caller
// must call Close when done.
func NewWindow(cfg Config) (*Window, error) {
	win, terminate, err := glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
	})
	if err != nil {
		return nil, err
	}
	source, err := glgl.ParseCombined(strings.NewReader(viewerShader))
	if err != nil {
		terminate()
		return nil, err
	}
	prog, err := glgl.CompileProgram(source)
	if err != nil {
		terminate()
		return nil, err
	}
	prog.Bind()
	if err := prog.BindFrag("outputColor\x00"); err != nil {
		terminate()
		return nil, err
	}
	w := &Window{win: win, terminate: terminate, prog: prog, vao: glgl.NewVAO(), cfg: cfg}
	if cfg.Potential != nil {
		if err := w.initBackground(cfg.Potential); err != nil {
			terminate()
			return nil, err
		}
	}
	return w, nil
}

// initBackground compiles the background shader and uploads pot as a
// single-channel float texture sampled by a full-screen quad.
func (w *Window) initBackground(pot *sampler.Sampler2D[float32]) error {
	source, err := glgl.ParseCombined(strings.NewReader(backgroundShader))
	if err != nil {
		return err
	}
	prog, err := glgl.CompileProgram(source)
	if err != nil {
		return err
	}
	prog.Bind()
	if err := prog.BindFrag("outputColor\x00"); err != nil {
		return err
	}
	loc, err := prog.UniformLocation("potential\x00")
	if err != nil {
		return err
	}

	vbo, err := glgl.NewVertexBuffer(glgl.StaticDraw, backgroundQuadVerts)
	if err != nil {
		return err
	}
	ibo, err := glgl.NewIndexBuffer(backgroundQuadIndices)
	if err != nil {
		return err
	}
	vao := glgl.NewVAO()
	const stride = 4 * 4
	if err := vao.AddAttribute(vbo, glgl.AttribLayout{
		Program: prog, Type: glgl.Float32, Name: "vert\x00", Packing: 2, Stride: stride,
	}); err != nil {
		return err
	}
	if err := vao.AddAttribute(vbo, glgl.AttribLayout{
		Program: prog, Type: glgl.Float32, Name: "uv\x00", Packing: 2, Stride: stride, Offset: 2 * 4,
	}); err != nil {
		return err
	}

	tex, err := glgl.NewTextureFromImage(glgl.TextureImgConfig{
		Type:      glgl.Texture2D,
		Width:     pot.Width(),
		Height:    pot.Height(),
		Format:    gl.RED,
		Xtype:     gl.FLOAT,
		MagFilter: gl.LINEAR,
		MinFilter: gl.LINEAR,
		Wrap:      gl.CLAMP_TO_EDGE,
		Access:    glgl.ReadOnly,
	}, pot.Raw())
	if err != nil {
		return err
	}

	w.hasBackground = true
	w.bgProg = prog
	w.bgVAO = vao
	w.bgVBO = vbo
	w.bgIBO = ibo
	w.bgTex = tex
	w.bgUniform = loc
	return nil
}

// drawBackground renders the background texture as a full-screen quad
// beneath the spline line strips.
func (w *Window) drawBackground() error {
	w.bgProg.Bind()
	w.bgVAO.Bind()
	w.bgTex.Bind(0)
	if err := w.bgProg.SetUniformi(w.bgUniform, 0); err != nil {
		return err
	}
	w.bgIBO.Bind()
	gl.DrawElements(gl.TRIANGLES, int32(len(backgroundQuadIndices)), gl.UNSIGNED_INT, nil)
	w.bgIBO.Unbind()
	return glgl.Err()
}

// Close releases the window and its GL program.
func (w *Window) Close() {
	if w.hasBackground {
		w.bgTex.Delete()
		w.bgIBO.Delete()
		w.bgVBO.Delete()
		w.bgProg.Delete()
	}
	w.prog.Delete()
	w.terminate()
}

// ShouldClose reports whether the user has requested the window close.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// DrawSnapshot renders every spline in s as a sampled line strip, mapping
// w.cfg.Boundary onto normalized device coordinates.
func (w *Window) DrawSnapshot(s *storage.SplineStorage) error {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	if w.hasBackground {
		if err := w.drawBackground(); err != nil {
			return err
		}
		w.prog.Bind()
	}
	w.vao.Bind()
	for _, bs := range s.AllSplines() {
		verts := make([]float32, 0, (bs.NumSegments()*w.cfg.Precision+1)*2)
		for _, seg := range bs.Segments() {
			for _, p := range seg.PositionIter(w.cfg.Precision) {
				ndc := toNDC(w.cfg.Boundary, p)
				verts = append(verts, ndc.X, ndc.Y)
			}
		}
		if len(verts) < 4 {
			continue
		}
		vbo, err := glgl.NewVertexBuffer(glgl.DynamicDraw, verts)
		if err != nil {
			return err
		}
		err = w.vao.AddAttribute(vbo, glgl.AttribLayout{
			Program: w.prog,
			Type:    glgl.Float32,
			Name:    "vert\x00",
			Packing: 2,
			Stride:  2 * 4,
		})
		if err != nil {
			vbo.Delete()
			return err
		}
		gl.DrawArrays(gl.LINE_STRIP, 0, int32(len(verts)/2))
		vbo.Delete()
	}
	w.win.SwapBuffers()
	glfw.PollEvents()
	return nil
}

// toNDC maps p from boundary's coordinate space into [-1,1]x[-1,1].
func toNDC(boundary geom.Rect, p geom.Vector) geom.Vector {
	box := boundary.ToBoxCoords(p)
	return geom.Vector{X: box.X*2 - 1, Y: box.Y*2 - 1}
}

// Run drains snapshots until the channel closes, the window is asked to
// close, or cancel is observed set; it always draws the most recently
// received snapshot, dropping any that arrive faster than the window can
// redraw.
func Run(w *Window, snapshots <-chan *storage.SplineStorage, cancel func() bool) error {
	for snap := range snapshots {
		if w.ShouldClose() || (cancel != nil && cancel()) {
			return nil
		}
		// Drain any backlog so the window always shows the latest state.
	drain:
		for {
			select {
			case newer, ok := <-snapshots:
				if !ok {
					break drain
				}
				snap = newer
			default:
				break drain
			}
		}
		if err := w.DrawSnapshot(snap); err != nil {
			return err
		}
	}
	return nil
}
