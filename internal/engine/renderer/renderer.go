// Package renderer draws coloured line geometry with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/seabed/internal/engine/debug"
	"github.com/Faultbox/seabed/internal/engine/shader"
	"github.com/Faultbox/seabed/internal/logger"
	"github.com/Faultbox/seabed/pkg/math"
)

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uViewProj;

out vec3 vColor;
out float vDepth;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	vColor = aColor;
	vDepth = gl_Position.w;
}
`

// Distance fog toward the water colour.
const fragmentShader = `
#version 410 core

in vec3 vColor;
in float vDepth;

uniform vec3 uFogColor;
uniform float uFogDensity;

out vec4 FragColor;

void main() {
	float fog = 1.0 - exp(-uFogDensity * vDepth);
	FragColor = vec4(mix(vColor, uFogColor, clamp(fog, 0.0, 1.0)), 1.0);
}
`

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	WaterColor [3]float32
	FogDensity float32
}

// lineBuffer is one VAO/VBO pair holding interleaved line vertices.
type lineBuffer struct {
	vao, vbo uint32
	count    int32
	capacity int // Bytes allocated on the GPU
	usage    uint32
}

// Renderer owns the GL state for line drawing.
type Renderer struct {
	config  Config
	program *shader.Program

	static  lineBuffer
	dynamic lineBuffer
}

// New initialises OpenGL and creates the line pipeline.
// Must be called after the GL context is current.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	program, err := shader.Compile(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("creating line shader: %w", err)
	}

	r := &Renderer{
		config:  cfg,
		program: program,
		static:  newLineBuffer(gl.STATIC_DRAW),
		dynamic: newLineBuffer(gl.STREAM_DRAW),
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(cfg.WaterColor[0], cfg.WaterColor[1], cfg.WaterColor[2], 1)
	r.Resize(cfg.Width, cfg.Height)

	return r, nil
}

func newLineBuffer(usage uint32) lineBuffer {
	b := lineBuffer{usage: usage}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	stride := int32(debug.FloatsPerVertex * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return b
}

// upload replaces the buffer contents, growing the GPU allocation if needed.
func (b *lineBuffer) upload(l *debug.Lines) {
	b.count = int32(l.Count())
	if len(l.Data) == 0 {
		return
	}

	size := len(l.Data) * 4
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if size > b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&l.Data[0]), b.usage)
		b.capacity = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&l.Data[0]))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (b *lineBuffer) draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(gl.LINES, 0, b.count)
}

func (b *lineBuffer) delete() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
}

// SetStatic replaces the geometry that rarely changes (seabed, props).
func (r *Renderer) SetStatic(l *debug.Lines) {
	r.static.upload(l)
	logger.Debug("static geometry uploaded", zap.Int32("vertices", r.static.count))
}

// SetFog changes the water colour used for clearing and fog.
func (r *Renderer) SetFog(color [3]float32, density float32) {
	r.config.WaterColor = color
	r.config.FogDensity = density
	gl.ClearColor(color[0], color[1], color[2], 1)
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Aspect returns the viewport width over height.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Draw clears the frame and draws the static geometry plus this frame's
// dynamic lines.
func (r *Renderer) Draw(viewProj math.Mat4, dynamic *debug.Lines) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	gl.UniformMatrix4fv(r.program.Uniform("uViewProj"), 1, false, viewProj.Ptr())
	c := r.config.WaterColor
	gl.Uniform3f(r.program.Uniform("uFogColor"), c[0], c[1], c[2])
	gl.Uniform1f(r.program.Uniform("uFogDensity"), r.config.FogDensity)

	r.static.draw()
	if dynamic != nil {
		r.dynamic.upload(dynamic)
		r.dynamic.draw()
	}
	gl.BindVertexArray(0)
}

// Close releases GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.static.delete()
	r.dynamic.delete()
	r.program.Delete()
}
