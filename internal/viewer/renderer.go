package viewer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tilemap/internal/logger"
	"github.com/Faultbox/tilemap/pkg/asset"
	"github.com/Faultbox/tilemap/pkg/texture"
)

// Renderer draws chunk sprites as textured quads. Must be created after
// the OpenGL context exists.
type Renderer struct {
	program uint32
	quadVAO uint32
	quadVBO uint32

	uniformOffset int32
	uniformScale  int32

	// One GL texture per chunk texture handle, re-uploaded each frame so
	// the CPU-side composited buffers stay authoritative.
	glTextures map[asset.Handle]uint32
}

// NewRenderer initializes OpenGL state and the quad pipeline.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{glTextures: make(map[asset.Handle]uint32)}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	logger.Log.Info("OpenGL initialized", zap.String("version", version))

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.program, err = r.createProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.uniformOffset = gl.GetUniformLocation(r.program, gl.Str("uOffset\x00"))
	r.uniformScale = gl.GetUniformLocation(r.program, gl.Str("uScale\x00"))

	r.createQuad()
	return r, nil
}

// Close releases all GL resources.
func (r *Renderer) Close() {
	for _, tex := range r.glTextures {
		gl.DeleteTextures(1, &tex)
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Draw renders every sprite in the scene, one world unit per pixel with
// the world origin at the window center.
func (r *Renderer) Draw(scene *Scene, textures *asset.Store[*texture.Texture], winWidth, winHeight int) {
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(r.program)
	gl.BindVertexArray(r.quadVAO)

	for _, sprite := range scene.Sprites() {
		tex, ok := textures.Resolve(sprite.Texture)
		if !ok {
			continue
		}
		gl.BindTexture(gl.TEXTURE_2D, r.upload(sprite.Texture, tex))

		// Sprite placement is its center in world units.
		w := float32(tex.Width)
		h := float32(tex.Height)
		offsetX := (sprite.X - w/2) / float32(winWidth) * 2
		offsetY := (sprite.Y - h/2) / float32(winHeight) * 2
		scaleX := w / float32(winWidth) * 2
		scaleY := h / float32(winHeight) * 2
		gl.Uniform2f(r.uniformOffset, offsetX, offsetY)
		gl.Uniform2f(r.uniformScale, scaleX, scaleY)
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	}

	gl.BindVertexArray(0)
}

// upload pushes a CPU texture to the GPU, creating the GL texture on
// first use.
func (r *Renderer) upload(h asset.Handle, tex *texture.Texture) uint32 {
	glTex, ok := r.glTextures[h]
	if !ok {
		gl.GenTextures(1, &glTex)
		gl.BindTexture(gl.TEXTURE_2D, glTex)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		r.glTextures[h] = glTex
	} else {
		gl.BindTexture(gl.TEXTURE_2D, glTex)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(tex.Width), int32(tex.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(tex.Data))
	return glTex
}

// Release frees the GL texture for a chunk texture handle, e.g. after the
// chunk was removed.
func (r *Renderer) Release(h asset.Handle) {
	if glTex, ok := r.glTextures[h]; ok {
		gl.DeleteTextures(1, &glTex)
		delete(r.glTextures, h)
	}
}

// createProgram compiles and links the textured-quad shader program.
func (r *Renderer) createProgram() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec2 aPos;

		uniform vec2 uOffset;
		uniform vec2 uScale;

		out vec2 vTex;

		void main() {
			gl_Position = vec4(uOffset + aPos * uScale, 0.0, 1.0);
			// Texture row 0 is the top of the chunk buffer.
			vTex = vec2(aPos.x, 1.0 - aPos.y);
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		in vec2 vTex;
		out vec4 FragColor;

		uniform sampler2D uTexture;

		void main() {
			FragColor = texture(uTexture, vTex);
		}
	` + "\x00"

	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %s", log)
	}
	return program, nil
}

// compileShader compiles a shader from source.
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}
	return shader, nil
}

// createQuad builds the shared unit quad.
func (r *Renderer) createQuad() {
	vertices := []float32{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}
