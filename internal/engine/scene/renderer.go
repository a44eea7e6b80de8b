// Package scene uploads prepared COLLADA scenes to the GPU and draws them.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/tinycollada/internal/engine/debug"
	"github.com/Faultbox/tinycollada/internal/engine/model"
	"github.com/Faultbox/tinycollada/internal/engine/shader"
	"github.com/Faultbox/tinycollada/internal/engine/texture"
	"github.com/Faultbox/tinycollada/internal/logger"
	"github.com/Faultbox/tinycollada/pkg/math"
)

// gpuMesh is one uploaded model.Mesh.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	color      [4]float32
	ambient    [3]float32
	texture    uint32 // 0 when untextured
}

// Renderer draws a Batch with simple directional lighting.
type Renderer struct {
	program  *shader.Program
	meshes   []gpuMesh
	batch    *Batch
	textures map[string]uint32 // by resolved path; 0 marks a failed load
	maxTex   int

	boundsVAO uint32
	boundsVBO uint32

	LightDir   [3]float32
	Background [3]float32
	Wireframe  bool
	ShowBounds bool
}

// NewRenderer initializes OpenGL and compiles the model shader.
// It must be called after the GL context is current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	program, err := shader.New(modelVertexShader, modelFragmentShader,
		"uMVP", "uModel", "uLightDir", "uDiffuse", "uAmbient", "uWireframe",
		"uTexture", "uHasTexture")
	if err != nil {
		return nil, fmt.Errorf("model shader: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.MULTISAMPLE)

	var maxTex int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)

	return &Renderer{
		program:    program,
		maxTex:     int(maxTex),
		LightDir:   [3]float32{0.4, 0.8, 0.45},
		Background: [3]float32{0.15, 0.15, 0.18},
	}, nil
}

// Load uploads every mesh of b, replacing whatever was loaded before.
// Texture references are resolved against docPath.
func (r *Renderer) Load(b *Batch, docPath string) {
	r.clear()
	r.batch = b
	r.textures = make(map[string]uint32)
	r.meshes = make([]gpuMesh, len(b.Meshes))
	for i, m := range b.Meshes {
		r.meshes[i] = upload(m)
		if m.Texture != "" {
			r.meshes[i].texture = r.loadTexture(texture.Resolve(docPath, m.Texture))
		}
	}
	logger.Debug("scene uploaded",
		zap.Int("meshes", len(b.Meshes)),
		zap.Int("instances", len(b.Instances)),
		zap.Int("textures", len(r.textures)),
		zap.Int("triangles", b.TriangleCount()))

	if b.Bounds.Valid() {
		r.uploadBounds(b.Bounds)
	}
}

// uploadBounds stores the world bounding box as a line list.
func (r *Renderer) uploadBounds(b model.Bounds) {
	lines := debug.BoxLines(b.Min, b.Max)

	gl.GenVertexArrays(1, &r.boundsVAO)
	gl.BindVertexArray(r.boundsVAO)
	gl.GenBuffers(1, &r.boundsVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boundsVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(lines)*4, unsafe.Pointer(&lines[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

// loadTexture uploads the image at path once. Meshes whose image cannot be
// loaded are drawn with their material color.
func (r *Renderer) loadTexture(path string) uint32 {
	if id, ok := r.textures[path]; ok {
		return id
	}
	img, err := texture.Load(path)
	if err != nil {
		logger.Warn("texture not loaded", zap.String("path", path), zap.Error(err))
		r.textures[path] = 0
		return 0
	}
	if fitted := texture.Fit(img, r.maxTex); fitted != img {
		logger.Debug("texture downscaled",
			zap.String("path", path),
			zap.Int("width", img.Rect.Dx()),
			zap.Int("max", r.maxTex))
		img = fitted
	}
	texture.FlipVertical(img)
	id := texture.Upload(img)
	r.textures[path] = id
	return id
}

func upload(m *model.Mesh) gpuMesh {
	g := gpuMesh{
		indexCount: int32(len(m.Indices)),
		color:      m.Color,
		ambient:    m.Ambient,
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	vertexSize := int(unsafe.Sizeof(model.Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)
	// TexCoord
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return g
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Render clears the frame and draws every instance with viewProj.
func (r *Renderer) Render(viewProj math.Mat4) {
	gl.ClearColor(r.Background[0], r.Background[1], r.Background[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	if r.batch == nil {
		return
	}

	if r.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.program.Use()
	gl.Uniform3f(r.program.Uniform("uLightDir"), r.LightDir[0], r.LightDir[1], r.LightDir[2])
	wire := int32(0)
	if r.Wireframe {
		wire = 1
	}
	gl.Uniform1i(r.program.Uniform("uWireframe"), wire)
	gl.Uniform1i(r.program.Uniform("uTexture"), 0)
	gl.ActiveTexture(gl.TEXTURE0)

	for _, inst := range r.batch.Instances {
		g := &r.meshes[inst.Mesh]
		modelMatrix := inst.Transform
		mvp := viewProj.Mul(modelMatrix)

		gl.UniformMatrix4fv(r.program.Uniform("uMVP"), 1, false, mvp.Ptr())
		gl.UniformMatrix4fv(r.program.Uniform("uModel"), 1, false, modelMatrix.Ptr())
		gl.Uniform4f(r.program.Uniform("uDiffuse"), g.color[0], g.color[1], g.color[2], g.color[3])
		gl.Uniform3f(r.program.Uniform("uAmbient"), g.ambient[0], g.ambient[1], g.ambient[2])
		hasTexture := int32(0)
		if g.texture != 0 {
			hasTexture = 1
		}
		gl.Uniform1i(r.program.Uniform("uHasTexture"), hasTexture)
		gl.BindTexture(gl.TEXTURE_2D, g.texture)

		gl.BindVertexArray(g.vao)
		gl.DrawElements(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, nil)
	}

	if r.ShowBounds && r.boundsVAO != 0 {
		identity := math.Identity()
		gl.UniformMatrix4fv(r.program.Uniform("uMVP"), 1, false, viewProj.Ptr())
		gl.UniformMatrix4fv(r.program.Uniform("uModel"), 1, false, identity.Ptr())
		gl.Uniform1i(r.program.Uniform("uWireframe"), 1)
		gl.BindVertexArray(r.boundsVAO)
		gl.DrawArrays(gl.LINES, 0, debug.BoxLineVertices)
	}
	gl.BindVertexArray(0)
}

// Capture reads back the current frame as RGBA rows, bottom row first.
func (r *Renderer) Capture(width, height int) []byte {
	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels
}

func (r *Renderer) clear() {
	for i := range r.meshes {
		g := &r.meshes[i]
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteBuffers(1, &g.ebo)
	}
	for _, id := range r.textures {
		if id != 0 {
			gl.DeleteTextures(1, &id)
		}
	}
	if r.boundsVAO != 0 {
		gl.DeleteVertexArrays(1, &r.boundsVAO)
		gl.DeleteBuffers(1, &r.boundsVBO)
		r.boundsVAO, r.boundsVBO = 0, 0
	}
	r.meshes = nil
	r.batch = nil
	r.textures = nil
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	r.clear()
	r.program.Delete()
}
