// Package render executes the per-frame draw plans produced by the curl
// engines against an OpenGL 4.1 core context.
package render

import (
	"fmt"
	"image"
	"sync/atomic"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/foldline/pagecurl/internal/curl"
	"github.com/foldline/pagecurl/internal/engine/shader"
	"github.com/foldline/pagecurl/internal/engine/texture"
	"github.com/foldline/pagecurl/internal/render/shaders"
)

// flatProgram draws textured polygons without deformation: full-page draws
// and the planar model's clipped regions.
type flatProgram struct {
	id         uint32
	locTexture int32
	locOpacity int32
	locOverlay int32
}

// curlProgram draws the static page mesh wrapped around the fold cylinder.
type curlProgram struct {
	id           uint32
	locTexture   int32
	locFoldX     int32
	locFoldSlope int32
	locRadius    int32
	locDarken    int32
	locBackFace  int32
	locOverlay   int32
}

// gradientProgram draws the fold shadow strips.
type gradientProgram struct {
	id          uint32
	locGradient int32
	locAlpha    int32
}

// upload is one pending page texture replacement, queued off the render
// thread and applied at frame start.
type upload struct {
	slot   curl.PageSlot
	pix    []byte
	width  int
	height int
}

const uploadQueueDepth = 8

// Renderer owns every GL object of the page view: the three shader
// programs, the static page mesh, a streaming buffer for polygon passes,
// one texture per page slot, and the two pre-built shadow gradients.
//
// All methods except SetPageImage and SetParams must run on the render
// thread.
type Renderer struct {
	log *zap.Logger

	flat flatProgram
	curl curlProgram
	grad gradientProgram

	// Full-page quad and streaming buffer for planar polygon fans, both
	// interleaved x,y,u,v.
	quadVAO   uint32
	quadVBO   uint32
	streamVAO uint32
	streamVBO uint32

	// Streaming buffer for shadow strips, interleaved x,y,grad.
	shadowVAO uint32
	shadowVBO uint32

	// Static cylinder mesh; zero when running the planar backend.
	meshVAO        uint32
	meshVBO        uint32
	meshEBO        uint32
	meshIndexCount int32

	pageTex [curl.SlotCount]uint32
	gradTex [2]uint32 // indexed by curl.ShadowKind

	uploads chan upload
	params  atomic.Pointer[curl.Params]

	warnedFlat bool
	warnedCurl bool
	warnedGrad bool

	stream []float32
}

// New creates the renderer on the current GL context. mesh is the
// cylindrical backend's page tessellation; pass nil for the planar backend.
// A shader that fails to build is logged and its passes skipped at draw
// time, the renderer itself still comes up.
func New(log *zap.Logger, params curl.Params, mesh *curl.Mesh) (*Renderer, error) {
	r := &Renderer{
		log:     log,
		uploads: make(chan upload, uploadQueueDepth),
		stream:  make([]float32, 0, 64),
	}
	r.params.Store(&params)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r.compilePrograms()
	r.createQuad()
	r.createStreamBuffers()
	r.createPageTextures()
	r.createGradientTextures()
	if mesh != nil {
		if err := r.uploadMesh(mesh); err != nil {
			r.Destroy()
			return nil, err
		}
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return r, nil
}

func (r *Renderer) compilePrograms() {
	id, err := shader.CompileProgram(shaders.FlatVertexShader, shaders.FlatFragmentShader)
	if err != nil {
		r.log.Error("flat shader failed to build", zap.Error(err))
	} else {
		r.flat = flatProgram{
			id:         id,
			locTexture: shader.GetUniform(id, "uTexture"),
			locOpacity: shader.GetUniform(id, "uOpacity"),
			locOverlay: shader.GetUniform(id, "uOverlay"),
		}
	}

	id, err = shader.CompileProgram(shaders.CurlVertexShader, shaders.CurlFragmentShader)
	if err != nil {
		r.log.Error("curl shader failed to build", zap.Error(err))
	} else {
		r.curl = curlProgram{
			id:           id,
			locTexture:   shader.GetUniform(id, "uTexture"),
			locFoldX:     shader.GetUniform(id, "uFoldX"),
			locFoldSlope: shader.GetUniform(id, "uFoldSlope"),
			locRadius:    shader.GetUniform(id, "uRadius"),
			locDarken:    shader.GetUniform(id, "uDarken"),
			locBackFace:  shader.GetUniform(id, "uBackFace"),
			locOverlay:   shader.GetUniform(id, "uOverlay"),
		}
	}

	id, err = shader.CompileProgram(shaders.GradientVertexShader, shaders.GradientFragmentShader)
	if err != nil {
		r.log.Error("gradient shader failed to build", zap.Error(err))
	} else {
		r.grad = gradientProgram{
			id:          id,
			locGradient: shader.GetUniform(id, "uGradient"),
			locAlpha:    shader.GetUniform(id, "uAlpha"),
		}
	}
}

func (r *Renderer) createQuad() {
	// Two triangles covering the page, UVs equal to positions.
	vertices := []float32{
		0, 0, 0, 0,
		0, 1, 0, 1,
		1, 0, 1, 0,
		1, 0, 1, 0,
		0, 1, 0, 1,
		1, 1, 1, 1,
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

func (r *Renderer) createStreamBuffers() {
	// Planar polygon fans: x,y,u,v
	gl.GenVertexArrays(1, &r.streamVAO)
	gl.BindVertexArray(r.streamVAO)

	gl.GenBuffers(1, &r.streamVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.streamVBO)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 4*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 4*4, 2*4)
	gl.EnableVertexAttribArray(1)

	// Shadow strip fans: x,y,grad
	gl.GenVertexArrays(1, &r.shadowVAO)
	gl.BindVertexArray(r.shadowVAO)

	gl.GenBuffers(1, &r.shadowVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.shadowVBO)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 1, gl.FLOAT, false, 3*4, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
}

func (r *Renderer) createPageTextures() {
	// Start white so slots draw as blank paper until their page arrives.
	white := []byte{255, 255, 255, 255}

	for i := range r.pageTex {
		gl.GenTextures(1, &r.pageTex[i])
		gl.BindTexture(gl.TEXTURE_2D, r.pageTex[i])
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, 1, 1, 0,
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&white[0]))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (r *Renderer) createGradientTextures() {
	// 2x1 alpha ramps sampled by the gradient coordinate: opaque at the
	// fold line, transparent at the strip's outer edge. Built once; the
	// per-strip peak opacity scales them at draw time.
	ramps := [2][]byte{
		{0, 0, 0, 255, 0, 0, 0, 0}, // cast
		{0, 0, 0, 255, 0, 0, 0, 0}, // crease
	}

	for i := range r.gradTex {
		gl.GenTextures(1, &r.gradTex[i])
		gl.BindTexture(gl.TEXTURE_2D, r.gradTex[i])
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, 2, 1, 0,
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&ramps[i][0]))
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (r *Renderer) uploadMesh(mesh *curl.Mesh) error {
	if len(mesh.Vertices) == 0 || len(mesh.Indices) == 0 {
		return fmt.Errorf("empty page mesh")
	}

	gl.GenVertexArrays(1, &r.meshVAO)
	gl.BindVertexArray(r.meshVAO)

	gl.GenBuffers(1, &r.meshVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*4,
		unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.meshEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.meshEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*2,
		unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	stride := int32(curl.VertexStride * 4)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	r.meshIndexCount = int32(len(mesh.Indices))

	r.log.Info("page mesh uploaded",
		zap.Int("cols", mesh.Cols),
		zap.Int("rows", mesh.Rows),
		zap.Int("indices", len(mesh.Indices)),
	)
	return nil
}

// SetParams replaces the shared tunables as one immutable snapshot. Safe to
// call from any goroutine; the next frame picks it up.
func (r *Renderer) SetParams(p curl.Params) {
	r.params.Store(&p)
}

// Params returns the current tunables snapshot.
func (r *Renderer) Params() curl.Params {
	return *r.params.Load()
}

// SetPageImage queues a page image for upload into a slot texture. Safe to
// call off the render thread; the upload happens at the next frame start.
// Anything but a tight 4-byte RGBA buffer is rejected and the slot keeps
// its previous contents.
func (r *Renderer) SetPageImage(slot curl.PageSlot, img image.Image) error {
	if slot < 0 || slot >= curl.SlotCount {
		return fmt.Errorf("invalid page slot %d", slot)
	}
	if img == nil {
		return fmt.Errorf("nil page image")
	}

	rgba := texture.ImageToRGBA(img)
	b := rgba.Bounds()
	if err := texture.ValidatePixels(rgba.Pix, b.Dx(), b.Dy()); err != nil {
		return fmt.Errorf("page image for slot %d: %w", slot, err)
	}

	select {
	case r.uploads <- upload{slot: slot, pix: rgba.Pix, width: b.Dx(), height: b.Dy()}:
		return nil
	default:
		return fmt.Errorf("upload queue full, slot %d dropped", slot)
	}
}

// drainUploads applies every queued page upload. Render thread only.
func (r *Renderer) drainUploads() {
	for {
		select {
		case u := <-r.uploads:
			gl.BindTexture(gl.TEXTURE_2D, r.pageTex[u.slot])
			gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
				int32(u.width), int32(u.height), 0,
				gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&u.pix[0]))
			gl.BindTexture(gl.TEXTURE_2D, 0)
		default:
			return
		}
	}
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Draw clears the frame and executes the plan's passes in order. A pass
// whose program is unavailable is skipped, never fatal.
func (r *Renderer) Draw(plan curl.FramePlan) {
	r.drainUploads()

	gl.ClearColor(0.12, 0.12, 0.14, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	params := *r.params.Load()

	for _, pass := range plan.Passes {
		switch {
		case pass.Shadow != nil:
			r.drawShadow(pass.Shadow)
		case pass.Cylinder != nil:
			r.drawMesh(pass, params)
		case pass.Planar != nil:
			r.drawPolygon(pass)
		default:
			r.drawFullPage(pass.Slot)
		}
	}
}

// drawFullPage draws a slot's texture over the whole page, undeformed.
func (r *Renderer) drawFullPage(slot curl.PageSlot) {
	if r.flat.id == 0 {
		if !r.warnedFlat {
			r.log.Warn("flat program unavailable, skipping page passes")
			r.warnedFlat = true
		}
		return
	}

	gl.UseProgram(r.flat.id)
	gl.Uniform1f(r.flat.locOpacity, 1)
	gl.Uniform1f(r.flat.locOverlay, 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.pageTex[slot])
	gl.Uniform1i(r.flat.locTexture, 0)

	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

// drawPolygon draws a planar pass payload as a triangle fan. The clipped
// regions are always convex.
func (r *Renderer) drawPolygon(pass curl.Pass) {
	if r.flat.id == 0 {
		if !r.warnedFlat {
			r.log.Warn("flat program unavailable, skipping page passes")
			r.warnedFlat = true
		}
		return
	}
	p := pass.Planar
	if len(p.Verts) < 3 || len(p.UVs) != len(p.Verts) {
		return
	}

	r.stream = r.stream[:0]
	for i, v := range p.Verts {
		r.stream = append(r.stream, v.X, v.Y, p.UVs[i].X, p.UVs[i].Y)
	}

	gl.UseProgram(r.flat.id)
	gl.Uniform1f(r.flat.locOpacity, p.Opacity)
	gl.Uniform1f(r.flat.locOverlay, p.Overlay)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.pageTex[pass.Slot])
	gl.Uniform1i(r.flat.locTexture, 0)

	gl.BindVertexArray(r.streamVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.streamVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.stream)*4,
		unsafe.Pointer(&r.stream[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, int32(len(p.Verts)))
	gl.BindVertexArray(0)
}

// drawShadow draws a gradient strip as a triangle fan, with the per-vertex
// gradient coordinate sampled into the 2x1 ramp texture.
func (r *Renderer) drawShadow(s *curl.Shadow) {
	if r.grad.id == 0 {
		if !r.warnedGrad {
			r.log.Warn("gradient program unavailable, skipping shadow passes")
			r.warnedGrad = true
		}
		return
	}
	if len(s.Quad) < 3 {
		return
	}

	r.stream = r.stream[:0]
	for _, v := range s.Quad {
		r.stream = append(r.stream, v.X, v.Y, s.GradientAt(v))
	}

	gl.UseProgram(r.grad.id)
	gl.Uniform1f(r.grad.locAlpha, s.Alpha)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.gradTex[s.Kind])
	gl.Uniform1i(r.grad.locGradient, 0)

	gl.BindVertexArray(r.shadowVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.shadowVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.stream)*4,
		unsafe.Pointer(&r.stream[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLE_FAN, 0, int32(len(s.Quad)))
	gl.BindVertexArray(0)
}

// drawMesh draws the deformed page mesh. The wrap folds the surface over
// past the silhouette, flipping its projected winding, so face culling
// splits the two passes: the front pass keeps front-facing triangles, the
// back pass keeps the folded-over rest.
func (r *Renderer) drawMesh(pass curl.Pass, params curl.Params) {
	if r.curl.id == 0 || r.meshVAO == 0 {
		if !r.warnedCurl {
			r.log.Warn("curl program unavailable, skipping mesh passes")
			r.warnedCurl = true
		}
		return
	}
	c := pass.Cylinder

	gl.UseProgram(r.curl.id)
	gl.Uniform1f(r.curl.locFoldX, c.FoldX)
	gl.Uniform1f(r.curl.locFoldSlope, c.FoldSlope)
	gl.Uniform1f(r.curl.locRadius, c.Radius)
	gl.Uniform1f(r.curl.locDarken, c.Darken)

	if c.BackFace {
		gl.Uniform1f(r.curl.locBackFace, 1)
		gl.Uniform1f(r.curl.locOverlay, params.BackOverlay)
	} else {
		gl.Uniform1f(r.curl.locBackFace, 0)
		gl.Uniform1f(r.curl.locOverlay, 0)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.pageTex[pass.Slot])
	gl.Uniform1i(r.curl.locTexture, 0)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	if c.BackFace {
		gl.CullFace(gl.FRONT)
	} else {
		gl.CullFace(gl.BACK)
	}

	gl.BindVertexArray(r.meshVAO)
	gl.DrawElements(gl.TRIANGLES, r.meshIndexCount, gl.UNSIGNED_SHORT, nil)
	gl.BindVertexArray(0)

	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
}

// ReadPixels returns the current framebuffer contents as tightly packed
// RGBA, bottom row first as GL delivers them.
func (r *Renderer) ReadPixels(width, height int) []byte {
	pix := make([]byte, width*height*4)
	gl.ReadPixels(0, 0, int32(width), int32(height),
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
	return pix
}

// Destroy releases all GL resources.
func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.flat.id, r.curl.id, r.grad.id} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	r.flat.id, r.curl.id, r.grad.id = 0, 0, 0

	vaos := []uint32{r.quadVAO, r.streamVAO, r.shadowVAO, r.meshVAO}
	for _, vao := range vaos {
		if vao != 0 {
			gl.DeleteVertexArrays(1, &vao)
		}
	}
	r.quadVAO, r.streamVAO, r.shadowVAO, r.meshVAO = 0, 0, 0, 0

	vbos := []uint32{r.quadVBO, r.streamVBO, r.shadowVBO, r.meshVBO, r.meshEBO}
	for _, vbo := range vbos {
		if vbo != 0 {
			gl.DeleteBuffers(1, &vbo)
		}
	}
	r.quadVBO, r.streamVBO, r.shadowVBO, r.meshVBO, r.meshEBO = 0, 0, 0, 0, 0

	for i := range r.pageTex {
		if r.pageTex[i] != 0 {
			gl.DeleteTextures(1, &r.pageTex[i])
			r.pageTex[i] = 0
		}
	}
	for i := range r.gradTex {
		if r.gradTex[i] != 0 {
			gl.DeleteTextures(1, &r.gradTex[i])
			r.gradTex[i] = 0
		}
	}
}
