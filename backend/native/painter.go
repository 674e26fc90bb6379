package native

import (
	_ "embed"
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/asset"
	"github.com/gogpu/vo/pipeline"
	"github.com/gogpu/vo/render"
)

//go:embed shaders/video.wgsl
var videoShaderSource string

//go:embed shaders/overlay.wgsl
var overlayShaderSource string

//go:embed shaders/hook.wgsl
var hookShaderSource string

// pipelineKey identifies a cached render pipeline. Pipelines differ only
// by target format and by which shader they run.
type pipelineKey struct {
	format  gputypes.TextureFormat
	overlay bool
	hook    *asset.Pass
}

// retired holds the resources of one submission until the GPU is done
// with them.
type retired struct {
	index    uint64
	cmd      hal.CommandBuffer
	enc      hal.CommandEncoder
	groups   []hal.BindGroup
	uniforms []hal.Buffer
	images   []*gpuImage
}

// Painter records video and overlay draws into swapchain images.
//
// Work is recorded into one command encoder per frame and submitted by
// Flush. Per-draw bind groups, uniform buffers and replaced LUT or
// scratch images are kept until the queue reports the submission
// complete, then released or recycled.
type Painter struct {
	device hal.Device
	queue  hal.Queue

	videoModule   hal.ShaderModule
	overlayModule hal.ShaderModule
	hookVertex    hal.ShaderModule
	videoBGL      hal.BindGroupLayout
	overlayBGL    hal.BindGroupLayout
	hookBGL       hal.BindGroupLayout
	videoLayout   hal.PipelineLayout
	overlayLayout hal.PipelineLayout
	hookLayout    hal.PipelineLayout
	linear        hal.Sampler
	nearest       hal.Sampler

	pipelines   map[pipelineKey]hal.RenderPipeline
	hookModules map[*asset.Pass]hal.ShaderModule

	// blank3D and blank1D fill the LUT slots while no table is active.
	blank3D *gpuImage
	blank1D *gpuImage
	lut     *gpuImage
	lutSrc  *asset.LUT
	scratch [2]*gpuImage

	enc      hal.CommandEncoder
	groups   []hal.BindGroup
	uniforms []hal.Buffer
	images   []*gpuImage
	free     []hal.Buffer
	inflight []retired

	frame uint32
}

// NewPainter compiles the shaders and creates the layouts and samplers
// shared by all frames. Pipelines are created per target format on
// first use.
func NewPainter(device hal.Device, queue hal.Queue) (*Painter, error) {
	p := &Painter{
		device:      device,
		queue:       queue,
		pipelines:   make(map[pipelineKey]hal.RenderPipeline),
		hookModules: make(map[*asset.Pass]hal.ShaderModule),
	}
	if err := p.init(); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

func (p *Painter) init() error {
	var err error
	if p.videoModule, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "vo video",
		Source: hal.ShaderSource{WGSL: videoShaderSource},
	}); err != nil {
		return fmt.Errorf("native: video shader: %w", err)
	}
	if p.overlayModule, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "vo overlay",
		Source: hal.ShaderSource{WGSL: overlayShaderSource},
	}); err != nil {
		return fmt.Errorf("native: overlay shader: %w", err)
	}
	if p.hookVertex, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "vo hook",
		Source: hal.ShaderSource{WGSL: hookShaderSource},
	}); err != nil {
		return fmt.Errorf("native: hook shader: %w", err)
	}

	frag := gputypes.ShaderStageFragment
	entries := []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex | frag,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{Binding: 1, Visibility: frag, Sampler: &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}},
	}
	for i := range vo.MaxPlanes {
		entries = append(entries, textureEntry(uint32(2+i)))
	}
	entries = append(entries,
		lutEntry(lutBinding3D, gputypes.TextureViewDimension3D),
		lutEntry(lutBinding1D, gputypes.TextureViewDimension2D),
	)
	if p.videoBGL, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{Label: "vo video", Entries: entries}); err != nil {
		return fmt.Errorf("native: video bind group layout: %w", err)
	}
	if p.overlayBGL, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "vo overlay",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: frag, Sampler: &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}},
			textureEntry(1),
		},
	}); err != nil {
		return fmt.Errorf("native: overlay bind group layout: %w", err)
	}
	if p.hookBGL, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "vo hook",
		Entries: []gputypes.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		}},
	}); err != nil {
		return fmt.Errorf("native: hook bind group layout: %w", err)
	}

	if p.videoLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "vo video",
		BindGroupLayouts: []hal.BindGroupLayout{p.videoBGL},
	}); err != nil {
		return fmt.Errorf("native: video pipeline layout: %w", err)
	}
	if p.overlayLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "vo overlay",
		BindGroupLayouts: []hal.BindGroupLayout{p.overlayBGL},
	}); err != nil {
		return fmt.Errorf("native: overlay pipeline layout: %w", err)
	}
	if p.hookLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "vo hook",
		BindGroupLayouts: []hal.BindGroupLayout{p.hookBGL},
	}); err != nil {
		return fmt.Errorf("native: hook pipeline layout: %w", err)
	}

	if p.linear, err = p.createSampler("vo linear", gputypes.FilterModeLinear); err != nil {
		return err
	}
	if p.nearest, err = p.createSampler("vo nearest", gputypes.FilterModeNearest); err != nil {
		return err
	}
	return p.createBlanks()
}

func textureEntry(binding uint32) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageFragment,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		},
	}
}

// LUT slots of the video bind group.
const (
	lutBinding3D = 2 + vo.MaxPlanes
	lutBinding1D = lutBinding3D + 1
)

func lutEntry(binding uint32, dim gputypes.TextureViewDimension) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: gputypes.ShaderStageFragment,
		Texture: &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeUnfilterableFloat,
			ViewDimension: dim,
		},
	}
}

func (p *Painter) createSampler(label string, filter gputypes.FilterMode) (hal.Sampler, error) {
	s, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label,
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
	})
	if err != nil {
		return nil, fmt.Errorf("native: sampler %s: %w", label, err)
	}
	return s, nil
}

// pipeline returns the cached pipeline for key, creating it on a miss.
func (p *Painter) pipeline(key pipelineKey) (hal.RenderPipeline, error) {
	if rp, ok := p.pipelines[key]; ok {
		return rp, nil
	}

	label, layout := "vo video", p.videoLayout
	vertex, fragment, entry := p.videoModule, p.videoModule, "fs_main"
	topology := gputypes.PrimitiveTopologyTriangleList
	switch {
	case key.hook != nil:
		m, err := p.hookModule(key.hook)
		if err != nil {
			return nil, err
		}
		label, layout = "vo hook", p.hookLayout
		vertex, fragment, entry = p.hookVertex, m, asset.HookEntryPoint
		topology = gputypes.PrimitiveTopologyPointList
	case key.overlay:
		label, layout = "vo overlay", p.overlayLayout
		vertex, fragment = p.overlayModule, p.overlayModule
	}
	blend := gputypes.BlendStatePremultiplied()
	rp, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: layout,
		Vertex: hal.VertexState{Module: vertex, EntryPoint: "vs_main"},
		Primitive: gputypes.PrimitiveState{
			Topology: topology,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
		Fragment: &hal.FragmentState{
			Module:     fragment,
			EntryPoint: entry,
			Targets: []gputypes.ColorTargetState{{
				Format:    key.format,
				Blend:     &blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("native: %s pipeline for %v: %w", label, key.format, err)
	}
	p.pipelines[key] = rp
	return rp, nil
}

func targetView(t *render.Target) (hal.TextureView, error) {
	f, ok := t.Frame.(*Frame)
	if !ok || f == nil {
		return nil, fmt.Errorf("%w: target frame %T", ErrForeignTexture, t.Frame)
	}
	return f.View(), nil
}

func (p *Painter) encoder() (hal.CommandEncoder, error) {
	if p.enc != nil {
		return p.enc, nil
	}
	enc, err := p.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "vo frame"})
	if err != nil {
		return nil, fmt.Errorf("native: create encoder: %w", err)
	}
	if err := enc.BeginEncoding("vo frame"); err != nil {
		enc.Destroy()
		return nil, fmt.Errorf("native: begin encoding: %w", err)
	}
	p.enc = enc
	return enc, nil
}

// Clear fills the whole target image with c.
func (p *Painter) Clear(t *render.Target, c gputypes.Color) error {
	view, err := targetView(t)
	if err != nil {
		return err
	}
	enc, err := p.encoder()
	if err != nil {
		return err
	}
	pass := enc.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "vo clear",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: c,
		}},
	})
	pass.End()
	return nil
}

// drawCall is one draw within a render pass.
type drawCall struct {
	pipe     hal.RenderPipeline
	group    hal.BindGroup
	rect     image.Rectangle
	bounds   image.Rectangle
	vertices uint32
}

// drawStep is one render pass of a frame.
type drawStep struct {
	label string
	view  hal.TextureView
	clear bool
	draws []drawCall
}

func encodeStep(enc hal.CommandEncoder, s drawStep) {
	load := gputypes.LoadOpLoad
	if s.clear {
		load = gputypes.LoadOpClear
	}
	pass := enc.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: s.label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    s.view,
			LoadOp:  load,
			StoreOp: gputypes.StoreOpStore,
		}},
	})
	for _, d := range s.draws {
		setViewport(pass, d.rect, d.bounds)
		pass.SetPipeline(d.pipe)
		pass.SetBindGroup(0, d.group, nil)
		pass.Draw(d.vertices, 1, 0, 0)
	}
	pass.End()
}

// Render draws src into t.Dst followed by the target overlays. With
// custom hook passes active the picture is drawn into scratch images
// first and the last pass writes the target.
func (p *Painter) Render(src *render.Source, t *render.Target, params *pipeline.Params) error {
	if len(src.Planes) == 0 {
		return errors.New("native: source has no planes")
	}
	view, err := targetView(t)
	if err != nil {
		return err
	}
	format := t.Frame.Format()

	group, err := p.videoGroup(src, t, params)
	if err != nil {
		return err
	}

	var steps []drawStep
	final := drawStep{label: "vo video", view: view}
	if dst := t.Dst.Intersect(t.Bounds()); !dst.Empty() {
		if hooks := hookPasses(params); len(hooks) > 0 {
			chain, last, err := p.hookChain(group, t, hooks)
			if err != nil {
				return err
			}
			steps = chain
			final.draws = append(final.draws, last)
		} else {
			videoPipe, err := p.pipeline(pipelineKey{format: format})
			if err != nil {
				return err
			}
			final.draws = append(final.draws, drawCall{videoPipe, group, t.Dst, t.Bounds(), 3})
		}
	}

	var overlayPipe hal.RenderPipeline
	for i, ov := range t.Overlays {
		r := ov.Rect.Intersect(t.Bounds())
		if r.Empty() {
			continue
		}
		if overlayPipe == nil {
			if overlayPipe, err = p.pipeline(pipelineKey{format: format, overlay: true}); err != nil {
				return err
			}
		}
		g, err := p.overlayGroup(ov)
		if err != nil {
			return fmt.Errorf("native: overlay %d: %w", i, err)
		}
		final.draws = append(final.draws, drawCall{overlayPipe, g, r, r, 3})
	}

	enc, err := p.encoder()
	if err != nil {
		return err
	}
	for _, s := range append(steps, final) {
		encodeStep(enc, s)
	}
	return nil
}

// hookChain draws the video into a scratch image and runs all hook
// passes but the last between the two scratch images. The returned draw
// runs the last pass into the target.
func (p *Painter) hookChain(video hal.BindGroup, t *render.Target, hooks []*asset.Pass) ([]drawStep, drawCall, error) {
	w, h := t.Dst.Dx(), t.Dst.Dy()
	imgs, err := p.scratchImages(w, h)
	if err != nil {
		return nil, drawCall{}, err
	}
	full := image.Rect(0, 0, w, h)
	videoPipe, err := p.pipeline(pipelineKey{format: scratchFormat})
	if err != nil {
		return nil, drawCall{}, err
	}
	steps := []drawStep{{
		label: "vo video",
		view:  imgs[0].view,
		clear: true,
		draws: []drawCall{{videoPipe, video, full, full, 3}},
	}}

	points := uint32(w * h)
	cur := 0
	for i, ps := range hooks {
		g, err := p.hookGroup(imgs[cur])
		if err != nil {
			return nil, drawCall{}, err
		}
		if i == len(hooks)-1 {
			pipe, err := p.pipeline(pipelineKey{format: t.Frame.Format(), hook: ps})
			if err != nil {
				return nil, drawCall{}, err
			}
			return steps, drawCall{pipe, g, t.Dst, t.Bounds(), points}, nil
		}
		pipe, err := p.pipeline(pipelineKey{format: scratchFormat, hook: ps})
		if err != nil {
			return nil, drawCall{}, err
		}
		steps = append(steps, drawStep{
			label: "vo hook",
			view:  imgs[1-cur].view,
			clear: true,
			draws: []drawCall{{pipe, g, full, full, points}},
		})
		cur = 1 - cur
	}
	return nil, drawCall{}, errors.New("native: no hook passes")
}

// setViewport maps the draw to r and scissors it to the visible part.
func setViewport(pass hal.RenderPassEncoder, r, bounds image.Rectangle) {
	pass.SetViewport(float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 0, 1)
	s := r.Intersect(bounds)
	pass.SetScissorRect(uint32(s.Min.X), uint32(s.Min.Y), uint32(s.Dx()), uint32(s.Dy()))
}

func (p *Painter) uniformBuffer() (hal.Buffer, error) {
	if n := len(p.free); n > 0 {
		buf := p.free[n-1]
		p.free = p.free[:n-1]
		return buf, nil
	}
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "vo video params",
		Size:  videoUniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("native: uniform buffer: %w", err)
	}
	return buf, nil
}

// sampler picks the filter for the scale factor of the draw.
func (p *Painter) sampler(src *render.Source, t *render.Target, params *pipeline.Params) hal.Sampler {
	if params == nil {
		return p.linear
	}
	w, _ := src.OrientedSize()
	s := params.Downscaler
	if float64(t.Dst.Dx()) > w {
		s = params.Upscaler
	}
	if s != nil && s.Kernel == pipeline.KernelBox {
		return p.nearest
	}
	return p.linear
}

func (p *Painter) videoGroup(src *render.Source, t *render.Target, params *pipeline.Params) (hal.BindGroup, error) {
	views := make([]hal.TextureView, vo.MaxPlanes)
	for i := range views {
		pl := src.Planes[0]
		if i < len(src.Planes) {
			pl = src.Planes[i]
		}
		tex, ok := pl.Texture.(*Texture)
		if !ok {
			return nil, fmt.Errorf("%w: plane %d is %T", ErrForeignTexture, i, pl.Texture)
		}
		v, err := tex.View()
		if err != nil {
			return nil, err
		}
		views[i] = v
	}
	lut := src.LUT
	if lut == nil {
		lut = t.LUT
	}
	lut3D, lut1D, err := p.lutViews(lut)
	if err != nil {
		return nil, err
	}

	buf, err := p.uniformBuffer()
	if err != nil {
		return nil, err
	}
	u := buildVideoUniforms(src, t, params, p.frame)
	if err := p.queue.WriteBuffer(buf, 0, u.bytes()); err != nil {
		p.free = append(p.free, buf)
		return nil, fmt.Errorf("native: write params: %w", err)
	}
	p.uniforms = append(p.uniforms, buf)

	entries := []gputypes.BindGroupEntry{
		{Binding: 0, Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Offset: 0, Size: videoUniformSize}},
		{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: p.sampler(src, t, params).NativeHandle()}},
	}
	for i, v := range views {
		entries = append(entries, gputypes.BindGroupEntry{
			Binding:  uint32(2 + i),
			Resource: gputypes.TextureViewBinding{TextureView: v.NativeHandle()},
		})
	}
	entries = append(entries,
		gputypes.BindGroupEntry{Binding: lutBinding3D, Resource: gputypes.TextureViewBinding{TextureView: lut3D.NativeHandle()}},
		gputypes.BindGroupEntry{Binding: lutBinding1D, Resource: gputypes.TextureViewBinding{TextureView: lut1D.NativeHandle()}},
	)
	g, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{Label: "vo video", Layout: p.videoBGL, Entries: entries})
	if err != nil {
		return nil, fmt.Errorf("native: video bind group: %w", err)
	}
	p.groups = append(p.groups, g)
	return g, nil
}

func (p *Painter) overlayGroup(ov render.TargetOverlay) (hal.BindGroup, error) {
	tex, ok := ov.Texture.(*Texture)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignTexture, ov.Texture)
	}
	v, err := tex.View()
	if err != nil {
		return nil, err
	}
	g, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "vo overlay",
		Layout: p.overlayBGL,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.SamplerBinding{Sampler: p.linear.NativeHandle()}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: v.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("native: overlay bind group: %w", err)
	}
	p.groups = append(p.groups, g)
	return g, nil
}

// Flush submits the recorded frame and releases resources of earlier
// submissions the GPU has finished with. Flushing with nothing recorded
// only does the latter.
func (p *Painter) Flush() error {
	defer p.reclaim()
	if p.enc == nil {
		return nil
	}
	enc := p.enc
	p.enc = nil
	p.frame++

	r := retired{enc: enc, groups: p.groups, uniforms: p.uniforms, images: p.images}
	p.groups, p.uniforms, p.images = nil, nil, nil

	cmd, err := enc.EndEncoding()
	if err != nil {
		p.dropFrame(r)
		return fmt.Errorf("native: end encoding: %w", err)
	}
	r.cmd = cmd
	idx, err := p.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		p.dropFrame(r)
		return fmt.Errorf("native: submit: %w", err)
	}
	r.index = idx
	p.inflight = append(p.inflight, r)
	return nil
}

// reclaim releases every submission the queue reports complete.
func (p *Painter) reclaim() {
	done := p.queue.PollCompleted()
	n := 0
	for _, r := range p.inflight {
		if r.index <= done {
			p.release(r)
			continue
		}
		p.inflight[n] = r
		n++
	}
	clear(p.inflight[n:])
	p.inflight = p.inflight[:n]
}

// dropFrame releases a frame that never reached the GPU. Its retired
// images may still be read by earlier submissions, so they move on to
// the next frame.
func (p *Painter) dropFrame(r retired) {
	p.images = append(p.images, r.images...)
	r.images = nil
	p.release(r)
}

func (p *Painter) release(r retired) {
	for _, g := range r.groups {
		p.device.DestroyBindGroup(g)
	}
	p.free = append(p.free, r.uniforms...)
	for _, img := range r.images {
		p.destroyImage(img)
	}
	if r.cmd != nil {
		p.device.FreeCommandBuffer(r.cmd)
	}
	if r.enc != nil {
		r.enc.Destroy()
	}
}

// destroy waits for the device and releases everything. The instance
// calls it during teardown.
func (p *Painter) destroy() {
	if p.enc != nil {
		p.enc.DiscardEncoding()
		p.release(retired{enc: p.enc, groups: p.groups, uniforms: p.uniforms})
		p.enc, p.groups, p.uniforms = nil, nil, nil
	}
	if len(p.inflight) > 0 {
		if err := p.device.WaitIdle(); err != nil {
			vo.Logger().Warn("native: wait idle", "err", err)
		}
		for _, r := range p.inflight {
			p.release(r)
		}
		p.inflight = nil
	}
	for _, img := range p.images {
		p.destroyImage(img)
	}
	p.images = nil
	for _, buf := range p.free {
		p.device.DestroyBuffer(buf)
	}
	p.free = nil
	for k, rp := range p.pipelines {
		p.device.DestroyRenderPipeline(rp)
		delete(p.pipelines, k)
	}
	for k, m := range p.hookModules {
		p.device.DestroyShaderModule(m)
		delete(p.hookModules, k)
	}
	for _, img := range []*gpuImage{p.lut, p.blank3D, p.blank1D, p.scratch[0], p.scratch[1]} {
		p.destroyImage(img)
	}
	p.lut, p.lutSrc, p.blank3D, p.blank1D = nil, nil, nil, nil
	p.scratch = [2]*gpuImage{}
	if p.linear != nil {
		p.device.DestroySampler(p.linear)
		p.linear = nil
	}
	if p.nearest != nil {
		p.device.DestroySampler(p.nearest)
		p.nearest = nil
	}
	if p.videoLayout != nil {
		p.device.DestroyPipelineLayout(p.videoLayout)
		p.videoLayout = nil
	}
	if p.overlayLayout != nil {
		p.device.DestroyPipelineLayout(p.overlayLayout)
		p.overlayLayout = nil
	}
	if p.hookLayout != nil {
		p.device.DestroyPipelineLayout(p.hookLayout)
		p.hookLayout = nil
	}
	if p.videoBGL != nil {
		p.device.DestroyBindGroupLayout(p.videoBGL)
		p.videoBGL = nil
	}
	if p.overlayBGL != nil {
		p.device.DestroyBindGroupLayout(p.overlayBGL)
		p.overlayBGL = nil
	}
	if p.hookBGL != nil {
		p.device.DestroyBindGroupLayout(p.hookBGL)
		p.hookBGL = nil
	}
	if p.videoModule != nil {
		p.device.DestroyShaderModule(p.videoModule)
		p.videoModule = nil
	}
	if p.overlayModule != nil {
		p.device.DestroyShaderModule(p.overlayModule)
		p.overlayModule = nil
	}
	if p.hookVertex != nil {
		p.device.DestroyShaderModule(p.hookVertex)
		p.hookVertex = nil
	}
}

var _ render.Painter = (*Painter)(nil)
