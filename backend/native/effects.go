package native

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vo/asset"
	"github.com/gogpu/vo/pipeline"
)

// lutRowWidth is the row length 1D tables are wrapped at, so every
// table fits a 2D texture within the default limits.
const lutRowWidth = 4096

// lutFormat holds LUT entries as unfiltered floats. video.wgsl reads
// them with textureLoad and interpolates itself.
const lutFormat = gputypes.TextureFormatRGBA32Float

// scratchFormat is the format of the intermediate images hook passes
// read and write.
const scratchFormat = gputypes.TextureFormatRGBA16Float

// gpuImage is a texture the painter owns, with its single view.
type gpuImage struct {
	tex  hal.Texture
	view hal.TextureView
	w, h int
}

func (p *Painter) createImage(desc *hal.TextureDescriptor, dim gputypes.TextureViewDimension) (*gpuImage, error) {
	tex, err := p.device.CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("native: create %s: %w", desc.Label, err)
	}
	view, err := p.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           desc.Label,
		Format:          desc.Format,
		Dimension:       dim,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 1,
	})
	if err != nil {
		p.device.DestroyTexture(tex)
		return nil, fmt.Errorf("native: view %s: %w", desc.Label, err)
	}
	return &gpuImage{tex: tex, view: view, w: int(desc.Size.Width), h: int(desc.Size.Height)}, nil
}

// retire hands img to the frame being recorded; it is destroyed once
// that frame completes.
func (p *Painter) retire(img *gpuImage) {
	if img != nil {
		p.images = append(p.images, img)
	}
}

func (p *Painter) destroyImage(img *gpuImage) {
	if img == nil {
		return
	}
	p.device.DestroyTextureView(img.view)
	p.device.DestroyTexture(img.tex)
}

// createBlanks creates the 1x1 LUT stand-ins bound while no table is active.
func (p *Painter) createBlanks() error {
	var err error
	if p.blank3D, err = p.createImage(&hal.TextureDescriptor{
		Label:         "vo blank lut3d",
		Size:          hal.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension3D,
		Format:        lutFormat,
		Usage:         gputypes.TextureUsageTextureBinding,
	}, gputypes.TextureViewDimension3D); err != nil {
		return err
	}
	p.blank1D, err = p.createImage(&hal.TextureDescriptor{
		Label:         "vo blank lut1d",
		Size:          hal.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        lutFormat,
		Usage:         gputypes.TextureUsageTextureBinding,
	}, gputypes.TextureViewDimension2D)
	return err
}

// lutExtent returns the texture size holding l.
func lutExtent(l *asset.LUT) hal.Extent3D {
	if l.Kind == asset.LUT3D {
		n := uint32(l.Size)
		return hal.Extent3D{Width: n, Height: n, DepthOrArrayLayers: n}
	}
	w := min(l.Size, lutRowWidth)
	h := (l.Size + w - 1) / w
	return hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1}
}

// lutTexels encodes l as RGBA32F texels in texture order. The tail of
// the last row of a wrapped 1D table repeats the final entry.
func lutTexels(l *asset.LUT, ext hal.Extent3D) []byte {
	n := int(ext.Width * ext.Height * ext.DepthOrArrayLayers)
	buf := make([]byte, n*16)
	last := l.Entries() - 1
	for i := range n {
		e := min(i, last)
		off := i * 16
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(l.Data[3*e]))
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(l.Data[3*e+1]))
		binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(l.Data[3*e+2]))
		binary.LittleEndian.PutUint32(buf[off+12:], math.Float32bits(1))
	}
	return buf
}

// lutViews returns the views bound at the 3D and 1D LUT slots for l.
// The table is uploaded on first use and kept until a different table
// replaces it.
func (p *Painter) lutViews(l *asset.LUT) (lut3D, lut1D hal.TextureView, err error) {
	if l == nil || l.Entries() == 0 {
		return p.blank3D.view, p.blank1D.view, nil
	}
	if p.lutSrc != l {
		img, err := p.uploadLUT(l)
		if err != nil {
			return nil, nil, err
		}
		p.retire(p.lut)
		p.lut, p.lutSrc = img, l
	}
	if l.Kind == asset.LUT3D {
		return p.lut.view, p.blank1D.view, nil
	}
	return p.blank3D.view, p.lut.view, nil
}

func (p *Painter) uploadLUT(l *asset.LUT) (*gpuImage, error) {
	ext := lutExtent(l)
	dim, view := gputypes.TextureDimension2D, gputypes.TextureViewDimension2D
	if l.Kind == asset.LUT3D {
		dim, view = gputypes.TextureDimension3D, gputypes.TextureViewDimension3D
	}
	img, err := p.createImage(&hal.TextureDescriptor{
		Label:         "vo lut " + l.Kind.String(),
		Size:          ext,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     dim,
		Format:        lutFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}, view)
	if err != nil {
		return nil, err
	}
	err = p.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: img.tex, Aspect: gputypes.TextureAspectAll},
		lutTexels(l, ext),
		&hal.ImageDataLayout{BytesPerRow: ext.Width * 16, RowsPerImage: ext.Height},
		&ext,
	)
	if err != nil {
		p.destroyImage(img)
		return nil, fmt.Errorf("native: upload lut: %w", err)
	}
	return img, nil
}

// imageStages are the hook stages that see the converted RGB picture.
// Plane stages (LUMA, CHROMA, ALPHA, NATIVE, RGB) have no equivalent in
// a single conversion pass.
var imageStages = []string{"MAIN", "LINEAR", "SIGMOID", "PREKERNEL", "POSTKERNEL", "SCALED", "OUTPUT"}

// hookPasses returns the passes of the active custom shader the painter
// runs, in file order. Passes that save to a named texture, resize the
// image or carry a condition are skipped, since nothing evaluates their
// expressions.
func hookPasses(params *pipeline.Params) []*asset.Pass {
	if params == nil || params.Shader == nil {
		return nil
	}
	var out []*asset.Pass
	for i := range params.Shader.Passes {
		ps := &params.Shader.Passes[i]
		if len(ps.SPIRV) == 0 || (ps.Save != "" && ps.Save != "HOOKED") || ps.Width != "" || ps.Height != "" || ps.When != "" {
			continue
		}
		if slices.ContainsFunc(ps.Hooks, func(h string) bool { return slices.Contains(imageStages, h) }) {
			out = append(out, ps)
		}
	}
	return out
}

// spirvWords converts SPIR-V bytes to little-endian 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words
}

// hookModule returns the fragment module of ps, compiling it on first use.
func (p *Painter) hookModule(ps *asset.Pass) (hal.ShaderModule, error) {
	if m, ok := p.hookModules[ps]; ok {
		return m, nil
	}
	m, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "vo hook " + ps.Desc,
		Source: hal.ShaderSource{SPIRV: spirvWords(ps.SPIRV)},
	})
	if err != nil {
		return nil, fmt.Errorf("native: hook module %q: %w", ps.Desc, err)
	}
	p.hookModules[ps] = m
	return m, nil
}

// scratchImages returns two intermediate images of w x h, replacing the
// previous pair when the size changed.
func (p *Painter) scratchImages(w, h int) ([2]*gpuImage, error) {
	if s := p.scratch; s[0] != nil && s[0].w == w && s[0].h == h {
		return s, nil
	}
	var next [2]*gpuImage
	for i := range next {
		img, err := p.createImage(&hal.TextureDescriptor{
			Label:         fmt.Sprintf("vo scratch %d", i),
			Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        scratchFormat,
			Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageRenderAttachment,
		}, gputypes.TextureViewDimension2D)
		if err != nil {
			p.destroyImage(next[0])
			return next, err
		}
		next[i] = img
	}
	p.retire(p.scratch[0])
	p.retire(p.scratch[1])
	p.scratch = next
	return next, nil
}

func (p *Painter) hookGroup(src *gpuImage) (hal.BindGroup, error) {
	g, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "vo hook",
		Layout: p.hookBGL,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: src.view.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("native: hook bind group: %w", err)
	}
	p.groups = append(p.groups, g)
	return g, nil
}
