package commands

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/image/draw"

	"github.com/gogpu/vo"
	"github.com/gogpu/vo/output"
	"github.com/gogpu/vo/platform"
	"github.com/gogpu/vo/render"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run synthetic frames through an output session",
	Long: `Open a headless output session and draw synthetic NV12 frames with a
moving subtitle overlay, then print renderer and pool statistics.

The null backend measures the CPU side of the pipeline: plane uploads,
overlay conversion, parameter setup and command recording.`,
	Example: `  # 600 frames of 1080p on the null backend
  vo bench --frames 600 --width 1920 --height 1080 --backend null`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

var (
	benchFrames   int
	benchWidth    int
	benchHeight   int
	benchOverlay  bool
	benchHDRFrame bool
)

func init() {
	rootCmd.AddCommand(benchCmd)

	benchCmd.Flags().IntVarP(&benchFrames, "frames", "n", 300, "number of frames to draw")
	benchCmd.Flags().IntVar(&benchWidth, "width", 1280, "frame and window width")
	benchCmd.Flags().IntVar(&benchHeight, "height", 720, "frame and window height")
	benchCmd.Flags().BoolVar(&benchOverlay, "overlay", true, "draw a moving overlay")
	benchCmd.Flags().BoolVar(&benchHDRFrame, "hdr", false, "tag frames as PQ BT.2020 with HDR10 metadata")
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchFrames <= 0 || benchWidth <= 0 || benchHeight <= 0 {
		return fmt.Errorf("frames, width and height must be positive")
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Window = platform.Window{Kind: platform.Headless, Width: benchWidth, Height: benchHeight}

	s, err := output.Open(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	f := syntheticFrame(benchWidth, benchHeight, benchHDRFrame)
	sub := subtitle(benchWidth/3, benchHeight/12)

	results := map[render.Result]int{}
	start := time.Now()
	for i := range benchFrames {
		f.PTS = time.Duration(i) * time.Second / 60
		var overlays []vo.Overlay
		if benchOverlay {
			x := (i * 4) % max(1, benchWidth-sub.Bounds().Dx())
			y := benchHeight - 2*sub.Bounds().Dy()
			overlays = []vo.Overlay{{Image: sub, Dst: sub.Bounds().Add(image.Pt(x, y))}}
		}
		results[s.Draw(f, overlays)]++
	}
	elapsed := time.Since(start)

	st := s.Stats()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "session:   %s (%s)\n", s.ID(), s.Backend())
	fmt.Fprintf(out, "frames:    %d in %v (%.1f fps)\n", benchFrames, elapsed.Round(time.Millisecond), float64(benchFrames)/elapsed.Seconds())
	fmt.Fprintf(out, "results:   rendered=%d skipped=%d failed=%d\n", results[render.Rendered], results[render.Skipped], results[render.Failed])
	fmt.Fprintf(out, "pool:      allocations=%d reuses=%d uploads=%d failures=%d\n", st.Pool.Allocations, st.Pool.Reuses, st.Pool.Uploads, st.Pool.Failures)
	if err := s.LastFailure(); err != nil {
		fmt.Fprintf(out, "last failure: %v\n", err)
	}
	return nil
}

// syntheticFrame returns an NV12 frame with a luma ramp and neutral chroma.
func syntheticFrame(w, h int, hdr bool) *vo.Frame {
	f := vo.NewFrame(vo.PixelFormatNV12, w, h)
	y := f.Planes[0]
	for row := range y.Height {
		for col := range y.Width {
			y.Data[row*y.Stride+col] = byte(16 + col*219/max(1, w-1))
		}
	}
	uv := f.Planes[1]
	for i := range uv.Data {
		uv.Data[i] = 128
	}
	f.Color = vo.ColorInfo{Primaries: vo.PrimariesBT709, Transfer: vo.TransferBT1886, Matrix: vo.MatrixBT709, Range: vo.RangeLimited}
	if hdr {
		f.Color = vo.ColorInfo{
			Primaries: vo.PrimariesBT2020, Transfer: vo.TransferPQ, Matrix: vo.MatrixBT2020NC, Range: vo.RangeLimited,
			HDR: vo.HDRMetadata{MaxLuma: 1000, MaxCLL: 1000, MaxFALL: 400},
		}
	}
	return f
}

// subtitle scales a small boxed glyph-like pattern up to w x h.
func subtitle(w, h int) image.Image {
	src := image.NewRGBA(image.Rect(0, 0, 16, 4))
	box := color.RGBA{0, 0, 0, 160}
	ink := color.RGBA{255, 255, 255, 255}
	for y := range 4 {
		for x := range 16 {
			c := box
			if y > 0 && y < 3 && x%3 != 2 {
				c = ink
			}
			src.SetRGBA(x, y, c)
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, max(1, w), max(1, h)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
