package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	xdraw "golang.org/x/image/draw"
)

var (
	progressColor = drawing.ColorFromHex("c0392b")
	targetColor   = drawing.ColorFromHex("7f8c8d")
)

// PNGOptions size the exported image.
type PNGOptions struct {
	Width      int
	Height     int
	MarkerSize int
}

func (o PNGOptions) withDefaults() PNGOptions {
	if o.Width <= 0 {
		o.Width = 960
	}
	if o.Height <= 0 {
		o.Height = 540
	}
	if o.MarkerSize <= 0 {
		o.MarkerSize = 48
	}
	return o
}

// Layout reports where the markers landed in a rendered image.
type Layout struct {
	Canvas         image.Rectangle
	ProgressMarker image.Point
	TargetMarker   image.Point
}

// RenderPNG writes the chart as a PNG.
func RenderPNG(w io.Writer, p Plot, opts PNGOptions) error {
	img, _, err := RenderImage(p, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding chart png: %w", err)
	}
	return nil
}

// RenderImage draws the chart with go-chart and composites the markers
// on top of it.
func RenderImage(p Plot, opts PNGOptions) (image.Image, Layout, error) {
	opts = opts.withDefaults()
	lo, hi := p.YRange()

	xMax := float64(max(p.Weeks, 2))
	ticks := make([]gochart.Tick, 0, p.Weeks)
	for w := p.Weeks; w >= 1; w-- {
		ticks = append(ticks, gochart.Tick{Value: float64(p.Weeks + 1 - w), Label: fmt.Sprint(w)})
	}

	var canvas gochart.Box
	ch := gochart.Chart{
		Title:      p.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 24, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  p.XLabel,
			Ticks: ticks,
			Range: &gochart.ContinuousRange{Min: 1, Max: xMax},
		},
		YAxis: gochart.YAxis{
			Name:  p.YLabel,
			Range: &gochart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: []gochart.Series{
			continuous(TargetName, p.targetXY(), gochart.Style{
				StrokeColor:     targetColor,
				StrokeWidth:     2,
				StrokeDashArray: []float64{6, 4},
			}),
			continuous(ProgressName, p.progressXY(), gochart.Style{
				StrokeColor: progressColor,
				StrokeWidth: 3,
				DotColor:    progressColor,
				DotWidth:    3,
			}),
		},
	}
	ch.Elements = []gochart.Renderable{
		gochart.Legend(&ch),
		func(_ gochart.Renderer, cb gochart.Box, _ gochart.Style) { canvas = cb },
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, Layout{}, fmt.Errorf("rendering chart: %w", err)
	}
	base, err := png.Decode(&buf)
	if err != nil {
		return nil, Layout{}, fmt.Errorf("decoding rendered chart: %w", err)
	}

	out := image.NewRGBA(base.Bounds())
	xdraw.Draw(out, out.Bounds(), base, base.Bounds().Min, xdraw.Src)

	layout := Layout{Canvas: image.Rect(canvas.Left, canvas.Top, canvas.Right, canvas.Bottom)}
	pixel := func(m Marker) image.Point {
		fx := (p.position(m.Week) - 1) / (xMax - 1)
		fy := (m.Value - lo) / (hi - lo)
		return image.Pt(
			canvas.Left+int(fx*float64(canvas.Width())+0.5),
			canvas.Bottom-int(fy*float64(canvas.Height())+0.5),
		)
	}
	if p.TargetMarker.Week > 0 {
		layout.TargetMarker = pixel(p.TargetMarker)
		drawMarker(out, layout.TargetMarker, p.TargetMarker.Image, targetColor, opts.MarkerSize)
	}
	if p.ProgressMarker.Week > 0 {
		layout.ProgressMarker = pixel(p.ProgressMarker)
		drawMarker(out, layout.ProgressMarker, p.ProgressMarker.Image, progressColor, opts.MarkerSize)
	}
	return out, layout, nil
}

// continuous builds a series, padding a single point into a flat
// segment so go-chart has a non-empty x extent.
func continuous(name string, pts []xy, style gochart.Style) gochart.ContinuousSeries {
	if len(pts) == 1 {
		pts = append(pts, xy{pts[0].x + 1, pts[0].y})
	}
	s := gochart.ContinuousSeries{Name: name, Style: style}
	for _, pt := range pts {
		s.XValues = append(s.XValues, pt.x)
		s.YValues = append(s.YValues, pt.y)
	}
	return s
}

// drawMarker centers a circular picture of the given size at c, or a
// filled dot of fallback color when there is no picture.
func drawMarker(dst *image.RGBA, c image.Point, pic image.Image, fallback color.Color, size int) {
	if pic == nil {
		size /= 3
	}
	r := image.Rect(c.X-size/2, c.Y-size/2, c.X-size/2+size, c.Y-size/2+size)
	mask := circle{size: size}
	if pic == nil {
		xdraw.DrawMask(dst, r, image.NewUniform(fallback), image.Point{}, mask, image.Point{}, xdraw.Over)
		return
	}
	scaled := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), pic, pic.Bounds(), xdraw.Src, nil)
	xdraw.DrawMask(dst, r, scaled, image.Point{}, mask, image.Point{}, xdraw.Over)
}

// circle is an alpha mask of a disc inscribed in a size x size square.
type circle struct{ size int }

func (c circle) ColorModel() color.Model { return color.AlphaModel }

func (c circle) Bounds() image.Rectangle { return image.Rect(0, 0, c.size, c.size) }

func (c circle) At(x, y int) color.Color {
	r := float64(c.size) / 2
	dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
	if dx*dx+dy*dy <= r*r {
		return color.Alpha{A: 255}
	}
	return color.Alpha{}
}
