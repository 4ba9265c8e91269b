package report

import (
	"image/color"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/theirongolddev/llmsim/internal/model"
)

// Palette colours the chart marks.
type Palette struct {
	Hist   color.Color
	Cost   color.Color
	Errors color.Color
}

// DefaultPalette matches the default dashboard accent colours.
var DefaultPalette = Palette{
	Hist:   color.RGBA{R: 0x3A, G: 0xA9, B: 0x9F, A: 0xFF},
	Cost:   color.RGBA{R: 0x43, G: 0x85, B: 0xBE, A: 0xFF},
	Errors: color.RGBA{R: 0xD1, G: 0x4D, B: 0x41, A: 0xFF},
}

// HexColor parses a "#RRGGBB" colour, returning fallback for anything else
// (ANSI palette indexes included).
func HexColor(hex string, fallback color.Color) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}

// ChartSize is the rendered image size in inches.
type ChartSize struct {
	WidthIn  float64
	HeightIn float64
}

// LatencyHistogram plots the distribution of latencies. An empty input yields
// the titled axes only.
func LatencyHistogram(values []float64, bins int, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Latency distribution (ms)"
	p.X.Label.Text = "ms"
	p.Y.Label.Text = "count"
	p.Add(plotter.NewGrid())

	if len(values) == 0 {
		return p, nil
	}
	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, err
	}
	h.FillColor = c
	h.LineStyle.Width = vg.Points(0.5)
	p.Add(h)
	return p, nil
}

// BarByModel plots one bar per model in the given order.
func BarByModel(title, ylabel string, values []model.ModelValue, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	p.Y.Min = 0

	if len(values) == 0 {
		return p, nil
	}

	vals := make(plotter.Values, len(values))
	names := make([]string, len(values))
	for i, v := range values {
		vals[i] = v.Value
		names[i] = v.Model
	}

	bars, err := plotter.NewBarChart(vals, barWidth(len(values)))
	if err != nil {
		return nil, err
	}
	bars.Color = c
	bars.LineStyle.Width = 0
	p.Add(bars)

	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	return p, nil
}

func barWidth(n int) vg.Length {
	w := vg.Points(360 / float64(n))
	if w > vg.Points(40) {
		w = vg.Points(40)
	}
	return w
}

// WritePNG renders p at the given size as PNG.
func WritePNG(w io.Writer, p *plot.Plot, size ChartSize) error {
	c := vgimg.New(vg.Length(size.WidthIn)*vg.Inch, vg.Length(size.HeightIn)*vg.Inch)
	p.Draw(draw.New(c))
	_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
	return err
}
