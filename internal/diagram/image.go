package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var barColor = color.RGBA{R: 100, G: 149, B: 237, A: 255}

// ExportReactionChart draws solved reactions as a bar chart
func ExportReactionChart(bars []Bar, filename string) (string, error) {
	if len(bars) == 0 {
		return "", fmt.Errorf("no reactions to plot")
	}

	p := plot.New()
	p.Title.Text = "Support Reactions"
	p.Y.Label.Text = "Reaction"
	p.Add(plotter.NewGrid())

	values := make(plotter.Values, len(bars))
	names := make([]string, len(bars))
	for i, b := range bars {
		values[i] = b.Value
		names[i] = b.Label
	}

	chart, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return "", err
	}
	chart.Color = barColor
	chart.LineStyle.Width = vg.Length(0)
	p.Add(chart)
	p.NominalX(names...)

	width := vg.Length(math.Max(6, float64(len(bars))*0.6)) * vg.Inch
	return save(p, width, 5*vg.Inch, filename)
}

func save(p *plot.Plot, width, height vg.Length, filename string) (string, error) {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}
	return filename, p.Save(width, height, filename)
}
