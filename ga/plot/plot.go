// Package plot draws fitness curves recorded during training.
package plot

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/baldhumanity/ga-go/ga"
)

// Size of saved images.
var (
	Width  = 8 * vg.Inch
	Height = 5 * vg.Inch
)

// RunPlot builds a plot of one run: max and mean training fitness per
// generation, and the sampled test fitness.
func RunPlot(run ga.RunResult) (*plot.Plot, error) {
	if run.Curves == nil {
		return nil, fmt.Errorf("run %d has no curves", run.Run)
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Run %d", run.Run)
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"
	p.Y.Min, p.Y.Max = 0, 1

	c := run.Curves
	maxLine, err := plotter.NewLine(generationXYs(c.MaxFitness))
	if err != nil {
		return nil, err
	}
	maxLine.Color = plotutil.Color(0)
	meanLine, err := plotter.NewLine(generationXYs(c.MeanFitness))
	if err != nil {
		return nil, err
	}
	meanLine.Color = plotutil.Color(1)
	p.Add(maxLine, meanLine)
	p.Legend.Add("max", maxLine)
	p.Legend.Add("mean", meanLine)

	if len(c.TestFitness) > 0 {
		pts := make(plotter.XYs, len(c.TestFitness))
		for i := range c.TestFitness {
			pts[i].X = float64(c.TestGenerations[i])
			pts[i].Y = c.TestFitness[i]
		}
		testLine, testPoints, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		testLine.Color = plotutil.Color(2)
		testPoints.Color = plotutil.Color(2)
		p.Add(testLine, testPoints)
		p.Legend.Add("test", testLine, testPoints)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Add(plotter.NewGrid())
	return p, nil
}

// BestCurves builds one plot overlaying every run's max training fitness.
func BestCurves(result *ga.MultiRunResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Best fitness per run"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Fitness"
	p.Y.Min, p.Y.Max = 0, 1

	for _, run := range result.Runs {
		if run.Curves == nil {
			continue
		}
		line, err := plotter.NewLine(generationXYs(run.Curves.MaxFitness))
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(run.Run)
		if run.Run == result.BestRun {
			line.Width = vg.Points(2)
		}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("run %d", run.Run), line)
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// SaveRun writes RunPlot(run) to path; the extension picks the format.
func SaveRun(run ga.RunResult, path string) error {
	p, err := RunPlot(run)
	if err != nil {
		return err
	}
	return p.Save(Width, Height, path)
}

// SaveBestCurves writes BestCurves(result) to path.
func SaveBestCurves(result *ga.MultiRunResult, path string) error {
	p, err := BestCurves(result)
	if err != nil {
		return err
	}
	return p.Save(Width, Height, path)
}

func generationXYs(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return pts
}
