// profile-plot renders a trapezoidal motion profile as a PNG and an
// interactive HTML chart, for tuning acceleration and speed limits
// before loading them onto a platform.
//
// Usage:
//
//	profile-plot -accel 2 -limit 4 -start 0 -target 100 -out plots/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/driveline/internal/motion/profile"
)

type trace struct {
	times []float64
	state []profile.State
}

// sampleProfile walks the profile from start time to its duration plus a
// short tail so the terminal clamp is visible in the output.
func sampleProfile(p *profile.Profile, startTime, dt float64) (*trace, error) {
	end := startTime + p.Duration()*1.1
	tr := &trace{}
	for t := startTime; t <= end; t += dt {
		s, err := p.Sample(t)
		if err != nil {
			return nil, fmt.Errorf("sample at t=%.4f: %w", t, err)
		}
		tr.times = append(tr.times, t)
		tr.state = append(tr.state, s)
	}
	return tr, nil
}

func writePNG(tr *trace, path string) error {
	p := plot.New()
	p.Title.Text = "Trapezoidal Motion Profile"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Position / Speed / Acceleration"

	pos := make(plotter.XYs, len(tr.times))
	speed := make(plotter.XYs, len(tr.times))
	accel := make(plotter.XYs, len(tr.times))
	for i, t := range tr.times {
		pos[i] = plotter.XY{X: t, Y: tr.state[i].Position}
		speed[i] = plotter.XY{X: t, Y: tr.state[i].Speed}
		accel[i] = plotter.XY{X: t, Y: tr.state[i].Acceleration}
	}

	if err := plotutil.AddLinePoints(p,
		"position", pos,
		"speed", speed,
		"acceleration", accel,
	); err != nil {
		return fmt.Errorf("add series: %w", err)
	}

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save png: %w", err)
	}
	return nil
}

func writeHTML(tr *trace, path string) error {
	xs := make([]string, len(tr.times))
	pos := make([]opts.LineData, len(tr.times))
	speed := make([]opts.LineData, len(tr.times))
	accel := make([]opts.LineData, len(tr.times))
	for i, t := range tr.times {
		xs[i] = fmt.Sprintf("%.2f", t)
		pos[i] = opts.LineData{Value: tr.state[i].Position}
		speed[i] = opts.LineData{Value: tr.state[i].Speed}
		accel[i] = opts.LineData{Value: tr.state[i].Acceleration}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Trapezoidal Motion Profile",
			Subtitle: "position, speed and acceleration over time",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "t (s)"}),
	)
	line.SetXAxis(xs).
		AddSeries("position", pos).
		AddSeries("speed", speed).
		AddSeries("acceleration", accel)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html: %w", err)
	}
	defer f.Close()

	if err := line.Render(f); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func run() error {
	accel := flag.Float64("accel", 2, "acceleration, units/s²")
	limit := flag.Float64("limit", 4, "speed limit, units/s")
	start := flag.Float64("start", 0, "start position")
	target := flag.Float64("target", 100, "target position")
	dt := flag.Float64("dt", 0.05, "sample step, seconds")
	outDir := flag.String("out", "plots", "output directory")
	flag.Parse()

	p := profile.New(*accel, *limit)
	if err := p.Start(*start, *target, 0); err != nil {
		return fmt.Errorf("start profile: %w", err)
	}

	tr, err := sampleProfile(p, 0, *dt)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	pngPath := filepath.Join(*outDir, "profile.png")
	if err := writePNG(tr, pngPath); err != nil {
		return err
	}

	htmlPath := filepath.Join(*outDir, "profile.html")
	if err := writeHTML(tr, htmlPath); err != nil {
		return err
	}

	log.Printf("profile: duration %.2fs, target %.2f", p.Duration(), p.Target())
	log.Printf("wrote %s and %s", pngPath, htmlPath)
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("profile-plot: %v", err)
	}
}
