// Package sweep drives a connector through a range of drive angles and
// records where the slave ends up.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	"github.com/soypat/gearmesh"
	"github.com/soypat/gearmesh/connector"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Sample is the slave state at one drive angle. Angles are in degrees.
type Sample struct {
	Angle1    float64
	Placement gearmesh.Placement
	// Spin is the slave's rotation about the mesh axis.
	Spin      float64
	Solution  gearmesh.Solution
}

// Run sets the connector's Angle1 to steps+1 evenly spaced values from
// from to to, updating the slave at each. The drive angles, the slave
// anchor placement and the connector's last solution are restored when Run
// returns.
func Run(ctx context.Context, c *connector.Connector, from, to float64, steps int) (samples []Sample, err error) {
	if steps < 1 {
		return nil, errors.New("sweep: need at least one step")
	}
	saved := c.Snapshot()
	defer c.Restore(saved)
	samples = make([]Sample, 0, steps+1)
	for i := 0; i <= steps; i++ {
		if err := ctx.Err(); err != nil {
			return samples, err
		}
		a := from + (to-from)*float64(i)/float64(steps)
		if err := c.SetAngles(a, c.Angle2); err != nil {
			return samples, fmt.Errorf("sweep at %g°: %w", a, err)
		}
		p := c.SlaveAnchor.Placement()
		samples = append(samples, Sample{
			Angle1:    a,
			Placement: p,
			Spin:      gearmesh.RtoD(p.Twist(gearmesh.MeshAxis)),
			Solution:  c.Last(),
		})
	}
	return samples, nil
}

// Unwrapped returns the slave spin of each sample with jumps of more than
// half a turn between consecutive samples removed.
func Unwrapped(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	var offset float64
	for i, s := range samples {
		if i > 0 {
			d := s.Spin - samples[i-1].Spin
			switch {
			case d > 180:
				offset -= 360
			case d < -180:
				offset += 360
			}
		}
		out[i] = s.Spin + offset
	}
	return out
}

// Plot writes a line plot of the unwrapped slave spin and the rack travel
// against drive angle. The image format follows the file extension.
func Plot(samples []Sample, path, title string) error {
	if len(samples) == 0 {
		return errors.New("sweep: no samples to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "drive angle [°]"
	p.Y.Label.Text = "slave spin [°] / travel"
	p.Add(plotter.NewGrid())

	spin := make(plotter.XYs, len(samples))
	travel := make(plotter.XYs, len(samples))
	var rack bool
	for i, u := range Unwrapped(samples) {
		spin[i].X, spin[i].Y = samples[i].Angle1, u
		travel[i].X, travel[i].Y = samples[i].Angle1, samples[i].Solution.RackTravel
		rack = rack || samples[i].Solution.Case == gearmesh.CaseRack
	}
	line, err := plotter.NewLine(spin)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 0x46, G: 0x89, B: 0x66, A: 0xff}
	p.Add(line)
	p.Legend.Add("spin", line)
	if rack {
		tl, err := plotter.NewLine(travel)
		if err != nil {
			return err
		}
		tl.Color = color.RGBA{R: 0xb6, G: 0x49, B: 0x26, A: 0xff}
		tl.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(tl)
		p.Legend.Add("travel", tl)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
