package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/soypat/gearmesh/scene"
	"github.com/soypat/gearmesh/sweep"
	"github.com/spf13/cobra"
)

type sweepOptions struct {
	sceneFlags
	connector string
	from, to  float64
	steps     int
	plot      string
}

func newSweepCmd() *cobra.Command {
	opts := sweepOptions{to: 360, steps: 36}
	cmd := &cobra.Command{
		Use:   "sweep <scene>",
		Short: "Drive a connector through a range of angles",
		Long: `Sweep loads a scene, then steps the drive angle of one connector from
--from to --to and prints the slave position and spin at each step.
With --plot the slave spin is also plotted to an image file.`,
		Example: `  gearmesh sweep train.toml --connector motor-idler
  gearmesh sweep train.toml -c motor-rack --from -90 --to 90 --plot rack.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd.Context(), cmd.OutOrStdout(), &opts, args[0])
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.connector, "connector", "c", "", "connector to drive (default: the only connector)")
	cmd.Flags().Float64Var(&opts.from, "from", opts.from, "first drive angle in degrees")
	cmd.Flags().Float64Var(&opts.to, "to", opts.to, "last drive angle in degrees")
	cmd.Flags().IntVar(&opts.steps, "steps", opts.steps, "number of steps")
	cmd.Flags().StringVar(&opts.plot, "plot", "", "write a plot of the slave spin to this file (png, svg, pdf)")
	return cmd
}

func runSweep(ctx context.Context, w io.Writer, opts *sweepOptions, path string) error {
	logger := loggerFromContext(ctx)
	sc, err := opts.load(ctx, path)
	if err != nil {
		return err
	}
	name := opts.connector
	if name == "" {
		conns := sc.Connectors()
		if len(conns) != 1 {
			return fmt.Errorf("scene has %d connectors, choose one with --connector: %w", len(conns), scene.ErrInvalidScene)
		}
		name = conns[0].Name
	}
	c, ok := sc.Connector(name)
	if !ok {
		return fmt.Errorf("connector %q not found: %w", name, scene.ErrInvalidScene)
	}

	prog := newProgress(logger)
	samples, err := sweep.Run(ctx, c, opts.from, opts.to, opts.steps)
	if err != nil {
		return err
	}
	printTitle(w, "%s: %g° to %g°", c.Name, opts.from, opts.to)
	t := newTable(w, "angle1", "x", "y", "spin [°]", "travel")
	spins := sweep.Unwrapped(samples)
	for i, s := range samples {
		t.row(fmt.Sprintf("%.2f", s.Angle1), s.Placement.Base.X, s.Placement.Base.Y, spins[i], s.Solution.RackTravel)
	}
	prog.done(fmt.Sprintf("swept %d steps", opts.steps))

	if opts.plot != "" {
		if err := sweep.Plot(samples, opts.plot, c.Name); err != nil {
			return err
		}
		logger.Info("plot written", "path", opts.plot)
	}
	return nil
}
