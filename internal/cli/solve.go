package cli

import (
	"context"
	"io"

	"github.com/soypat/gearmesh"
	"github.com/spf13/cobra"
)

func newSolveCmd() *cobra.Command {
	var flags sceneFlags
	cmd := &cobra.Command{
		Use:   "solve <scene>",
		Short: "Place every slave gear of a scene and print the placements",
		Long: `Solve loads a TOML or YAML scene file, runs every connector in file order
and prints the resulting node placements followed by a connector summary.`,
		Example: `  gearmesh solve train.toml
  gearmesh solve -v train.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), cmd.OutOrStdout(), &flags, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

func runSolve(ctx context.Context, w io.Writer, flags *sceneFlags, path string) error {
	prog := newProgress(loggerFromContext(ctx))
	sc, err := flags.load(ctx, path)
	if err != nil {
		return err
	}

	printTitle(w, "nodes")
	t := newTable(w, "node", "x", "y", "z", "spin [°]")
	for _, n := range sc.Nodes() {
		p := n.Placement()
		t.row(n.Name, p.Base.X, p.Base.Y, p.Base.Z, gearmesh.RtoD(p.Twist(gearmesh.MeshAxis)))
	}

	printTitle(w, "connectors")
	t = newTable(w, "connector", "distance", "ratio", "travel")
	for _, c := range sc.Connectors() {
		sol := c.Last()
		t.row(c.Name+" "+styleDim.Render(sol.Case.String()), sol.CenterDistance, sol.Ratio, sol.RackTravel)
	}
	prog.done("scene solved")
	return nil
}
