package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/soypat/gearmesh"
	"github.com/soypat/gearmesh/connector"
	"github.com/soypat/gearmesh/scene"
	"github.com/spf13/cobra"
)

var (
	version = connector.Version
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. It is
// called by main with values injected via ldflags.
func SetVersion(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	date = d
}

// Execute runs the gearmesh CLI with the process arguments.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stderr).ExecuteContext(ctx)
}

// newRootCmd builds the command tree. Log output goes to logw.
func newRootCmd(logw io.Writer) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "gearmesh",
		Short:        "gearmesh places meshing gears",
		Long:         `gearmesh computes where a slave gear must sit so that it meshes with its master, for spur, internal, cycloid and rack pairs.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logw, level)))
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("gearmesh %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSolveCmd())
	root.AddCommand(newSweepCmd())
	root.AddCommand(newPreviewCmd())
	return root
}

// sceneFlags are the flags shared by every command loading a scene.
type sceneFlags struct {
	legacySpin bool
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.legacySpin, "legacy-spin", false, "extract the master spin by summing axis components")
}

// load reads the scene file at path and solves it once.
func (f *sceneFlags) load(ctx context.Context, path string) (*scene.Scene, error) {
	logger := loggerFromContext(ctx)
	var solver gearmesh.Solver
	if f.legacySpin {
		solver.Spin = gearmesh.SpinAxisSum
	}
	sc, err := scene.Load(path, scene.WithLogger(logger), scene.WithSolver(solver))
	if err != nil {
		return nil, err
	}
	logger.Debug("scene loaded", "path", path, "nodes", len(sc.Nodes()), "connectors", len(sc.Connectors()))
	if err := sc.Update(); err != nil {
		return nil, err
	}
	return sc, nil
}
