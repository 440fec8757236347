package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/soypat/gearmesh/preview"
	"github.com/soypat/gearmesh/render"
	"github.com/spf13/cobra"
)

type previewOptions struct {
	sceneFlags
	output   string
	png      string
	material string
	height   float64
	cells    int
}

func newPreviewCmd() *cobra.Command {
	opts := previewOptions{output: "scene.stl", material: preview.Exact.Name, height: 5, cells: 200}
	cmd := &cobra.Command{
		Use:   "preview <scene>",
		Short: "Write an STL mesh of the solved scene",
		Long: `Preview solves a scene and extrudes every involute gear and rack at its
node placement. The union is meshed with marching cubes and written as a
binary STL. Cycloid gears are skipped.`,
		Example: `  gearmesh preview train.toml -o train.stl
  gearmesh preview train.toml -o train.stl --png train.png --cells 300`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), &opts, args[0])
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "STL output file")
	cmd.Flags().StringVar(&opts.png, "png", "", "also render the STL to this PNG file")
	cmd.Flags().StringVar(&opts.material, "material", opts.material, "compensate print shrinkage: exact, pla, petg or abs")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "extrusion height of every gear")
	cmd.Flags().IntVar(&opts.cells, "cells", opts.cells, "marching cubes cells along the longest side")
	return cmd
}

func runPreview(ctx context.Context, opts *previewOptions, path string) error {
	logger := loggerFromContext(ctx)
	material, err := preview.LookupMaterial(opts.material)
	if err != nil {
		return err
	}
	sc, err := opts.load(ctx, path)
	if err != nil {
		return err
	}
	for _, n := range sc.Nodes() {
		if n.HasGear() {
			if _, err := preview.Profile(n.Gear()); errors.Is(err, preview.ErrNoProfile) {
				logger.Warn("gear not drawn", "node", n.Name, "kind", n.Gear().Kind)
			}
		}
	}
	s, err := preview.Assembly(sc, opts.height)
	if err != nil {
		return err
	}
	s = material.Scale(s)
	prog := newProgress(logger)
	if err := preview.WriteSTL(opts.output, s, opts.cells); err != nil {
		return fmt.Errorf("writing %s: %w", opts.output, err)
	}
	prog.done("wrote " + opts.output)
	if opts.png == "" {
		return nil
	}
	prog = newProgress(logger)
	if err := render.STLToPNG(opts.output, opts.png, render.DefaultView); err != nil {
		return fmt.Errorf("rendering %s: %w", opts.png, err)
	}
	prog.done("wrote " + opts.png)
	return nil
}
