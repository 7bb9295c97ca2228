package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/orrery/internal/graph"
	"github.com/gravitrone/orrery/internal/logging"
	"github.com/gravitrone/orrery/internal/render"
	"github.com/gravitrone/orrery/internal/schema"
)

// ExportCmd returns the `orrery export` command.
func ExportCmd() *cobra.Command {
	var (
		out     string
		width   int
		height  int
		frames  int
		seed    int64
		noProps bool
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Render a workspace graph to PNG or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ws, warns, err := schema.Load(args[0])
			if err != nil {
				return err
			}
			logger := logging.Console("info")
			for _, w := range warns {
				logger.Warn("workspace warning", "detail", w)
			}

			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".png"
			}
			ext := strings.ToLower(filepath.Ext(out))
			if ext != ".png" && ext != ".svg" {
				return fmt.Errorf("unsupported export format %q (want .png or .svg)", ext)
			}

			if width <= 0 {
				width = render.DefaultWidth
			}
			if height <= 0 {
				height = render.DefaultHeight
			}

			snap := render.Compute(ws, graph.Options{
				ShowProperties: !noProps,
				Width:          float64(width),
				Height:         float64(height),
				Seed:           seed,
			}, frames)
			opts := render.Options{Width: width, Height: height}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			if ext == ".png" {
				err = render.PNG(snap, opts, f)
			} else {
				err = render.SVG(snap, opts, f)
			}
			if err != nil {
				return fmt.Errorf("render %s: %w", out, err)
			}

			fmt.Printf("wrote %s (%d nodes, %d edges)\n", out, len(snap.Nodes), len(snap.Edges))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (.png or .svg; default input name with .png)")
	cmd.Flags().IntVar(&width, "width", render.DefaultWidth, "canvas width in pixels")
	cmd.Flags().IntVar(&height, "height", render.DefaultHeight, "canvas height in pixels")
	cmd.Flags().IntVar(&frames, "frames", render.DefaultFrames, "simulation frames to run before drawing")
	cmd.Flags().Int64Var(&seed, "seed", 0, "orbit speed seed")
	cmd.Flags().BoolVar(&noProps, "no-props", false, "hide property orbit nodes")
	return cmd
}
