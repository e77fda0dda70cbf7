package main

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/meshfolder/pkg/render"
)

func (a *app) snapshotCommand() *cobra.Command {
	var (
		size        int
		supersample int
		frames      int
		pitch       float64
	)

	cmd := &cobra.Command{
		Use:   "snapshot <index> <out.png|out.webp>",
		Short: "Render a wireframe image of one record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			out := args[1]

			bg, err := parseColor(a.cfg.View.Background)
			if err != nil {
				return err
			}

			idx, err := a.openIndex()
			if err != nil {
				return err
			}
			rec, err := idx.Get(i)
			if err != nil {
				return err
			}
			mesh := recordMesh(rec)

			opts := render.DefaultSnapshotOptions()
			opts.Size = a.cfg.Snapshot.Size
			opts.Supersample = a.cfg.Snapshot.Supersample
			if cmd.Flags().Changed("size") {
				opts.Size = size
			}
			if cmd.Flags().Changed("supersample") {
				opts.Supersample = supersample
			}
			opts.Background = bg

			if frames <= 1 {
				tt := render.NewTurntable(a.cfg.View.FPS)
				tt.Pitch = pitch
				opts.Rotation = tt.Transform()
				return a.writeSnapshot(mesh, opts, out)
			}

			// One full revolution about Y, evenly spaced.
			tt := render.NewTurntable(a.cfg.View.FPS)
			tt.Pitch = pitch
			for f := range frames {
				tt.Yaw = 2 * math.Pi * float64(f) / float64(frames)
				opts.Rotation = tt.Transform()
				if err := a.writeSnapshot(mesh, opts, frameName(out, f)); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d frames\n", frames)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&size, "size", 512, "Output edge length in pixels")
	flags.IntVar(&supersample, "supersample", 2, "Render scale before downsampling")
	flags.IntVar(&frames, "frames", 1, "Render a turntable sequence of N frames")
	flags.Float64Var(&pitch, "pitch", 0.35, "Tilt toward the camera in radians")
	return cmd
}

func (a *app) writeSnapshot(g render.Geometry, opts render.SnapshotOptions, path string) error {
	img := render.Snapshot(g, opts)
	if err := render.SaveImage(img, path); err != nil {
		return err
	}
	a.log.Info("Saved snapshot", zap.String("path", path), zap.Int("size", opts.Size))
	return nil
}
