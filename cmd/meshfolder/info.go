package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) infoCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "info <index>",
		Short: "Load one record and describe it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
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

			out := cmd.OutOrStdout()
			if asJSON {
				return json.NewEncoder(out).Encode(rec)
			}

			mesh := recordMesh(rec)
			fmt.Fprintf(out, "Index:    %d of %d\n", rec.Index, idx.Len())
			fmt.Fprintf(out, "Path:     %s\n", rec.Path)
			fmt.Fprintf(out, "Kind:     %s\n", rec.Kind)
			fmt.Fprintf(out, "Vertices: %d\n", mesh.VertexCount())
			fmt.Fprintf(out, "Faces:    %d x %d\n", mesh.FaceCount(), mesh.FaceArity())
			if box, ok := mesh.Bounds(); ok {
				fmt.Fprintf(out, "Bounds:   (%.4g, %.4g, %.4g) - (%.4g, %.4g, %.4g)\n",
					box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full record as JSON")
	return cmd
}
