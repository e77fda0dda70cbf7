package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taigrr/meshfolder/pkg/meshfolder"
)

type listEntry struct {
	Index int                   `json:"indices"`
	Path  string                `json:"paths"`
	Kind  meshfolder.OriginKind `json:"paths_type"`
}

func (a *app) listCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalogued mesh files in index order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.openIndex()
			if err != nil {
				return err
			}

			entries := idx.Entries()
			out := cmd.OutOrStdout()

			if asJSON {
				list := make([]listEntry, len(entries))
				for i, e := range entries {
					list[i] = listEntry{Index: i, Path: e.Path, Kind: e.Kind}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for i, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i, e.Kind, e.Path)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	return cmd
}
