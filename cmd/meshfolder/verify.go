package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/meshfolder/pkg/meshfolder"
)

func (a *app) verifyCommand() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Load every record and report the ones that fail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := a.openIndex()
			if err != nil {
				return err
			}

			failures := verifyAll(idx, jobs, a.log)
			out := cmd.OutOrStdout()
			for i, err := range failures {
				if err != nil {
					fmt.Fprintf(out, "FAIL %d: %v\n", i, err)
				}
			}

			failed := countErrors(failures)
			fmt.Fprintf(out, "%d/%d records loaded\n", idx.Len()-failed, idx.Len())
			if failed > 0 {
				return fmt.Errorf("%d records failed to load", failed)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Concurrent loads")
	return cmd
}

// verifyAll loads every record with at most jobs loads in flight. The result
// holds one slot per ordinal, nil where the load succeeded.
func verifyAll(idx *meshfolder.Index, jobs int, log *zap.Logger) []error {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]error, idx.Len())

	var g errgroup.Group
	g.SetLimit(jobs)
	for i := range results {
		g.Go(func() error {
			rec, err := idx.Get(i)
			if err != nil {
				results[i] = err
				log.Warn("Record failed to load", zap.Int("index", i), zap.Error(err))
				return nil
			}
			log.Debug("Record loaded",
				zap.Int("index", i),
				zap.Int("vertices", len(rec.Vertices)),
				zap.Int("faces", len(rec.Faces)))
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func countErrors(errs []error) int {
	n := 0
	for _, err := range errs {
		if err != nil {
			n++
		}
	}
	return n
}
