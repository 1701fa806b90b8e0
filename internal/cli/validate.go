package cli

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inamate/rigidgroup/internal/document"
)

func (c *CLI) validateCommand() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check board documents without running them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Results keep argument order regardless of which load
			// finishes first.
			results := make([]error, len(args))

			var eg errgroup.Group
			eg.SetLimit(max(concurrency, 1))
			for i, path := range args {
				eg.Go(func() error {
					_, results[i] = document.Load(path)
					return nil
				})
			}
			_ = eg.Wait()

			var errs []error
			for i, err := range results {
				if err != nil {
					printError(c.out, "%s", err)
					errs = append(errs, err)
					continue
				}
				printSuccess(c.out, "%s", args[i])
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d documents invalid: %w", len(errs), len(args), errors.Join(errs...))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", runtime.NumCPU(), "documents to check in parallel")
	return cmd
}
