package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inamate/rigidgroup/internal/document"
	"github.com/inamate/rigidgroup/internal/engine"
	"github.com/inamate/rigidgroup/internal/logging"
)

type runOpts struct {
	output          string
	asJSON          bool
	snapSize        float64
	forceAllUpdates bool
	noScript        bool
}

func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Load a board, replay its script and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRun(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the final board to this .toml or .json file")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the final state as JSON")
	cmd.Flags().Float64Var(&opts.snapSize, "snap", 0, "grid size for snapping points when the board sets none")
	cmd.Flags().BoolVar(&opts.forceAllUpdates, "force-all-updates", false, "recompute every dependent on each update")
	cmd.Flags().BoolVar(&opts.noScript, "no-script", false, "load the board without replaying its script")

	return cmd
}

func (c *CLI) runRun(ctx context.Context, path string, opts *runOpts) error {
	logger := logging.FromContext(ctx)
	prog := logging.NewProgress(logger)

	doc, err := document.Load(path)
	if err != nil {
		return err
	}

	e := engine.NewEngine()
	e.SetSnapSize(opts.snapSize)
	e.SetForceAllUpdates(opts.forceAllUpdates)
	if err := e.Load(doc); err != nil {
		return err
	}

	if !opts.noScript {
		for i, step := range doc.Script {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := e.Step(step); err != nil {
				return fmt.Errorf("script step %d: %w", i, err)
			}
			for _, g := range e.Groups() {
				logger.Debug("step", "index", i, "group", g.Name, "action", g.LastAction)
			}
		}
	}
	prog.Done(fmt.Sprintf("ran %d steps on %s", len(doc.Script), doc.Board.Name))

	if opts.output != "" {
		if err := writeDocument(e, opts.output); err != nil {
			return err
		}
		logger.Info("wrote board", "path", opts.output)
	}

	if opts.asJSON {
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(e.State())
	}

	st := e.State()
	fmt.Fprintln(c.out, styleTitle.Render(st.Name))
	fmt.Fprintln(c.out, renderPoints(st.Points))
	if len(st.Groups) > 0 {
		fmt.Fprintln(c.out, renderGroups(st.Groups))
	}
	return nil
}

func writeDocument(e *engine.Engine, path string) error {
	format, err := document.FormatFromPath(path)
	if err != nil {
		return err
	}
	doc, err := e.Export()
	if err != nil {
		return err
	}
	data, err := doc.Encode(format)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
