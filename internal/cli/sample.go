package cli

import (
	"github.com/spf13/cobra"

	"github.com/inamate/rigidgroup/internal/document"
)

func (c *CLI) sampleCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print the sample board document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := document.NewSampleDocument().Encode(document.Format(format))
			if err != nil {
				return err
			}
			_, err = c.out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(document.FormatTOML), "output format: toml or json")
	return cmd
}
