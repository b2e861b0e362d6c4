package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/finadvisor/finadvisor/internal/calculation"
	"github.com/finadvisor/finadvisor/internal/config"
	"github.com/finadvisor/finadvisor/internal/domain"
	"github.com/finadvisor/finadvisor/internal/output"
	"github.com/spf13/cobra"
)

func newWorksheetCmd() *cobra.Command {
	var (
		format  string
		outDir  string
		example bool
	)
	cmd := &cobra.Command{
		Use:   "worksheet [FILE]",
		Short: "Run every tax and loan case in a YAML worksheet",
		Long: `Run every tax and loan case in a YAML worksheet and render a report.

Formats: ` + strings.Join(output.AvailableFormatterNames(), ", ") + `, or "all" with --out.`,
		Example: `  finadvisor worksheet household.yaml
  finadvisor worksheet household.yaml --format html --out reports
  finadvisor worksheet --example --format summary`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()

			var ws *domain.Worksheet
			switch {
			case example:
				ws = parser.CreateExampleWorksheet()
			case len(args) == 1:
				loaded, err := parser.LoadFromFile(args[0])
				if err != nil {
					return err
				}
				ws = loaded
			default:
				return errors.New("a worksheet file is required unless --example is set")
			}

			report, err := calculation.NewEngine().RunWorksheet(cmd.Context(), ws)
			if err != nil {
				return err
			}

			if outDir == "" {
				return output.Render(cmd.OutOrStdout(), report, format)
			}
			paths, err := output.GenerateReport(report, format, outDir)
			for _, p := range paths {
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", p)
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "report format")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write the report to a timestamped file in this directory")
	cmd.Flags().BoolVar(&example, "example", false, "run the built-in example worksheet")
	return cmd
}
