// Command statsctl builds chart configurations and exports from a data-chart payload.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"advancedstats/chart"
	"advancedstats/render"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "statsctl",
		Short: "Build ticket sales charts from a data-chart payload",
		Long: `statsctl reads the JSON payload of a data-chart attribute
({"datasets":[{"data":[...]}, ...]}) from a file or stdin ("-") and
turns it into a Chart.js configuration, a PNG or an Excel workbook.`,
		SilenceUsage: true,
	}

	var pretty bool
	configCmd := &cobra.Command{
		Use:   "config [file|-]",
		Short: "Print the Chart.js configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := loadWidget(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(w.Config)
		},
	}
	configCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	rootCmd.AddCommand(
		configCmd,
		exportCmd("png", "Render the chart as a PNG image", render.PNG),
		exportCmd("xlsx", "Export the chart data as an Excel workbook", render.XLSX),
	)
	return rootCmd
}

func exportCmd(name, short string, fn func(io.Writer, *chart.Widget) error) *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   name + " [file|-]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := loadWidget(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := fn(&buf, w); err != nil {
				return err
			}

			if outputPath == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Output written to %s\n", outputPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	return cmd
}

func loadWidget(stdin io.Reader, args []string) (*chart.Widget, error) {
	var raw []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	cfg, err := chart.Configure(string(raw))
	if err != nil {
		return nil, err
	}
	return chart.Render(chart.DefaultSurface, cfg)
}
