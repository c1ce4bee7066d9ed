// Command tlattice runs T-piece lattice scenarios from the command line.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/tlattice/assembly"
	"github.com/katalvlaran/tlattice/internal/scenario"
	"github.com/katalvlaran/tlattice/physconst"
)

// demo seeds a hexagon, opens a gap, snaps a second hexagon into it and
// strikes the far side of the first ring.
const demo = `
name: demo
preset: tabletop
steps:
  - place: {kind: hexagon, x: 0, z: 0, freestanding: true}
  - remove: 1
  - place: {kind: hexagon, x: -25, z: 0}
  - impact:
      near: {x: 0, z: -30}
      force: 5
      respond: true
  - route: {from: 2, to: 6}
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var level string

	root := &cobra.Command{
		Use:           "tlattice",
		Short:         "Build, strike and inspect T-piece lattices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&level, "log-level", "warn", "log level: debug, info, warn, error")

	logger := func(cmd *cobra.Command) (*slog.Logger, error) {
		var l slog.Level
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: l})), nil
	}

	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newDemoCmd(logger))
	root.AddCommand(newPresetsCmd())
	return root
}

type loggerFunc func(*cobra.Command) (*slog.Logger, error)

func newRunCmd(logger loggerFunc) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "Run a scenario file and print its report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			return runScenario(cmd, s, logger, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "report format: text or yaml")
	return cmd
}

func newDemoCmd(logger loggerFunc) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in demo scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scenario.Parse([]byte(demo))
			if err != nil {
				return err
			}
			return runScenario(cmd, s, logger, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "report format: text or yaml")
	return cmd
}

func runScenario(cmd *cobra.Command, s *scenario.Scenario, logger loggerFunc, output string) error {
	log, err := logger(cmd)
	if err != nil {
		return err
	}
	rep, err := scenario.Run(s, log)
	if err != nil {
		return err
	}
	switch output {
	case "text":
		return rep.WriteText(cmd.OutOrStdout())
	case "yaml":
		return rep.WriteYAML(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List geometry presets and magnet grades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writePresets(cmd.OutOrStdout())
		},
	}
}

func writePresets(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRESET\tCROSSBAR\tSTEM MIN\tSTEM MAX\tMAGNET")
	for _, name := range assembly.PresetNames() {
		p, _ := assembly.Preset(name)
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g\t%gx%g\n",
			name, p.CrossbarLength, p.StemMinLength, p.StemMaxLength, p.MagnetDiameter, p.MagnetDepth)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "GRADE\tBr (T)\tMAX °C\tk (N/m)\t")
	for _, g := range physconst.Grades() {
		fmt.Fprintf(tw, "%s\t%.2f\t%g\t%g\t\n", g.Name, g.Remanence, g.MaxTempC, g.SpringConstant)
	}
	return tw.Flush()
}
