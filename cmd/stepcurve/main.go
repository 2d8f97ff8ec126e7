package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/calvinmclean/stepcurve"
	"github.com/calvinmclean/stepcurve/config"
	"github.com/calvinmclean/stepcurve/controller"
	"github.com/calvinmclean/stepcurve/curve"
	"github.com/calvinmclean/stepcurve/session"
	"github.com/calvinmclean/stepcurve/ui"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs after the global flags are parsed
type app struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "stepcurve",
		Short:         "Design pulse-time tables for stepper motor ramps",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := cfg.SlogLevel()
			if a.verbose {
				level = slog.LevelDebug
			}
			a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "stepcurve.toml", "path to TOML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.generateCmd(),
		a.uiCmd(),
		a.uploadCmd(),
		a.portsCmd(),
	)

	return root
}

type generateFlags struct {
	kind string
	name string
	out  string
}

func (a *app) generateCmd() *cobra.Command {
	var (
		f    generateFlags
		spec = config.Default().Curve
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a curve and print it as an array literal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec = mergeSpec(cmd, a.cfg, spec)
			if cmd.Flags().Changed("kind") {
				kind, err := stepcurve.ParseCurveKind(f.kind)
				if err != nil {
					return err
				}
				spec.Kind, spec.KindName = kind, kind.String()
			}

			name := a.cfg.Export.ArrayName
			if cmd.Flags().Changed("name") {
				name = f.name
			}

			s := session.New(a.logger)
			err := s.Generate(spec)
			if err != nil {
				return err
			}

			out, err := s.Export(name)
			if err != nil {
				return err
			}

			a.logger.Info(s.Summary().String())

			if f.out == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}
			err = os.WriteFile(f.out, []byte(out+"\n"), 0o644)
			if err != nil {
				return fmt.Errorf("error writing %q: %w", f.out, err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.kind, "kind", spec.Kind.String(), fmt.Sprintf("curve kind %v", stepcurve.CurveKindNames()))
	flags.IntVar(&spec.PointCount, "points", spec.PointCount, "number of points (10-500)")
	flags.IntVar(&spec.StartValue, "start", spec.StartValue, "value at the first point (1-1000)")
	flags.IntVar(&spec.EndValue, "end", spec.EndValue, "value at the last point (1-1000)")
	flags.IntVar(&spec.RangeStartPct, "range-start", spec.RangeStartPct, "start of the shaped range in percent")
	flags.IntVar(&spec.RangeEndPct, "range-end", spec.RangeEndPct, "end of the shaped range in percent")
	flags.IntVar(&spec.LeadInSize, "lead-in", spec.LeadInSize, "points in the lead-in blend, 0 disables it")
	flags.IntVar(&spec.LeadOutSize, "lead-out", spec.LeadOutSize, "points in the lead-out blend, 0 disables it")
	flags.Float64Var(&spec.PowerExponent, "exponent", spec.PowerExponent, "exponent for the Power kind (0.1-10)")
	flags.StringVar(&f.name, "name", "", "array name (default from config)")
	flags.StringVarP(&f.out, "out", "o", "", "write the array to a file instead of stdout")

	return cmd
}

// mergeSpec starts from the configured curve and applies only the flags that were set
func mergeSpec(cmd *cobra.Command, cfg config.Config, flagged curve.Spec) curve.Spec {
	merged := cfg.Curve
	changed := cmd.Flags().Changed

	if changed("points") {
		merged.PointCount = flagged.PointCount
	}
	if changed("start") {
		merged.StartValue = flagged.StartValue
	}
	if changed("end") {
		merged.EndValue = flagged.EndValue
	}
	if changed("range-start") {
		merged.RangeStartPct = flagged.RangeStartPct
	}
	if changed("range-end") {
		merged.RangeEndPct = flagged.RangeEndPct
	}
	if changed("lead-in") {
		merged.LeadInSize = flagged.LeadInSize
	}
	if changed("lead-out") {
		merged.LeadOutSize = flagged.LeadOutSize
	}
	if changed("exponent") {
		merged.PowerExponent = flagged.PowerExponent
	}
	return merged
}

func (a *app) uiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the desktop editor",
		Run: func(cmd *cobra.Command, _ []string) {
			ui.NewEditorUI(a.cfg, a.logger).Run(cmd.Context())
		},
	}
}

func (a *app) uploadCmd() *cobra.Command {
	var (
		port string
		baud int
		run  string
	)

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload an array literal to the ramp player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("error reading %q: %w", args[0], err)
			}

			s := session.New(a.logger)
			err = s.Import(string(data))
			if err != nil {
				return err
			}

			dir, err := parseRunDirection(run)
			if err != nil {
				return err
			}

			cfg := controller.ConfigFrom(a.cfg.Device)
			if port != "" {
				cfg.SerialPort = port
			}
			if baud > 0 {
				cfg.BaudRate = baud
			}
			if cfg.SerialPort == "" {
				ports, err := controller.GetSerialPorts()
				if err != nil {
					return err
				}
				cfg.SerialPort = ports[0]
			}

			c, err := controller.Open(cfg, a.logger)
			if err != nil {
				return err
			}
			defer c.Close()

			err = c.Upload(cmd.Context(), s.Sequence())
			if err != nil {
				return err
			}

			if dir == 0 {
				return nil
			}
			return c.Run(cmd.Context(), dir)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "serial port (default from config or "+config.EnvSerialPort+")")
	cmd.Flags().IntVarP(&baud, "baud", "b", 0, "baud rate (default from config or "+config.EnvBaudRate+")")
	cmd.Flags().StringVar(&run, "run", "", "play the ramp after uploading: forward or reverse")

	return cmd
}

func parseRunDirection(s string) (stepcurve.Direction, error) {
	switch s {
	case "":
		return 0, nil
	case "forward", "fwd", "+":
		return stepcurve.DirectionNext, nil
	case "reverse", "rev", "-":
		return stepcurve.DirectionPrev, nil
	default:
		return 0, fmt.Errorf("invalid --run %q: use forward or reverse", s)
	}
}

func (a *app) portsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List USB serial ports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ports, err := controller.GetSerialPorts()
			if errors.Is(err, controller.ErrNoUSBSerial) {
				fmt.Fprintln(cmd.OutOrStdout(), "no USB serial ports found")
				return nil
			}
			if err != nil {
				return err
			}

			for _, p := range ports {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
