package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/joshharrison/critpath/internal/aoa"
	"github.com/joshharrison/critpath/internal/config"
	"github.com/joshharrison/critpath/internal/cpm"
	"github.com/joshharrison/critpath/internal/logging"
	"github.com/joshharrison/critpath/internal/netio"
	"github.com/joshharrison/critpath/internal/pert"
	"github.com/joshharrison/critpath/internal/reporter"
	"github.com/joshharrison/critpath/internal/samples"
	"github.com/joshharrison/critpath/internal/ui"
)

var errInvalidNetwork = errors.New("network has validation errors")

var (
	flagJSON        bool
	flagUnit        string
	flagLogLevel    string
	flagMergePasses int
	flagNoAOA       bool
	flagNoColor     bool
	flagWorkers     int
	flagQuiet       bool
	flagSample      string
	flagFormat      string
	flagOutput      string

	logger = zerolog.Nop()
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "critpath: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "critpath",
		Short: "Critical path scheduling for activity networks",
		Long: `critpath reads an activity network (CSV, JSON or HCL), computes the Critical
Path Method schedule with floats and critical paths, and derives the equivalent
Activity-on-Arrow network with dummy activities. Three-point estimates are
supported through PERT expected durations.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ui.SetNoColor(flagNoColor)

			switch flagUnit {
			case "days", "weeks":
			default:
				return fmt.Errorf("--unit must be days or weeks, got %q", flagUnit)
			}
			if flagMergePasses < 1 {
				return fmt.Errorf("--merge-passes must be at least 1")
			}
			if flagWorkers < 1 {
				flagWorkers = 1
			}

			l, err := logging.New(flagLogLevel, cmd.ErrOrStderr(), flagNoColor)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	// Global flags, defaulted from the environment
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().StringVar(&flagUnit, "unit", cfg.TimeUnit, "Time unit for display (days, weeks)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", cfg.LogLevel, "Diagnostic log level (debug, info, warn, error, disabled)")
	rootCmd.PersistentFlags().IntVar(&flagMergePasses, "merge-passes", cfg.MergePassLimit, "Max AOA dummy cleanup passes")
	rootCmd.PersistentFlags().BoolVar(&flagNoAOA, "no-aoa", false, "Skip the Activity-on-Arrow conversion")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", cfg.NoColor, "Disable colored output")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", cfg.Workers, "Max files analyzed concurrently")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(pertCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(aoaCmd())
	rootCmd.AddCommand(exportCmd())

	return rootCmd
}

// engineConfig assembles the analysis settings from the global flags.
func engineConfig() cpm.Config {
	return cpm.Config{
		SkipAOA: flagNoAOA,
		AOA:     aoa.Config{MergePassLimit: flagMergePasses},
		Logger:  &logger,
	}
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Compute the CPM schedule, floats and critical paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := resolveInputs(args, flagSample)
			if err != nil {
				return err
			}

			reports, err := analyzeAll(cmd.Context(), inputs, engineConfig())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flagJSON {
				if err := outputReportsJSON(out, reports); err != nil {
					return err
				}
			} else {
				if !flagQuiet {
					ui.PrintLogo()
				}
				for _, r := range reports {
					r.PrintSchedule(out)
				}
				if len(reports) > 1 {
					for _, r := range reports {
						fmt.Fprint(out, r.Summary())
					}
				}
			}
			return invalidError(reports)
		},
	}

	cmd.Flags().StringVar(&flagSample, "sample", "", "Analyze a bundled sample (simple, project)")
	cmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress the logo banner")

	return cmd
}

func pertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pert [file]",
		Short: "Schedule three-point estimates using PERT expected durations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				acts   []pert.Activity
				source string
			)
			switch {
			case flagSample == "pert":
				acts, source = samples.PERT(), "sample:pert"
			case flagSample != "":
				return fmt.Errorf("unknown sample %q (want pert)", flagSample)
			case len(args) == 1:
				var err error
				acts, err = netio.LoadPERT(args[0])
				if err != nil {
					return err
				}
				source = args[0]
			default:
				return fmt.Errorf("no input file (pass a file or --sample pert)")
			}

			res := pert.Analyze(acts, engineConfig())
			rpt := reporter.NewPERT(source, flagUnit, res)

			out := cmd.OutOrStdout()
			if flagJSON {
				if err := outputReportsJSON(out, []*reporter.Reporter{rpt}); err != nil {
					return err
				}
			} else {
				if !flagQuiet {
					ui.PrintLogo()
				}
				rpt.PrintPERT(out)
			}
			return invalidError([]*reporter.Reporter{rpt})
		},
	}

	cmd.Flags().StringVar(&flagSample, "sample", "", "Use a bundled three-point sample (pert)")
	cmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress the logo banner")

	return cmd
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Check networks for missing predecessors, bad durations and cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := resolveInputs(args, flagSample)
			if err != nil {
				return err
			}

			cfg := engineConfig()
			cfg.SkipAOA = true
			reports, err := analyzeAll(cmd.Context(), inputs, cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flagJSON {
				type verdict struct {
					Source   string   `json:"source"`
					Valid    bool     `json:"valid"`
					Errors   []string `json:"errors"`
					Warnings []string `json:"warnings"`
				}
				verdicts := make([]verdict, len(reports))
				for i, r := range reports {
					verdicts[i] = verdict{
						Source:   r.Source,
						Valid:    r.Result.OK(),
						Errors:   nonNil(r.Result.Errors),
						Warnings: nonNil(r.Result.Warnings),
					}
				}
				if err := outputJSON(out, verdicts); err != nil {
					return err
				}
			} else {
				for _, r := range reports {
					r.PrintValidation(out)
				}
			}
			return invalidError(reports)
		},
	}

	cmd.Flags().StringVar(&flagSample, "sample", "", "Validate a bundled sample (simple, project)")

	return cmd
}

func aoaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aoa [file]",
		Short: "Show the Activity-on-Arrow network with dummy activities",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := resolveInputs(args, flagSample)
			if err != nil {
				return err
			}

			in := inputs[0]
			acts, err := in.load()
			if err != nil {
				return err
			}

			cfg := engineConfig()
			cfg.SkipAOA = false
			rpt := reporter.New(in.source, flagUnit, cpm.Analyze(acts, cfg))
			if !rpt.Result.OK() {
				rpt.PrintIssues(cmd.ErrOrStderr())
				return errInvalidNetwork
			}

			out := cmd.OutOrStdout()
			if flagJSON {
				return outputJSON(out, rpt.Result.AOANetwork)
			}
			rpt.PrintAOA(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagSample, "sample", "", "Convert a bundled sample (simple, project)")

	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export activities or computed results as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data string

			switch flagFormat {
			case "activities", "results":
				inputs, err := resolveInputs(args, flagSample)
				if err != nil {
					return err
				}
				in := inputs[0]
				acts, err := in.load()
				if err != nil {
					return err
				}
				if flagFormat == "activities" {
					data = netio.ExportCSV(acts)
					break
				}
				cfg := engineConfig()
				cfg.SkipAOA = true
				res := cpm.Analyze(acts, cfg)
				if !res.OK() {
					reporter.New(in.source, flagUnit, res).PrintIssues(cmd.ErrOrStderr())
					return errInvalidNetwork
				}
				data = netio.ExportResultsCSV(res.Activities)
			case "pert":
				var acts []pert.Activity
				switch {
				case flagSample == "pert":
					acts = samples.PERT()
				case len(args) == 1:
					var err error
					if acts, err = netio.LoadPERT(args[0]); err != nil {
						return err
					}
				default:
					return fmt.Errorf("no input file (pass a file or --sample pert)")
				}
				data = netio.ExportPERTCSV(acts)
			default:
				return fmt.Errorf("unknown format %q (want activities, results or pert)", flagFormat)
			}

			if flagOutput != "" {
				if err := os.WriteFile(flagOutput, []byte(data+"\n"), 0644); err != nil {
					return fmt.Errorf("write %s: %w", flagOutput, err)
				}
				logger.Info().Str("file", flagOutput).Str("format", flagFormat).Msg("exported")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), data)
			return nil
		},
	}

	cmd.Flags().StringVar(&flagFormat, "format", "results", "CSV layout (activities, results, pert)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write CSV to file instead of stdout")
	cmd.Flags().StringVar(&flagSample, "sample", "", "Export a bundled sample (simple, project, pert)")

	return cmd
}

func outputJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// outputReportsJSON prints one JSON document per run: a single object for one
// network, an array for several.
func outputReportsJSON(w io.Writer, reports []*reporter.Reporter) error {
	docs := make([]json.RawMessage, len(reports))
	for i, r := range reports {
		data, err := r.JSON()
		if err != nil {
			return err
		}
		docs[i] = data
	}
	if len(docs) == 1 {
		fmt.Fprintln(w, string(docs[0]))
		return nil
	}
	return outputJSON(w, docs)
}

func invalidError(reports []*reporter.Reporter) error {
	bad := 0
	for _, r := range reports {
		if !r.Result.OK() {
			bad++
		}
	}
	if bad == 0 {
		return nil
	}
	if len(reports) == 1 {
		return errInvalidNetwork
	}
	return fmt.Errorf("%d of %d networks: %w", bad, len(reports), errInvalidNetwork)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
