package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"gradelint/internal/check"
	_ "gradelint/internal/checks/all"
	"gradelint/internal/config"
	"gradelint/internal/diagfmt"
	"gradelint/internal/problem"
	"gradelint/internal/snapshot"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <snapshot>",
	Short: "Run every registered check over a submission snapshot",
	Long:  `Run the registered checks over a submission snapshot and print the problems, compiler diagnostics and engine errors`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("config", "", "configuration file (default: nearest gradelint.toml or gradelint.yaml)")
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel checks (0=auto)")
	checkCmd.Flags().Int("max-problems", 0, "cap problems per check, -1 for unlimited (0 keeps configured caps)")
	checkCmd.Flags().StringSlice("disable", nil, "checks to skip (comma-separated)")
	checkCmd.Flags().String("compiler-diags", "", "JSON file with compiler diagnostics to include")
	checkCmd.Flags().StringArray("section", nil, "external report section as name=file (repeatable)")
	checkCmd.Flags().Int8("context", 2, "lines of code shown around a finding in pretty output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().String("ui", "off", "show live check progress (auto|on|off)")
}

// checkFlags are the parsed flags of the check command.
type checkFlags struct {
	configPath  string
	format      diagfmt.Format
	jobs        int
	maxProblems int
	disable     []string
	diagsPath   string
	sections    []string
	context     int8
	fullPath    bool
	ui          uiMode
	timings     bool
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var (
		cf  checkFlags
		err error
	)
	flags := cmd.Flags()
	if cf.configPath, err = flags.GetString("config"); err != nil {
		return cf, fmt.Errorf("failed to get config flag: %w", err)
	}
	formatStr, err := flags.GetString("format")
	if err != nil {
		return cf, fmt.Errorf("failed to get format flag: %w", err)
	}
	if cf.format, err = diagfmt.ParseFormat(formatStr); err != nil {
		return cf, err
	}
	if cf.jobs, err = flags.GetInt("jobs"); err != nil {
		return cf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if cf.maxProblems, err = flags.GetInt("max-problems"); err != nil {
		return cf, fmt.Errorf("failed to get max-problems flag: %w", err)
	}
	if cf.maxProblems < check.Unlimited {
		return cf, fmt.Errorf("invalid --max-problems %d (expected -1 or a positive number)", cf.maxProblems)
	}
	if cf.disable, err = flags.GetStringSlice("disable"); err != nil {
		return cf, fmt.Errorf("failed to get disable flag: %w", err)
	}
	if cf.diagsPath, err = flags.GetString("compiler-diags"); err != nil {
		return cf, fmt.Errorf("failed to get compiler-diags flag: %w", err)
	}
	if cf.sections, err = flags.GetStringArray("section"); err != nil {
		return cf, fmt.Errorf("failed to get section flag: %w", err)
	}
	if cf.context, err = flags.GetInt8("context"); err != nil {
		return cf, fmt.Errorf("failed to get context flag: %w", err)
	}
	if cf.fullPath, err = flags.GetBool("fullpath"); err != nil {
		return cf, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return cf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if cf.ui, err = readUIMode(uiStr); err != nil {
		return cf, err
	}
	if cf.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return cf, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return cf, nil
}

// runCheck loads the snapshot and the configuration, runs the engine and
// renders the report. A report with errors exits with status 1.
func runCheck(cmd *cobra.Command, args []string) error {
	cf, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()
	stopTracing, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer stopTracing()

	opts, err := engineOptions(cf)
	if err != nil {
		return err
	}
	m, err := snapshot.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	diags, err := readCompilerDiags(cf.diagsPath)
	if err != nil {
		return err
	}
	sections, err := readSections(cf.sections)
	if err != nil {
		return err
	}

	var res *check.Result
	if cf.format == diagfmt.FormatPretty && shouldUseTUI(cf.ui, cmd.OutOrStdout()) {
		res, err = runChecksWithUI(cmd.Context(), cmd.OutOrStdout(), opts, m)
	} else {
		var engine *check.Engine
		if engine, err = check.NewFromRegistry(opts); err != nil {
			return err
		}
		res, err = engine.Run(cmd.Context(), m)
	}
	if err != nil {
		return fmt.Errorf("check run failed: %w", err)
	}
	report := res.Report(diags, sections...)

	pathMode := diagfmt.PathModeAuto
	if cf.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	out := cmd.OutOrStdout()
	switch cf.format {
	case diagfmt.FormatPretty:
		color, err := useColor(cmd)
		if err != nil {
			return err
		}
		err = diagfmt.Pretty(out, report, m.Files, diagfmt.PrettyOpts{
			Color:       color,
			Context:     cf.context,
			PathMode:    pathMode,
			ShowPreview: true,
			ShowArgs:    true,
		})
		if err != nil {
			return err
		}
	case diagfmt.FormatShort:
		if err := diagfmt.Short(out, report); err != nil {
			return err
		}
	case diagfmt.FormatJSON:
		jsonOpts := diagfmt.JSONOpts{PathMode: pathMode, RunID: res.RunID.String()}
		if cf.timings {
			jsonOpts.Timings = &res.Timings
		}
		if err := diagfmt.JSON(out, report, m.Files, jsonOpts); err != nil {
			return fmt.Errorf("failed to format report: %w", err)
		}
	}
	if cf.timings && cf.format != diagfmt.FormatJSON {
		fmt.Fprint(cmd.ErrOrStderr(), res.Timings.Summary())
	}

	if report.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

// engineOptions merges the configuration file with the command line; flags
// win over the file.
func engineOptions(cf checkFlags) (check.Options, error) {
	var (
		cfg *config.Config
		err error
	)
	if cf.configPath != "" {
		cfg, err = config.Load(cf.configPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			cfg, err = config.Discover(wd)
		}
	}
	if err != nil {
		return check.Options{}, err
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		return check.Options{}, err
	}

	if cf.jobs > 0 {
		opts.Jobs = cf.jobs
	}
	for _, name := range cf.disable {
		name = strings.TrimSpace(name)
		if _, ok := check.ByName(name); !ok {
			return check.Options{}, fmt.Errorf("%w: %s", check.ErrUnknownCheck, name)
		}
		opts.Disabled = append(opts.Disabled, name)
	}
	if cf.maxProblems != 0 {
		opts.Caps = make(map[string]int)
		for _, d := range check.All() {
			opts.Caps[d.Name] = cf.maxProblems
		}
	}
	return opts, nil
}

func readCompilerDiags(path string) ([]problem.CompilerDiagnostic, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open compiler diagnostics: %w", err)
	}
	defer f.Close()
	diags, err := problem.ReadCompilerDiagnostics(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return diags, nil
}

// readSections loads name=file pairs. Names must be unique.
func readSections(args []string) ([]problem.Section, error) {
	out := make([]problem.Section, 0, len(args))
	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		name, path, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid --section %q (expected name=file)", arg)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate section %q", name)
		}
		seen[name] = true
		payload, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", name, err)
		}
		out = append(out, problem.Section{Name: name, Payload: payload})
	}
	return out, nil
}
