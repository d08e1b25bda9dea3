package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hisahi/lrg/internal/clock"
	"github.com/hisahi/lrg/internal/config"
	"github.com/hisahi/lrg/internal/engine"
	"github.com/hisahi/lrg/internal/linerange"
	"github.com/hisahi/lrg/internal/output"
	"github.com/hisahi/lrg/internal/pacer"
	"github.com/hisahi/lrg/internal/reader"
)

// Exit codes, following the original tool's POSIX convention.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var (
	flagLineNumbers    bool
	flagFileNames      bool
	flagWarnEOF        bool
	flagStrictEOF      bool
	flagLinesPerSecond float64
	flagRewindMode     string
	flagColor          string
	flagConfig         string
)

var exitStatus = exitOK

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lrg [flags] range[,range]... [input-file]...",
	Short: "Print specific line ranges of files",
	Long: `lrg prints a specific range of lines from the given files, or from
standard input when no file (or the file name -) is given.

Note that 'rewinding' might be impossible on pipes - once a line has been
printed, it is possible that only lines after it can be printed.
Line numbers start at 1.

Line range formats:
   N
                 line with line number N
   N-[M]
                 lines between lines N and M (inclusive)
                 if M not specified, goes until end of file
   N~[M]
                 line numbers around N
                 equivalent roughly to (N-M)-(N+M), therefore
                 displaying 2*M+1 lines
                 if M not specified, defaults to 3`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exitStatus = runRoot(cmd, args[0], args[1:])
	},
}

// runRoot parses the range spec, then feeds every input stream through the
// scan engine. It returns the process exit status.
func runRoot(cmd *cobra.Command, spec string, files []string) int {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		diag("%v", err)
		return exitUsage
	}
	applyFlagOverrides(cmd, &cfg)

	opts, pc, perr := buildOptions(cfg)
	if perr != nil {
		diag("%v", perr)
		return exitUsage
	}

	tab, err := linerange.Parse(spec)
	if err != nil {
		diag("%v", err)
		hint()
		return exitUsage
	}

	numberWidth, err := cfg.NumberWidth()
	if err != nil {
		diag("%v", err)
		return exitUsage
	}
	colorize := setupColor(cfg.Display.Color)
	out := output.NewWriter(os.Stdout, numberWidth, colorize)
	eng := engine.New(tab, opts, out, pc, func(format string, args ...any) {
		warn(format, args...)
	})

	if len(files) == 0 {
		files = []string{"-"}
	}

	failed := false
	premature := false
	for _, name := range files {
		res, err := processStream(eng, name)
		premature = premature || res.PrematureEOF
		if err == nil {
			continue
		}
		var werr *output.WriteError
		if errors.As(err, &werr) {
			diag("%v", werr)
			return exitFailure
		}
		var rerr *engine.RewindError
		if errors.As(err, &rerr) {
			diag("%v", rerr)
			hint()
		} else {
			diag("%v", err)
		}
		failed = true
	}

	if failed {
		return exitFailure
	}
	if cfg.Warnings.StrictEOF && premature {
		return exitFailure
	}
	return exitOK
}

// processStream opens (or picks stdin for) one input and runs the engine
// over it.
func processStream(eng *engine.Engine, name string) (engine.Result, error) {
	if name == "" || name == "-" {
		return eng.Process(reader.NewSource(os.Stdin), "-")
	}
	f, err := os.Open(name)
	if err != nil {
		return engine.Result{}, fmt.Errorf("%s: %v", name, underlying(err))
	}
	defer f.Close()
	return eng.Process(reader.NewSource(f), name)
}

// applyFlagOverrides lets explicitly set flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("line-numbers") {
		cfg.Display.LineNumbers = flagLineNumbers
	}
	if flags.Changed("file-names") {
		cfg.Display.FileNames = flagFileNames
	}
	if flags.Changed("warn-eof") {
		cfg.Warnings.WarnEOF = flagWarnEOF
	}
	if flags.Changed("strict-eof") {
		cfg.Warnings.StrictEOF = flagStrictEOF
	}
	if flags.Changed("lines-per-second") {
		cfg.Pacing.LinesPerSecond = flagLinesPerSecond
	}
	if flags.Changed("rewind-mode") {
		cfg.Engine.RewindMode = flagRewindMode
	}
	if flags.Changed("color") {
		cfg.Display.Color = flagColor
	}
}

func buildOptions(cfg config.Config) (engine.Options, *pacer.Pacer, error) {
	bufSize, err := cfg.BufferSize()
	if err != nil {
		return engine.Options{}, nil, err
	}
	threshold, err := cfg.BackscanThreshold()
	if err != nil {
		return engine.Options{}, nil, err
	}
	mode, err := cfg.RewindMode()
	if err != nil {
		return engine.Options{}, nil, err
	}
	opts := engine.Options{
		ShowLineNumbers:   cfg.Display.LineNumbers,
		ShowFileNames:     cfg.Display.FileNames,
		WarnEOF:           cfg.Warnings.WarnEOF,
		BufferSize:        bufSize,
		RewindMode:        mode,
		BackscanThreshold: threshold,
	}
	return opts, pacer.New(clock.RealClock{}, cfg.Pacing.LinesPerSecond), nil
}

// setupColor applies the color mode and reports whether output decorations
// should be tinted.
func setupColor(mode string) bool {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
	return !color.NoColor
}

var warnColor = color.New(color.FgYellow)

// diag prints an error diagnostic to stderr.
func diag(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "lrg: "+format+"\n", args...)
}

// warn prints a non-fatal diagnostic to stderr.
func warn(format string, args ...any) {
	warnColor.Fprintf(color.Error, "lrg: "+format+"\n", args...)
}

// hint points the user at --help after a range-related error.
func hint() {
	fmt.Fprintln(os.Stderr, "Try 'lrg --help' for more information.")
}

// underlying unwraps *os.PathError so diagnostics read "name: reason"
// instead of "name: open name: reason".
func underlying(err error) error {
	var perr *os.PathError
	if errors.As(err, &perr) {
		return perr.Err
	}
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitUsage)
	}
	os.Exit(exitStatus)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&flagLineNumbers, "line-numbers", "l", false, "print line numbers before each line")
	flags.BoolVarP(&flagFileNames, "file-names", "f", false, "print file names before each file")
	flags.BoolVarP(&flagWarnEOF, "warn-eof", "w", false, "print a warning when a line is not found")
	flags.BoolVar(&flagStrictEOF, "strict-eof", false, "treat premature end of file as a failure")
	flags.Float64Var(&flagLinesPerSecond, "lines-per-second", 0, "limit output rate (0 = unlimited)")
	flags.StringVar(&flagRewindMode, "rewind-mode", "auto", "backward repositioning strategy (auto, rewind, backscan)")
	flags.StringVar(&flagColor, "color", "auto", "color output decorations (auto, always, never)")
	flags.StringVar(&flagConfig, "config", "", "path to config file")
}
