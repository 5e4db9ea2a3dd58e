package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"dirsize/internal/config"
	"dirsize/internal/logging"
	"dirsize/internal/model"
	"dirsize/internal/trace"
	"dirsize/internal/tui"
	"dirsize/internal/web"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"github.com/tcnksm/go-latest"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      model.RepoOwner,
		Repository: model.RepoName,
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Printf("\n✨ A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Printf("👉 Download it from https://github.com/%s/%s/releases\n", model.RepoOwner, model.RepoName)
	} else {
		fmt.Printf("✅ You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dirsize [options] [trace-file]\n\n")
		fmt.Fprintf(os.Stderr, "dirsize replays a shell session trace ($ cd / $ ls and their listings)\n")
		fmt.Fprintf(os.Stderr, "into a directory tree and reports directory sizes.\n")
		fmt.Fprintf(os.Stderr, "The trace is read from the file argument, or stdin when it is '-' or missing.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  dirsize input.txt             # TUI on a terminal, report otherwise\n")
		fmt.Fprintf(os.Stderr, "  dirsize -r -v input.txt       # Report with the full hierarchy\n")
		fmt.Fprintf(os.Stderr, "  dirsize -q < input.txt        # Print just the two answers\n")
		fmt.Fprintf(os.Stderr, "  dirsize --json -t 50000 in    # JSON with a custom threshold\n")
		fmt.Fprintf(os.Stderr, "  dirsize --web                 # Start Web Mode\n")
	}

	configFlag := pflag.String("config", "", "Config file (default ~/.dirsize/dirsize.yaml)")
	writeConfigFlag := pflag.String("write-config", "", "Write the default config to the given file and exit")
	thresholdFlag := pflag.Int64P("threshold", "t", 0, "Sum directories whose size is at most this")
	capacityFlag := pflag.Int64P("capacity", "c", 0, "Total disk capacity")
	requiredFlag := pflag.Int64P("required", "f", 0, "Free space required after deleting a directory")
	promptFlag := pflag.String("prompt", "", "Trace prompt: bash ($), zsh (%), root (#); detected when empty")
	lazyFlag := pflag.Bool("lazy-dirs", false, "Ignore 'dir' listing lines; directories appear only once entered")
	logLevelFlag := pflag.String("log-level", "", "Log level: debug, info, warn, error (overrides the config file)")

	jsonFlag := pflag.BoolP("json", "j", false, "Output raw analysis data as JSON")
	reportFlag := pflag.BoolP("report", "r", false, "Generate a text report (CLI mode)")
	quietFlag := pflag.BoolP("quiet", "q", false, "Print only the threshold total and the size to delete")
	outputFlag := pflag.StringP("output", "o", "", "Save report to the specified file (combined with --report)")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Include the directory hierarchy in the report")
	tuiFlag := pflag.Bool("tui", false, "Force the interactive browser")
	webFlag := pflag.BoolP("web", "w", false, "Start Web Mode (address from config, default :8080)")
	addrFlag := pflag.String("addr", "", "Listen address for --web")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for latest version")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("dirsize version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	if *writeConfigFlag != "" {
		if err := config.WriteDefault(*writeConfigFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", *writeConfigFlag)
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config file only when given.
	if pflag.Lookup("threshold").Changed {
		cfg.Space.Threshold = *thresholdFlag
	}
	if pflag.Lookup("capacity").Changed {
		cfg.Space.Capacity = *capacityFlag
	}
	if pflag.Lookup("required").Changed {
		cfg.Space.RequiredFree = *requiredFlag
	}
	if *promptFlag != "" {
		cfg.Trace.Prompt = *promptFlag
	}
	if *lazyFlag {
		cfg.Trace.ListedDirs = false
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}
	if *addrFlag != "" {
		cfg.Web.Addr = *addrFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)

	if *webFlag {
		if err := web.StartServer(cfg, logger); err != nil {
			logger.Error("web server stopped", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	path := pflag.Arg(0)
	if path == "" {
		path = trace.StdinPath
	}
	opts := optionsFromConfig(cfg)

	switch {
	case *jsonFlag:
		runJsonMode(path, opts, logger)
	case *quietFlag:
		runQuietMode(path, opts, logger)
	case *reportFlag:
		runReportMode(path, opts, logger, *outputFlag, *verboseFlag)
	case *tuiFlag:
		runTuiMode(path, opts)
	case path != trace.StdinPath && isatty.IsTerminal(os.Stdout.Fd()):
		// Default: TUI
		runTuiMode(path, opts)
	default:
		runReportMode(path, opts, logger, *outputFlag, *verboseFlag)
	}
}

func optionsFromConfig(cfg config.Config) trace.Options {
	return trace.Options{
		Threshold:    cfg.Space.Threshold,
		Capacity:     cfg.Space.Capacity,
		RequiredFree: cfg.Space.RequiredFree,
		ListedDirs:   cfg.Trace.ListedDirs,
		Shell:        trace.ShellByName(cfg.Trace.Prompt),
	}
}

// analyze runs the whole pipeline; on failure it prints the error with
// trace context and exits.
func analyze(path string, opts trace.Options, logger *slog.Logger) model.AnalysisResult {
	result, lines, err := trace.NewAnalyzer(opts, logger).AnalyzeFile(path)
	if err != nil {
		logger.Debug("analysis failed", slog.String("trace", path), slog.String("error", err.Error()))
		fmt.Fprint(os.Stderr, trace.GenerateErrorReport(err, lines))
		os.Exit(1)
	}
	return result
}

func runReportMode(path string, opts trace.Options, logger *slog.Logger, outputFile string, verbose bool) {
	result := analyze(path, opts, logger)
	report := trace.GenerateReport(result, verbose)

	if outputFile != "" {
		err := os.WriteFile(outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report to %s: %v\n", outputFile, err)
			os.Exit(1)
		}
		fmt.Printf("Report saved to %s\n", outputFile)
	} else {
		fmt.Println(report)
	}
}

func runQuietMode(path string, opts trace.Options, logger *slog.Logger) {
	result := analyze(path, opts, logger)
	fmt.Println(result.TotalAtMost)
	fmt.Println(result.MinToDelete)
}

func runJsonMode(path string, opts trace.Options, logger *slog.Logger) {
	result := analyze(path, opts, logger)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

func runTuiMode(path string, opts trace.Options) {
	m := tui.InitialModel(path, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
}
