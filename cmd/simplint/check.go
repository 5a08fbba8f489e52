package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"simplint/internal/cache"
	"simplint/internal/config"
	"simplint/internal/diag"
	"simplint/internal/diagfmt"
	"simplint/internal/observ"
	"simplint/internal/runner"
)

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Lint Python files for simplification opportunities",
	Long:  `Check a Python file or every *.py file under a directory and report code that can be simplified`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("cache", false, "enable persistent result cache")
	checkCmd.Flags().String("cache-dir", "", "cache directory (default: XDG cache)")
	checkCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	checkCmd.Flags().String("config", "", "explicit simplint.toml path (default: discover upward)")
	checkCmd.Flags().Bool("debug", false, "log skipped rule input to stderr")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 && args[0] != "" {
		path = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	cacheDir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return fmt.Errorf("failed to get debug flag: %w", err)
	}
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	baseDir := path
	if !st.IsDir() {
		baseDir = filepath.Dir(path)
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, _, err = config.Discover(baseDir)
	}
	if err != nil {
		return err
	}

	opts := runner.Options{
		Config:         cfg,
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
	}
	if debug {
		var mu sync.Mutex
		opts.Debug = func(format string, args ...any) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(os.Stderr, "simplint: debug: "+format+"\n", args...)
		}
	}

	if useCache {
		var c *cache.Cache
		if cacheDir != "" {
			c, err = cache.OpenAt(cacheDir)
		} else {
			c, err = cache.Open("simplint")
		}
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = c
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	var files []string
	if st.IsDir() {
		files, err = runner.ListPyFiles(path)
		if err != nil {
			return err
		}
	} else {
		files = []string{path}
	}

	useTUI := format == "pretty" && !quiet && shouldUseTUI(mode) && len(files) > 1
	var res *runner.Result
	if useTUI {
		res, err = runCheckWithUI(cmd.Context(), "simplint check", files, baseDir, opts)
	} else {
		res, err = runner.CheckFiles(cmd.Context(), baseDir, files, opts)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	exit := 0
	for _, fr := range res.Files {
		if fr.Err != nil {
			fmt.Fprintf(os.Stderr, "simplint: %s: %v\n", fr.Path, fr.Err)
			exit = 1
		}
	}

	limit := maxDiagnostics
	if limit <= 0 {
		limit = cfg.Lint.MaxDiagnostics
	}
	bag := res.Merged(limit)
	bag.Sort()
	if bag.Len() > 0 {
		exit = 1
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   2,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
		if !quiet {
			fmt.Fprintf(os.Stdout, "%s in %s\n", plural(bag.Len(), "finding"), plural(len(res.Files), "file"))
		}
	case "short":
		items := bag.Items()
		ptrs := make([]*diag.Diagnostic, len(items))
		for i := range items {
			ptrs[i] = &items[i]
		}
		output := diag.FormatShortDiagnostics(ptrs, res.FileSet, withNotes)
		if output != "" {
			fmt.Fprintln(os.Stdout, output)
		}
	case "json":
		if err := diagfmt.JSON(os.Stdout, bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	case "sarif":
		meta := diagfmt.SarifRunMeta{
			ToolName:       "simplint",
			ToolVersion:    "0.1.0",
			InvocationArgs: args,
		}
		if err := diagfmt.Sarif(os.Stdout, bag, res.FileSet, meta); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if showTimings && timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if exit != 0 {
		// Findings are already printed; keep cobra from adding usage noise.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
