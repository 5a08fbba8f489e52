// Package runner drives a lint run: it discovers Python files, loads
// them into a FileSet, and checks them in parallel with optional result
// caching and progress reporting.
package runner

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"simplint/internal/cache"
	"simplint/internal/config"
	"simplint/internal/diag"
	"simplint/internal/engine"
	"simplint/internal/observ"
	"simplint/internal/source"
)

// Status tracks the lifecycle of one file inside a run.
type Status uint8

const (
	StatusQueued Status = iota
	StatusChecking
	StatusCached
	StatusDone
	StatusError
)

// Event is a progress notification consumed by the terminal UI.
type Event struct {
	Path   string
	Status Status
}

// Options configures a run. Config is required, everything else has a
// working zero value.
type Options struct {
	Config *config.Config
	// Jobs limits worker goroutines; <=0 means GOMAXPROCS.
	Jobs int
	// MaxDiagnostics caps each file's bag; <=0 falls back to the
	// configured lint.max-diagnostics.
	MaxDiagnostics int
	// Cache enables per-file result reuse when non-nil.
	Cache *cache.Cache
	// Timer records run phases when non-nil.
	Timer *observ.Timer
	// Events receives per-file progress when non-nil. The channel is
	// closed by the runner when the run finishes.
	Events chan<- Event
	// Debug, when non-nil, receives rule-level notes about skipped
	// input. The sink must be safe for concurrent use.
	Debug func(format string, args ...any)
}

// FileResult is the outcome for a single file. Either Err is set (the
// file could not be read) or Bag holds its diagnostics.
type FileResult struct {
	Path   string
	FileID source.FileID
	Bag    *diag.Bag
	Cached bool
	Err    error
}

// Result is a full run over a set of files. Files is ordered by path.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Merged collapses the per-file bags into one bag in file order,
// capped at max diagnostics.
func (r *Result) Merged(max int) *diag.Bag {
	out := diag.NewBag(max)
	for _, fr := range r.Files {
		if fr.Bag == nil {
			continue
		}
		out.Merge(fr.Bag)
	}
	return out
}

// ListPyFiles returns the sorted list of all *.py files under dir.
// Hidden directories and virtualenv-style trees are skipped.
func ListPyFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != dir && (strings.HasPrefix(name, ".") || name == "__pycache__" || name == "venv" || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".py") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// CheckDir lints every *.py file under dir.
func CheckDir(ctx context.Context, dir string, opts Options) (*Result, error) {
	timer := opts.Timer
	var discoverIdx int
	if timer != nil {
		discoverIdx = timer.Begin("discover")
	}
	files, err := ListPyFiles(dir)
	if timer != nil {
		timer.End(discoverIdx, plural(len(files), "file"))
	}
	if err != nil {
		closeEvents(opts)
		return nil, err
	}
	return CheckFiles(ctx, dir, files, opts)
}

// CheckFiles lints an explicit list of paths. baseDir anchors relative
// path display.
func CheckFiles(ctx context.Context, baseDir string, paths []string, opts Options) (*Result, error) {
	defer closeEvents(opts)

	timer := opts.Timer
	fileSet := source.NewFileSetWithBase(baseDir)
	result := &Result{FileSet: fileSet, Files: make([]FileResult, len(paths))}
	if len(paths) == 0 {
		return result, nil
	}

	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = opts.Config.Lint.MaxDiagnostics
	}

	// Preload serially: FileSet appends are not synchronized and the
	// checking phase wants stable FileIDs anyway.
	var loadIdx int
	if timer != nil {
		loadIdx = timer.Begin("load")
	}
	fileIDs := make(map[string]source.FileID, len(paths))
	loadErrors := make(map[string]error, len(paths))
	for _, path := range paths {
		emit(ctx, opts.Events, Event{Path: path, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}
	if timer != nil {
		timer.End(loadIdx, "")
	}

	var cfgDigest [32]byte
	if opts.Cache != nil {
		d, err := cache.ConfigDigest(opts.Config)
		if err != nil {
			return nil, err
		}
		cfgDigest = d
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(paths) {
		jobs = len(paths)
	}

	var checkIdx int
	if timer != nil {
		checkIdx = timer.Begin("check")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func(i int, path string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				if loadErr, hadError := loadErrors[path]; hadError {
					result.Files[i] = FileResult{Path: path, Err: loadErr}
					emit(gctx, opts.Events, Event{Path: path, Status: StatusError})
					return nil
				}

				fileID := fileIDs[path]
				file := fileSet.Get(fileID)
				bag := diag.NewBag(maxDiagnostics)

				if opts.Cache != nil {
					key := cache.Key(file.Hash, cfgDigest)
					if findings, ok, err := opts.Cache.Get(key); err == nil && ok {
						for _, d := range cache.Decode(findings, fileID) {
							bag.Add(d)
						}
						result.Files[i] = FileResult{Path: path, FileID: fileID, Bag: bag, Cached: true}
						emit(gctx, opts.Events, Event{Path: path, Status: StatusCached})
						return nil
					}
				}

				emit(gctx, opts.Events, Event{Path: path, Status: StatusChecking})
				// One fresh engine per file keeps runs fully independent.
				eng := engine.New(opts.Config)
				eng.Debug = opts.Debug
				if err := eng.Check(gctx, file, diag.BagReporter{Bag: bag}); err != nil {
					result.Files[i] = FileResult{Path: path, FileID: fileID, Err: err}
					emit(gctx, opts.Events, Event{Path: path, Status: StatusError})
					return nil
				}

				if opts.Cache != nil {
					key := cache.Key(file.Hash, cfgDigest)
					// A failed write never fails the run.
					_ = opts.Cache.Put(key, cache.Encode(bag.Items()))
				}

				result.Files[i] = FileResult{Path: path, FileID: fileID, Bag: bag}
				emit(gctx, opts.Events, Event{Path: path, Status: StatusDone})
				return nil
			}
		}(i, path))
	}

	err := g.Wait()
	if timer != nil {
		timer.End(checkIdx, plural(len(paths), "file"))
	}
	if err != nil {
		return result, err
	}
	return result, nil
}

func emit(ctx context.Context, ch chan<- Event, ev Event) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	case <-ctx.Done():
	}
}

func closeEvents(opts Options) {
	if opts.Events != nil {
		close(opts.Events)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
