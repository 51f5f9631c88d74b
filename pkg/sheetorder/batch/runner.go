// Package batch applies sheet order plans to every matching workbook under a set of directories.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/models"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/order"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/parser"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/planner"
	"golang.org/x/sync/errgroup"
)

// LockFilePrefix marks the transient lock files spreadsheet editors create next to open documents.
const LockFilePrefix = "~$"

// Workbook is the spreadsheet handle a Runner works through.
type Workbook interface {
	SheetNames() []string
	Reorder(order []string) error
	Save() error
	Close() error
}

// OpenFunc opens the workbook at path for reading and writing.
type OpenFunc func(path string) (Workbook, error)

// OpenExcelize opens workbooks with excelize.
func OpenExcelize(path string) (Workbook, error) {
	wb, err := parser.OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	return wb, nil
}

// Options configures a Runner.
type Options struct {
	// Workers is the number of files processed concurrently. Zero means runtime.NumCPU().
	Workers int
	// DryRun plans every file but never saves.
	DryRun bool
	// Open overrides the workbook opener. Nil means OpenExcelize.
	Open OpenFunc
}

// Runner walks target directories and reorders the sheets of matching workbooks.
type Runner struct {
	logger  *slog.Logger
	workers int
	dryRun  bool
	open    OpenFunc
}

// NewRunner creates a Runner.
func NewRunner(logger *slog.Logger, opts Options) *Runner {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	open := opts.Open
	if open == nil {
		open = OpenExcelize
	}
	return &Runner{
		logger:  logger,
		workers: workers,
		dryRun:  opts.DryRun,
		open:    open,
	}
}

// Run processes every file under dirs whose base name matches pattern.
// Per-file failures are recorded in the report and never abort the run; the
// returned error is non-nil only when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, dirs []string, pattern string, ranks order.RankMap) (*models.RunReport, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("file pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	paths := make(chan string, r.workers)
	outcomes := make(chan models.FileOutcome, r.workers)

	// Nested or linked target directories reach the same file more than
	// once; only the first walker to claim it queues it.
	claimed := newFileSet()

	// Walkers only stop on cancellation, so their error is ctx.Err().
	var walkers errgroup.Group
	for _, dir := range dirs {
		walkers.Go(func() error {
			return r.walk(ctx, dir, pattern, claimed, paths, outcomes)
		})
	}

	var workers errgroup.Group
	for i := 0; i < r.workers; i++ {
		workers.Go(func() error {
			for path := range paths {
				outcomes <- r.processFile(path, ranks)
			}
			return nil
		})
	}

	walkErr := make(chan error, 1)
	go func() {
		err := walkers.Wait()
		close(paths)
		_ = workers.Wait()
		close(outcomes)
		walkErr <- err
	}()

	report := models.NewRunReport(dirs)
	for o := range outcomes {
		report.Add(o)
	}
	report.Sort()

	return report, <-walkErr
}

// walk sends every matching file under dir to paths. A symlinked dir is
// resolved first since WalkDir never descends into a linked root; reported
// paths keep the dir prefix. Traversal errors become failed outcomes; only
// cancellation stops the walk early.
func (r *Runner) walk(ctx context.Context, dir, pattern string, claimed *fileSet, paths chan<- string, outcomes chan<- models.FileOutcome) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		r.logger.Warn("failed to resolve target directory", "path", dir, "error", err)
		outcomes <- models.FileOutcome{
			Path:   dir,
			Status: models.StatusFailed,
			Err:    NewFileError(dir, OpWalk, err),
		}
		return nil
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		display := path
		if rel, relErr := filepath.Rel(root, path); relErr == nil {
			display = filepath.Join(dir, rel)
		}
		if err != nil {
			r.logger.Warn("failed to walk path", "path", display, "error", err)
			outcomes <- models.FileOutcome{
				Path:   display,
				Status: models.StatusFailed,
				Err:    NewFileError(display, OpWalk, err),
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !Matches(pattern, d.Name()) {
			return nil
		}
		if !claimed.claim(path) {
			r.logger.Debug("file already queued from another target directory", "path", display)
			return nil
		}

		select {
		case paths <- display:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// Matches reports whether a file base name is a workbook candidate: it must
// match the glob pattern (braces such as *.{xlsx,xlsm} allowed) and must not
// be an editor lock file.
func Matches(pattern, name string) bool {
	if strings.HasPrefix(name, LockFilePrefix) {
		return false
	}
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// fileSet records the resolved paths already queued during one run.
type fileSet struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func newFileSet() *fileSet {
	return &fileSet{seen: make(map[string]struct{})}
}

// claim reports whether path is new, marking it seen.
func (s *fileSet) claim(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[path]; ok {
		return false
	}
	s.seen[path] = struct{}{}
	return true
}

// processFile opens, plans and, when needed, rewrites one workbook.
func (r *Runner) processFile(path string, ranks order.RankMap) (outcome models.FileOutcome) {
	outcome.Path = path

	wb, err := r.open(path)
	if err != nil {
		return r.fail(outcome, NewFileError(path, OpOpen, err))
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil {
			r.logger.Warn("failed to close workbook", "path", path, "error", cerr)
		}
	}()

	before := wb.SheetNames()
	outcome.Before = before
	plan := planner.Plan(before, ranks)

	if !plan.Changed {
		r.logger.Debug("sheet order unchanged", "path", path, "reason", plan.Reason, "sheets", strings.Join(before, ","))
		outcome.Status = models.StatusSkipped
		outcome.Reason = plan.Reason
		return outcome
	}

	outcome.After = plan.TargetOrder
	if r.dryRun {
		r.logger.Info("sheet order would change", "path", path,
			"before", strings.Join(before, ","), "after", strings.Join(plan.TargetOrder, ","))
		outcome.Status = models.StatusWouldRewrite
		return outcome
	}

	if err := wb.Reorder(plan.TargetOrder); err != nil {
		return r.fail(outcome, NewFileError(path, OpReorder, err))
	}
	if err := wb.Save(); err != nil {
		return r.fail(outcome, NewFileError(path, OpSave, err))
	}

	r.logger.Info("sheet order rewritten", "path", path,
		"before", strings.Join(before, ","), "after", strings.Join(plan.TargetOrder, ","))
	outcome.Status = models.StatusRewritten
	return outcome
}

func (r *Runner) fail(outcome models.FileOutcome, err error) models.FileOutcome {
	r.logger.Error("failed to process workbook", "path", outcome.Path, "error", err)
	outcome.Status = models.StatusFailed
	outcome.Err = err
	return outcome
}
