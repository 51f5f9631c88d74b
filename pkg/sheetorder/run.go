package sheetorder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/batch"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/config"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/models"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/order"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/targets"
	"golang.org/x/sync/errgroup"
)

// Run loads the configuration at configPath and reorders the sheets of every
// matching workbook. Setup problems are returned as *SetupError before any
// file is touched; per-file failures only appear in the report.
func Run(ctx context.Context, configPath string, opts Options) (*models.RunReport, error) {
	logger := opts.logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, NewSetupError(StageConfig, err)
	}
	logger.Info("configuration loaded", "path", configPath, "config", cfg.String())

	projectRoot, err := resolveProjectRoot(opts.ProjectRoot)
	if err != nil {
		return nil, NewSetupError(StageConfig, err)
	}

	defaultTargetDir := filepath.Join(projectRoot, cfg.DefaultTargetDirectory)
	if _, err := os.Stat(defaultTargetDir); err != nil {
		return nil, NewSetupError(StageTargets, fmt.Errorf("%w: %s: %w", ErrTargetDirectoryNotFound, defaultTargetDir, err))
	}

	// Target resolution and order loading are independent.
	var (
		dirs  []string
		ranks order.RankMap
	)
	var g errgroup.Group
	g.Go(func() error {
		resolved, err := targets.NewResolver(logger).Resolve(cfg, projectRoot, defaultTargetDir)
		if err != nil {
			return NewSetupError(StageTargets, err)
		}
		dirs = resolved
		return nil
	})
	g.Go(func() error {
		loaded, err := loadOrder(filepath.Join(projectRoot, cfg.SheetOrderFileRelativePath))
		if err != nil {
			return NewSetupError(StageOrder, err)
		}
		ranks = loaded
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, dir := range dirs {
		logger.Info("target directory", "index", i, "path", dir)
	}
	if len(dirs) == 0 {
		logger.Warn("no target directories resolved", "default", defaultTargetDir)
	}

	runner := batch.NewRunner(logger, batch.Options{
		Workers: opts.Workers,
		DryRun:  opts.DryRun,
	})
	report, err := runner.Run(ctx, dirs, cfg.GlobFileNamePattern, ranks)
	if err != nil {
		return report, err
	}

	logger.Info("run complete",
		"processed", report.Processed(),
		"rewritten", report.Rewritten,
		"would_rewrite", report.WouldRewrite,
		"skipped", report.Skipped,
		"failed", report.Failed)
	return report, nil
}

func loadOrder(path string) (order.RankMap, error) {
	ranks, err := order.LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrOrderFileNotFound, path)
	}
	return ranks, err
}

func resolveProjectRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}
	return filepath.Abs(root)
}
