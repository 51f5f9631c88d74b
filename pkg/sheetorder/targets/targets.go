// Package targets decides which directories of a project are scanned for workbooks.
package targets

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/config"
	"github.com/ukaji3/sheetorder-go/pkg/sheetorder/parser"
)

// IncludeSeparator splits the including attribute of a descriptor entry.
const IncludeSeparator = "|"

// ErrEntryNotFound indicates the descriptor has no entry for the configured package.
var ErrEntryNotFound = errors.New("descriptor entry not found")

// DescriptorError reports a build descriptor that could not be used.
type DescriptorError struct {
	// Path is the descriptor file.
	Path string
	// Package is the entry path that was looked up.
	Package string
	Err     error
}

func (e *DescriptorError) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("descriptor %s (package %q): %v", e.Path, e.Package, e.Err)
	}
	return fmt.Sprintf("descriptor %s: %v", e.Path, e.Err)
}

func (e *DescriptorError) Unwrap() error {
	return e.Err
}

// Resolver resolves the target directory set of a run.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a Resolver logging through logger.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logger}
}

// Resolve returns the ordered, distinct absolute directories to scan.
//
// Rules, first match wins:
//  1. package filtering disabled: every child directory of defaultTargetDir
//  2. no descriptor configured: as 1
//  3. descriptor missing on disk: as 1
//  4. the descriptor entry for the default package lists includes: those
//     includes, minus excluded ones, that exist as directories, in listed order;
//     an entry without includes falls back to 1.
func (r *Resolver) Resolve(cfg *config.Config, projectRoot, defaultTargetDir string) ([]string, error) {
	if !cfg.OnlyBuildTargetPackage {
		return r.children(defaultTargetDir, "package filtering disabled")
	}
	if !cfg.HasDescriptor() {
		return r.children(defaultTargetDir, "no descriptor configured")
	}

	descriptorPath := filepath.Join(projectRoot, cfg.DescriptorFileRelativePath)
	if _, err := os.Stat(descriptorPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r.children(defaultTargetDir, "descriptor not found")
		}
		return nil, &DescriptorError{Path: descriptorPath, Err: err}
	}

	descriptor, err := parser.ReadDescriptor(descriptorPath)
	if err != nil {
		return nil, &DescriptorError{Path: descriptorPath, Err: err}
	}

	entry, ok := descriptor.FindEntry(cfg.DefaultTargetPackage)
	if !ok {
		return nil, &DescriptorError{Path: descriptorPath, Package: cfg.DefaultTargetPackage, Err: ErrEntryNotFound}
	}

	including, _ := entry.Attribute(parser.AttrIncluding)
	if including == "" {
		return r.children(defaultTargetDir, "descriptor entry has no includes")
	}

	return r.includes(cfg, projectRoot, including), nil
}

// includes resolves each include candidate under projectRoot/defaultTargetPackage.
func (r *Resolver) includes(cfg *config.Config, projectRoot, including string) []string {
	base := filepath.Join(projectRoot, cfg.DefaultTargetPackage)
	seen := make(map[string]struct{})
	var dirs []string

	for _, candidate := range strings.Split(including, IncludeSeparator) {
		if candidate == "" {
			continue
		}
		if cfg.Excludes(candidate) {
			r.logger.Debug("include excluded", "candidate", candidate)
			continue
		}

		dir := filepath.Join(base, candidate)
		if !isDir(dir) {
			r.logger.Debug("include is not an existing directory", "candidate", candidate, "path", dir)
			continue
		}
		if _, dup := seen[dir]; dup {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}

// children lists the immediate child directories of dir in lexical order.
func (r *Resolver) children(dir, why string) ([]string, error) {
	r.logger.Debug("scanning all child directories", "dir", dir, "reason", why)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list target directory %s: %w", dir, err)
	}

	var dirs []string
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		if isDir(p) {
			dirs = append(dirs, p)
		}
	}
	return dirs, nil
}

// isDir follows symlinks; the batch walker resolves linked targets before walking.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
