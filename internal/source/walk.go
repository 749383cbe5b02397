package source

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/fzmatch/internal/debug"
	fzerrors "github.com/standardbeagle/fzmatch/internal/errors"
	"github.com/standardbeagle/fzmatch/pkg/pathutil"
)

// WalkOptions selects the files WalkFiles returns. Patterns use doublestar
// syntax and are matched against slash-separated paths relative to the root.
type WalkOptions struct {
	Include []string // empty includes everything
	Exclude []string
	// Gitignore adds the root .gitignore to Exclude
	Gitignore bool
	// Icons prefixes every path with its file-type icon
	Icons bool
}

// WalkFiles lists the regular files under root as candidates, in lexical
// order. Excluded directories are not descended into.
func WalkFiles(ctx context.Context, root string, opts WalkOptions) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fzerrors.NewFileError("resolve", root, err)
	}

	if err := validatePatterns(opts.Include, opts.Exclude); err != nil {
		return nil, err
	}

	filter := newPathFilter(opts.Include, opts.Exclude)
	if opts.Gitignore {
		ignored, negated, err := loadGitignore(absRoot)
		if err != nil {
			return nil, err
		}
		filter.exclude = append(filter.exclude, ignored...)
		filter.reinclude = negated
	}

	var (
		files   []string
		skipped []error
	)
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable entries are skipped, the root itself is not
			if path == absRoot {
				return err
			}
			skipped = append(skipped, fzerrors.NewFileError("walk", path, err))
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == absRoot {
			return nil
		}

		rel := pathutil.ToSlashRelative(path, absRoot)
		if d.IsDir() {
			if filter.skipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if filter.keep(rel) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fzerrors.NewFileError("walk", root, err)
	}

	if err := fzerrors.NewMultiError(skipped).ErrOrNil(); err != nil {
		debug.LogSource("skipped unreadable entries under %s: %v\n", absRoot, err)
	}

	candidates := pathutil.ToRelativePaths(files, absRoot)
	if opts.Icons {
		for i, c := range candidates {
			candidates[i] = PrependIcon(c)
		}
	}

	debug.LogSource("walked %s: %d files\n", absRoot, len(candidates))
	return candidates, nil
}

// validatePatterns reports every malformed include or exclude pattern at once
func validatePatterns(include, exclude []string) error {
	var errs []error
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fzerrors.NewInputError("include", pattern, doublestar.ErrBadPattern))
		}
	}
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = append(errs, fzerrors.NewInputError("exclude", pattern, doublestar.ErrBadPattern))
		}
	}
	return fzerrors.NewMultiError(errs).ErrOrNil()
}

type pathFilter struct {
	include   []string
	exclude   []string
	reinclude []string
}

func newPathFilter(include, exclude []string) *pathFilter {
	return &pathFilter{
		include: append([]string(nil), include...),
		exclude: append([]string(nil), exclude...),
	}
}

// skipDir reports whether nothing under dir can be kept
func (f *pathFilter) skipDir(dir string) bool {
	for _, pattern := range f.exclude {
		base := strings.TrimSuffix(pattern, "/**")
		if base == pattern {
			continue
		}
		if matched, _ := doublestar.Match(base, dir); matched {
			return true
		}
	}
	return false
}

func (f *pathFilter) keep(path string) bool {
	if matchAny(f.exclude, path) && !matchAny(f.reinclude, path) {
		return false
	}
	return len(f.include) == 0 || matchAny(f.include, path)
}

// matchAny skips malformed patterns, which can only come from .gitignore
func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

// loadGitignore reads root/.gitignore as doublestar patterns. A missing file
// yields no patterns.
func loadGitignore(root string) (exclude, reinclude []string, err error) {
	path := filepath.Join(root, ".gitignore")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fzerrors.NewFileError("open", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		negate := strings.HasPrefix(line, "!")
		patterns := gitignorePatterns(strings.TrimPrefix(line, "!"))
		if negate {
			reinclude = append(reinclude, patterns...)
		} else {
			exclude = append(exclude, patterns...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fzerrors.NewFileError("read", path, err)
	}
	return exclude, reinclude, nil
}

// gitignorePatterns converts one .gitignore rule to doublestar patterns.
// A rule with a leading or inner slash is anchored at the root; any other
// rule matches at every depth. Rules also cover the contents of a matching
// directory, and a trailing slash restricts the rule to directories.
func gitignorePatterns(rule string) []string {
	dirOnly := strings.HasSuffix(rule, "/")
	rule = strings.TrimSuffix(rule, "/")
	anchored := strings.Contains(rule, "/")
	rule = strings.TrimPrefix(rule, "/")
	if rule == "" {
		return nil
	}

	base := rule
	if !anchored && !strings.HasPrefix(rule, "**/") {
		base = "**/" + rule
	}
	if dirOnly {
		return []string{base + "/**"}
	}
	return []string{base, base + "/**"}
}
