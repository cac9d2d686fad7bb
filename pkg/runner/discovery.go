package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/gobwas/glob"
)

// markdownLanguage is the classifier's name for Markdown.
const markdownLanguage = "Markdown"

// Discover finds Markdown files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	filter, err := newFilter(workDir, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			// Explicit files skip the extension check but honour excludes.
			if !filter.excluded(absPath, false) {
				add(absPath)
			}
			continue
		}

		discovered, err := walkDirectory(ctx, absPath, filter)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	sort.Strings(files)

	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// filter decides which walked paths are linted.
type filter struct {
	workDir    string
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
	vendored   bool
	follow     bool
}

func newFilter(workDir string, opts Options) (*filter, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include pattern: %w", err)
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude pattern: %w", err)
	}

	extensions := make([]string, 0, len(opts.effectiveExtensions()))
	for _, ext := range opts.effectiveExtensions() {
		extensions = append(extensions, strings.ToLower(ext))
	}

	return &filter{
		workDir:    workDir,
		extensions: extensions,
		include:    include,
		exclude:    exclude,
		vendored:   opts.IncludeVendored,
		follow:     opts.FollowSymlinks,
	}, nil
}

// compileGlobs compiles patterns with '/' as the separator. A leading "**/"
// also matches at the top level.
func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		variants := []string{pattern}
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			variants = append(variants, rest)
		}
		for _, p := range variants {
			g, err := glob.Compile(p, '/')
			if err != nil {
				return nil, fmt.Errorf("%q: %w", pattern, err)
			}
			globs = append(globs, g)
		}
	}
	return globs, nil
}

func (f *filter) rel(path string) string {
	relPath, err := filepath.Rel(f.workDir, path)
	if err != nil {
		relPath = path
	}
	return filepath.ToSlash(relPath)
}

// excluded reports whether path matches an exclude glob. Directories also
// match patterns such as "vendor/**".
func (f *filter) excluded(path string, isDir bool) bool {
	relPath := f.rel(path)
	candidates := []string{relPath, filepath.Base(path)}
	if isDir {
		candidates = append(candidates, relPath+"/")
	}
	return matchAny(f.exclude, candidates)
}

func (f *filter) skipDir(path, root string) bool {
	if path == root {
		return false
	}
	if strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}
	if !f.vendored && enry.IsVendor(f.rel(path)+"/") {
		return true
	}
	return f.excluded(path, true)
}

// matchesFile checks if a walked file is Markdown and passes the globs.
func (f *filter) matchesFile(path string) bool {
	if !f.isMarkdown(path) {
		return false
	}
	if f.excluded(path, false) {
		return false
	}
	if len(f.include) > 0 && !matchAny(f.include, []string{f.rel(path), filepath.Base(path)}) {
		return false
	}
	return true
}

func (f *filter) isMarkdown(path string) bool {
	if slices.Contains(f.extensions, strings.ToLower(filepath.Ext(path))) {
		return true
	}
	return slices.Contains(enry.GetLanguagesByExtension(path, nil, nil), markdownLanguage)
}

func matchAny(globs []glob.Glob, candidates []string) bool {
	for _, g := range globs {
		for _, c := range candidates {
			if g.Match(c) {
				return true
			}
		}
	}
	return false
}

// walkDirectory recursively walks a directory and returns matching Markdown files.
func walkDirectory(ctx context.Context, root string, f *filter) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if f.skipDir(path, root) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, statErr := os.Stat(realPath)
			if statErr != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !f.follow || f.skipDir(path, root) {
					return nil
				}
				// Walk the target; WalkDir does not follow a symlinked root.
				subFiles, err := walkDirectory(ctx, realPath, f)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if f.matchesFile(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
