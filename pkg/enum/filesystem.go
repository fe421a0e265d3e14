// Package enum discovers candidate source files under a root path.
package enum

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/NickCirv/perf-x-ray/pkg/lang"
)

// Config controls filesystem discovery.
type Config struct {
	// Root is the starting path for the walk.
	Root string

	// IgnoreNames are extra file or directory base names to skip,
	// in addition to the fixed skip-set.
	IgnoreNames []string

	// MaxFileSize skips files larger than this many bytes (0 = no limit).
	MaxFileSize int64

	// UseGitignore loads <root>/.gitignore and skips matching paths.
	UseGitignore bool
}

// skipDirs are never descended into regardless of caller configuration:
// version control, dependency trees, build output, and caches.
var skipDirs = map[string]bool{
	".git":             true,
	".hg":              true,
	".svn":             true,
	"node_modules":     true,
	"vendor":           true,
	"bower_components": true,
	"dist":             true,
	"build":            true,
	"out":              true,
	"target":           true,
	"__pycache__":      true,
	".venv":            true,
	"venv":             true,
	".tox":             true,
	"coverage":         true,
	".next":            true,
	".nuxt":            true,
	".cache":           true,
	".idea":            true,
	".vscode":          true,
}

// Discover walks the tree under cfg.Root and returns the candidate file
// paths in walk order: supported extensions only, hidden entries (other
// than the root itself) excluded, skip-set and caller-supplied ignore
// names excluded.
func Discover(cfg Config) ([]string, error) {
	ignoreNames := make(map[string]bool, len(cfg.IgnoreNames))
	for _, name := range cfg.IgnoreNames {
		ignoreNames[name] = true
	}

	var ignore *gitignore.GitIgnore
	if cfg.UseGitignore {
		gitignorePath := filepath.Join(cfg.Root, ".gitignore")
		if _, err := os.Stat(gitignorePath); err == nil {
			ignore, _ = gitignore.CompileIgnoreFile(gitignorePath)
		}
	}

	var files []string
	err := filepath.Walk(cfg.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// An unreadable root is fatal; an unreadable entry further
			// down is skipped so one bad directory cannot abort the walk.
			if path == cfg.Root {
				return err
			}
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		name := info.Name()
		if info.IsDir() {
			if path == cfg.Root {
				return nil
			}
			if skipDirs[name] || ignoreNames[name] || isHidden(name) {
				return filepath.SkipDir
			}
			return nil
		}

		if ignoreNames[name] || isHidden(name) {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return nil
		}
		if cfg.MaxFileSize > 0 && info.Size() > cfg.MaxFileSize {
			return nil
		}
		if !lang.Supported(path) {
			return nil
		}

		if ignore != nil {
			relPath, err := filepath.Rel(cfg.Root, path)
			if err != nil {
				return err
			}
			if ignore.MatchesPath(relPath) {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// isHidden checks if a base name is hidden (starts with a dot). The special
// entries "." and ".." are not considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
