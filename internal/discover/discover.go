package discover

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/DeusData/viewcode/internal/fqn"
	"github.com/DeusData/viewcode/internal/widget"
)

// IgnoreFileName lists extra glob patterns to skip, one per line.
const IgnoreFileName = ".viewcodeignore"

// ignoredDirs are directory names never searched for dumps.
var ignoredDirs = map[string]bool{
	".build": true, ".cache": true, ".git": true, ".hg": true,
	".idea": true, ".svn": true, ".swiftpm": true, ".tmp": true,
	".vscode": true, "Carthage": true, "DerivedData": true,
	"build": true, "node_modules": true, "out": true, "Pods": true,
	"tmp": true, "vendor": true, "xcuserdata": true,
}

// ignoredFiles are JSON/YAML names that are tool configs, not dumps.
var ignoredFiles = map[string]bool{
	".viewcode.yaml":      true,
	".swiftlint.yml":      true,
	".swiftformat.yml":    true,
	".travis.yml":         true,
	"Package.resolved":    true,
	"package.json":        true,
	"package-lock.json":   true,
	"Contents.json":       true,
	"codecov.yml":         true,
	"docker-compose.yml":  true,
	"docker-compose.yaml": true,
}

// DumpFile is a discovered widget dump.
type DumpFile struct {
	Path    string        // absolute path
	RelPath string        // slash-separated, relative to the search root
	Format  widget.Format // decoded by widget.Load
	Screen  string        // output name derived from RelPath
}

// Options configures discovery.
type Options struct {
	IgnoreFile string // path to an ignore file (optional)
}

func shouldSkip(name, rel string, extraIgnore []string) bool {
	for _, pattern := range extraIgnore {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}

// Discover walks root and returns dump files sorted by RelPath.
func Discover(ctx context.Context, root string, opts *Options) ([]DumpFile, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var extraIgnore []string
	if opts != nil && opts.IgnoreFile != "" {
		extraIgnore, _ = loadIgnoreFile(opts.IgnoreFile)
	} else {
		extraIgnore, _ = loadIgnoreFile(filepath.Join(root, IgnoreFileName))
	}

	var files []DumpFile
	err = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			return filepath.SkipDir
		}

		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if path != root && (ignoredDirs[info.Name()] || shouldSkip(info.Name(), rel, extraIgnore)) {
				return filepath.SkipDir
			}
			return nil
		}
		if ignoredFiles[info.Name()] || strings.HasPrefix(info.Name(), ".") {
			return nil
		}
		if shouldSkip(info.Name(), rel, extraIgnore) {
			return nil
		}
		format, ok := widget.FormatForPath(path)
		if !ok {
			return nil
		}
		files = append(files, DumpFile{
			Path:    path,
			RelPath: rel,
			Format:  format,
			Screen:  fqn.ScreenName(rel),
		})
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, err
}

func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, scanner.Err()
}
