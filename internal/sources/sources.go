// Package sources discovers the C/C++ files of a target program and derives
// the metrics the analysis request carries: lines of pure code and function
// count. It is a collaborator of the scoring core, not part of it.
package sources

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

var sourceFileExtensions = map[string]bool{
	".c":   true,
	".cc":  true,
	".cpp": true,
	".cxx": true,
	".h":   true,
	".hpp": true,
}

// Directories that hold build output rather than sources; always skipped.
var skippedDirNames = map[string]bool{
	"build":             true,
	"cmake-build-debug": true,
	"compile":           true,
	"softwipe_build":    true,
	"infer_build":       true,
	"infer-out":         true,
}

// IsSourceFile reports whether path looks like a C/C++ source or header.
func IsSourceFile(path string) bool {
	return sourceFileExtensions[strings.ToLower(filepath.Ext(path))]
}

// Collect walks programDir and returns the absolute paths of all source
// files, skipping build directories and anything matching the
// gitignore-style exclude patterns. The matched exclusion paths are
// returned as well so tools that scan the directory themselves can skip
// them too.
func Collect(programDir string, excludePatterns []string) (files []string, excluded []string, err error) {
	absDir, err := filepath.Abs(programDir)
	if err != nil {
		return nil, nil, err
	}

	matcher := ignore.CompileIgnoreLines(excludePatterns...)

	err = filepath.Walk(absDir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, relErr := filepath.Rel(absDir, path)
		if relErr != nil {
			return relErr
		}

		if info.IsDir() {
			if path == absDir {
				return nil
			}
			if skippedDirNames[info.Name()] || matcher.MatchesPath(rel) {
				excluded = append(excluded, path)
				return filepath.SkipDir
			}
			return nil
		}

		if !IsSourceFile(path) {
			return nil
		}
		if matcher.MatchesPath(rel) {
			excluded = append(excluded, path)
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return files, excluded, nil
}

// LineIsComment reports whether a line is purely a comment, tracking block
// comment state across lines. inBlock must carry the returned state into
// the next call.
func LineIsComment(line string, inBlock bool) (isComment bool, stillInBlock bool) {
	stripped := strings.TrimSpace(line)

	if inBlock {
		if strings.HasSuffix(stripped, "*/") {
			return true, false
		}
		return true, true
	}

	if strings.HasPrefix(stripped, "//") {
		return true, false
	}
	if strings.HasPrefix(stripped, "/*") {
		if strings.HasSuffix(stripped, "*/") && len(stripped) >= 4 {
			return true, false
		}
		return true, true
	}

	return false, false
}

// CountLinesInFile counts the pure code lines in one file, ignoring blank
// and comment lines.
func CountLinesInFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	inBlock := false
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		isComment, next := LineIsComment(line, inBlock)
		inBlock = next
		if isComment || strings.TrimSpace(line) == "" {
			continue
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}

	return count, nil
}

// CountLines counts the pure code lines across all files.
func CountLines(files []string) (int, error) {
	total := 0
	for _, f := range files {
		n, err := CountLinesInFile(f)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// IsTestFile reports whether a source file looks like a unit test file.
func IsTestFile(path string) bool {
	return strings.Contains(strings.ToLower(filepath.Base(path)), "test")
}
