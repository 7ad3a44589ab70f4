package service

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// badgePattern matches a previously written score badge so an update
// replaces it instead of stacking a second one.
var badgePattern = regexp.MustCompile(`\[!\[Softwipe Score\]\(https://img\.shields\.io/badge/softwipe-[0-9.]+-blue\)\]\([^)]*\)`)

const badgeTarget = "https://github.com/adrianzap/softwipe/wiki/Code-Quality-Benchmark"

// BadgeMarkdown renders the score badge for embedding in a README.
func BadgeMarkdown(score float64) string {
	return fmt.Sprintf("[![Softwipe Score](https://img.shields.io/badge/softwipe-%.1f-blue)](%s)", score, badgeTarget)
}

// WriteBadge inserts the score badge into the Markdown file, or updates the
// existing badge in place. A new badge goes on its own line at the top of
// the file.
func WriteBadge(path string, score float64) error {
	badge := BadgeMarkdown(score)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return os.WriteFile(path, []byte(badge+"\n"), 0o644)
		}
		return fmt.Errorf("reading badge file: %w", err)
	}

	text := string(content)
	if badgePattern.MatchString(text) {
		text = badgePattern.ReplaceAllString(text, badge)
	} else {
		text = badge + "\n" + strings.TrimLeft(text, "\n")
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing badge file: %w", err)
	}
	return nil
}
