package config

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Language selects the config template's language preset.
type Language string

const (
	LanguageC   Language = "c"
	LanguageCPP Language = "c++"
)

// GetFullConfigTemplate returns the documented config template as YAML.
func GetFullConfigTemplate(language Language, jobs int) string {
	if jobs < 1 {
		jobs = DefaultJobs
	}

	return `# softwipe configuration
# Documentation: https://github.com/adrianzap/softwipe

# ==============================================================================
# ANALYSIS SCOPE
# ==============================================================================
analysis:
  # Treat the program as C++ instead of C. This switches the clang-tidy
  # check list and the cppcheck language mode.
  cpp: ` + strconv.FormatBool(language == LanguageCPP) + `

  # Gitignore-style patterns removed from the analysis.
  exclude_patterns:
    - "third_party/"
    - "*.generated.c"

  # Project-specific assertion macros counted alongside assert() and
  # static_assert().
  custom_asserts: []

# ==============================================================================
# TOOLS
# ==============================================================================
tools:
  # Restrict the run to these tools (empty = all applicable).
  select: []

  # Remove these tools from the run.
  skip: []

  # KWStyle rule file.
  kwstyle_rules: "KWStyle.xml"

  # How often a clang-tidy run that dies with a segfault is retried before
  # the tool is excluded.
  clang_tidy_retries: ` + strconv.Itoa(DefaultClangTidyRetries) + `

# ==============================================================================
# EXECUTION
# ==============================================================================
execution:
  # Number of tools running concurrently.
  jobs: ` + strconv.Itoa(jobs) + `

  # A tool exceeding this budget is excluded from the score.
  tool_timeout_minutes: ` + strconv.Itoa(DefaultToolTimeoutMinutes) + `

  # Exclude a failing tool from the score instead of aborting the run.
  skip_on_failure: true

# ==============================================================================
# OUTPUT
# ==============================================================================
output:
  # Directory for the softwipe_*.txt result artifacts (empty = program dir).
  directory: ""

  # Markdown file to insert or update the score badge in (empty = no badge).
  badge_file: ""
`
}

// GetMinimalConfigTemplate returns a minimal config rendered from the
// defaults, so the template can never drift from DefaultConfig.
func GetMinimalConfigTemplate() string {
	out, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		// Config only holds plain scalars and slices; Marshal cannot fail.
		return ""
	}
	var sb strings.Builder
	sb.WriteString("# softwipe configuration (minimal)\n")
	sb.WriteString("# See full options: https://github.com/adrianzap/softwipe\n\n")
	sb.Write(out)
	return sb.String()
}
