package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default execution settings.
const (
	// DefaultJobs is the number of tools allowed to run concurrently.
	DefaultJobs = 6

	// DefaultToolTimeoutMinutes bounds a single tool run. A tool that blows
	// the budget is excluded from the score, not retried.
	DefaultToolTimeoutMinutes = 15

	// DefaultClangTidyRetries is the crash-retry budget for clang-tidy runs
	// that die with a segfault.
	DefaultClangTidyRetries = 5
)

// Config represents the main configuration structure
type Config struct {
	// Analysis holds source discovery and language configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Tools holds per-tool configuration
	Tools ToolsConfig `json:"tools" mapstructure:"tools" yaml:"tools"`

	// Execution holds concurrency and failure-handling configuration
	Execution ExecutionConfig `json:"execution" mapstructure:"execution" yaml:"execution"`

	// Output holds result artifact and badge configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`
}

// AnalysisConfig holds source discovery and language configuration
type AnalysisConfig struct {
	// CPP treats the program as C++ rather than C
	CPP bool `json:"cpp" mapstructure:"cpp" yaml:"cpp"`

	// ExcludePatterns specifies gitignore-style patterns to exclude
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// CustomAsserts lists additional assertion macro names to count
	CustomAsserts []string `json:"custom_asserts" mapstructure:"custom_asserts" yaml:"custom_asserts"`
}

// ToolsConfig holds per-tool configuration
type ToolsConfig struct {
	// Select restricts the run to the named tools (empty = all applicable)
	Select []string `json:"select" mapstructure:"select" yaml:"select"`

	// Skip removes the named tools from the run
	Skip []string `json:"skip" mapstructure:"skip" yaml:"skip"`

	// KWStyleRules is the path to the KWStyle XML rule file
	KWStyleRules string `json:"kwstyle_rules" mapstructure:"kwstyle_rules" yaml:"kwstyle_rules"`

	// ClangTidyRetries is the retry budget for segfaulting clang-tidy runs
	ClangTidyRetries int `json:"clang_tidy_retries" mapstructure:"clang_tidy_retries" yaml:"clang_tidy_retries"`
}

// ExecutionConfig holds concurrency and failure-handling configuration
type ExecutionConfig struct {
	// Jobs is the number of tools allowed to run concurrently
	Jobs int `json:"jobs" mapstructure:"jobs" yaml:"jobs"`

	// ToolTimeoutMinutes bounds a single tool run
	ToolTimeoutMinutes int `json:"tool_timeout_minutes" mapstructure:"tool_timeout_minutes" yaml:"tool_timeout_minutes"`

	// SkipOnFailure excludes a failing tool instead of aborting the run
	SkipOnFailure bool `json:"skip_on_failure" mapstructure:"skip_on_failure" yaml:"skip_on_failure"`
}

// OutputConfig holds result artifact and badge configuration
type OutputConfig struct {
	// Directory receives the softwipe_*.txt result artifacts (empty = program directory)
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`

	// BadgeFile is a Markdown file to insert or update the score badge in
	BadgeFile string `json:"badge_file" mapstructure:"badge_file" yaml:"badge_file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			CPP:             false,
			ExcludePatterns: []string{},
			CustomAsserts:   []string{},
		},
		Tools: ToolsConfig{
			Select:           []string{},
			Skip:             []string{},
			KWStyleRules:     "KWStyle.xml",
			ClangTidyRetries: DefaultClangTidyRetries,
		},
		Execution: ExecutionConfig{
			Jobs:               DefaultJobs,
			ToolTimeoutMinutes: DefaultToolTimeoutMinutes,
			SkipOnFailure:      true,
		},
		Output: OutputConfig{
			Directory: "",
			BadgeFile: "",
		},
	}
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context. If no
// config path is given, one is discovered relative to the analyzed program.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the analyzed program directory; the search walks from there
// up to the filesystem root before falling back to the usual user locations.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"softwipe.yaml",
		"softwipe.yml",
		".softwipe.yaml",
		".softwipe.yml",
	}

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "softwipe"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "softwipe")
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}

		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv("SOFTWIPE_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Execution.Jobs < 1 {
		return fmt.Errorf("execution.jobs must be >= 1, got %d", c.Execution.Jobs)
	}

	if c.Execution.ToolTimeoutMinutes < 1 {
		return fmt.Errorf("execution.tool_timeout_minutes must be >= 1, got %d", c.Execution.ToolTimeoutMinutes)
	}

	if c.Tools.ClangTidyRetries < 0 {
		return fmt.Errorf("tools.clang_tidy_retries must be >= 0, got %d", c.Tools.ClangTidyRetries)
	}

	for _, name := range append(append([]string{}, c.Tools.Select...), c.Tools.Skip...) {
		if !KnownToolName(name) {
			return fmt.Errorf("unknown tool name %q", name)
		}
	}

	return nil
}

// KnownToolName reports whether name matches one of the analysis tools.
func KnownToolName(name string) bool {
	for _, known := range ToolNames() {
		if strings.EqualFold(known, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// ToolNames lists the analysis tools in their reporting order.
func ToolNames() []string {
	return []string{
		"Compiler",
		"Assertion",
		"Clang-tidy",
		"Cppcheck",
		"Lizard",
		"KWStyle",
		"Infer",
		"Test count",
	}
}
