package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrianzap/softwipe/app"
	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/config"
	"github.com/adrianzap/softwipe/internal/execx"
	"github.com/adrianzap/softwipe/service"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	useCPP          bool
	excludePatterns []string
	customAsserts   []string
	compilerLog     string
	sanitizerLog    string
	selectTools     []string
	skipTools       []string
	jobs            int
	toolTimeout     time.Duration
	outputDir       string
	badgeFile       string
	noSkipOnFailure bool
	configPath      string
	useMake         bool
	assumeYes       bool
)

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <programdir>",
		Short: "Score the code quality of a C/C++ program",
		Long: `Run the analysis pipeline against a program and condense the results
into one overall score between 0 and 10.

Examples:
  softwipe score path/to/program
  softwipe score --cpp --compiler-log build.log path/to/program
  softwipe score --skip infer,kwstyle --jobs 4 path/to/program
  softwipe score --badge README.md path/to/program`,
		Args: cobra.ExactArgs(1),
		RunE: runScore,
	}

	cmd.Flags().BoolVarP(&useCPP, "cpp", "C", false,
		"Treat the program as C++ instead of C")
	cmd.Flags().StringSliceVarP(&excludePatterns, "exclude", "x", nil,
		"Gitignore-style patterns to exclude from the analysis")
	cmd.Flags().StringSliceVar(&customAsserts, "custom-asserts", nil,
		"Additional assertion macro names to count")
	cmd.Flags().StringVar(&compilerLog, "compiler-log", "",
		"Path to a clang build log to extract compiler warnings from")
	cmd.Flags().StringVar(&sanitizerLog, "sanitizer-log", "",
		"Path to a sanitizer run log to extract ASan/UBSan errors from")
	cmd.Flags().StringSliceVarP(&selectTools, "select", "s", nil,
		"Run only these tools (comma-separated)")
	cmd.Flags().StringSliceVar(&skipTools, "skip", nil,
		"Skip these tools (comma-separated)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0,
		"Number of tools running concurrently (0 = config default)")
	cmd.Flags().DurationVar(&toolTimeout, "timeout", 0,
		"Per-tool timeout; a tool exceeding it is excluded (0 = config default)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "",
		"Directory for the softwipe_*.txt result files (default: program dir)")
	cmd.Flags().StringVar(&badgeFile, "badge", "",
		"Markdown file to insert or update the score badge in")
	cmd.Flags().BoolVar(&noSkipOnFailure, "no-skip-on-failure", false,
		"Abort on the first tool failure instead of excluding the tool")
	cmd.Flags().StringVarP(&configPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVarP(&useMake, "make", "m", false,
		"Drive the infer build with make instead of cmake")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false,
		"Skip interactive confirmations")

	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	programDir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving program directory: %w", err)
	}
	if info, err := os.Stat(programDir); err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", args[0])
	}

	cfg, err := config.LoadConfigWithTarget(configPath, programDir)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	if err := confirmRootRun(); err != nil {
		return err
	}

	pm := service.NewProgressManager(service.IsInteractiveEnvironment())
	defer pm.Close()

	useCase := app.NewScoreUseCase(execx.NewRunner()).WithProgress(pm)
	_, err = useCase.Execute(cmd.Context(), app.ScoreConfig{
		ProgramDir:       programDir,
		CPP:              cfg.Analysis.CPP,
		ExcludePatterns:  cfg.Analysis.ExcludePatterns,
		CustomAsserts:    cfg.Analysis.CustomAsserts,
		CompilerLogPath:  compilerLog,
		SanitizerLogPath: sanitizerLog,
		BuildSystem:      detectBuildSystem(programDir),
		SelectTools:      cfg.Tools.Select,
		SkipTools:        cfg.Tools.Skip,
		KWStyleRules:     cfg.Tools.KWStyleRules,
		ClangTidyRetries: cfg.Tools.ClangTidyRetries,
		Jobs:             cfg.Execution.Jobs,
		ToolTimeout:      time.Duration(cfg.Execution.ToolTimeoutMinutes) * time.Minute,
		SkipOnFailure:    cfg.Execution.SkipOnFailure,
		OutputDir:        cfg.Output.Directory,
		BadgeFile:        cfg.Output.BadgeFile,
		OutputWriter:     os.Stdout,
	})
	return err
}

// applyFlags overlays explicitly set command line flags onto the loaded
// configuration. Flags win over the config file.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("cpp") {
		cfg.Analysis.CPP = useCPP
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Analysis.ExcludePatterns = excludePatterns
	}
	if cmd.Flags().Changed("custom-asserts") {
		cfg.Analysis.CustomAsserts = customAsserts
	}
	if cmd.Flags().Changed("select") {
		cfg.Tools.Select = selectTools
	}
	if cmd.Flags().Changed("skip") {
		cfg.Tools.Skip = skipTools
	}
	if jobs > 0 {
		cfg.Execution.Jobs = jobs
	}
	if toolTimeout > 0 {
		cfg.Execution.ToolTimeoutMinutes = int(toolTimeout.Minutes())
		if cfg.Execution.ToolTimeoutMinutes < 1 {
			cfg.Execution.ToolTimeoutMinutes = 1
		}
	}
	if cmd.Flags().Changed("output-dir") {
		cfg.Output.Directory = outputDir
	}
	if cmd.Flags().Changed("badge") {
		cfg.Output.BadgeFile = badgeFile
	}
	if noSkipOnFailure {
		cfg.Execution.SkipOnFailure = false
	}
}

// confirmRootRun asks before analyzing as root: the result artifacts would
// end up root-owned inside the target program's directory.
func confirmRootRun() error {
	if assumeYes || os.Geteuid() != 0 || !service.IsInteractiveEnvironment() {
		return nil
	}
	prompt := promptui.Prompt{
		Label:     "Running as root leaves root-owned result files in the program directory. Continue",
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		return fmt.Errorf("aborted")
	}
	return nil
}

// detectBuildSystem picks the build mode infer captures with. The --make
// flag forces make; otherwise a CMakeLists.txt wins over a Makefile.
func detectBuildSystem(programDir string) domain.BuildSystem {
	if useMake {
		return domain.BuildSystemMake
	}
	if _, err := os.Stat(filepath.Join(programDir, "CMakeLists.txt")); err == nil {
		return domain.BuildSystemCMake
	}
	if _, err := os.Stat(filepath.Join(programDir, "Makefile")); err == nil {
		return domain.BuildSystemMake
	}
	return domain.BuildSystemNone
}
