// Package app holds the use case layer between the CLI and the services.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/config"
	"github.com/adrianzap/softwipe/internal/execx"
	"github.com/adrianzap/softwipe/internal/sources"
	"github.com/adrianzap/softwipe/internal/tools"
	"github.com/adrianzap/softwipe/service"
)

// ScoreConfig holds configuration for the score use case
type ScoreConfig struct {
	// Target
	ProgramDir string

	// Analysis options
	CPP              bool
	ExcludePatterns  []string
	CustomAsserts    []string
	CompilerLogPath  string
	SanitizerLogPath string
	BuildSystem      domain.BuildSystem

	// Tool options
	SelectTools      []string
	SkipTools        []string
	KWStyleRules     string
	ClangTidyRetries int

	// Execution options
	Jobs          int
	ToolTimeout   time.Duration
	SkipOnFailure bool

	// Output options
	OutputDir    string
	BadgeFile    string
	OutputWriter io.Writer
}

// DefaultScoreConfig returns the use case configuration matching the
// configuration file defaults.
func DefaultScoreConfig(programDir string) ScoreConfig {
	return ScoreConfig{
		ProgramDir:       programDir,
		KWStyleRules:     "KWStyle.xml",
		ClangTidyRetries: config.DefaultClangTidyRetries,
		Jobs:             config.DefaultJobs,
		ToolTimeout:      time.Duration(config.DefaultToolTimeoutMinutes) * time.Minute,
		SkipOnFailure:    true,
		OutputWriter:     os.Stdout,
	}
}

// ScoreResult holds the results of one scoring run
type ScoreResult struct {
	Overall  float64
	Outcomes []service.ToolOutcome
	Duration time.Duration
}

// ScoreUseCase runs the whole scoring pipeline: source discovery, tool
// orchestration, report rendering, and badge maintenance.
type ScoreUseCase struct {
	runner   execx.Runner
	progress domain.ProgressManager
}

// NewScoreUseCase creates a new score use case
func NewScoreUseCase(runner execx.Runner) *ScoreUseCase {
	return &ScoreUseCase{runner: runner}
}

// WithProgress attaches a progress manager for per-tool progress reporting.
func (uc *ScoreUseCase) WithProgress(pm domain.ProgressManager) *ScoreUseCase {
	uc.progress = pm
	return uc
}

// Execute runs the pipeline and returns the overall score. The per-tool
// report is streamed to the configured output writer.
func (uc *ScoreUseCase) Execute(ctx context.Context, cfg ScoreConfig) (*ScoreResult, error) {
	startTime := time.Now()

	out := cfg.OutputWriter
	if out == nil {
		out = os.Stdout
	}

	req, err := uc.buildRequest(ctx, cfg)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Found %d source files.\n", len(req.SourceFiles))
	fmt.Fprintf(out, "Lines of pure code (excluding blank and comment lines): %d\n\n", req.LinesOfCode)

	registry := tools.NewRegistry(uc.runner, cfg.KWStyleRules)
	registry.ClangTidyRetries = cfg.ClangTidyRetries
	toolSet := tools.Filter(registry.Tools(req), cfg.SelectTools, cfg.SkipTools)
	if len(toolSet) == 0 {
		return nil, fmt.Errorf("no analysis tools selected")
	}

	orchestrator := service.NewOrchestrator()
	if uc.progress != nil {
		orchestrator = service.NewOrchestratorWithProgress(uc.progress)
	}
	orchestrator.SetMaxConcurrency(cfg.Jobs)
	orchestrator.SetToolTimeout(cfg.ToolTimeout)
	orchestrator.SetSkipOnFailure(cfg.SkipOnFailure)

	outcomes, err := orchestrator.Run(ctx, req, toolSet)
	if err != nil {
		return nil, err
	}

	fmt.Fprint(out, service.Report(outcomes))

	overall, err := service.Composite(outcomes)
	if err != nil {
		return nil, err
	}

	if cfg.BadgeFile != "" {
		if err := service.WriteBadge(cfg.BadgeFile, overall); err != nil {
			return nil, err
		}
		fmt.Fprintf(out, "Badge written into %s\n", cfg.BadgeFile)
	}

	return &ScoreResult{
		Overall:  overall,
		Outcomes: outcomes,
		Duration: time.Since(startTime),
	}, nil
}

// buildRequest discovers the sources and assembles the shared analysis
// request all tools work against.
func (uc *ScoreUseCase) buildRequest(ctx context.Context, cfg ScoreConfig) (*domain.AnalysisRequest, error) {
	files, excluded, err := sources.Collect(cfg.ProgramDir, cfg.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("collecting source files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no C/C++ source files found in %s", cfg.ProgramDir)
	}

	linesOfCode, err := sources.CountLines(files)
	if err != nil {
		return nil, fmt.Errorf("counting lines of code: %w", err)
	}

	functionCount, err := sources.CountFunctions(ctx, files, cfg.CPP)
	if err != nil {
		return nil, fmt.Errorf("counting functions: %w", err)
	}

	artifactDir := cfg.OutputDir
	if artifactDir == "" {
		artifactDir = cfg.ProgramDir
	}

	return &domain.AnalysisRequest{
		ProgramDir:       cfg.ProgramDir,
		SourceFiles:      files,
		LinesOfCode:      linesOfCode,
		FunctionCount:    functionCount,
		CPP:              cfg.CPP,
		ExcludedPaths:    excluded,
		CustomAsserts:    cfg.CustomAsserts,
		CompilerLogPath:  cfg.CompilerLogPath,
		SanitizerLogPath: cfg.SanitizerLogPath,
		BuildSystem:      cfg.BuildSystem,
		OutputDir:        artifactDir,
	}, nil
}
