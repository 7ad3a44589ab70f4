package tools

import (
	"strings"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/execx"
)

// Registry assembles the set of tools applicable to a request.
type Registry struct {
	Runner           execx.Runner
	KWStyleRules     string
	ClangTidyRetries int
}

func NewRegistry(runner execx.Runner, kwstyleRules string) *Registry {
	return &Registry{
		Runner:           runner,
		KWStyleRules:     kwstyleRules,
		ClangTidyRetries: DefaultClangTidyRetries,
	}
}

// Tools returns the applicable tools in their fixed reporting order. The
// compiler adapter only joins when a build log was supplied, and infer only
// when the program has a build system to capture.
func (r *Registry) Tools(req *domain.AnalysisRequest) []domain.AnalysisTool {
	var applicable []domain.AnalysisTool
	if req.CompilerLogPath != "" {
		applicable = append(applicable, NewCompilerTool())
	}
	clangTidy := NewClangTidyTool(r.Runner)
	if r.ClangTidyRetries >= 0 {
		clangTidy.Retries = r.ClangTidyRetries
	}
	applicable = append(applicable,
		NewAssertionTool(),
		clangTidy,
		NewCppcheckTool(r.Runner),
		NewLizardTool(r.Runner),
		NewKWStyleTool(r.Runner, r.KWStyleRules),
	)
	if req.BuildSystem != domain.BuildSystemNone && req.BuildSystem != "" {
		applicable = append(applicable, NewInferTool(r.Runner))
	}
	applicable = append(applicable, NewTestCountTool())
	return applicable
}

// Filter narrows a tool list to the selected names, then removes the
// skipped ones. Names match case-insensitively; empty select keeps all.
func Filter(all []domain.AnalysisTool, selected, skipped []string) []domain.AnalysisTool {
	kept := all
	if len(selected) > 0 {
		kept = nil
		for _, tool := range all {
			if containsName(selected, tool.Name()) {
				kept = append(kept, tool)
			}
		}
	}
	var result []domain.AnalysisTool
	for _, tool := range kept {
		if !containsName(skipped, tool.Name()) {
			result = append(result, tool)
		}
	}
	return result
}

func containsName(names []string, name string) bool {
	for _, candidate := range names {
		if strings.EqualFold(strings.TrimSpace(candidate), name) {
			return true
		}
	}
	return false
}
