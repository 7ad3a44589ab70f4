package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/adrianzap/softwipe/domain"
	"github.com/adrianzap/softwipe/internal/execx"
)

func TestCppcheckRun(t *testing.T) {
	output := `Checking main.c ...
[main.c:3]: (error) Array 'a[2]' accessed at index 2, which is out of bounds.
[main.c:9]: (style) The scope of the variable 'i' can be reduced.
[main.c:14]: (information) Skipping configuration.
done
`
	runner := &fakeRunner{results: []execx.Result{{ExitCode: 0, Output: output}}}
	tool := NewCppcheckTool(runner)
	req := newTestRequest(t, 100)
	req.SourceFiles = []string{"main.c"}

	result, err := tool.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// error weighs 3, style 1, information 0.
	if !strings.Contains(result.Log, "(4/100)") {
		t.Errorf("expected weighted count 4, log:\n%s", result.Log)
	}
	if !strings.Contains(result.Log, "Cppcheck error warnings: 1") {
		t.Errorf("log missing per-severity summary:\n%s", result.Log)
	}

	var hasC bool
	for _, arg := range runner.calls[0] {
		if arg == "--language=c" {
			hasC = true
		}
	}
	if !hasC {
		t.Errorf("cppcheck not invoked in C mode: %v", runner.calls[0])
	}
}

func TestCppcheckLanguageSwitch(t *testing.T) {
	runner := &fakeRunner{results: []execx.Result{{ExitCode: 0, Output: ""}}}
	tool := NewCppcheckTool(runner)
	req := newTestRequest(t, 100)
	req.SourceFiles = []string{"main.cpp"}
	req.CPP = true

	if _, err := tool.Run(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(strings.Join(runner.calls[0], " "), "--language=c++") {
		t.Errorf("cppcheck not invoked in C++ mode: %v", runner.calls[0])
	}
}

func TestCppcheckCrashIsAnError(t *testing.T) {
	runner := &fakeRunner{results: []execx.Result{{ExitCode: 2, Output: "internal error"}}}
	tool := NewCppcheckTool(runner)
	req := newTestRequest(t, 100)
	req.SourceFiles = []string{"main.c"}

	result, err := tool.Run(context.Background(), req)
	var crash *domain.ToolCrashError
	if !errors.As(err, &crash) {
		t.Fatalf("error = %v, want *domain.ToolCrashError", err)
	}
	if result.Success {
		t.Error("crashed run must not be marked successful")
	}
}

func TestSplitInChunks(t *testing.T) {
	files := make([]string, 2500)
	for i := range files {
		files[i] = "f"
	}
	chunks := splitInChunks(files, 1000)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if len(chunks[0]) != 1000 || len(chunks[2]) != 500 {
		t.Errorf("chunk sizes = %d/%d/%d, want 1000/1000/500",
			len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}
}
