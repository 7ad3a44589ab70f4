package sources

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
)

// CountFunctions parses every source file and counts function definitions.
// Headers and ambiguous extensions parse with the C++ grammar when cpp is
// set, otherwise with the C grammar. Files that fail to parse are skipped
// rather than failing the whole count; tree-sitter degrades gracefully on
// code it cannot fully understand.
func CountFunctions(ctx context.Context, files []string, cpp bool) (int, error) {
	total := 0
	for _, path := range files {
		n, err := countFunctionsInFile(ctx, path, languageFor(path, cpp))
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			continue
		}
		total += n
	}
	return total, nil
}

func languageFor(path string, useCPP bool) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".c":
		return c.GetLanguage()
	case ".cc", ".cpp", ".cxx", ".hpp":
		return cpp.GetLanguage()
	default:
		if useCPP {
			return cpp.GetLanguage()
		}
		return c.GetLanguage()
	}
}

func countFunctionsInFile(ctx context.Context, path string, lang *sitter.Language) (int, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if tree == nil {
		return 0, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	defer tree.Close()

	return countDefinitions(tree.RootNode()), nil
}

func countDefinitions(node *sitter.Node) int {
	count := 0
	if node.Type() == "function_definition" {
		count++
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		count += countDefinitions(node.NamedChild(i))
	}
	return count
}
