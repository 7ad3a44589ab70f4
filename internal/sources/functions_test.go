package sources

import (
	"context"
	"testing"
)

func TestCountFunctions(t *testing.T) {
	dir := t.TempDir()
	c := writeFile(t, dir, "math.c", `int add(int a, int b) {
	return a + b;
}

static int sub(int a, int b) {
	return a - b;
}

int square(int a);
`)
	cpp := writeFile(t, dir, "util.cpp", `namespace util {

int triple(int a) {
	return 3 * a;
}

}
`)

	got, err := CountFunctions(context.Background(), []string{c, cpp}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Two definitions in math.c (the prototype is not one), one in util.cpp.
	if got != 3 {
		t.Errorf("CountFunctions = %d, want 3", got)
	}
}

func TestLanguageForAmbiguousHeaders(t *testing.T) {
	if languageFor("a.c", false) == nil {
		t.Error("no language for .c")
	}
	if languageFor("a.cpp", false) == nil {
		t.Error("no language for .cpp")
	}
	// Plain .h files follow the program's language flag.
	cAsC := languageFor("a.h", false)
	cAsCPP := languageFor("a.h", true)
	if cAsC == cAsCPP {
		t.Error(".h did not switch language with the program mode")
	}
}
