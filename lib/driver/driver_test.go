package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/vyPal/ifjc/lib/analyzer"
	"github.com/vyPal/ifjc/lib/casefile"
	"github.com/vyPal/ifjc/lib/compiler"
	"github.com/vyPal/ifjc/lib/diag"
	"github.com/vyPal/ifjc/lib/parser"
	"github.com/vyPal/ifjc/lib/symtable"
)

func TestCaseFiles(t *testing.T) {
	files, err := filepath.Glob("testdata/*.md")
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".md"), func(t *testing.T) {
			content, err := os.ReadFile(file)
			be.Err(t, err, nil)
			cases, err := casefile.Extract(content)
			be.Err(t, err, nil)

			for _, tc := range cases {
				t.Run(tc.Name, func(t *testing.T) {
					for _, a := range tc.Assertions {
						runAssertion(t, tc.Input, a)
					}
				})
			}
		})
	}
}

func runAssertion(t *testing.T, input string, a casefile.Assertion) {
	t.Helper()
	switch a.Type {
	case casefile.AssertionCode:
		code, err := CompileString("case.swift", input, compiler.Options{})
		be.Err(t, err, nil)
		assertLinesInOrder(t, code, strings.Split(a.Content, "\n"))

	case casefile.AssertionError:
		want, ok := diag.ParseKind(a.Content)
		if !ok {
			t.Fatalf("line %d: unknown error kind %q", a.Line, a.Content)
		}
		_, err := CompileString("case.swift", input, compiler.Options{})
		be.Equal(t, diag.KindOf(err), want)

	case casefile.AssertionAST:
		prog, err := parser.ParseString("case.swift", input)
		be.Err(t, err, nil)
		var sb strings.Builder
		be.Err(t, parser.WriteSexpr(&sb, prog), nil)
		be.Equal(t, strings.TrimRight(sb.String(), "\n"), a.Content)
	}
}

func assertLinesInOrder(t *testing.T, code string, want []string) {
	t.Helper()
	lines := strings.Split(code, "\n")
	pos := 0
	for _, w := range want {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		found := false
		for pos < len(lines) {
			pos++
			if lines[pos-1] == w {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing %q (in order) in:\n%s", w, code)
		}
	}
}

func TestGenerateRecoversPanics(t *testing.T) {
	res := &analyzer.Result{
		Program: &parser.Program{Items: []parser.Item{
			&parser.ProcedureCall{Call: &parser.Call{Name: "missing"}},
		}},
		Functions: symtable.NewFuncTable(),
	}
	_, err := Generate(res, compiler.Options{})
	be.Equal(t, diag.KindOf(err), diag.KindInternal)
}

func TestCompileKeepsKindThroughWrapping(t *testing.T) {
	_, err := CompileString("bad.swift", "let x = y", compiler.Options{})
	be.Equal(t, diag.KindOf(err), diag.KindUndefinedVariable)
	be.True(t, strings.Contains(err.Error(), "bad.swift"))
}

func TestTokens(t *testing.T) {
	toks, err := Tokens("t.swift", strings.NewReader("let x = 1"))
	be.Err(t, err, nil)
	// let, x, =, 1 and EOF
	be.Equal(t, len(toks), 5)
}

func TestCompileFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.swift")
	bad := filepath.Join(dir, "bad.swift")
	be.Err(t, os.WriteFile(good, []byte("write(1)"), 0644), nil)
	be.Err(t, os.WriteFile(bad, []byte("let a: Int = nil"), 0644), nil)

	results := CompileFiles([]string{good, bad, filepath.Join(dir, "missing.swift")}, compiler.Options{})
	be.Equal(t, len(results), 3)

	be.Equal(t, results[0].Path, good)
	be.Err(t, results[0].Err, nil)
	be.True(t, strings.HasPrefix(results[0].Code, ".IFJcode23\n"))

	be.Equal(t, diag.KindOf(results[1].Err), diag.KindWrongBinaryTypes)
	be.Equal(t, diag.KindOf(results[2].Err), diag.KindInternal)
	be.Equal(t, diag.KindOf(FirstError(results)), diag.KindWrongBinaryTypes)
}
