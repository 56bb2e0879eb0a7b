package main

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"github.com/vyPal/ifjc/lib/diag"
)

func TestComplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"let a = 1", true},
		{"if a == 1 {", false},
		{"if a == 1 {\n}", true},
		{"func f() {\nwhile a {\n}", false},
		{"/* open", false},
		{"let s = \"\"\"\nabc", false},
		{"let s = \"\"\"\nabc\n\"\"\"", true},
		// Lexical errors are left for the compiler to report.
		{"let a = $", true},
	}
	for _, test := range tests {
		t.Run(test.src, func(t *testing.T) {
			be.Equal(t, complete(test.src), test.want)
		})
	}
}

func TestSession(t *testing.T) {
	var s session
	_, err := s.add("var x = 1")
	be.Err(t, err, nil)

	_, err = s.add("x = \"s\"")
	be.Equal(t, diag.KindOf(err), diag.KindWrongBinaryTypes)

	code, err := s.add("x = x + 1")
	be.Err(t, err, nil)
	be.True(t, strings.Contains(code, "POPS GF@x"))

	_, err = s.add("var x = 2")
	be.Equal(t, diag.KindOf(err), diag.KindRedefinition)

	ast, err := s.ast()
	be.Err(t, err, nil)
	be.Equal(t, ast, "(var x 1)\n(= x (+ x 1))\n")

	code, err = s.code()
	be.Err(t, err, nil)
	be.True(t, strings.HasPrefix(code, ".IFJcode23\n"))
}

func TestAppCommands(t *testing.T) {
	app := newApp()
	names := map[string]bool{}
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, want := range []string{"build", "check", "parse", "tokens", "clean-cache", "init", "repl", "version"} {
		be.True(t, names[want])
	}
}

func TestFailCarriesExitStatus(t *testing.T) {
	err := fail(diag.Errorf(diag.KindUndefinedVariable, "x"))
	be.Equal(t, err.(interface{ ExitCode() int }).ExitCode(), 5)
}
