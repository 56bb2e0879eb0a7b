// Package driver runs the IFJ23 pipeline: lexing, parsing, semantic analysis
// and IFJcode23 generation. Each phase consumes its whole input before the
// next one starts, and the first error stops the run.
package driver

import (
	"io"
	"log"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/vyPal/ifjc/lib/analyzer"
	"github.com/vyPal/ifjc/lib/compiler"
	"github.com/vyPal/ifjc/lib/diag"
	ifjlex "github.com/vyPal/ifjc/lib/lexer"
	"github.com/vyPal/ifjc/lib/parser"
)

// Tokens lexes the whole input.
func Tokens(filename string, r io.Reader) ([]ifjlex.Token, error) {
	stream, err := ifjlex.NewStream(filename, r)
	if err != nil {
		return nil, err
	}
	return stream.All()
}

func Parse(filename string, r io.Reader) (*parser.Program, error) {
	start := time.Now()
	stream, err := ifjlex.NewStream(filename, r)
	if err != nil {
		return nil, err
	}
	prog, err := parser.New(stream).ParseProgram()
	if err != nil {
		return nil, err
	}
	log.Printf("%s: parsed %d items in %s", filename, len(prog.Items), time.Since(start))
	return prog, nil
}

// Check parses and analyzes the input without generating code.
func Check(filename string, r io.Reader) (*analyzer.Result, error) {
	prog, err := Parse(filename, r)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	res, err := analyzer.Analyze(prog)
	if err != nil {
		return nil, err
	}
	log.Printf("%s: analyzed %d functions in %s", filename, len(prog.Functions()), time.Since(start))
	return res, nil
}

// Generate lowers an analyzed program. A panic inside the generator means
// the tree broke an analyzer guarantee and is reported as an internal error.
func Generate(res *analyzer.Result, opts compiler.Options) (code string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = diag.Errorf(diag.KindInternal, "code generation failed: %v", r)
		}
	}()

	start := time.Now()
	comp := compiler.NewCompiler(opts)
	comp.Compile(res)
	code = comp.String()
	log.Printf("generated %d lines in %s", strings.Count(code, "\n"), time.Since(start))
	return code, nil
}

// Compile runs the full pipeline on r.
func Compile(filename string, r io.Reader, opts compiler.Options) (string, error) {
	res, err := Check(filename, r)
	if err != nil {
		return "", errors.Wrap(err, filename)
	}
	return Generate(res, opts)
}

// CompileString is Compile for in-memory source.
func CompileString(filename, src string, opts compiler.Options) (string, error) {
	return Compile(filename, strings.NewReader(src), opts)
}
