package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/vyPal/ifjc/lib/compiler"
	"github.com/vyPal/ifjc/lib/driver"
	ifjlex "github.com/vyPal/ifjc/lib/lexer"
	"github.com/vyPal/ifjc/lib/parser"
)

const (
	historyFile = ".ifjc_history"
	promptMain  = "ifj> "
	promptCont  = "...> "
)

func init() {
	commands = append(commands, &cli.Command{
		Name:     "repl",
		Usage:    "Compile IFJ23 interactively",
		Category: "compile",
		Description: "Each accepted snippet is appended to the session program. Commands:" +
			"\n  :code   print the IFJcode23 of the whole session" +
			"\n  :ast    print the syntax tree of the whole session" +
			"\n  :reset  start a new session" +
			"\n  :quit   leave",
		Action: repl,
	})
}

// complete reports whether src can be handed to the compiler, meaning no
// brace, block comment or multi-line string is still open.
func complete(src string) bool {
	if strings.Count(src, `"""`)%2 == 1 {
		return false
	}
	toks, err := driver.Tokens("repl", strings.NewReader(src))
	if err != nil {
		return !strings.Contains(err.Error(), "unterminated block comment")
	}
	depth := 0
	for _, tok := range toks {
		switch tok.Type {
		case ifjlex.LBrace:
			depth++
		case ifjlex.RBrace:
			depth--
		}
	}
	return depth <= 0
}

// session is the program accumulated so far.
type session struct {
	src strings.Builder
}

// add compiles the session extended by chunk and keeps the chunk only when
// the whole program is still valid.
func (s *session) add(chunk string) (string, error) {
	candidate := s.src.String() + chunk + "\n"
	code, err := driver.CompileString("repl", candidate, compiler.Options{})
	if err != nil {
		return "", err
	}
	s.src.WriteString(chunk)
	s.src.WriteByte('\n')
	return code, nil
}

func (s *session) code() (string, error) {
	return driver.CompileString("repl", s.src.String(), compiler.Options{Comments: true})
}

func (s *session) ast() (string, error) {
	prog, err := parser.ParseString("repl", s.src.String())
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	err = parser.WriteSexpr(&sb, prog)
	return sb.String(), err
}

func readChunk(ln *liner.State) (string, error) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			return b.String(), err
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if complete(b.String()) {
			return b.String(), nil
		}
	}
}

func repl(c *cli.Context) error {
	fmt.Printf("ifjc %s interactive session. Type :quit to exit.\n", version)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			f.Close()
		}
	}()

	var s session
	for {
		chunk, err := readChunk(ln)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Println()
			return nil
		}

		trimmed := strings.TrimSpace(chunk)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(chunk, "\n", " "))

		var out string
		switch trimmed {
		case ":quit":
			return nil
		case ":reset":
			s = session{}
			continue
		case ":code":
			out, err = s.code()
		case ":ast":
			out, err = s.ast()
		default:
			if strings.HasPrefix(trimmed, ":") {
				fmt.Println("unknown command. Type :quit to exit.")
				continue
			}
			var code string
			code, err = s.add(chunk)
			if err == nil {
				out = color.GreenString("ok, %d lines of IFJcode23", strings.Count(code, "\n"))
			}
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err))
			continue
		}
		fmt.Println(strings.TrimRight(out, "\n"))
	}
}
