package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/vyPal/ifjc/lib/cache"
	"github.com/vyPal/ifjc/lib/compiler"
	"github.com/vyPal/ifjc/lib/diag"
	"github.com/vyPal/ifjc/lib/driver"
	"github.com/vyPal/ifjc/lib/parser"
	"github.com/vyPal/ifjc/lib/project"
)

func init() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Usage:   "The path to the config file, used when no source file is given",
		Aliases: []string{"c"},
	}

	commands = append(commands, &cli.Command{
		Name:      "build",
		Usage:     "Compile IFJ23 source files to IFJcode23",
		Category:  "compile",
		ArgsUsage: "[file.swift...]",
		Description: "Without arguments the project in ifjconf.yaml is built; without a project" +
			"\nthe source is read from stdin. A single file is written to --output or stdout," +
			"\nseveral files are compiled concurrently, each next to its source as .ifjcode.",
		Flags: []cli.Flag{
			configFlag,
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Where to write the generated code",
			},
			&cli.BoolFlag{
				Name:  "emit-comments",
				Usage: "Annotate the generated code with comments",
			},
			&cli.BoolFlag{
				Name:    "no-cache",
				Aliases: []string{"n"},
				Usage:   "Disables caching",
			},
		},
		Action: build,
	}, &cli.Command{
		Name:      "check",
		Usage:     "Parse and analyze without generating code",
		Category:  "compile",
		ArgsUsage: "[file.swift...]",
		Flags:     []cli.Flag{configFlag},
		Action:    check,
	}, &cli.Command{
		Name:      "parse",
		Usage:     "Parse a file and dump its syntax tree",
		Category:  "debug",
		ArgsUsage: "[file.swift]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "sexpr",
				Usage:   "Output format: sexpr or json",
			},
		},
		Action: parse,
	}, &cli.Command{
		Name:      "tokens",
		Usage:     "Print the token stream of a file",
		Category:  "debug",
		ArgsUsage: "[file.swift]",
		Action:    tokens,
	}, &cli.Command{
		Name:     "clean-cache",
		Usage:    "Remove all cached build results",
		Category: "compile",
		Action:   cleanCache,
	})
}

// fail turns a pipeline error into a cli exit error carrying the exit status
// of its kind.
func fail(err error) error {
	return cli.Exit(color.RedString("Error: %s", err), diag.KindOf(err).ExitCode())
}

// input is one source to compile.
type input struct {
	name   string
	output string
	opts   compiler.Options
}

// resolveInputs works out what to compile: the files given on the command
// line, the main file of the project config, or stdin.
func resolveInputs(c *cli.Context) ([]input, error) {
	opts := compiler.Options{Comments: c.Bool("emit-comments")}

	if c.NArg() > 0 {
		var inputs []input
		for _, name := range c.Args().Slice() {
			inputs = append(inputs, input{name: name, opts: opts})
		}
		if len(inputs) == 1 {
			inputs[0].output = c.String("output")
		}
		return inputs, nil
	}

	confPath := c.String("config")
	if confPath == "" {
		confPath = project.FileName
	}
	conf, err := project.LoadFile(confPath)
	if os.IsNotExist(err) && c.String("config") == "" {
		return []input{{name: "-", output: c.String("output"), opts: opts}}, nil
	}
	if err != nil {
		return nil, err
	}
	if err := conf.CheckRequires(version); err != nil {
		return nil, err
	}

	dir := filepath.Dir(confPath)
	in := input{name: filepath.Join(dir, conf.Main), opts: conf.CompilerOptions()}
	in.opts.Comments = in.opts.Comments || opts.Comments
	switch {
	case c.String("output") != "":
		in.output = c.String("output")
	case conf.Output != "":
		in.output = filepath.Join(dir, conf.Output)
	}
	log.Printf("building project %s from %s", conf.Name, confPath)
	return []input{in}, nil
}

func readSource(name string) ([]byte, error) {
	if name == "-" {
		src, err := io.ReadAll(os.Stdin)
		return src, errors.Wrap(err, "reading stdin")
	}
	src, err := os.ReadFile(name)
	return src, errors.Wrap(err, "reading source")
}

func writeOutput(path, code string) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(os.Stdout, code)
		return err
	}
	return errors.Wrap(os.WriteFile(path, []byte(code), 0644), "writing output")
}

// compileCached compiles src, reusing an earlier result for identical input.
func compileCached(name string, src []byte, opts compiler.Options, useCache bool) (string, error) {
	var store *cache.Cache
	var key string
	if useCache {
		var err error
		if store, err = cache.Open(); err != nil {
			log.Printf("cache disabled: %s", err)
		} else {
			key = cache.Key(src, version, opts)
			if code, ok := store.Get(key); ok {
				log.Printf("%s: cached", name)
				return code, nil
			}
		}
	}

	code, err := driver.CompileString(name, string(src), opts)
	if err != nil {
		return "", err
	}
	if store != nil {
		if err := store.Put(key, code); err != nil {
			log.Printf("cache write failed: %s", err)
		}
	}
	return code, nil
}

func build(c *cli.Context) error {
	inputs, err := resolveInputs(c)
	if err != nil {
		return fail(err)
	}

	if len(inputs) == 1 {
		in := inputs[0]
		src, err := readSource(in.name)
		if err != nil {
			return fail(err)
		}
		code, err := compileCached(in.name, src, in.opts, !c.Bool("no-cache") && in.name != "-")
		if err != nil {
			return fail(err)
		}
		if err := writeOutput(in.output, code); err != nil {
			return fail(err)
		}
		return nil
	}

	paths := make([]string, len(inputs))
	for i, in := range inputs {
		paths[i] = in.name
	}
	results := driver.CompileFiles(paths, inputs[0].opts)
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintln(os.Stderr, color.RedString("%s: %s", r.Path, r.Err))
			continue
		}
		out := strings.TrimSuffix(r.Path, filepath.Ext(r.Path)) + ".ifjcode"
		if err := writeOutput(out, r.Code); err != nil {
			return fail(err)
		}
		log.Printf("wrote %s", out)
	}
	if err := driver.FirstError(results); err != nil {
		return cli.Exit("", diag.KindOf(err).ExitCode())
	}
	return nil
}

func check(c *cli.Context) error {
	inputs, err := resolveInputs(c)
	if err != nil {
		return fail(err)
	}
	for _, in := range inputs {
		src, err := readSource(in.name)
		if err != nil {
			return fail(err)
		}
		if _, err := driver.Check(in.name, strings.NewReader(string(src))); err != nil {
			return fail(errors.Wrap(err, in.name))
		}
		fmt.Println(color.GreenString("%s: ok", in.name))
	}
	return nil
}

func singleSource(c *cli.Context) (string, []byte, error) {
	name := c.Args().First()
	if name == "" {
		name = "-"
	}
	src, err := readSource(name)
	return name, src, err
}

func parse(c *cli.Context) error {
	name, src, err := singleSource(c)
	if err != nil {
		return fail(err)
	}
	prog, err := driver.Parse(name, strings.NewReader(string(src)))
	if err != nil {
		return fail(err)
	}

	switch c.String("format") {
	case "json":
		err = parser.WriteJSON(os.Stdout, prog)
	case "sexpr":
		err = parser.WriteSexpr(os.Stdout, prog)
	default:
		return cli.Exit(color.RedString("Error: unknown format %q", c.String("format")), 1)
	}
	if err != nil {
		return cli.Exit(color.RedString("Error encoding AST: %s", err), 1)
	}
	return nil
}

func tokens(c *cli.Context) error {
	name, src, err := singleSource(c)
	if err != nil {
		return fail(err)
	}
	toks, err := driver.Tokens(name, strings.NewReader(string(src)))
	for _, tok := range toks {
		fmt.Println(tok)
	}
	if err != nil {
		return fail(err)
	}
	return nil
}

func cleanCache(c *cli.Context) error {
	store, err := cache.Open()
	if err != nil {
		return fail(err)
	}
	n, err := store.Clear()
	if err != nil {
		return fail(err)
	}
	fmt.Printf("Removed %d cached builds from %s\n", n, store.Dir)
	return nil
}
