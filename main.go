package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/vyPal/ifjc/lib/diag"
)

const version = "1.0.0"

// commands is filled by the init functions of the files in this package.
var commands []*cli.Command

func newApp() *cli.App {
	return &cli.App{
		Name:                   "ifjc",
		Usage:                  "Compile IFJ23 programs to IFJcode23",
		Version:                version,
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Log the progress of each compilation phase to stderr",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("no-color") {
				color.NoColor = true
			}
			log.SetFlags(0)
			log.SetPrefix("ifjc: ")
			if c.Bool("verbose") {
				log.SetOutput(os.Stderr)
			} else {
				log.SetOutput(io.Discard)
			}
			return nil
		},
		Commands: commands,
		// Without a command ifjc behaves like a classic IFJ23 compiler:
		// source on stdin, IFJcode23 on stdout.
		Action: build,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err))
		os.Exit(diag.KindOf(err).ExitCode())
	}
}
