package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/vyPal/ifjc/lib/project"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:     "version",
		Usage:    "Print the compiler version and check it against the project",
		Category: "version",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   project.FileName,
				Usage:   "The path to the config file",
			},
		},
		Action: printVersion,
	})
}

func printVersion(c *cli.Context) error {
	fmt.Printf("ifjc %s\n", c.App.Version)

	conf, err := project.LoadFile(c.String("config"))
	if err != nil {
		// Not inside a project; nothing to check.
		return nil
	}
	if conf.Requires == "" {
		fmt.Printf("project %s accepts any version\n", conf.Name)
		return nil
	}
	if err := conf.CheckRequires(c.App.Version); err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	fmt.Println(color.GreenString("project %s requires %s: satisfied", conf.Name, conf.Requires))
	return nil
}
