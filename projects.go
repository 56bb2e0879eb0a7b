package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/vyPal/ifjc/lib/project"
	"github.com/vyPal/ifjc/util"
)

const helloWorld = `// Greets whoever is on the other end of stdin.
let name = readString()
if let name {
    write("Hello, ", name, "!\n")
} else {
    write("Hello, world!\n")
}
`

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Initialize a new IFJ23 project",
		Category:  "project",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "The name of the project",
			},
			&cli.StringFlag{
				Name:    "main",
				Aliases: []string{"m"},
				Usage:   "The main file of the project",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Accept the default configuration without asking",
			},
		},
		Action: initProject,
	})
}

func initProject(c *cli.Context) error {
	rootDir := c.Args().First()
	if rootDir == "" {
		rootDir = "."
	}

	if _, err := os.Stat(rootDir); err == nil {
		files, err := os.ReadDir(rootDir)
		if err != nil {
			return err
		}
		if len(files) > 0 && !c.Bool("yes") && !util.PromptYN("The directory is not empty, continue?", false) {
			return nil
		}
	} else {
		if err := os.MkdirAll(rootDir, 0755); err != nil {
			return err
		}
		fmt.Println("Created directory:", rootDir)
	}

	name := c.String("name")
	if name == "" {
		abs, err := filepath.Abs(rootDir)
		if err != nil {
			return err
		}
		name = filepath.Base(abs)
	}

	var conf project.Config
	conf.CreateDefault(name)
	if c.String("main") != "" {
		conf.Main = c.String("main")
	}
	if !c.Bool("yes") && !util.PromptYN("Use default configuration?", true) {
		conf.Name = util.PromptString("Project name", conf.Name)
		conf.Main = util.PromptString("Main file", conf.Main)
		conf.Output = util.PromptString("Output file", conf.Output)
		conf.Requires = util.PromptString("Required compiler version", "^"+version)
		conf.Compiler.Comments = util.PromptYN("Emit comments in generated code?", false)
	}

	mainPath := filepath.Join(rootDir, conf.Main)
	if _, err := os.Stat(mainPath); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(mainPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(mainPath, []byte(helloWorld), 0644); err != nil {
			return err
		}
		fmt.Println("Created file:", mainPath)
	}

	confPath := filepath.Join(rootDir, project.FileName)
	if err := conf.Save(confPath, c.Bool("yes")); err != nil {
		return err
	}
	fmt.Println("Created file:", confPath)

	fmt.Println("----------------------------------------")
	fmt.Println("Project initialized successfully!")
	fmt.Println("Run 'cd", rootDir, "&& ifjc build' to build the project.")
	fmt.Println("----------------------------------------")
	return nil
}
