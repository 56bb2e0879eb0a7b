// Package project reads and writes ifjconf.yaml, the optional per-directory
// build configuration.
package project

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vyPal/ifjc/lib/compiler"
	"github.com/vyPal/ifjc/util"
)

const FileName = "ifjconf.yaml"

type Config struct {
	Name   string `yaml:"name"`
	Main   string `yaml:"main"`
	Output string `yaml:"output,omitempty"`
	// Requires is a version constraint on the compiler, e.g. "^1.0.0".
	Requires string         `yaml:"requires,omitempty"`
	Compiler CompilerConfig `yaml:"compiler"`
}

type CompilerConfig struct {
	Header   string `yaml:"header,omitempty"`
	Comments bool   `yaml:"comments"`
}

func (c *Config) CreateDefault(name string) {
	if name == "." || name == "" {
		name = "project"
	}
	c.Name = name
	c.Main = "main.swift"
	c.Output = "main.ifjcode"
	c.Requires = ""
	c.Compiler = CompilerConfig{}
}

// Save writes the config to path. An existing file is only replaced when
// overwrite is set or the user agrees to it.
func (c *Config) Save(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil {
		if !overwrite && !util.PromptYN(path+" already exists. Overwrite?", false) {
			return nil
		}
	}

	yml, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	return errors.Wrap(os.WriteFile(path, yml, 0644), "writing config")
}

// Load reads FileName from dir.
func Load(dir string) (Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

func LoadFile(path string) (Config, error) {
	var conf Config

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&conf); err != nil {
		return Config{}, errors.Wrapf(err, "decoding %s", path)
	}
	if conf.Main == "" {
		return Config{}, errors.Errorf("%s: main is not set", path)
	}
	return conf, nil
}

// CheckRequires verifies that the running compiler version satisfies the
// project's constraint.
func (c Config) CheckRequires(version string) error {
	if c.Requires == "" {
		return nil
	}
	v, err := util.Parse(version)
	if err != nil {
		return errors.Wrap(err, "compiler version")
	}
	ok, err := v.Satisfies(c.Requires)
	if err != nil {
		return errors.Wrapf(err, "requires %q", c.Requires)
	}
	if !ok {
		return errors.Errorf("project %s requires ifjc %s, this is %s", c.Name, c.Requires, version)
	}
	return nil
}

func (c Config) CompilerOptions() compiler.Options {
	return compiler.Options{
		Comments: c.Compiler.Comments,
		Header:   c.Compiler.Header,
	}
}
