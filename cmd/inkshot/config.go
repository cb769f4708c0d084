package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/inkshot/internal/config"
)

type configCmd struct {
	r      *root
	fs     *flag.FlagSet
	stdout io.Writer
	loader *config.Loader
}

func (c *configCmd) Program() string        { return c.r.program + " config" }
func (c *configCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	c := &configCmd{
		r:      r,
		fs:     flag.NewFlagSet("config", flag.ContinueOnError),
		stdout: os.Stdout,
		loader: config.NewLoader(version, configPathOverride),
	}
	c.fs.SetOutput(io.Discard)
	if err := c.fs.Parse(args); err != nil {
		return nil, &UsageError{of: c, msg: usageMessage(err)}
	}
	return c, nil
}

func (c *configCmd) Run() error {
	if c.fs.NArg() < 1 {
		return &UsageError{of: c}
	}
	switch sub := c.fs.Arg(0); sub {
	case "print":
		_, err := fmt.Fprint(c.stdout, c.r.config.String())
		return err
	case "save":
		return c.save()
	default:
		return fmt.Errorf("unknown config command: %s", sub)
	}
}

func (c *configCmd) save() error {
	path := c.loader.GetConfigPath()
	if path == "" {
		path = c.loader.SavePath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(c.r.config.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}
