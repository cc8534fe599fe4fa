package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/mpnkit/internal/config"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Create, show and check configuration files",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a starter config file into --dir",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "File format: kdl or toml",
						Value: "kdl",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: configInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration as TOML",
				Action: configShow,
			},
			{
				Name:   "validate",
				Usage:  "Load the configuration and its family files and report problems",
				Action: configValidate,
			},
		},
	}
}

func configInit(c *cli.Context) error {
	var (
		name    string
		content []byte
	)
	switch c.String("format") {
	case "kdl":
		name, content = config.KDLFileName, []byte(config.DefaultKDL)
	case "toml":
		data, err := config.Default().ToTOML()
		if err != nil {
			return err
		}
		name, content = config.TOMLFileName, data
	default:
		return fmt.Errorf("unknown config format %q (want kdl or toml)", c.String("format"))
	}

	path := filepath.Join(c.String("dir"), name)
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	writeOut(c, "Created "+path)
	return nil
}

func configShow(c *cli.Context) error {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return err
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}
	data, err := cfg.ToTOML()
	if err != nil {
		return err
	}
	writeOut(c, string(data))
	return nil
}

// configValidate reports every problem it finds and fails if there was one.
func configValidate(c *cli.Context) error {
	mark := func(ok bool) string {
		if !formatterFor(c).Colored() {
			if ok {
				return "✓"
			}
			return "✗"
		}
		if ok {
			return pterm.Green("✓")
		}
		return pterm.Red("✗")
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		writeOut(c, fmt.Sprintf("%s load: %v", mark(false), err))
		return fmt.Errorf("configuration is invalid")
	}
	writeOut(c, fmt.Sprintf("%s load (root %s)", mark(true), cfg.Root))

	failed := false
	if err := config.ValidateConfig(cfg); err != nil {
		failed = true
		writeOut(c, fmt.Sprintf("%s validate: %v", mark(false), err))
	} else {
		writeOut(c, fmt.Sprintf("%s validate: %d families, %d patterns", mark(true), len(cfg.Families), len(cfg.Patterns)))
	}

	fams, err := cfg.LoadFamilyFiles()
	if err != nil {
		failed = true
		writeOut(c, fmt.Sprintf("%s family files: %v", mark(false), err))
	} else {
		writeOut(c, fmt.Sprintf("%s family files: %d families", mark(true), len(fams)))
	}

	if failed {
		return fmt.Errorf("configuration is invalid")
	}
	return nil
}
