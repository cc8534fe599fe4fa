package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/standardbeagle/mpnkit/internal/config"
	"github.com/standardbeagle/mpnkit/internal/display"
	"github.com/standardbeagle/mpnkit/internal/engine"
	"github.com/standardbeagle/mpnkit/internal/logging"
	"github.com/standardbeagle/mpnkit/internal/mcp"
	"github.com/standardbeagle/mpnkit/internal/metrics"
	"github.com/standardbeagle/mpnkit/internal/version"
)

const sessionKey = "session"

// session is what the Before hook builds for every command.
type session struct {
	cfg      *config.Config
	engine   *engine.Engine
	logger   *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	// logPath is set when logs go to an MCP diagnostic file.
	logPath string
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:                   "mpnkit",
		Usage:                  "Classify manufacturer part numbers and find replacements",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (.kdl or .toml); default merges ~/.mpnkit.kdl with the project file",
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Project directory to look for .mpnkit.kdl / .mpnkit.toml in",
				Value: ".",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "One line per result",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Show unknown attributes too",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error (overrides config)",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format: console or json (overrides config)",
			},
		},
		Before: setup,
		After: func(c *cli.Context) error {
			logging.Cleanup()
			return nil
		},
		Commands: []*cli.Command{
			classifyCommand(),
			compareCommand(),
			replaceCommand(),
			extractCommand(),
			suggestCommand(),
			batchCommand(),
			statsCommand(),
			mcpCommand(),
			configCommand(),
			{
				Name:  "version",
				Usage: "Show version and build information",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, version.FullInfo())
					return nil
				},
			},
		},
	}
}

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(c.String("dir"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if level := c.String("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if format := c.String("log-format"); format != "" {
		cfg.Logging.Format = format
	}
	return cfg, nil
}

// setup loads configuration, builds the logger and the engine. The config
// commands handle broken files themselves, so they get no engine.
func setup(c *cli.Context) error {
	cmd := c.Args().First()
	if cmd == "" || cmd == "help" || cmd == "h" || cmd == "version" {
		return nil
	}

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		if cmd == "config" {
			return nil
		}
		return err
	}
	s := &session{cfg: cfg}
	c.App.Metadata = map[string]interface{}{sessionKey: s}
	if cmd == "config" {
		return nil
	}

	if cmd == "mcp" {
		s.logger, s.logPath, err = mcp.NewDiagnosticLogger(cfg.Logging)
	} else {
		s.logger, err = logging.Initialize(cfg.Logging)
	}
	if err != nil {
		return err
	}

	s.registry = prometheus.NewRegistry()
	s.metrics = metrics.New(s.registry)
	s.engine, err = engine.New(
		engine.WithConfig(cfg),
		engine.WithLogger(s.logger),
		engine.WithMetrics(s.metrics),
	)
	return err
}

func sessionFrom(c *cli.Context) *session {
	if s, ok := c.App.Metadata[sessionKey].(*session); ok {
		return s
	}
	return nil
}

func formatterFor(c *cli.Context) *display.Formatter {
	format := "text"
	switch {
	case c.Bool("json"):
		format = "json"
	case c.Bool("compact"):
		format = "compact"
	}
	return display.NewFormatter(display.FormatterOptions{
		Format:  format,
		Color:   !c.Bool("no-color") && isTerminal(c.App.Writer),
		Verbose: c.Bool("verbose"),
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func writeOut(c *cli.Context, s string) {
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	fmt.Fprint(c.App.Writer, s)
}
