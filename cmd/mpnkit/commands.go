package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/standardbeagle/mpnkit/internal/mcp"
)

var errUsage = errors.New("usage")

func usageError(c *cli.Context, format string, args ...interface{}) error {
	return fmt.Errorf("%w: mpnkit %s %s", errUsage, c.Command.Name, fmt.Sprintf(format, args...))
}

func classifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Aliases:   []string{"c"},
		Usage:     "Classify one or more part numbers",
		ArgsUsage: "MPN [MPN...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return usageError(c, "MPN [MPN...]")
			}
			s := sessionFrom(c)
			f := formatterFor(c)
			for _, m := range c.Args().Slice() {
				writeOut(c, f.Classification(s.engine.Classify(m)))
			}
			return nil
		},
	}
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "Score the similarity of two part numbers",
		ArgsUsage: "A B",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return usageError(c, "A B")
			}
			s := sessionFrom(c)
			writeOut(c, formatterFor(c).Comparison(s.engine.Compare(c.Args().Get(0), c.Args().Get(1))))
			return nil
		},
	}
}

func replaceCommand() *cli.Command {
	return &cli.Command{
		Name:      "replace",
		Usage:     "Check whether CANDIDATE can replace ORIGINAL",
		ArgsUsage: "CANDIDATE ORIGINAL",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "both",
				Usage: "Also check the reverse direction",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return usageError(c, "CANDIDATE ORIGINAL")
			}
			s := sessionFrom(c)
			f := formatterFor(c)
			candidate, original := c.Args().Get(0), c.Args().Get(1)

			writeOut(c, f.Verdict(candidate, original, s.engine.Advise(candidate, original)))
			if c.Bool("both") {
				writeOut(c, f.Verdict(original, candidate, s.engine.Advise(original, candidate)))
			}
			return nil
		},
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Find part numbers in free text (arguments, --file, or stdin)",
		ArgsUsage: "[TEXT...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read text from file ('-' for stdin)",
			},
		},
		Action: func(c *cli.Context) error {
			text := strings.Join(c.Args().Slice(), " ")
			if path := c.String("file"); path != "" || text == "" {
				data, err := readInput(c, path)
				if err != nil {
					return err
				}
				text = string(data)
			}
			s := sessionFrom(c)
			writeOut(c, formatterFor(c).Candidates(s.engine.Extract(text), s.engine.Classify))
			return nil
		},
	}
}

func suggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "List known parts closest to a part number",
		ArgsUsage: "MPN",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum suggestions (default from engine.suggest_limit)",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError(c, "MPN")
			}
			s := sessionFrom(c)
			limit := c.Int("limit")
			if limit <= 0 {
				limit = s.cfg.Engine.SuggestLimit
			}
			m := c.Args().First()
			writeOut(c, formatterFor(c).Suggestions(m, s.engine.Suggest(m, limit)))
			return nil
		},
	}
}

func batchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Usage:     "Classify every part number in a file, one per line ('-' for stdin)",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus metrics in text format to this file when done",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError(c, "FILE")
			}
			data, err := readInput(c, c.Args().First())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := sessionFrom(c)
			results, err := s.engine.ClassifyBatch(ctx, parseLines(string(data)))
			if err != nil {
				return fmt.Errorf("batch classification: %w", err)
			}
			writeOut(c, formatterFor(c).Batch(results))

			if path := c.String("metrics-file"); path != "" {
				if err := prometheus.WriteToTextfile(path, s.registry); err != nil {
					return fmt.Errorf("write metrics: %w", err)
				}
				s.logger.Info("metrics written", zap.String("path", path))
			}
			return nil
		},
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Summarise the pattern, handler and family tables",
		Action: func(c *cli.Context) error {
			stats := sessionFrom(c).engine.Stats()
			if c.Bool("json") {
				data, err := json.MarshalIndent(stats.FormatAsJSON(), "", "  ")
				if err != nil {
					return err
				}
				writeOut(c, string(data))
				return nil
			}
			writeOut(c, stats.FormatAsText())
			return nil
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the engine as MCP tools over stdio",
		Action: func(c *cli.Context) error {
			s := sessionFrom(c)
			server, err := mcp.NewServer(s.engine, s.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			s.logger.Info("mcp diagnostics", zap.String("log", s.logPath))
			if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

// readInput reads path, or stdin when path is "" or "-".
func readInput(c *cli.Context, path string) ([]byte, error) {
	if path == "" || path == "-" {
		r := c.App.Reader
		if r == nil {
			r = os.Stdin
		}
		return io.ReadAll(r)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// parseLines returns the non-blank lines of a part list. Lines starting with # are
// comments; a trailing comment after whitespace is dropped too.
func parseLines(text string) []string {
	var out []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := sc.Text()
		if i := strings.Index(line, " #"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out
}
