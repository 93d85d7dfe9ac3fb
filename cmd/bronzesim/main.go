// Command bronzesim runs a deterministic agent-based simulation of a
// small prehistoric economy, driven entirely by a single .bronze DSL
// source file.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/talgya/bronzesim/internal/dsl"
	"github.com/talgya/bronzesim/internal/sim"
)

func newLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		// Non-interactive runs (CI, redirected logs): drop the
		// timestamp so output diffs cleanly across invocations.
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func usage(argv0 string) string {
	return fmt.Sprintf("Usage: %s [config.bronze]\n", filepath.Base(argv0))
}

func run(argv []string, logger *slog.Logger) int {
	if len(argv) >= 2 && (argv[1] == "-h" || argv[1] == "--help") {
		fmt.Print(usage(argv[0]))
		return 0
	}
	path := "example.bronze"
	if len(argv) >= 2 {
		path = argv[1]
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := dsl.Parse(string(src), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	if len(cfg.Vocations.Vocations) == 0 {
		fmt.Fprintln(os.Stderr, "Error: example must define at least 1 vocation in vocations { ... }")
		return 1
	}

	logDefaultedKeys(logger, *cfg)

	s := sim.New(cfg, logger)
	logger.Info("bronzesim starting",
		"agents", humanize.Comma(int64(len(s.Agents))),
		"households", humanize.Comma(int64(len(s.Households))),
		"settlements", humanize.Comma(int64(len(s.Settlements))),
		"days", cfg.Days,
	)

	for i := 0; i < cfg.Days; i++ {
		s.StepDay()
		if s.Day%10 == 0 {
			s.Report()
		}

		if cfg.SnapshotEveryDays > 0 && s.Day%cfg.SnapshotEveryDays == 0 {
			fn := fmt.Sprintf("snapshot_day%05d.json", s.Day)
			if err := s.WriteSnapshot(fn); err != nil {
				logger.Error("snapshot write failed", "path", fn, "error", err)
			}
		}

		if cfg.MapEveryDays > 0 && s.Day%cfg.MapEveryDays == 0 {
			fn := fmt.Sprintf("map_day%05d.txt", s.Day)
			if err := s.WriteMap(fn, 80, 40); err != nil {
				logger.Error("map write failed", "path", fn, "error", err)
			}
		}
	}

	s.Report()
	return 0
}

// logDefaultedKeys diagnoses which world-level settings a source left
// at DefaultConfig()'s value, purely for operator visibility — it
// never changes cfg.
func logDefaultedKeys(logger *slog.Logger, cfg dsl.Config) {
	def := dsl.DefaultConfig()
	defaulted := map[string]bool{
		"seed":            cfg.Seed == def.Seed,
		"days":            cfg.Days == def.Days,
		"agents":          cfg.AgentCount == def.AgentCount,
		"settlements":     cfg.SettlementCount == def.SettlementCount,
		"cache_max":       cfg.CacheMax == def.CacheMax,
		"snapshot_every":  cfg.SnapshotEveryDays == def.SnapshotEveryDays,
		"map_every":       cfg.MapEveryDays == def.MapEveryDays,
	}

	keys := maps.Keys(defaulted)
	slices.Sort(keys)

	var stillDefault []string
	for _, k := range keys {
		if defaulted[k] {
			stillDefault = append(stillDefault, k)
		}
	}
	if len(stillDefault) > 0 {
		logger.Info("these world settings equal the built-in defaults", "keys", stillDefault)
	}
}

func main() {
	logger := newLogger()
	slog.SetDefault(logger)
	os.Exit(run(os.Args, logger))
}
