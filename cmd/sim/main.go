// Command sim runs autopiloted boss encounters in parallel and prints a JSON
// summary of how far the pilot got.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bossrush/internal/boss"
	"github.com/tomz197/bossrush/internal/config"
)

func main() {
	var cfg batchConfig
	var tablesPath, resumePath, out string
	var verbose bool
	flag.IntVar(&cfg.Runs, "runs", 100, "number of simulated runs")
	flag.IntVar(&cfg.Workers, "workers", runtime.NumCPU(), "concurrent runs")
	flag.IntVar(&cfg.StartWave, "wave", 0, "wave before the first one played")
	flag.IntVar(&cfg.Waves, "waves", config.BossTierCount, "waves to clear for a win")
	flag.IntVar(&cfg.BossInterval, "interval", config.BossWaveInterval, "boss wave interval")
	flag.DurationVar(&cfg.MaxGameTime, "max-time", defaultMaxGameTime, "game time cap per run")
	flag.Int64Var(&cfg.Seed, "seed", 12345, "base seed")
	flag.StringVar(&tablesPath, "tables", "", "boss tables YAML (embedded defaults if empty)")
	flag.StringVar(&resumePath, "resume", "", "boss snapshot YAML restored into the first boss of each run")
	flag.StringVar(&out, "out", "", "summary file (stdout if empty)")
	flag.BoolVar(&verbose, "v", false, "log arena events to stderr")
	flag.Parse()

	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{Level: level})

	tables, err := config.NewTableSource(tablesPath, cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load boss tables: %v\n", err)
		os.Exit(1)
	}
	cfg.Tables = tables

	if resumePath != "" {
		raw, err := os.ReadFile(resumePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read snapshot: %v\n", err)
			os.Exit(1)
		}
		snap, err := boss.DecodeSnapshot(raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		cfg.Resume = &snap
	}

	sum := runBatch(cfg)
	b, err := json.MarshalIndent(sum, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode summary: %v\n", err)
		os.Exit(1)
	}
	if out == "" {
		fmt.Println(string(b))
		return
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write summary: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Batch of %d runs done, win rate %.2f -> %s\n", sum.Runs, sum.WinRate, out)
}
