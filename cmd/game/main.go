package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/bossrush/internal/config"
	"github.com/tomz197/bossrush/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// The frame owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv("BOSSRUSH_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{ReportTimestamp: true, Level: log.DebugLevel})

	tables, err := config.NewTableSource(config.GetEnv("BOSSRUSH_TABLES", ""), logger)
	if err != nil {
		return fmt.Errorf("load boss tables: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		if err := tables.Watch(ctx); err != nil {
			logger.Warn("table watch stopped", "err", err)
		}
	}()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	s := loop.NewSession(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Tables:       tables,
		BossInterval: config.GetEnvInt("BOSSRUSH_BOSS_INTERVAL", config.BossWaveInterval),
		Username:     config.GetEnv("USER", "player"),
		Logger:       logger,
	})
	return s.Run(ctx)
}
