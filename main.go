package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/urfave/cli"

	"github.com/sheikhrachel/lifeboard/model"
	"github.com/sheikhrachel/lifeboard/utils"
)

const (
	flagConfig           = "config"
	flagRows             = "rows"
	flagColumns          = "columns"
	flagGenerations      = "generations"
	flagSeed             = "seed"
	flagDensity          = "density"
	flagWorkers          = "workers"
	flagInterval         = "interval"
	flagPattern          = "pattern"
	flagStopWhenStagnant = "stop-when-stagnant"
	flagDebug            = "debug"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "lifeboard"
	app.Usage = "run Conway's Game of Life on a bounded board in the terminal"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: flagConfig, Usage: "load settings from a JSON `FILE`"},
		cli.IntFlag{Name: flagRows, Usage: fmt.Sprintf("board rows (%d-%d)", utils.MinRows, utils.MaxRows)},
		cli.IntFlag{Name: flagColumns, Usage: fmt.Sprintf("board columns (%d-%d)", utils.MinColumns, utils.MaxColumns)},
		cli.IntFlag{Name: flagGenerations, Usage: fmt.Sprintf("generations to run (%d-%d)", utils.MinGenerations, utils.MaxGenerations)},
		cli.Int64Flag{Name: flagSeed, Usage: "random seed, 0 picks one from the clock"},
		cli.IntFlag{Name: flagDensity, Usage: "cells start alive with probability 1/`N`"},
		cli.IntFlag{Name: flagWorkers, Usage: "goroutines used to compute each generation"},
		cli.DurationFlag{Name: flagInterval, Usage: "delay between generations"},
		cli.StringFlag{Name: flagPattern, Usage: "start from an empty board with this pattern in the middle"},
		cli.BoolFlag{Name: flagStopWhenStagnant, Usage: "stop once the board settles into a still life or short cycle"},
		cli.BoolFlag{Name: flagDebug, Usage: "log every generation"},
	}
	app.Action = runAction
	return app
}

func newLogger(debug bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	if debug {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}

func runAction(c *cli.Context) error {
	logger := newLogger(c.Bool(flagDebug))

	config, err := loadConfig(c)
	if err != nil {
		level.Error(logger).Log("msg", "failed to load configuration", "err", err)
		return cli.NewExitError(err.Error(), 1)
	}

	printWelcome(os.Stdout)
	if err = promptMissing(&config, os.Stdin, os.Stdout); err != nil {
		level.Error(logger).Log("msg", "failed to read board settings", "err", err)
		return cli.NewExitError(err.Error(), 1)
	}
	if err = config.Validate(); err != nil {
		level.Error(logger).Log("msg", "invalid configuration", "err", err)
		return cli.NewExitError(err.Error(), 1)
	}

	board, err := initializeGame(config)
	if err != nil {
		level.Error(logger).Log("msg", "failed to create board", "err", err)
		return cli.NewExitError(err.Error(), 1)
	}
	level.Info(logger).Log(
		"msg", "starting simulation",
		"rows", board.Rows(),
		"columns", board.Columns(),
		"generations", config.Generations,
		"workers", config.Workers,
		"living", board.CountLivingCells(),
	)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	game := &game{
		config:   config,
		board:    board,
		renderer: model.NewTerminalRenderer(),
		stats:    utils.NewStats(),
		logger:   logger,
		sleep:    time.Sleep,
	}
	reason := game.run(sigChan)

	level.Info(logger).Log(
		"msg", "simulation finished",
		"reason", reason,
		"generations", board.Generation(),
		"living", board.CountLivingCells(),
		"avg_population", fmt.Sprintf("%.1f", game.stats.AveragePopulation),
		"runtime", game.stats.Runtime().Round(time.Millisecond),
	)
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
