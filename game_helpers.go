package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/sheikhrachel/lifeboard/model"
	"github.com/sheikhrachel/lifeboard/utils"
)

const (
	reasonCompleted   = "completed"
	reasonInterrupted = "interrupted"
	reasonStagnant    = "stagnant"
	reasonExtinct     = "extinct"
)

// loadConfig layers command line flags over the optional config file
func loadConfig(c *cli.Context) (utils.Config, error) {
	config := utils.DefaultConfig()

	if path := c.String(flagConfig); path != "" {
		loaded, err := utils.LoadConfig(path)
		if err != nil {
			return config, err
		}
		config = loaded
	}

	if c.IsSet(flagRows) {
		config.Rows = c.Int(flagRows)
	}
	if c.IsSet(flagColumns) {
		config.Columns = c.Int(flagColumns)
	}
	if c.IsSet(flagGenerations) {
		config.Generations = c.Int(flagGenerations)
	}
	if c.IsSet(flagSeed) {
		config.Seed = c.Int64(flagSeed)
	}
	if c.IsSet(flagDensity) {
		config.Density = c.Int(flagDensity)
	}
	if c.IsSet(flagWorkers) {
		config.Workers = c.Int(flagWorkers)
	}
	if c.IsSet(flagInterval) {
		config.FrameRate = c.Duration(flagInterval)
	}
	if c.IsSet(flagPattern) {
		config.Pattern = c.String(flagPattern)
	}
	if c.IsSet(flagStopWhenStagnant) {
		config.StopWhenStagnant = c.Bool(flagStopWhenStagnant)
	}
	return config, nil
}

func printWelcome(out io.Writer) {
	fmt.Fprintln(out, "Conway's Game of Life")
	fmt.Fprintln(out, "  a live cell with fewer than two live neighbors dies (underpopulation)")
	fmt.Fprintln(out, "  a live cell with more than three live neighbors dies (overpopulation)")
	fmt.Fprintln(out, "  a live cell with two or three live neighbors lives on")
	fmt.Fprintln(out, "  a dead cell with exactly three live neighbors comes alive (reproduction)")
	fmt.Fprintln(out)
}

// promptMissing asks for any board setting not given by flags or the config file
func promptMissing(config *utils.Config, in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)
	var err error
	if config.Rows == 0 {
		if config.Rows, err = promptInt(r, out, "How many rows?", utils.MinRows, utils.MaxRows); err != nil {
			return err
		}
	}
	if config.Columns == utils.UnsetColumns {
		if config.Columns, err = promptInt(r, out, "How many columns?", utils.MinColumns, utils.MaxColumns); err != nil {
			return err
		}
	}
	if config.Generations == 0 {
		if config.Generations, err = promptInt(r, out, "How many generations?", utils.MinGenerations, utils.MaxGenerations); err != nil {
			return err
		}
	}
	return nil
}

// promptInt keeps asking until it reads an integer within [lo, hi]
func promptInt(r *bufio.Reader, out io.Writer, question string, lo, hi int) (int, error) {
	for {
		fmt.Fprintf(out, "%s ", question)
		line, err := r.ReadString('\n')
		if line == "" && err != nil {
			if err == io.EOF {
				return 0, errors.Errorf("[promptInt] input closed before answering %q", question)
			}
			return 0, errors.Wrap(err, "[promptInt] failed to read input")
		}

		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		switch {
		case convErr != nil:
			fmt.Fprintln(out, "Please enter a valid integer. Try again.")
		case n < lo || n > hi:
			fmt.Fprintf(out, "Please enter a number in the range %d to %d. Try again.\n", lo, hi)
		default:
			return n, nil
		}

		if err != nil {
			return 0, errors.Errorf("[promptInt] input closed before answering %q", question)
		}
	}
}

// initializeGame builds the board described by config
func initializeGame(config utils.Config) (*model.Board, error) {
	opts := []model.Option{
		model.WithDensity(config.Density),
		model.WithWorkers(config.Workers),
	}
	if config.Seed != 0 {
		opts = append(opts, model.WithSeed(config.Seed))
	}

	var pattern model.Pattern
	if config.Pattern != "" {
		var err error
		if pattern, err = model.PatternByName(config.Pattern); err != nil {
			return nil, err
		}
		opts = append(opts, model.WithEmptyGrid())
	}

	board, err := model.NewBoard(config.Rows, config.Columns, opts...)
	if err != nil {
		return nil, err
	}
	if config.Pattern != "" {
		board.Place(pattern, config.Rows/2-1, config.Columns/2-1)
	}
	return board, nil
}

// game drives a board through its generations
type game struct {
	config   utils.Config
	board    *model.Board
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	history  utils.History
	logger   log.Logger
	sleep    func(time.Duration)
}

// run renders the starting board and every generation after it, returning why it stopped
func (g *game) run(sigChan <-chan os.Signal) string {
	var (
		stagnantCount = 0
		lastFrameTime = time.Now()
	)

	for {
		select {
		case <-sigChan:
			return reasonInterrupted
		default:
			// Continue with game loop
		}

		frameStart := time.Now()
		living := g.board.CountLivingCells()
		g.stats.Update(g.board.Generation(), living, time.Since(lastFrameTime))
		lastFrameTime = frameStart

		if err := g.render(living); err != nil {
			level.Warn(g.logger).Log("msg", "failed to render board", "err", err)
		}

		hash := g.board.Hash()
		if g.history.Stagnant(hash) {
			stagnantCount++
		} else {
			stagnantCount = 0
		}
		g.history.Record(hash)

		level.Debug(g.logger).Log(
			"msg", "generation",
			"generation", g.board.Generation(),
			"living", living,
			"stagnant", stagnantCount,
		)

		if g.board.Generation() >= g.config.Generations {
			return reasonCompleted
		}
		if g.config.StopWhenStagnant {
			if living == 0 {
				return reasonExtinct
			}
			if stagnantCount >= g.config.StagnationThreshold {
				return reasonStagnant
			}
		}

		g.board.Advance()

		// Wait before next frame
		if g.sleep != nil {
			g.sleep(g.config.FrameRate)
		}
	}
}

// render shows the current generation with its status line
func (g *game) render(living int) error {
	if err := g.renderer.Clear(); err != nil {
		return err
	}

	density := 0.0
	if cells := g.board.Rows() * g.board.Columns(); cells > 0 {
		density = float64(living) / float64(cells) * 100
	}
	if _, err := fmt.Fprintf(g.renderer.Out, "Gen: %d/%d | Living: %d | Density: %.1f%%\n",
		g.board.Generation(), g.config.Generations, living, density); err != nil {
		return err
	}

	return g.renderer.Display(g.board)
}
