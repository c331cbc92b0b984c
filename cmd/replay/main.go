// Command replay plays a JSON script of moves against a fresh board and
// prints the outcome of each one followed by the final diagram and FEN.
//
// A script is an array of moves:
//
//	[{"from": "e2", "to": "e4"}, {"from": "d7", "to": "d5"}]
//
// Usage:
//
//	replay [--config configs/letters.json] [--strict] script.json
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/localchess/game/engine"
	"github.com/wricardo/mcp-training/localchess/game/notation"
)

// Step is one scripted move
type Step struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Summary counts what happened during a replay
type Summary struct {
	Applied  int
	Rejected int
	Invalid  int
	Captures int
}

func main() {
	cmd := &cli.Command{
		Name:      "replay",
		Usage:     "Replay a JSON move script against a fresh board",
		ArgsUsage: "script.json",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Game configuration file (defaults to the built-in classic config)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "Exit with an error if any move is rejected",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one script file")
	}

	steps, err := loadScript(cmd.Args().First())
	if err != nil {
		return err
	}

	config := engine.DefaultConfig()
	if path := cmd.String("config"); path != "" {
		config, err = engine.LoadGameConfig(path)
		if err != nil {
			return fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return err
	}

	summary := replay(os.Stdout, eng, steps)
	if cmd.Bool("strict") && (summary.Rejected > 0 || summary.Invalid > 0) {
		return fmt.Errorf("%d moves rejected, %d invalid", summary.Rejected, summary.Invalid)
	}
	return nil
}

// loadScript reads a move script from disk
func loadScript(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var steps []Step
	if err := json.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("parsing script %s: %w", path, err)
	}
	return steps, nil
}

// replay applies every step in order, writing one line per step and a
// final report
func replay(w io.Writer, eng *engine.GameEngine, steps []Step) Summary {
	var summary Summary

	for i, step := range steps {
		from, fromErr := notation.ParseSquare(step.From)
		to, toErr := notation.ParseSquare(step.To)
		if fromErr != nil || toErr != nil {
			summary.Invalid++
			fmt.Fprintf(w, "%3d. %s-%s  INVALID square\n", i+1, step.From, step.To)
			continue
		}

		outcome := eng.Attempt(from, to, eng.PieceAt(from.Row, from.Col))
		if !outcome.Applied {
			summary.Rejected++
			fmt.Fprintf(w, "%3d. %s-%s  REJECTED %s\n", i+1, step.From, step.To, outcome.Reason)
			continue
		}

		summary.Applied++
		line := fmt.Sprintf("%3d. %s-%s  %s %s", i+1, step.From, step.To, outcome.Piece.Icon, outcome.Piece.Kind)
		if outcome.Captured != nil {
			summary.Captures++
			line += fmt.Sprintf(" x %s %s", outcome.Captured.Icon, outcome.Captured.Kind)
		}
		fmt.Fprintln(w, line)
	}

	board := eng.Board()
	fmt.Fprintf(w, "\n%s\n", notation.Diagram(board))
	fmt.Fprintf(w, "FEN: %s\n", notation.FEN(board))
	fmt.Fprintf(w, "Applied: %d  Rejected: %d  Invalid: %d  Captures: %d\n",
		summary.Applied, summary.Rejected, summary.Invalid, summary.Captures)

	return summary
}
