// Command autoplay drives a running chess server over its REST API. It
// creates (or resumes) a session and plays random legal moves for White and
// Black in turn until a king falls, a side is stuck, or the move limit is hit.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/localchess/game/engine"
	"github.com/wricardo/mcp-training/localchess/game/notation"
	"github.com/wricardo/mcp-training/localchess/game/service"
)

// Client talks to the chess REST API
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, gjson.GetBytes(data, "error").String())
	}

	return json.Unmarshal(data, result)
}

func sessionPath(id string, parts ...string) string {
	path := "/api/sessions/" + url.PathEscape(id)
	for _, p := range parts {
		path += "/" + url.PathEscape(p)
	}
	return path
}

// CreateSession starts a new game, optionally with a named config
func (c *Client) CreateSession(ctx context.Context, configID string) (*service.SessionInfo, error) {
	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}
	var info service.SessionInfo
	if err := c.do(ctx, "POST", "/api/sessions", body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetState fetches the board of a session
func (c *Client) GetState(ctx context.Context, id string) (*engine.GameState, error) {
	var state engine.GameState
	if err := c.do(ctx, "GET", sessionPath(id, "state"), nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// LegalMoves lists the destinations of the piece on square
func (c *Client) LegalMoves(ctx context.Context, id, square string) ([]string, error) {
	var result service.LegalMovesResult
	if err := c.do(ctx, "GET", sessionPath(id, "legal", square), nil, &result); err != nil {
		return nil, err
	}
	return result.Targets, nil
}

// Move attempts one move
func (c *Client) Move(ctx context.Context, id, from, to string) (*service.MoveResult, error) {
	var result service.MoveResult
	req := service.MoveRequest{From: from, To: to}
	if err := c.do(ctx, "POST", sessionPath(id, "move"), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reset restores the starting position
func (c *Client) Reset(ctx context.Context, id string) error {
	var result map[string]interface{}
	return c.do(ctx, "POST", sessionPath(id, "reset"), nil, &result)
}

// PlayResult summarizes a finished game
type PlayResult struct {
	Moves    int
	Captures int
	Winner   engine.Color
	Stuck    engine.Color
	FEN      string
}

type candidate struct {
	from, to string
}

// candidates collects every legal move for one color
func candidates(ctx context.Context, c *Client, id string, state *engine.GameState, color engine.Color) ([]candidate, error) {
	var moves []candidate
	for _, cell := range state.Board.Occupied() {
		if cell.Piece.Color != color {
			continue
		}
		from := notation.SquareName(cell.Position())
		targets, err := c.LegalMoves(ctx, id, from)
		if err != nil {
			return nil, err
		}
		for _, to := range targets {
			moves = append(moves, candidate{from: from, to: to})
		}
	}
	return moves, nil
}

// play alternates colors, picking a random legal move each time
func play(ctx context.Context, c *Client, id string, maxMoves int, rng *rand.Rand, delay time.Duration, verbose bool) (*PlayResult, error) {
	result := &PlayResult{}
	color := engine.White

	for result.Moves < maxMoves {
		state, err := c.GetState(ctx, id)
		if err != nil {
			return nil, err
		}

		moves, err := candidates(ctx, c, id, state, color)
		if err != nil {
			return nil, err
		}
		if len(moves) == 0 {
			result.Stuck = color
			log.Printf("No legal moves for %s", color)
			break
		}

		pick := moves[rng.IntN(len(moves))]
		moved, err := c.Move(ctx, id, pick.from, pick.to)
		if err != nil {
			return nil, err
		}
		if !moved.Success {
			return nil, fmt.Errorf("listed move %s-%s rejected: %s", pick.from, pick.to, moved.Reason)
		}

		result.Moves++
		if verbose {
			log.Printf("%3d. %s %s-%s", result.Moves, color, pick.from, pick.to)
		}

		if moved.Captured != nil {
			result.Captures++
			log.Printf("%s %s takes %s on %s", color, moved.Piece.Kind, moved.Captured.Kind, pick.to)
			if moved.Captured.Kind == engine.King {
				result.Winner = color
				result.FEN = moved.GameState.FEN
				return result, nil
			}
		}
		result.FEN = moved.GameState.FEN

		color = color.Opponent()
		if delay > 0 {
			time.Sleep(delay)
		}
	}

	return result, nil
}

func main() {
	cmd := &cli.Command{
		Name:  "autoplay",
		Usage: "Play random legal moves against a running chess server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL"},
			&cli.StringFlag{Name: "config", Usage: "Game configuration id (classic, letters)"},
			&cli.StringFlag{Name: "continue", Usage: "Resume playing an existing session by ID"},
			&cli.IntFlag{Name: "max-moves", Value: 200, Usage: "Maximum moves to play"},
			&cli.IntFlag{Name: "seed", Value: 0, Usage: "Random seed (0 picks one from the clock)"},
			&cli.IntFlag{Name: "delay", Value: 0, Usage: "Delay between moves in milliseconds"},
			&cli.BoolFlag{Name: "v", Usage: "Verbose output"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	client := NewClient(cmd.String("url"))
	log.Printf("Connecting to game server at %s", cmd.String("url"))

	sessionID := cmd.String("continue")
	if sessionID != "" {
		log.Printf("Resuming session: %s", sessionID)
		if err := client.Reset(ctx, sessionID); err != nil {
			return fmt.Errorf("resume session %s: %w", sessionID, err)
		}
	} else {
		info, err := client.CreateSession(ctx, cmd.String("config"))
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		sessionID = info.ID
		log.Printf("Session created: %s (config %s)", sessionID, info.ConfigName)
	}

	seed := uint64(cmd.Int("seed"))
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	delay := time.Duration(cmd.Int("delay")) * time.Millisecond
	result, err := play(ctx, client, sessionID, int(cmd.Int("max-moves")), rng, delay, cmd.Bool("v"))
	if err != nil {
		return err
	}

	switch {
	case result.Winner != "":
		log.Printf("%s captured the king after %d moves", result.Winner, result.Moves)
	case result.Stuck != "":
		log.Printf("%s has no legal moves after %d moves", result.Stuck, result.Moves)
	default:
		log.Printf("Stopped after %d moves", result.Moves)
	}
	log.Printf("Captures: %d  FEN: %s", result.Captures, result.FEN)
	log.Printf("Session: %s (seed %d)", sessionID, seed)
	return nil
}
