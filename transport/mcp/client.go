package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tidwall/gjson"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Local Chess",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Local Chess - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Two players share one board. Moves are named by squares in algebraic
notation (files a-h, ranks 1-8), for example from "e2" to "e4". The server
checks each move against the movement rules of the piece and answers with
success or a reason code. There is no turn order, check or checkmate.

AVAILABLE TOOLS:
- create_session: Create new game session
- list_sessions: List all active sessions
- get_session: Get session details
- board_state: Board diagram, FEN and move count
- move: Attempt one move from a square to a square
- reset_game: Restore the starting position
- piece_at: Describe the piece on a square
- legal_moves: List the squares a piece may move to
- list_configs: List available configurations
- game_instructions: Full movement rules and reason codes`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func squareProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"pattern":     "^[a-hA-H][1-8]$",
		"description": description,
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Config to use, for example classic or letters (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions, most recently used first",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current board as a diagram plus its FEN and move count",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Move the piece on one square to another square. Illegal moves leave the board unchanged and report a reason.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"from":       squareProperty("Square the piece stands on, e.g. e2"),
				"to":         squareProperty("Destination square, e.g. e4"),
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset to the starting position before moving",
				},
			},
			Required: []string{"session_id", "from", "to"},
		},
	}, c.handleMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the board to the starting position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "piece_at",
		Description: "Describe the piece standing on a square, if any",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"square":     squareProperty("Square to inspect, e.g. d1"),
			},
			Required: []string{"session_id", "square"},
		},
	}, c.handlePieceAt)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "legal_moves",
		Description: "List every square the piece on a square may move to right now",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"square":     squareProperty("Square of the piece, e.g. g1"),
			},
			Required: []string{"session_id", "square"},
		},
	}, c.handleLegalMoves)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available game configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the movement rules and the meaning of every reason code",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

// apiCall performs a request and returns the raw JSON body. Responses with
// a status of 400 or more become errors carrying the server's message.
func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		if msg := gjson.GetBytes(data, "error"); msg.Exists() {
			return nil, fmt.Errorf("%s", msg.String())
		}
		return nil, fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("API returned invalid JSON")
	}

	return data, nil
}

func stringArg(request mcp.CallToolRequest, name string) string {
	args, _ := request.Params.Arguments.(map[string]interface{})
	value, _ := args[name].(string)
	return strings.TrimSpace(value)
}

func boolArg(request mcp.CallToolRequest, name string) bool {
	args, _ := request.Params.Arguments.(map[string]interface{})
	value, _ := args[name].(bool)
	return value
}

func sessionPath(sessionID string, parts ...string) string {
	path := "/api/sessions/" + url.PathEscape(sessionID)
	for _, part := range parts {
		path += "/" + url.PathEscape(part)
	}
	return path
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]string{}
	if configID := stringArg(request, "config_id"); configID != "" {
		body["config_id"] = configID
	}

	data, err := c.apiCall(ctx, "POST", "/api/sessions", body)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	session := gjson.ParseBytes(data)
	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.Get("id").String(), session.Get("config_name").String(),
		formatBoardState(session.Get("game_state")))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := c.apiCall(ctx, "GET", "/api/sessions", nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := gjson.ParseBytes(data)
	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Get("count").Int())
	response.Get("sessions").ForEach(func(_, s gjson.Result) bool {
		fmt.Fprintf(&b, "- %s (Config: %s, Moves: %d, Last used: %s)\n",
			s.Get("id").String(), s.Get("config_name").String(),
			s.Get("game_state.moves").Int(), s.Get("last_accessed_at").Time().Format("15:04:05"))
		return true
	})

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request, "session_id")

	data, err := c.apiCall(ctx, "GET", sessionPath(sessionID), nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(gjson.ParseBytes(data))), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request, "session_id")

	data, err := c.apiCall(ctx, "GET", sessionPath(sessionID, "state"), nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatBoardState(gjson.ParseBytes(data))), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request, "session_id")

	body := map[string]interface{}{
		"from":  stringArg(request, "from"),
		"to":    stringArg(request, "to"),
		"reset": boolArg(request, "reset"),
	}

	data, err := c.apiCall(ctx, "POST", sessionPath(sessionID, "move"), body)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatMoveResult(gjson.ParseBytes(data))), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request, "session_id")

	data, err := c.apiCall(ctx, "POST", sessionPath(sessionID, "reset"), nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := gjson.ParseBytes(data)
	result := fmt.Sprintf("%s\n\n%s", response.Get("message").String(), formatBoardState(response.Get("state")))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handlePieceAt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request, "session_id")
	square := stringArg(request, "square")

	data, err := c.apiCall(ctx, "GET", sessionPath(sessionID, "pieces", square), nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info := gjson.ParseBytes(data)
	piece := info.Get("piece")
	if !piece.IsObject() {
		return mcp.NewToolResultText(fmt.Sprintf("%s is empty", info.Get("square").String())), nil
	}

	result := fmt.Sprintf("%s: %s %s %s (moved: %t)",
		info.Get("square").String(), piece.Get("icon").String(),
		piece.Get("color").String(), piece.Get("kind").String(), piece.Get("has_moved").Bool())
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLegalMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := stringArg(request, "session_id")
	square := stringArg(request, "square")

	data, err := c.apiCall(ctx, "GET", sessionPath(sessionID, "legal", square), nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := gjson.ParseBytes(data)
	var targets []string
	for _, t := range response.Get("targets").Array() {
		targets = append(targets, t.String())
	}

	piece := response.Get("piece")
	label := fmt.Sprintf("%s %s on %s", piece.Get("color").String(), piece.Get("kind").String(), response.Get("square").String())
	if len(targets) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("The %s has no legal moves", label)), nil
	}

	result := fmt.Sprintf("The %s can move to: %s", label, strings.Join(targets, ", "))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := c.apiCall(ctx, "GET", "/api/configs", nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	gjson.ParseBytes(data).ForEach(func(_, cfg gjson.Result) bool {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Glyphs: %s\n\n",
			cfg.Get("name").String(), cfg.Get("config_id").String(),
			cfg.Get("description").String(), cfg.Get("glyph_set").String())
		return true
	})

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Local Chess - Movement Rules

BOARD:
Files a-h run left to right from White's side, ranks 1-8 run bottom to top.
White starts on ranks 1-2, Black on ranks 7-8. Either side may move at any
time; there is no turn order.

PIECES:
• Pawn: one square straight forward onto an empty square, or two from its
  starting rank when both squares are empty. Captures one square diagonally
  forward, and only when an enemy stands there.
• Knight: an L shape (2+1). Jumps over anything.
• Bishop: any distance diagonally, path must be empty.
• Rook: any distance along a rank or file, path must be empty.
• Queen: bishop or rook movement.
• King: one square in any direction.

A piece may end on an empty square or capture an enemy piece. It may never
land on a piece of its own color.

NOT MODELLED: check, checkmate, castling, en passant, promotion.

REASON CODES (when success is false the board is unchanged):
• out_of_bounds: a square is off the board
• piece_mismatch: the piece is not on the from square
• null_move: from and to are the same square
• illegal_geometry: the piece cannot move that way
• path_blocked: a piece stands between from and to
• friendly_destination: the destination holds a piece of the same color
• destination_occupied: a pawn push ran into a piece
• nothing_to_capture: a pawn moved diagonally onto an empty square

TIP: use legal_moves before moving to see every allowed destination.`

// Formatting helpers

func formatBoardState(state gjson.Result) string {
	if !state.Exists() {
		return "No board state available"
	}

	var b strings.Builder
	if diagram := state.Get("diagram").String(); diagram != "" {
		b.WriteString(diagram)
		if !strings.HasSuffix(diagram, "\n") {
			b.WriteString("\n")
		}
	}
	fmt.Fprintf(&b, "FEN: %s\n", state.Get("fen").String())
	fmt.Fprintf(&b, "Moves: %d\n", state.Get("moves").Int())

	if last := state.Get("last_move"); last.Exists() {
		fmt.Fprintf(&b, "Last move: %s %s (%d,%d)->(%d,%d)",
			last.Get("color").String(), last.Get("kind").String(),
			last.Get("from.row").Int(), last.Get("from.col").Int(),
			last.Get("to.row").Int(), last.Get("to.col").Int())
		if captured := last.Get("captured"); captured.Exists() {
			fmt.Fprintf(&b, " captured %s %s", captured.Get("color").String(), captured.Get("kind").String())
		}
		b.WriteString("\n")
	}

	if msg := state.Get("message").String(); msg != "" {
		fmt.Fprintf(&b, "Message: %s\n", msg)
	}
	return b.String()
}

func formatMoveResult(result gjson.Result) string {
	var b strings.Builder
	from, to := result.Get("from").String(), result.Get("to").String()

	if result.Get("success").Bool() {
		piece := result.Get("piece")
		fmt.Fprintf(&b, "✅ %s %s %s -> %s\n", piece.Get("color").String(), piece.Get("kind").String(), from, to)
		if captured := result.Get("captured"); captured.Exists() {
			fmt.Fprintf(&b, "Captured %s %s\n", captured.Get("color").String(), captured.Get("kind").String())
		}
	} else {
		fmt.Fprintf(&b, "❌ Move %s -> %s rejected: %s\n", from, to, result.Get("reason").String())
	}

	b.WriteString("\n")
	b.WriteString(formatBoardState(result.Get("game_state")))
	return b.String()
}

func formatSessionInfo(session gjson.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", session.Get("id").String())
	fmt.Fprintf(&b, "Config: %s\n", session.Get("config_name").String())
	fmt.Fprintf(&b, "Created: %s\n", session.Get("created_at").Time().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Last Accessed: %s\n\n", session.Get("last_accessed_at").Time().Format("2006-01-02 15:04:05"))
	b.WriteString(formatBoardState(session.Get("game_state")))
	return b.String()
}
