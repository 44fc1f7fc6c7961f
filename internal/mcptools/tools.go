package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go-chi-calculator/internal/calculator"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Tool names
const (
	ToolPress   = "calculator_press"
	ToolButton  = "calculator_button"
	ToolDisplay = "calculator_display"
)

// Result is the JSON payload every tool returns.
type Result struct {
	Display      calculator.Display `json:"display"`
	Notification string             `json:"notification,omitempty"`
	Ignored      []string           `json:"ignored,omitempty"`
}

// Calculator exposes one process-wide calculator.Machine as MCP tools.
// Tool calls may arrive concurrently, so access is serialised.
type Calculator struct {
	mu      sync.Mutex
	machine *calculator.Machine
	logger  *zap.Logger
}

func NewCalculator(logger *zap.Logger) *Calculator {
	return &Calculator{
		machine: calculator.NewMachine(),
		logger:  logger,
	}
}

// Register adds all calculator tools to s.
func (c *Calculator) Register(s *server.MCPServer) {
	s.AddTool(c.PressTool(), c.HandlePress)
	s.AddTool(c.ButtonTool(), c.HandleButton)
	s.AddTool(c.DisplayTool(), c.HandleDisplay)
}

func (c *Calculator) PressTool() mcp.Tool {
	return mcp.NewTool(ToolPress,
		mcp.WithDescription("Press keyboard keys on the calculator, in order. "+
			"Keys: 0-9 . + - * / = Enter Escape Backspace %"),
		mcp.WithString("keys", mcp.Required(), mcp.Description("Whitespace-separated key names, e.g. \"1 2 + 3 Enter\"")),
	)
}

func (c *Calculator) ButtonTool() mcp.Tool {
	return mcp.NewTool(ToolButton,
		mcp.WithDescription("Press one keypad button: a number or an action"),
		mcp.WithString("number", mcp.Description("A digit 0-9 or \".\"")),
		mcp.WithString("action", mcp.Description("add, subtract, multiply, divide, clear, backspace, equals or percentage")),
	)
}

func (c *Calculator) DisplayTool() mcp.Tool {
	return mcp.NewTool(ToolDisplay,
		mcp.WithDescription("Read the calculator's primary and secondary display lines"),
	)
}

func (c *Calculator) HandlePress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys := strings.Fields(mcp.ParseString(req, "keys", ""))
	if len(keys) == 0 {
		return mcp.NewToolResultError("keys parameter is required"), nil
	}

	var inputs []calculator.Input
	var ignored []string
	for _, key := range keys {
		in, ok := calculator.ParseKey(key)
		if !ok {
			ignored = append(ignored, key)
			continue
		}
		inputs = append(inputs, in)
	}

	res, err := c.apply(inputs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res.Ignored = ignored
	return c.result(res)
}

func (c *Calculator) HandleButton(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in, err := calculator.ParseButton(
		mcp.ParseString(req, "number", ""),
		mcp.ParseString(req, "action", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := c.apply([]calculator.Input{in})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return c.result(res)
}

func (c *Calculator) HandleDisplay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c.mu.Lock()
	display := c.machine.Display()
	c.mu.Unlock()

	return c.result(Result{Display: display})
}

func (c *Calculator) apply(inputs []calculator.Input) (Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var res Result
	for _, in := range inputs {
		err := c.machine.Apply(in)
		switch {
		case errors.Is(err, calculator.ErrDivisionByZero):
			res.Notification = calculator.DivisionByZeroMessage
			c.logger.Warn("division by zero, calculator cleared")
		case err != nil:
			return Result{}, err
		}
	}
	res.Display = c.machine.Display()
	return res, nil
}

func (c *Calculator) result(res Result) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
