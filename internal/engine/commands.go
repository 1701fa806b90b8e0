package engine

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Operation names accepted by Apply. Clients send these over the wire.
const (
	OpPointMove       = "point.move"
	OpPointMoveDirect = "point.move_direct"
	OpElementRemove   = "element.remove"
)

var ErrUnknownOp = errors.New("unknown operation")

// Command is one mutation of the board, addressed by element name or id.
type Command struct {
	Op     string  `json:"op"`
	Target string  `json:"target"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
}

// ParseCommand decodes a command from JSON.
func ParseCommand(data []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	if cmd.Target == "" {
		return Command{}, fmt.Errorf("command %q has no target", cmd.Op)
	}
	return cmd, nil
}

// Apply runs cmd against the board.
func (e *Engine) Apply(cmd Command) error {
	switch cmd.Op {
	case OpPointMove:
		return e.MovePoint(cmd.Target, cmd.X, cmd.Y)
	case OpPointMoveDirect:
		return e.MovePointDirectly(cmd.Target, cmd.X, cmd.Y)
	case OpElementRemove:
		_, err := e.RemoveElement(cmd.Target)
		return err
	}
	return fmt.Errorf("%q: %w", cmd.Op, ErrUnknownOp)
}
