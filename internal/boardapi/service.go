// Package boardapi exposes live boards over HTTP. Changes made here are
// applied through the same board state the websocket hub uses, so
// connected clients see them.
package boardapi

import (
	"errors"
	"fmt"
	"math"

	"github.com/inamate/rigidgroup/internal/collab"
	"github.com/inamate/rigidgroup/internal/engine"
)

var ErrInvalidRequest = errors.New("invalid request")

// Notifier is told when a board changed outside the websocket.
type Notifier interface {
	BroadcastState(boardID string)
}

type Service struct {
	boards   *collab.Registry
	notifier Notifier
}

func NewService(boards *collab.Registry, notifier Notifier) *Service {
	return &Service{boards: boards, notifier: notifier}
}

// Board describes a board and its current sequence number.
type Board struct {
	ID        string       `json:"id"`
	ServerSeq int64        `json:"serverSeq"`
	State     engine.State `json:"state"`
}

func (s *Service) Get(boardID string) (*Board, error) {
	bs, err := s.boards.Get(boardID)
	if err != nil {
		return nil, err
	}
	seq, st := bs.Snapshot()
	return &Board{ID: boardID, ServerSeq: seq, State: st}, nil
}

func (s *Service) Groups(boardID string) ([]engine.GroupState, error) {
	bs, err := s.boards.Get(boardID)
	if err != nil {
		return nil, err
	}
	return bs.Groups(), nil
}

// MovePoint moves a point as a drag would, or directly without snapping.
func (s *Service) MovePoint(boardID, point string, x, y float64, direct bool) (*Board, error) {
	if !finite(x) || !finite(y) {
		return nil, fmt.Errorf("move %s to (%v, %v): %w", point, x, y, ErrInvalidRequest)
	}
	op := engine.OpPointMove
	if direct {
		op = engine.OpPointMoveDirect
	}
	return s.apply(boardID, collab.Operation{Type: op, Target: point, X: x, Y: y})
}

// RemoveElement deletes an element and everything built on it.
func (s *Service) RemoveElement(boardID, element string) (*Board, error) {
	return s.apply(boardID, collab.Operation{Type: engine.OpElementRemove, Target: element})
}

func (s *Service) apply(boardID string, op collab.Operation) (*Board, error) {
	bs, err := s.boards.Get(boardID)
	if err != nil {
		return nil, err
	}
	op.Timestamp = collab.GetServerTimestamp()

	seq, st, err := bs.ApplyOperation(op)
	if err != nil {
		return nil, fmt.Errorf("board %s: %w", boardID, err)
	}
	if s.notifier != nil {
		s.notifier.BroadcastState(boardID)
	}
	return &Board{ID: boardID, ServerSeq: seq, State: st}, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
