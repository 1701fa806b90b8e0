package collab

import (
	"fmt"
	"sync"
	"time"

	"github.com/inamate/rigidgroup/internal/document"
	"github.com/inamate/rigidgroup/internal/engine"
	"github.com/inamate/rigidgroup/internal/typeid"
)

const maxOpLog = 1024

// BoardState holds the authoritative engine for a room. Every access goes
// through its mutex since the engine is single-threaded.
type BoardState struct {
	mu        sync.Mutex
	engine    *engine.Engine
	serverSeq int64
	opLog     []Operation // most recent operations, oldest first
}

// NewBoardState wraps a loaded engine.
func NewBoardState(e *engine.Engine) *BoardState {
	return &BoardState{
		engine: e,
		opLog:  make([]Operation, 0),
	}
}

// ApplyOperation runs op against the board and returns the new server
// sequence and board state.
func (bs *BoardState) ApplyOperation(op Operation) (int64, engine.State, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if op.ID == "" {
		op.ID = typeid.NewOpID()
	}
	if err := bs.engine.Apply(op.Command()); err != nil {
		return 0, engine.State{}, fmt.Errorf("apply %s %q: %w", op.Type, op.Target, err)
	}

	bs.serverSeq++
	bs.opLog = append(bs.opLog, op)
	if len(bs.opLog) > maxOpLog {
		bs.opLog = bs.opLog[len(bs.opLog)-maxOpLog:]
	}

	return bs.serverSeq, bs.engine.State(), nil
}

// Snapshot returns the current sequence and board state.
func (bs *BoardState) Snapshot() (int64, engine.State) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.serverSeq, bs.engine.State()
}

// Groups returns the state of every group on the board.
func (bs *BoardState) Groups() []engine.GroupState {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.engine.Groups()
}

// Export captures the live board as a document.
func (bs *BoardState) Export() (*document.Document, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return bs.engine.Export()
}

// RecentOps returns a copy of the operation log.
func (bs *BoardState) RecentOps() []Operation {
	bs.mu.Lock()
	defer bs.mu.Unlock()
	return append([]Operation(nil), bs.opLog...)
}

// GetServerTimestamp returns the current server timestamp
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
