package collab

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/inamate/rigidgroup/internal/document"
	"github.com/inamate/rigidgroup/internal/engine"
)

var (
	ErrBoardNotFound  = errors.New("board not found")
	ErrInvalidBoardID = errors.New("invalid board id")
)

var boardIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Loader returns the document for a board id.
type Loader func(boardID string) (*document.Document, error)

// DirLoader reads <dir>/<id>.toml or <dir>/<id>.json. The sample board is
// served when no file exists for its id.
func DirLoader(dir string) Loader {
	return func(boardID string) (*document.Document, error) {
		for _, ext := range []string{".toml", ".json"} {
			path := filepath.Join(dir, boardID+ext)
			doc, err := document.Load(path)
			if err == nil {
				return doc, nil
			}
			if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
		if boardID == document.SampleName {
			return document.NewSampleDocument(), nil
		}
		return nil, fmt.Errorf("%q: %w", boardID, ErrBoardNotFound)
	}
}

// Registry holds the live board of every open room, loading boards on
// first use.
type Registry struct {
	mu     sync.Mutex
	boards map[string]*BoardState
	load   Loader

	SnapSize        float64
	ForceAllUpdates bool
}

func NewRegistry(load Loader) *Registry {
	return &Registry{
		boards: make(map[string]*BoardState),
		load:   load,
	}
}

// Get returns the live board for boardID, loading it if needed.
func (r *Registry) Get(boardID string) (*BoardState, error) {
	if !boardIDPattern.MatchString(boardID) {
		return nil, fmt.Errorf("%q: %w", boardID, ErrInvalidBoardID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if bs, ok := r.boards[boardID]; ok {
		return bs, nil
	}

	doc, err := r.load(boardID)
	if err != nil {
		return nil, err
	}

	e := engine.NewEngine()
	e.SetSnapSize(r.SnapSize)
	e.SetForceAllUpdates(r.ForceAllUpdates)
	if err := e.Load(doc); err != nil {
		return nil, err
	}

	bs := NewBoardState(e)
	r.boards[boardID] = bs
	slog.Info("board opened", "board", boardID)
	return bs, nil
}

// Close forgets a board so the next Get reloads it.
func (r *Registry) Close(boardID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.boards, boardID)
}

// Open returns the ids of every loaded board.
func (r *Registry) Open() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(r.boards))
	for id := range r.boards {
		ids = append(ids, id)
	}
	return ids
}
