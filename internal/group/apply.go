package group

import (
	"log/slog"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// apply moves every member according to t. Positions are computed from the
// snapshot, never from already mutated live values, and are assigned
// without snapping.
func (g *Group) apply(c Classification, t Transform) {
	var stale []string
	for _, id := range g.members {
		if _, ok := g.board.Point(id); !ok {
			stale = append(stale, id)
			continue
		}

		before := g.snapshot[id]
		var next mgl64.Vec2
		switch t.Action {
		case ActionTranslation:
			// The drag source and every other changed member already carry
			// their new position.
			if slices.Contains(c.Changed, id) {
				continue
			}
			next = before.Add(t.Translation)
		default:
			next = t.Matrix.TransformPoint(before)
		}

		if err := g.board.SetPositionDirectly(id, next); err != nil {
			slog.Warn("group apply", "group", g.id, "point", id, "error", err)
		}
	}

	for _, id := range stale {
		slog.Debug("dropping member", "group", g.id, "point", id, "error", ErrStaleMemberReference)
		g.forget(id)
	}
}
