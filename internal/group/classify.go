package group

import (
	"github.com/inamate/rigidgroup/internal/geom"
)

// Action is the transform kind resolved by an update cycle.
type Action int

const (
	ActionNone Action = iota
	ActionTranslation
	ActionRotation
	ActionScaling
)

func (a Action) String() string {
	switch a {
	case ActionTranslation:
		return "translation"
	case ActionRotation:
		return "rotation"
	case ActionScaling:
		return "scaling"
	default:
		return "none"
	}
}

// Classification is what the classifier decided for one update cycle.
type Classification struct {
	Action     Action
	DragSource string
	// Changed lists the members that moved, in insertion order.
	Changed []string
}

// classify compares live coordinates against the snapshot. Members are
// visited in insertion order, so with several changes the drag source is
// the earliest added one.
func (g *Group) classify() Classification {
	var changed []string
	for _, id := range g.members {
		p, ok := g.board.Point(id)
		if !ok {
			continue
		}
		if geom.Distance(p.Coords(), g.snapshot[id]) > geom.Eps {
			changed = append(changed, id)
		}
	}

	switch len(changed) {
	case 0:
		return Classification{Action: ActionNone}
	case 1:
	default:
		return Classification{Action: ActionTranslation, DragSource: changed[0], Changed: changed}
	}

	p := changed[0]
	c := Classification{DragSource: p, Changed: changed}
	switch {
	case g.rotationPoints.has(p) && g.rotationCenter.IsSet():
		c.Action = ActionRotation
	case g.scalePoints.has(p) && g.scaleCenter.IsSet():
		c.Action = ActionScaling
	case g.translationPoints.has(p):
		c.Action = ActionTranslation
	default:
		c.Action = ActionNone
	}
	return c
}
