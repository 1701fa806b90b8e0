package group

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/inamate/rigidgroup/internal/board"
	"github.com/inamate/rigidgroup/internal/geom"
)

// CenterKind tags the variant held by a Center.
type CenterKind int

const (
	CenterNone CenterKind = iota
	CenterPoint
	CenterCoords
	CenterCentroid
	CenterFunc
	CenterInvalid
)

func (k CenterKind) String() string {
	switch k {
	case CenterNone:
		return "none"
	case CenterPoint:
		return "point"
	case CenterCoords:
		return "coords"
	case CenterCentroid:
		return "centroid"
	case CenterFunc:
		return "func"
	default:
		return "invalid"
	}
}

// Center is the pivot of a rotation or scaling. The zero value is unset.
type Center struct {
	kind    CenterKind
	pointID string
	coords  mgl64.Vec2
	fn      func() mgl64.Vec2
	raw     any
}

// PointCenter pivots on the live coordinates of a board point.
func PointCenter(pointID string) Center {
	return Center{kind: CenterPoint, pointID: pointID}
}

// CoordsCenter pivots on a fixed pair.
func CoordsCenter(x, y float64) Center {
	return Center{kind: CenterCoords, coords: mgl64.Vec2{x, y}}
}

// CentroidCenter pivots on the mean of the members' snapshot coordinates.
func CentroidCenter() Center {
	return Center{kind: CenterCentroid}
}

// FuncCenter pivots on whatever fn returns at resolve time.
func FuncCenter(fn func() mgl64.Vec2) Center {
	if fn == nil {
		return Center{kind: CenterInvalid}
	}
	return Center{kind: CenterFunc, fn: fn}
}

// ParseCenter converts a loosely typed value into a Center. Values it does
// not recognise produce an invalid center: it counts as set, but resolving
// it fails and the transform kind it serves stays disabled.
func ParseCenter(v any) Center {
	switch c := v.(type) {
	case nil:
		return Center{}
	case Center:
		return c
	case *board.Point:
		if c == nil {
			return Center{kind: CenterInvalid}
		}
		return PointCenter(c.ID())
	case string:
		if c == "centroid" {
			return CentroidCenter()
		}
	case mgl64.Vec2:
		return CoordsCenter(c.X(), c.Y())
	case [2]float64:
		return CoordsCenter(c[0], c[1])
	case []float64:
		if len(c) == 2 {
			return CoordsCenter(c[0], c[1])
		}
	case func() mgl64.Vec2:
		return FuncCenter(c)
	}
	return Center{kind: CenterInvalid, raw: v}
}

func (c Center) Kind() CenterKind { return c.kind }

// IsSet reports whether a center was configured. An invalid center is set.
func (c Center) IsSet() bool { return c.kind != CenterNone }

// PointID returns the referenced point for CenterPoint centers.
func (c Center) PointID() string { return c.pointID }

// Raw returns the unrecognised value behind a CenterInvalid center.
func (c Center) Raw() any { return c.raw }

// Coords returns the fixed pivot of a CenterCoords center.
func (c Center) Coords() mgl64.Vec2 { return c.coords }

func (c Center) String() string {
	switch c.kind {
	case CenterPoint:
		return "point:" + c.pointID
	case CenterCoords:
		return fmt.Sprintf("(%g, %g)", c.coords.X(), c.coords.Y())
	case CenterInvalid:
		return fmt.Sprintf("invalid(%v)", c.raw)
	default:
		return c.kind.String()
	}
}

// ResolveCenter returns the pivot described by c for the group's current
// state. The centroid uses snapshot coordinates, not live ones.
func (g *Group) ResolveCenter(c Center) (mgl64.Vec2, error) {
	switch c.kind {
	case CenterPoint:
		p, ok := g.board.Point(c.pointID)
		if !ok {
			return mgl64.Vec2{}, fmt.Errorf("center point %q: %w", c.pointID, ErrUnsupportedCenterSpec)
		}
		return p.Coords(), nil
	case CenterCoords:
		return c.coords, nil
	case CenterCentroid:
		// Members removed from the board are left out even before the
		// next applied cycle drops them.
		coords := make([]mgl64.Vec2, 0, len(g.members))
		for _, id := range g.members {
			if _, ok := g.board.Point(id); !ok {
				continue
			}
			coords = append(coords, g.snapshot[id])
		}
		return geom.Centroid(coords), nil
	case CenterFunc:
		return c.fn(), nil
	default:
		return mgl64.Vec2{}, fmt.Errorf("resolve %s center: %w", c, ErrUnsupportedCenterSpec)
	}
}
