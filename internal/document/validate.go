package document

import (
	"errors"
	"fmt"
	"slices"
)

type nameKind int

const (
	kindFreePoint nameKind = iota
	kindMidpoint
	kindOther
)

// Validate checks names are unique and every reference resolves to an
// element of the right kind. All problems are reported together.
func (d *Document) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	names := make(map[string]nameKind)
	declare := func(what, name string, kind nameKind) {
		if name == "" {
			fail("%s without a name", what)
			return
		}
		if _, dup := names[name]; dup {
			fail("duplicate name %q", name)
			return
		}
		names[name] = kind
	}
	isPoint := func(name string) bool {
		k, ok := names[name]
		return ok && k != kindOther
	}
	isFreePoint := func(name string) bool {
		k, ok := names[name]
		return ok && k == kindFreePoint
	}

	if d.Board.SnapSize < 0 {
		fail("board snap_size must not be negative")
	}

	for _, p := range d.Points {
		declare("point", p.Name, kindFreePoint)
	}
	for _, m := range d.Midpoints {
		for _, ref := range []string{m.A, m.B} {
			if !isPoint(ref) {
				fail("midpoint %q: unknown point %q", m.Name, ref)
			}
		}
		declare("midpoint", m.Name, kindMidpoint)
	}
	for _, s := range d.Segments {
		for _, ref := range []string{s.A, s.B} {
			if !isPoint(ref) {
				fail("segment %q: unknown point %q", s.Name, ref)
			}
		}
		declare("segment", s.Name, kindOther)
	}
	for _, p := range d.Polygons {
		if len(p.Vertices) < 3 {
			fail("polygon %q needs at least 3 vertices", p.Name)
		}
		for _, ref := range p.Vertices {
			if !isPoint(ref) {
				fail("polygon %q: unknown point %q", p.Name, ref)
			}
		}
		declare("polygon", p.Name, kindOther)
	}
	for _, c := range d.Circles {
		for _, ref := range []string{c.Center, c.Through} {
			if !isPoint(ref) {
				fail("circle %q: unknown point %q", c.Name, ref)
			}
		}
		declare("circle", c.Name, kindOther)
	}

	var groupNames []string
	for _, g := range d.Groups {
		if g.Name != "" {
			if slices.Contains(groupNames, g.Name) {
				fail("duplicate group %q", g.Name)
			}
			groupNames = append(groupNames, g.Name)
		}
		for _, ref := range g.Points {
			if !isFreePoint(ref) {
				fail("group %q: %q is not a free point", g.Name, ref)
			}
		}
		for _, ref := range slices.Concat(g.TranslationPoints, g.RotationPoints) {
			if !slices.Contains(g.Points, ref) {
				fail("group %q: role point %q is not a member", g.Name, ref)
			}
		}
		for _, sp := range g.ScalePoints {
			if !slices.Contains(g.Points, sp.Point) {
				fail("group %q: scale point %q is not a member", g.Name, sp.Point)
			}
			switch sp.Direction {
			case "", "x", "y", "xy":
			default:
				fail("group %q: scale point %q has direction %q", g.Name, sp.Point, sp.Direction)
			}
		}
	}

	for i, s := range d.Script {
		switch {
		case s.Move != "" && s.Remove != "":
			fail("script step %d: both move and remove", i)
		case s.Move != "":
			if !isFreePoint(s.Move) {
				fail("script step %d: %q is not a free point", i, s.Move)
			}
			if len(s.To) != 2 {
				fail("script step %d: to needs 2 coordinates", i)
			}
		case s.Remove != "":
			if _, ok := names[s.Remove]; !ok {
				fail("script step %d: unknown element %q", i, s.Remove)
			}
		default:
			fail("script step %d: nothing to do", i)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(errs...))
}
