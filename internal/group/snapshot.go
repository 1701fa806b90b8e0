package group

import "github.com/go-gl/mathgl/mgl64"

// refresh copies the live coordinates of id into the snapshot. Ids that no
// longer resolve to a board point are left alone; the applier drops them.
func (g *Group) refresh(id string) {
	p, ok := g.board.Point(id)
	if !ok {
		return
	}
	g.snapshot[id] = p.Coords()
}

func (g *Group) refreshAll() {
	for _, id := range g.members {
		g.refresh(id)
	}
}

// Snapshot returns the cached coordinates of a member.
func (g *Group) Snapshot(id string) (mgl64.Vec2, bool) {
	c, ok := g.snapshot[id]
	return c, ok
}
