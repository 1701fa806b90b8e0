package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/rigidgroup/internal/document"
)

func TestExport_CarriesLiveCoordinates(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.MovePoint("A", 1.1, 0.9))

	doc, err := e.Export()
	require.NoError(t, err)
	assert.Empty(t, doc.Script)

	data, err := doc.Encode(document.FormatTOML)
	require.NoError(t, err)
	parsed, err := document.Parse(data, document.FormatTOML)
	require.NoError(t, err)

	reloaded := NewEngine()
	require.NoError(t, reloaded.Load(parsed))

	x, y := pointAt(t, reloaded, "C")
	assert.InDelta(t, 5.0, x, delta)
	assert.InDelta(t, 5.0, y, delta)
	x, y = pointAt(t, reloaded, "AB")
	assert.InDelta(t, 3.0, x, delta)
	assert.InDelta(t, 1.0, y, delta)

	g := reloaded.Groups()[0]
	assert.Equal(t, []string{"A", "B", "C", "D"}, g.TranslationPoints)
	assert.Equal(t, []string{"turn"}, g.RotationPoints)
	assert.Equal(t, []string{"stretch"}, g.ScalePoints)
	assert.Equal(t, "centroid", g.RotationCenter)
	assert.Equal(t, "(3, 3)", g.ScaleCenter)
}

func TestExport_DropsRemovedElements(t *testing.T) {
	e := newTestEngine(t)
	_, err := e.RemoveElement("D")
	require.NoError(t, err)

	doc, err := e.Export()
	require.NoError(t, err)

	for _, p := range doc.Points {
		assert.NotEqual(t, "D", p.Name)
	}
	assert.Empty(t, doc.Polygons)
	require.Len(t, doc.Groups, 1)
	assert.NotContains(t, doc.Groups[0].Points, "D")
	assert.NoError(t, doc.Validate())
}

func TestExport_KeepsUnresolvableCenters(t *testing.T) {
	doc := &document.Document{
		Board:  document.BoardSettings{Name: "centers"},
		Points: []document.PointDef{{Name: "P", X: 1}, {Name: "Q", X: -1}, {Name: "O"}},
		Groups: []document.GroupDef{
			{Name: "pivot", Points: []string{"P", "Q"}, RotationPoints: []string{"P"}, RotationCenter: "O"},
			{Name: "bad", Points: []string{"Q"}, RotationCenter: "nowhere"},
		},
	}
	e := NewEngine()
	require.NoError(t, e.Load(doc))
	_, err := e.RemoveElement("O")
	require.NoError(t, err)

	out, err := e.Export()
	require.NoError(t, err)
	require.Len(t, out.Groups, 2)
	assert.Equal(t, "O", out.Groups[0].RotationCenter)
	assert.Equal(t, "nowhere", out.Groups[1].RotationCenter)

	data, err := out.Encode(document.FormatTOML)
	require.NoError(t, err)
	parsed, err := document.Parse(data, document.FormatTOML)
	require.NoError(t, err)

	reloaded := NewEngine()
	require.NoError(t, reloaded.Load(parsed))

	for name, eng := range map[string]*Engine{"before export": e, "after reload": reloaded} {
		require.NoError(t, eng.MovePoint("P", 0, 1), name)

		gs := eng.Groups()
		assert.Contains(t, gs[0].RotationCenter, "invalid", name)
		assert.Contains(t, gs[1].RotationCenter, "invalid", name)
		assert.Equal(t, "none", gs[0].LastAction, name)
		x, y := pointAt(t, eng, "Q")
		assert.InDelta(t, -1.0, x, delta, name)
		assert.InDelta(t, 0.0, y, delta, name)
	}
}

func TestExport_NoBoard(t *testing.T) {
	_, err := NewEngine().Export()
	assert.ErrorIs(t, err, ErrNoBoard)
}
