package document

// SampleName is the board id served when no file exists for it.
const SampleName = "sample"

// NewSampleDocument returns a square that can be dragged by any corner,
// turned by a handle above it and stretched by a handle to its right.
func NewSampleDocument() *Document {
	return &Document{
		Board: BoardSettings{
			Name:     SampleName,
			SnapSize: 0.5,
		},
		Points: []PointDef{
			{Name: "A", X: 0, Y: 0, Snap: true},
			{Name: "B", X: 4, Y: 0, Snap: true},
			{Name: "C", X: 4, Y: 4, Snap: true},
			{Name: "D", X: 0, Y: 4, Snap: true},
			{Name: "turn", X: 3, Y: 7},
			{Name: "stretch", X: 7, Y: 3},
			{Name: "pin", X: 8, Y: 2},
		},
		Midpoints: []MidpointDef{
			{Name: "AB", A: "A", B: "B"},
		},
		Segments: []SegmentDef{
			{Name: "diagonal", A: "A", B: "C"},
			{Name: "tether", A: "AB", B: "pin"},
		},
		Polygons: []PolygonDef{
			{Name: "square", Vertices: []string{"A", "B", "C", "D"}},
		},
		Circles: []CircleDef{
			{Name: "orbit", Center: "pin", Through: "C"},
		},
		Groups: []GroupDef{
			{
				Name:              "square",
				Points:            []string{"A", "B", "C", "D", "turn", "stretch"},
				TranslationPoints: []string{"A", "B", "C", "D"},
				RotationPoints:    []string{"turn"},
				ScalePoints:       []ScalePointDef{{Point: "stretch", Direction: "xy"}},
				RotationCenter:    "centroid",
				ScaleCenter:       []any{3.0, 3.0},
			},
		},
		Script: []Step{
			{Move: "A", To: []float64{1, 1}},
			{Move: "turn", To: []float64{0, 4}},
			{Move: "stretch", To: []float64{6, 12}},
		},
	}
}
