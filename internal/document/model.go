// Package document describes a board in TOML or JSON: its points, the
// elements computed from them, the groups that move them together and an
// optional script of moves to replay.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var (
	ErrInvalidDocument = errors.New("invalid document")
	ErrUnknownFormat   = errors.New("unknown document format")
)

type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

type Document struct {
	Board     BoardSettings `toml:"board" json:"board"`
	Points    []PointDef    `toml:"points,omitempty" json:"points,omitempty"`
	Midpoints []MidpointDef `toml:"midpoints,omitempty" json:"midpoints,omitempty"`
	Segments  []SegmentDef  `toml:"segments,omitempty" json:"segments,omitempty"`
	Polygons  []PolygonDef  `toml:"polygons,omitempty" json:"polygons,omitempty"`
	Circles   []CircleDef   `toml:"circles,omitempty" json:"circles,omitempty"`
	Groups    []GroupDef    `toml:"groups,omitempty" json:"groups,omitempty"`
	Script    []Step        `toml:"script,omitempty" json:"script,omitempty"`
}

type BoardSettings struct {
	Name            string  `toml:"name" json:"name"`
	SnapSize        float64 `toml:"snap_size,omitempty" json:"snapSize,omitempty"`
	ForceAllUpdates bool    `toml:"force_all_updates,omitempty" json:"forceAllUpdates,omitempty"`
}

type PointDef struct {
	Name string  `toml:"name" json:"name"`
	X    float64 `toml:"x" json:"x"`
	Y    float64 `toml:"y" json:"y"`
	Snap bool    `toml:"snap,omitempty" json:"snap,omitempty"`
}

type MidpointDef struct {
	Name string `toml:"name" json:"name"`
	A    string `toml:"a" json:"a"`
	B    string `toml:"b" json:"b"`
}

type SegmentDef struct {
	Name string `toml:"name" json:"name"`
	A    string `toml:"a" json:"a"`
	B    string `toml:"b" json:"b"`
}

type PolygonDef struct {
	Name     string   `toml:"name" json:"name"`
	Vertices []string `toml:"vertices" json:"vertices"`
}

type CircleDef struct {
	Name    string `toml:"name" json:"name"`
	Center  string `toml:"center" json:"center"`
	Through string `toml:"through" json:"through"`
}

// GroupDef configures one group. A nil TranslationPoints gives every member
// the translation role. Centers accept a point name, "centroid" or an
// [x, y] pair.
type GroupDef struct {
	Name              string          `toml:"name" json:"name"`
	Points            []string        `toml:"points" json:"points"`
	TranslationPoints []string        `toml:"translation_points,omitempty" json:"translationPoints,omitempty"`
	RotationPoints    []string        `toml:"rotation_points,omitempty" json:"rotationPoints,omitempty"`
	ScalePoints       []ScalePointDef `toml:"scale_points,omitempty" json:"scalePoints,omitempty"`
	RotationCenter    any             `toml:"rotation_center,omitempty" json:"rotationCenter,omitempty"`
	ScaleCenter       any             `toml:"scale_center,omitempty" json:"scaleCenter,omitempty"`
}

type ScalePointDef struct {
	Point     string `toml:"point" json:"point"`
	Direction string `toml:"direction,omitempty" json:"direction,omitempty"`
}

// Step is one scripted action: either a move or a removal.
type Step struct {
	Move   string    `toml:"move,omitempty" json:"move,omitempty"`
	To     []float64 `toml:"to,omitempty" json:"to,omitempty"`
	Direct bool      `toml:"direct,omitempty" json:"direct,omitempty"`
	Remove string    `toml:"remove,omitempty" json:"remove,omitempty"`
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnknownFormat)
}

// Load reads and validates the document at path.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a document.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode writes the document in the given format.
func (d *Document) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(d); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	}
	return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
}
