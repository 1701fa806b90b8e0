package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixBoard    = "board"
	PrefixPoint    = "pt"
	PrefixSegment  = "seg"
	PrefixPolygon  = "poly"
	PrefixCircle   = "circ"
	PrefixGroup    = "grp"
	PrefixOp       = "op"
	PrefixUser     = "user"
	PrefixSession  = "sess"
	PrefixSnapshot = "snap"
)

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewBoardID() string   { return New(PrefixBoard) }
func NewPointID() string   { return New(PrefixPoint) }
func NewSegmentID() string { return New(PrefixSegment) }
func NewPolygonID() string { return New(PrefixPolygon) }
func NewCircleID() string  { return New(PrefixCircle) }
func NewGroupID() string   { return New(PrefixGroup) }
func NewOpID() string      { return New(PrefixOp) }
func NewUserID() string    { return New(PrefixUser) }
func NewSessionID() string { return New(PrefixSession) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}

// Prefix returns the prefix of id, or "" when id is not a typeid.
func Prefix(id string) string {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return ""
	}
	return parsed.Prefix()
}
