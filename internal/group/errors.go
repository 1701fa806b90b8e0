package group

import "errors"

var ErrNotMember = errors.New("point is not a member of the group")

// The update cycle handles these locally: an aborted cycle leaves every
// coordinate untouched and Update reports ActionNone.
var (
	ErrUnsupportedCenterSpec = errors.New("unsupported center specification")
	ErrDegenerateScalePivot  = errors.New("drag source coincides with scale center")
	ErrStaleMemberReference  = errors.New("member no longer exists on the board")
)
