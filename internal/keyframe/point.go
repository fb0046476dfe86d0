// Package keyframe implements Point, the interpolation anchor used by the
// timeline. It is a pure value type with no side effects; the pre-roll
// worker never inspects it, but it shares lineage with Frame in the source
// this package was distilled from and a timeline-typed Reader is free to
// build its tracks from Points.
package keyframe

// Interpolation selects how the timeline blends between two keyframe
// anchors.
type Interpolation int

const (
	InterpolationBezier Interpolation = iota
	InterpolationLinear
	InterpolationConstant
)

// HandleType selects whether a Point's Bezier handles are computed
// automatically or set manually by the user.
type HandleType int

const (
	HandleAuto HandleType = iota
	HandleManual
)

// Coordinate is a 2-D (X, Y) anchor in timeline units.
type Coordinate struct {
	X float64
	Y float64
}

// DefaultHandleOffset is the distance (in timeline units) each Bezier
// handle starts from its Point's coordinate. The source this package was
// distilled from passes no argument at its one call site, leaving the
// default unspecified; 1.0 is chosen here and documented in DESIGN.md.
const DefaultHandleOffset = 1.0

// Point is a keyframe anchor: a coordinate plus interpolation and handle
// metadata. On construction its handles initialize to (X +/- offset, Y); a
// timeline may subsequently mutate HandleLeft/HandleRight directly.
type Point struct {
	Co            Coordinate
	Interpolation Interpolation
	HandleType    HandleType
	HandleLeft    Coordinate
	HandleRight   Coordinate
}

// NewPoint returns a Bezier/Auto point at (x, y).
func NewPoint(x, y float64) Point {
	return NewPointFromCoordinate(Coordinate{X: x, Y: y})
}

// NewPointFromCoordinate returns a Bezier/Auto point at co.
func NewPointFromCoordinate(co Coordinate) Point {
	return NewPointWithHandleType(co, InterpolationBezier, HandleAuto)
}

// NewPointWithInterpolation returns an Auto-handled point at co with the
// given interpolation.
func NewPointWithInterpolation(co Coordinate, interpolation Interpolation) Point {
	return NewPointWithHandleType(co, interpolation, HandleAuto)
}

// NewPointWithHandleType returns a point at co with the given
// interpolation and handle type, handles initialized at the default offset.
func NewPointWithHandleType(co Coordinate, interpolation Interpolation, handleType HandleType) Point {
	p := Point{
		Co:            co,
		Interpolation: interpolation,
		HandleType:    handleType,
	}
	p.initializeHandles(DefaultHandleOffset)
	return p
}

func (p *Point) initializeHandles(offset float64) {
	p.HandleLeft = Coordinate{X: p.Co.X - offset, Y: p.Co.Y}
	p.HandleRight = Coordinate{X: p.Co.X + offset, Y: p.Co.Y}
}
