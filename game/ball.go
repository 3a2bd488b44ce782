package game

import "scrimmage/grid"

// BallLocation enumerates where the ball sits.
type BallLocation int

const (
	BallCarried BallLocation = iota
	BallOnGround
	BallOffPitch
)

// Ball is a plain-data union: Carrier is meaningful only when Location is
// BallCarried, in which case the invariant Ball.Cell == figure's cell
// always holds.
type Ball struct {
	Location BallLocation
	Cell     grid.Cell
	Carrier  int // figure id, meaningful iff Location == BallCarried
}
