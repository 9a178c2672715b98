package sprite

// Orientation is the facing direction a generated sprite depicts.
type Orientation string

const (
	North Orientation = "north"
	South Orientation = "south"
	East  Orientation = "east"
	West  Orientation = "west"
)

// reusePreference is the fixed scan order when looking for any cached
// variant of an object to reorient from.
var reusePreference = []Orientation{South, East, West, North}

// NormalizeOrientation maps free-form input to one of the four orientations,
// defaulting to south for anything unrecognized.
func NormalizeOrientation(value string) Orientation {
	switch Orientation(value) {
	case North, South, East, West:
		return Orientation(value)
	default:
		return South
	}
}

// Opposite returns the facing across from o. A newly created object faces
// the opposite of the requesting player's facing, so it appears to face the
// player.
func (o Orientation) Opposite() Orientation {
	switch o {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

func (o Orientation) String() string {
	return string(o)
}
