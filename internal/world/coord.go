package world

import "fmt"

// BlockCoord describes a block position in global block space. X and Y are
// horizontal, Z grows upward.
type BlockCoord struct {
	X int
	Y int
	Z int
}

func (c BlockCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Add offsets the coordinate component-wise.
func (c BlockCoord) Add(dx, dy, dz int) BlockCoord {
	return BlockCoord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// Offset moves the coordinate n steps towards dir.
func (c BlockCoord) Offset(dir Direction, n int) BlockCoord {
	v := dir.Vector()
	return c.Add(v.X*n, v.Y*n, v.Z*n)
}

// Neighbor returns the adjacent coordinate in dir.
func (c BlockCoord) Neighbor(dir Direction) BlockCoord {
	return c.Offset(dir, 1)
}

// Dimensions defines the size of a chunk in blocks.
type Dimensions struct {
	Width  int
	Depth  int
	Height int
}

// Bounds is an axis-aligned bounding box represented by inclusive min/max corners in block space.
type Bounds struct {
	Min BlockCoord
	Max BlockCoord
}

// BoundsAround returns the box spanning center+min through center+max.
func BoundsAround(center, min, max BlockCoord) Bounds {
	return Bounds{
		Min: center.Add(min.X, min.Y, min.Z),
		Max: center.Add(max.X, max.Y, max.Z),
	}
}

func (b Bounds) Contains(c BlockCoord) bool {
	return c.X >= b.Min.X && c.X <= b.Max.X &&
		c.Y >= b.Min.Y && c.Y <= b.Max.Y &&
		c.Z >= b.Min.Z && c.Z <= b.Max.Z
}

// Size reports the extent of the box along each axis.
func (b Bounds) Size() Dimensions {
	return Dimensions{
		Width:  b.Max.X - b.Min.X + 1,
		Depth:  b.Max.Y - b.Min.Y + 1,
		Height: b.Max.Z - b.Min.Z + 1,
	}
}

// Direction enumerates the six axis-aligned neighbours of a block.
type Direction int

const (
	North Direction = iota
	South
	East
	West
	Up
	Down
)

// AllDirections lists every direction in declaration order.
var AllDirections = []Direction{North, South, East, West, Up, Down}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Vector returns the unit offset for the direction. North is -Y, East is +X.
func (d Direction) Vector() BlockCoord {
	switch d {
	case North:
		return BlockCoord{Y: -1}
	case South:
		return BlockCoord{Y: 1}
	case East:
		return BlockCoord{X: 1}
	case West:
		return BlockCoord{X: -1}
	case Up:
		return BlockCoord{Z: 1}
	case Down:
		return BlockCoord{Z: -1}
	default:
		return BlockCoord{}
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Up:
		return Down
	default:
		return Up
	}
}

// Vertical reports whether the direction lies on the Z axis.
func (d Direction) Vertical() bool {
	return d == Up || d == Down
}
