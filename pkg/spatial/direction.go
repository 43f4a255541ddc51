package spatial

import (
	"errors"
	"strings"
)

// ErrInvalidDirection is returned by [ParseDirection] for anything other than
// up, down, left or right.
var ErrInvalidDirection = errors.New("invalid direction")

// Direction is one of the four travel directions.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Directions lists the four directions in a stable order.
var Directions = []Direction{Up, Down, Left, Right}

// ParseDirection converts a case-insensitive name into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", ErrInvalidDirection
	}
	return d, nil
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Reverse returns the opposite direction. Unknown directions reverse to "".
func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return ""
}

func (d Direction) String() string { return string(d) }
