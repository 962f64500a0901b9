package cube3d

import (
	"strings"
	"time"
)

// Face names a turnable layer in keyboard notation.
type Face string

const (
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceL Face = "L" // Left
	FaceR Face = "R" // Right
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
	FaceM Face = "M" // Middle slice between L and R
	FaceE Face = "E" // Equatorial slice between U and D
	FaceS Face = "S" // Standing slice between F and B
)

// Amount is how far, and which way, a face is turned.
type Amount int

const (
	Plain    Amount = 1  // Key pressed without modifier
	Modified Amount = -1 // Key pressed with the modifier held
	Double   Amount = 2  // Two plain turns
)

// layerSpec is one row of the key table.
type layerSpec struct {
	axis      Axis
	layerSign int       // -1, 0, +1 times the layer offset
	direction Direction // direction of the plain key
}

// keyTable maps faces to layers. D, L and B (and the M and E slices)
// are inverted relative to their opposite face.
var keyTable = map[Face]layerSpec{
	FaceU: {AxisY, +1, Clockwise},
	FaceD: {AxisY, -1, CounterClockwise},
	FaceL: {AxisX, -1, CounterClockwise},
	FaceR: {AxisX, +1, Clockwise},
	FaceF: {AxisZ, +1, Clockwise},
	FaceB: {AxisZ, -1, CounterClockwise},
	FaceM: {AxisX, 0, CounterClockwise},
	FaceE: {AxisY, 0, CounterClockwise},
	FaceS: {AxisZ, 0, Clockwise},
}

// Move is a face turn in keyboard notation.
type Move struct {
	Face Face      // Which layer to turn
	Turn Amount    // Plain, Modified or Double
	Time time.Time // When the move occurred (optional)
}

// Notation returns the notation string for this move: U, U', U2.
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case Modified:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the move that undoes m. U2 is its own inverse.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case Plain:
		inv.Turn = Modified
	case Modified:
		inv.Turn = Plain
	}
	return inv
}

// Rotations expands the move into quarter-turn rotation requests for a
// cube whose layers are offset apart. Unknown faces yield nil.
func (m Move) Rotations(offset float64) []Rotation {
	row, ok := keyTable[m.Face]
	if !ok {
		return nil
	}

	r := Rotation{
		Axis:      row.axis,
		Layer:     float64(row.layerSign) * offset,
		Direction: row.direction,
	}

	switch m.Turn {
	case Modified:
		r.Direction = -r.Direction
		return []Rotation{r}
	case Double:
		return []Rotation{r, r}
	default:
		return []Rotation{r}
	}
}

// KeyMove maps a key press to a move. Upper-case letters are treated as
// the lower-case key with the modifier held, which is how a terminal
// reports Shift. Unrecognized keys return false.
func KeyMove(key string) (Move, bool) {
	if len(key) != 1 {
		return Move{}, false
	}

	turn := Plain
	upper := strings.ToUpper(key)
	if key == upper {
		turn = Modified
	}

	face := Face(upper)
	if _, ok := keyTable[face]; !ok {
		return Move{}, false
	}
	return Move{Face: face, Turn: turn}, true
}

// FaceTurn returns the move that turns face clockwise (or not) as seen
// looking at that face from outside the cube. Plain key turns are
// counter-clockwise in that view, so a clockwise turn is Modified.
// Slices are viewed from their reference face (L for M, D for E, F for S).
func FaceTurn(face Face, clockwise bool) Move {
	if clockwise {
		return Move{Face: face, Turn: Modified}
	}
	return Move{Face: face, Turn: Plain}
}

// ParseMove parses a notation string into a Move.
// Examples: U, U', U2, M'
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	face := Face(strings.ToUpper(s[:1]))
	if _, ok := keyTable[face]; !ok {
		return Move{}, ErrInvalidNotation
	}

	turn := Plain
	if len(s) > 1 {
		switch s[1:] {
		case "'", "`":
			turn = Modified
		case "2", "2'", "2`":
			turn = Double
		default:
			return Move{}, ErrInvalidNotation
		}
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Unlike ParseMove, the first invalid token fails the whole sequence.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// Notation returns the keyboard notation of a quarter-turn rotation on a
// cube with the given layer offset, or "" if no key produces it.
func (r Rotation) Notation(offset float64) string {
	for face, row := range keyTable {
		if row.axis != r.Axis || !approxEqual(float64(row.layerSign)*offset, r.Layer) {
			continue
		}
		if row.direction == r.Direction {
			return Move{Face: face, Turn: Plain}.Notation()
		}
		return Move{Face: face, Turn: Modified}.Notation()
	}
	return ""
}
