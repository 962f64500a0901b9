package cube3d

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestKeyMove(t *testing.T) {
	tests := []struct {
		key  string
		want Move
		ok   bool
	}{
		{"u", U, true},
		{"U", UPrime, true},
		{"d", D, true},
		{"l", L, true},
		{"r", R, true},
		{"F", FPrime, true},
		{"b", B, true},
		{"m", M, true},
		{"E", EPrime, true},
		{"s", S, true},
		{"x", Move{}, false},
		{"1", Move{}, false},
		{"", Move{}, false},
		{"uu", Move{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := KeyMove(tt.key)
			if ok != tt.ok {
				t.Fatalf("KeyMove(%q) ok = %v, want %v", tt.key, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("KeyMove(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestKeyTable(t *testing.T) {
	off := CubieSize + CubieGap
	tests := []struct {
		move Move
		want Rotation
	}{
		{U, Rotation{AxisY, off, Clockwise}},
		{D, Rotation{AxisY, -off, CounterClockwise}},
		{L, Rotation{AxisX, -off, CounterClockwise}},
		{R, Rotation{AxisX, off, Clockwise}},
		{F, Rotation{AxisZ, off, Clockwise}},
		{B, Rotation{AxisZ, -off, CounterClockwise}},
		{UPrime, Rotation{AxisY, off, CounterClockwise}},
		{LPrime, Rotation{AxisX, -off, Clockwise}},
		{M, Rotation{AxisX, 0, CounterClockwise}},
		{E, Rotation{AxisY, 0, CounterClockwise}},
		{S, Rotation{AxisZ, 0, Clockwise}},
	}

	for _, tt := range tests {
		t.Run(tt.move.String(), func(t *testing.T) {
			rs := tt.move.Rotations(off)
			if len(rs) != 1 {
				t.Fatalf("expected one rotation, got %d", len(rs))
			}
			if rs[0] != tt.want {
				t.Errorf("got %v, want %v", rs[0], tt.want)
			}
		})
	}
}

func TestDoubleExpandsToTwoQuarterTurns(t *testing.T) {
	rs := R2.Rotations(1)
	if len(rs) != 2 || rs[0] != rs[1] {
		t.Fatalf("R2 = %v, want two identical rotations", rs)
	}
	if rs[0] != R.Rotations(1)[0] {
		t.Errorf("R2 should repeat R, got %v", rs[0])
	}
	if got := (Move{Face: "X"}).Rotations(1); got != nil {
		t.Errorf("unknown face should expand to nil, got %v", got)
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		input string
		want  Move
	}{
		{"U", U},
		{"U'", UPrime},
		{"U`", UPrime},
		{"U2", U2},
		{"U2'", U2},
		{"r", R},
		{" F' ", FPrime},
		{"M'", MPrime},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMove(tt.input)
			if err != nil {
				t.Fatalf("ParseMove(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMove(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "X", "U3", "U''", "2"} {
		if _, err := ParseMove(bad); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidNotation", bad, err)
		}
	}
}

func TestParseMoves(t *testing.T) {
	moves, err := ParseMoves("R U R' U'")
	if err != nil {
		t.Fatalf("ParseMoves error: %v", err)
	}
	if len(moves) != len(SexyMove) {
		t.Fatalf("got %d moves, want %d", len(moves), len(SexyMove))
	}
	for i := range moves {
		if moves[i] != SexyMove[i] {
			t.Errorf("move %d = %v, want %v", i, moves[i], SexyMove[i])
		}
	}

	if _, err := ParseMoves("R U Q"); err == nil {
		t.Error("an invalid token should fail the sequence")
	}
	if got := FormatMoves(moves); got != "R U R' U'" {
		t.Errorf("FormatMoves = %q", got)
	}
}

func TestMoveInverse(t *testing.T) {
	if U.Inverse() != UPrime || UPrime.Inverse() != U || U2.Inverse() != U2 {
		t.Error("unexpected inverse")
	}
	r := F.Rotations(1)[0]
	if !r.Cancels(F.Inverse().Rotations(1)[0], DefaultTolerance) {
		t.Error("F' should cancel F")
	}
	if r.Cancels(r, DefaultTolerance) {
		t.Error("a rotation does not cancel itself")
	}
}

func TestRotationNotation(t *testing.T) {
	off := CubieSize + CubieGap
	for _, m := range []Move{U, UPrime, D, DPrime, L, LPrime, R, RPrime, F, FPrime, B, BPrime, M, EPrime, S} {
		if got := m.Rotations(off)[0].Notation(off); got != m.Notation() {
			t.Errorf("%v round trips to %q", m, got)
		}
	}
	if got := (Rotation{Axis: AxisX, Layer: 5, Direction: Clockwise}).Notation(off); got != "" {
		t.Errorf("unknown layer notation = %q, want empty", got)
	}
}

func TestFaceTurnIsClockwiseFromOutside(t *testing.T) {
	c := Build()
	off := c.Offset()

	// Clockwise seen from above sends the front edge of the top layer to
	// the left.
	runTurn(t, c, FaceTurn(FaceU, true).Rotations(off)[0])
	var front *Cubie
	for _, cb := range c.Cubies() {
		if cb.Home == [3]int{0, 1, 1} {
			front = cb
		}
	}
	if got := front.Grid(); got != [3]int{-1, 1, 0} {
		t.Errorf("U clockwise moved front edge to %v, want left", got)
	}

	// Clockwise seen from the right lifts the front edge onto the top.
	c = Build()
	runTurn(t, c, FaceTurn(FaceR, true).Rotations(off)[0])
	for _, cb := range c.Cubies() {
		if cb.Home == [3]int{1, 0, 1} {
			if got := cb.Grid(); got != [3]int{1, 1, 0} {
				t.Errorf("R clockwise moved front edge to %v, want top", got)
			}
		}
	}

	if FaceTurn(FaceF, false) != F {
		t.Error("counter-clockwise face turn should be the plain key")
	}
}

func TestAxisVec(t *testing.T) {
	if AxisY.Vec() != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("AxisY.Vec() = %v", AxisY.Vec())
	}
	if a, err := ParseAxis("Z"); err != nil || a != AxisZ {
		t.Errorf("ParseAxis(Z) = %v, %v", a, err)
	}
	if _, err := ParseAxis("w"); err == nil {
		t.Error("ParseAxis should reject w")
	}
}

func TestMoveAmountDrivesTurn(t *testing.T) {
	off := CubieSize + CubieGap
	for _, amount := range []Amount{Plain, Modified} {
		m := Move{Face: FaceR, Turn: amount}
		r := m.Rotations(off)[0]
		if r.Direction != Direction(amount) {
			t.Errorf("%s: direction %v, want %v", m, r.Direction, Direction(amount))
		}

		c := Build()
		turn := runTurn(t, c, r)
		if turn.Rotation() != r || len(turn.Cubies()) != 9 {
			t.Errorf("%s: turn %v moved %d cubies", m, turn.Rotation(), len(turn.Cubies()))
		}
	}
}
