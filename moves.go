package cube3d

// Predefined moves for convenience.
//
// Example:
//
//	q.EnqueueMoves(cube3d.R, cube3d.U, cube3d.RPrime, cube3d.UPrime)
var (
	// Up face moves
	U      = Move{Face: FaceU, Turn: Plain}
	UPrime = Move{Face: FaceU, Turn: Modified}
	U2     = Move{Face: FaceU, Turn: Double}

	// Down face moves
	D      = Move{Face: FaceD, Turn: Plain}
	DPrime = Move{Face: FaceD, Turn: Modified}
	D2     = Move{Face: FaceD, Turn: Double}

	// Left face moves
	L      = Move{Face: FaceL, Turn: Plain}
	LPrime = Move{Face: FaceL, Turn: Modified}
	L2     = Move{Face: FaceL, Turn: Double}

	// Right face moves
	R      = Move{Face: FaceR, Turn: Plain}
	RPrime = Move{Face: FaceR, Turn: Modified}
	R2     = Move{Face: FaceR, Turn: Double}

	// Front face moves
	F      = Move{Face: FaceF, Turn: Plain}
	FPrime = Move{Face: FaceF, Turn: Modified}
	F2     = Move{Face: FaceF, Turn: Double}

	// Back face moves
	B      = Move{Face: FaceB, Turn: Plain}
	BPrime = Move{Face: FaceB, Turn: Modified}
	B2     = Move{Face: FaceB, Turn: Double}

	// Slice moves
	M      = Move{Face: FaceM, Turn: Plain}
	MPrime = Move{Face: FaceM, Turn: Modified}
	E      = Move{Face: FaceE, Turn: Plain}
	EPrime = Move{Face: FaceE, Turn: Modified}
	S      = Move{Face: FaceS, Turn: Plain}
	SPrime = Move{Face: FaceS, Turn: Modified}
)

// SexyMove is R U R' U'. Six repetitions return every cubie home.
var SexyMove = []Move{R, U, RPrime, UPrime}
