package board

import "testing"

func TestSquareRoundTrip(t *testing.T) {
	for seg := 0; seg < NumSegs; seg++ {
		for row := 0; row < SegRows; row++ {
			for col := 0; col < SegCols; col++ {
				sq := NewSquare(seg, row, col)
				if sq.Segment() != seg || sq.Row() != row || sq.Col() != col {
					t.Fatalf("NewSquare(%d,%d,%d) round-trip mismatch: got seg=%d row=%d col=%d",
						seg, row, col, sq.Segment(), sq.Row(), sq.Col())
				}
			}
		}
	}
}

func TestStepOffBackRankAndSides(t *testing.T) {
	sq := NewSquare(0, 0, 0)
	if next, _ := Step(sq, South); next != NoSquare {
		t.Fatalf("stepping off the back rank should leave the board, got %v", next)
	}
	if next, _ := Step(sq, West); next != NoSquare {
		t.Fatalf("stepping off the side column should leave the board, got %v", next)
	}
}

func TestStepCrossesCenterAndFlips(t *testing.T) {
	sq := NewSquare(0, SegRows-1, 3)
	next, dir := Step(sq, North)
	if next.Segment() != 1 || next.Row() != SegRows-1 {
		t.Fatalf("crossing should land on row %d of segment 1, got %v", SegRows-1, next)
	}
	if wantCol := SegCols - 1 - 3; next.Col() != wantCol {
		t.Fatalf("crossing should mirror the column: want %d got %d", wantCol, next.Col())
	}
	if dir.DRow != -North.DRow || dir.DCol != -North.DCol {
		t.Fatalf("crossing should flip the direction vector, got %+v", dir)
	}
}

func TestStepCrossingIsInvolutiveOnReturn(t *testing.T) {
	// Stepping across the center and then immediately back along the
	// flipped direction must return to the original square.
	sq := NewSquare(0, SegRows-1, 5)
	next, dir := Step(sq, North)
	back, _ := Step(next, dir)
	if back != sq {
		t.Fatalf("crossing then stepping back along the flipped direction should return to %v, got %v", sq, back)
	}
}

func TestRayStopsAtBoardEdge(t *testing.T) {
	sq := NewSquare(0, 0, 0)
	ray := Ray(sq, East, maxRaySteps)
	if len(ray) != SegCols-1 {
		t.Fatalf("east ray from the corner should have %d squares, got %d", SegCols-1, len(ray))
	}
	for i, s := range ray {
		if s.Col() != i+1 || s.Row() != 0 || s.Segment() != 0 {
			t.Fatalf("ray[%d] = %v, want col %d of segment 0 row 0", i, s, i+1)
		}
	}
}

func TestKnightStepWithinSegment(t *testing.T) {
	sq := NewSquare(0, 1, 4)
	dst := KnightStep(sq, 2, 1)
	if dst == NoSquare {
		t.Fatalf("expected a valid knight destination from %v", sq)
	}
	if dst.Row() != sq.Row()+2 || dst.Col() != sq.Col()+1 {
		t.Fatalf("knight step within one segment should be a plain (2,1) offset, got %v from %v", dst, sq)
	}
}

func TestKnightStepOffBoard(t *testing.T) {
	sq := NewSquare(0, 0, 0)
	if dst := KnightStep(sq, -2, 1); dst != NoSquare {
		t.Fatalf("knight step off the back rank should leave the board, got %v", dst)
	}
}
