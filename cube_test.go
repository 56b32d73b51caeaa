package cubesync

import (
	"errors"
	"testing"
)

func TestNewCubeIsSolved(t *testing.T) {
	c := NewCube()
	if !c.IsSolved() {
		t.Error("New cube should be solved")
	}
	want := map[Face]Color{
		Top: White, Bottom: Yellow, Front: Red, Back: Orange, Left: Green, Right: Blue,
	}
	for face, color := range want {
		for i, got := range c.Get(face) {
			if got != color {
				t.Errorf("%s[%d] = %s, want %s", face, i, got, color)
			}
		}
	}
}

func TestSingleMoveBreaksSolved(t *testing.T) {
	c := NewCube()
	c.Apply(R)
	if c.IsSolved() {
		t.Error("Cube should not be solved after R move")
	}
}

func TestSetFace(t *testing.T) {
	c := NewCube()
	colors := []Color{Red, Red, Red, Blue, Blue, Blue, Green, Green, Green}
	if err := c.SetFace(Front, colors); err != nil {
		t.Fatalf("SetFace: %v", err)
	}
	got := c.Get(Front)
	for i := range colors {
		if got[i] != colors[i] {
			t.Errorf("Front[%d] = %s, want %s", i, got[i], colors[i])
		}
	}
	if c.IsSolved() {
		t.Error("Cube with a mixed face should not be solved")
	}
}

func TestSetFace_WrongLengthLeavesCubeUnchanged(t *testing.T) {
	for _, n := range []int{0, 8, 10} {
		c := NewCube()
		err := c.SetFace(Top, make([]Color, n))
		if !errors.Is(err, ErrValidation) {
			t.Errorf("len %d: expected ErrValidation, got %v", n, err)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Face != Top {
			t.Errorf("len %d: expected ValidationError for top, got %v", n, err)
		}
		if !c.Equal(NewCube()) {
			t.Errorf("len %d: cube changed after failed SetFace", n)
			t.Log(c.String())
		}
	}
}

func TestSetFace_UnknownFace(t *testing.T) {
	c := NewCube()
	if err := c.SetFace(Face(9), make([]Color, 9)); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := NewCube()
	clone := c.Clone()
	clone.Apply(F)
	if !c.IsSolved() {
		t.Error("Turning the clone changed the original")
	}
	if c.Equal(clone) {
		t.Error("Clone should differ after F")
	}
}

func TestColorCountsStayAtNine(t *testing.T) {
	c := NewCube()
	c.ApplyNotation("R U F' L2 D B' U2 R'")
	for _, color := range AllColors() {
		if got := c.ColorCounts()[color]; got != 9 {
			t.Errorf("%s count = %d, want 9", color, got)
		}
	}
}

func TestStringShowsNet(t *testing.T) {
	s := NewCube().String()
	want := "      W W W \n"
	if len(s) < len(want) || s[:len(want)] != want {
		t.Errorf("unexpected first row %q", s)
	}
}
