package cubesync

import (
	"errors"
	"testing"
)

func TestIndexPositionRoundTrip(t *testing.T) {
	for i := 0; i < FaceSize; i++ {
		row, col, err := Position(i)
		if err != nil {
			t.Fatalf("Position(%d): %v", i, err)
		}
		back, err := Index(row, col)
		if err != nil || back != i {
			t.Errorf("Index(%d,%d) = %d, %v; want %d", row, col, back, err, i)
		}
	}
	if idx, _ := Index(1, 1); idx != CenterIndex {
		t.Errorf("center index = %d", idx)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	for _, rc := range [][2]int{{-1, 0}, {0, 3}, {3, 3}} {
		if _, err := Index(rc[0], rc[1]); !errors.Is(err, ErrValidation) {
			t.Errorf("Index(%d,%d): expected ErrValidation, got %v", rc[0], rc[1], err)
		}
	}
	if _, _, err := Position(9); !errors.Is(err, ErrValidation) {
		t.Errorf("Position(9): expected ErrValidation, got %v", err)
	}
}

func TestNeighbors(t *testing.T) {
	for _, f := range AllFaces() {
		seen := map[Face]bool{f: true, Opposite(f): true}
		for _, n := range Neighbors(f) {
			if seen[n] {
				t.Errorf("%s: neighbor %s repeated or not adjacent", f, n)
			}
			seen[n] = true
		}
		if len(seen) != 6 {
			t.Errorf("%s: neighbors do not cover the four adjacent faces", f)
		}
	}
	if Neighbors(Front)[0] != Top || Neighbors(Top)[0] != Back || Neighbors(Bottom)[0] != Front {
		t.Error("neighbors should start with the face at the top of the canonical view")
	}
}

func TestParseFaceAndColor(t *testing.T) {
	if f, ok := ParseFace("front"); !ok || f != Front {
		t.Errorf("ParseFace(front) = %v, %v", f, ok)
	}
	if f, ok := ParseFace("u"); !ok || f != Top {
		t.Errorf("ParseFace(u) = %v, %v", f, ok)
	}
	if _, ok := ParseFace("middle"); ok {
		t.Error("ParseFace(middle) should fail")
	}
	if c, ok := ParseColor("Orange"); !ok || c != Orange {
		t.Errorf("ParseColor(Orange) = %v, %v", c, ok)
	}
	if c, ok := ParseColor("g"); !ok || c != Green {
		t.Errorf("ParseColor(g) = %v, %v", c, ok)
	}
	if _, ok := ParseColor("purple"); ok {
		t.Error("ParseColor(purple) should fail")
	}
}
