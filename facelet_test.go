package cubesync

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeSolved(t *testing.T) {
	got, err := Encode(NewCube())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got != SolvedFacelets {
		t.Errorf("Encode(solved) = %s, want %s", got, SolvedFacelets)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	scrambles := []string{"", "R", "U R U' R'", "F2 L' U B R2 D' F L2 B' U2"}
	for _, s := range scrambles {
		c := NewCube()
		c.ApplyNotation(s)
		encoded, err := Encode(c)
		if err != nil {
			t.Fatalf("Encode after %q: %v", s, err)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(%s): %v", encoded, err)
		}
		if !decoded.Equal(c) {
			t.Errorf("round trip after %q changed the state", s)
		}
		again, _ := Encode(decoded)
		if again != encoded {
			t.Errorf("re-encode = %s, want %s", again, encoded)
		}
	}
}

func TestEncode_CompositionError(t *testing.T) {
	c := NewCube()
	c.SetFace(Front, []Color{White, White, White, White, White, White, White, White, White})

	_, err := Encode(c)
	if !errors.Is(err, ErrComposition) {
		t.Fatalf("expected ErrComposition, got %v", err)
	}
	var cerr *CompositionError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CompositionError, got %T", err)
	}
	if cerr.Counts['U'] != 18 || cerr.Counts['F'] != 0 {
		t.Errorf("unexpected counts %v", cerr.Counts)
	}
	if !IsRescanRequired(err) {
		t.Error("composition failures should ask for a rescan")
	}

	// The unchecked form is still available for display.
	if got := EncodeUnchecked(c); !strings.Contains(got, "UUUUUUUUUDDDD") {
		t.Errorf("EncodeUnchecked = %s", got)
	}
}

func TestDecode_FormatErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"short", SolvedFacelets[:53]},
		{"long", SolvedFacelets + "U"},
		{"bad letter", "X" + SolvedFacelets[1:]},
		{"lowercase", strings.ToLower(SolvedFacelets)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.in)
			if !errors.Is(err, ErrFormat) {
				t.Errorf("expected ErrFormat, got %v", err)
			}
			if IsRescanRequired(err) {
				t.Error("format errors are programming errors, not rescans")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(SolvedFacelets); err != nil {
		t.Errorf("Validate(solved): %v", err)
	}

	tenU := "U" + SolvedFacelets[1:9] + "U" + SolvedFacelets[10:]
	if err := Validate(tenU); !errors.Is(err, ErrComposition) {
		t.Errorf("expected ErrComposition, got %v", err)
	}
	if err := Validate("UUU"); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}
