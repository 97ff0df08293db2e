package dice

import "testing"

func TestRollRange(t *testing.T) {
	for _, sides := range []int{1, 2, 6, 20, 100} {
		for i := 0; i < 200; i++ {
			r := Roll(Params{Sides: sides})
			if r.Value < 1 || r.Value > sides {
				t.Fatalf("Roll(%d): value %d out of range", sides, r.Value)
			}
		}
	}
}

func TestRollDefaultsSides(t *testing.T) {
	for _, sides := range []int{0, -3} {
		r := Roll(Params{Sides: sides})
		if r.Sides != DefaultSides {
			t.Fatalf("Sides=%d: expected default %d, got %d", sides, DefaultSides, r.Sides)
		}
		if r.Value < 1 || r.Value > DefaultSides {
			t.Fatalf("Sides=%d: value %d out of range", sides, r.Value)
		}
	}
}

func TestRollUniformity(t *testing.T) {
	const (
		sides = 6
		n     = 60000
	)
	counts := make([]int, sides)
	for i := 0; i < n; i++ {
		counts[Roll(Params{Sides: sides}).Value-1]++
	}
	// Chi-square against uniform; df=5, threshold well above any
	// plausible critical value so the test is not flaky.
	expected := float64(n) / sides
	var chi2 float64
	for face, c := range counts {
		if c == 0 {
			t.Fatalf("face %d never rolled in %d draws", face+1, n)
		}
		d := float64(c) - expected
		chi2 += d * d / expected
	}
	if chi2 > 50 {
		t.Fatalf("distribution too far from uniform: chi2=%.2f counts=%v", chi2, counts)
	}
}

func TestRollHit(t *testing.T) {
	// sides=1 forces value 1, making the hit flag deterministic.
	r := Roll(Params{Sides: 1, Desired: 1, HasDesired: true})
	if !r.Hit {
		t.Fatalf("expected hit: %+v", r)
	}
	r = Roll(Params{Sides: 1, Desired: 17, HasDesired: true})
	if r.Hit {
		t.Fatalf("expected miss: %+v", r)
	}
	// Desired never affects the draw's range.
	r = Roll(Params{Sides: 20, Desired: 17, HasDesired: true})
	if r.Value < 1 || r.Value > 20 {
		t.Fatalf("value %d out of range", r.Value)
	}
	if r.Hit != (r.Value == 17) {
		t.Fatalf("hit flag inconsistent: %+v", r)
	}
}

func TestRepeatTokenRoundTrip(t *testing.T) {
	cases := []Params{
		{Sides: 6},
		{Sides: 20, Wager: "lunch"},
		{Sides: 20, Desired: 17, HasDesired: true},
		{Sides: 12, Wager: "my best hat", Desired: 3, HasDesired: true},
		{Sides: 8, Wager: "snake_case_wager", Desired: 0, HasDesired: true},
		{Sides: 100, Wager: "trailing_"},
	}
	for _, p := range cases {
		token := EncodeRepeat(p, "evt-9")
		got, nonce, err := DecodeRepeat(token[len(RepeatPrefix):])
		if err != nil {
			t.Fatalf("DecodeRepeat(%q): %v", token, err)
		}
		if nonce != "evt-9" {
			t.Fatalf("DecodeRepeat(%q): nonce %q", token, nonce)
		}
		if got != p.Normalize() {
			t.Fatalf("round-trip mismatch for %+v: got %+v (token %q)", p, got, token)
		}
	}
}

func TestEncodeRepeatWireFormat(t *testing.T) {
	token := EncodeRepeat(Params{Sides: 20, Desired: 17, HasDesired: true}, "123")
	if token != "roll_button_20_none_17_123" {
		t.Fatalf("wire format drifted: %q", token)
	}
	token = EncodeRepeat(Params{}, "456")
	if token != "roll_button_6_none_none_456" {
		t.Fatalf("wire format drifted: %q", token)
	}
}

func TestDecodeRepeatFailsClosed(t *testing.T) {
	bad := []string{
		"",               // empty
		"6",              // too few fields
		"6_none",         // too few fields
		"6_none_none",    // too few fields
		"abc_none_none_1", // non-numeric sides
		"0_none_none_1",  // non-positive sides
		"6_none_abc_1",   // non-numeric desired
		"6_none_none_",   // empty nonce
	}
	for _, payload := range bad {
		if _, _, err := DecodeRepeat(payload); err == nil {
			t.Fatalf("DecodeRepeat(%q): expected error", payload)
		}
	}
}
