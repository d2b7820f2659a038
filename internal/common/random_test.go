package common

import "testing"

func TestMakeRandDigits(t *testing.T) {
	code, err := MakeRandDigits(6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digits, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit %q in code %q", r, code)
		}
	}
}

func TestMakeRandDigits_Uniformity(t *testing.T) {
	counts := make(map[rune]int, 10)
	for i := 0; i < 200; i++ {
		code, err := MakeRandDigits(10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, r := range code {
			counts[r]++
		}
	}
	// 2000 draws, expectation 200 per digit; a wide band still catches
	// a skewed generator
	for r, n := range counts {
		if n < 100 || n > 300 {
			t.Fatalf("digit %q drawn %d times out of 2000", r, n)
		}
	}
}

func TestMakeRandDigits_InvalidLength(t *testing.T) {
	if _, err := MakeRandDigits(0); err == nil {
		t.Fatalf("expected error for length 0")
	}
}
