package match

import (
	"math"
	"testing"
)

func TestCosineEmptyVectors(t *testing.T) {
	full := VectorOf([]string{"transfer", "pending"})
	cases := []struct {
		name string
		a, b TermVector
	}{
		{"both empty", TermVector{}, TermVector{}},
		{"left empty", TermVector{}, full},
		{"right empty", full, TermVector{}},
		{"nil left", nil, full},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); got != 0.0 {
				t.Errorf("Cosine = %v, want exactly 0.0", got)
			}
		})
	}
}

func TestCosineIdentity(t *testing.T) {
	v := VectorOf(Tokenize("my transfer is pending pending"))
	got := Cosine(v, v)
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Cosine(v, v) = %v, want 1.0", got)
	}
}

func TestCosineSymmetricAndBounded(t *testing.T) {
	pairs := [][2]string{
		{"my transfer is pending", "an interac transfer was delayed due to security checks"},
		{"otp code scam", "a call claimed to be cra and asked for otp"},
		{"completely unrelated words here", "debit cards are for spending"},
	}
	for _, p := range pairs {
		a := VectorOf(Tokenize(p[0]))
		b := VectorOf(Tokenize(p[1]))
		ab, ba := Cosine(a, b), Cosine(b, a)
		if math.Abs(ab-ba) > 1e-12 {
			t.Errorf("Cosine not symmetric: %v vs %v", ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("Cosine out of [0,1]: %v", ab)
		}
	}
}

func TestVectorOfCounts(t *testing.T) {
	v := VectorOf([]string{"pending", "transfer", "pending"})
	if v["pending"] != 2 || v["transfer"] != 1 {
		t.Errorf("unexpected counts: %v", v)
	}
	if len(v) != 2 {
		t.Errorf("expected 2 distinct terms, got %d", len(v))
	}
}

func TestNorm(t *testing.T) {
	v := TermVector{"a": 3, "b": 4}
	if got := v.Norm(); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("Norm = %v, want 5.0", got)
	}
	if got := (TermVector{}).Norm(); got != 0 {
		t.Errorf("empty Norm = %v, want 0", got)
	}
}
