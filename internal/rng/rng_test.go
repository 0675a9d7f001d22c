package rng

import (
	"math"
	"testing"
)

func TestFloat64Bounds(t *testing.T) {
	r := New(12345)
	for i := 0; i < 100000; i++ {
		v := r.Float64()
		if v <= 0 || v >= 1 {
			t.Fatalf("Float64() returned %v, want strictly in (0, 1)", v)
		}
	}
}

func TestIntnBounds(t *testing.T) {
	r := New(999)
	for i := 0; i < 10000; i++ {
		n := 1 + i%37
		v := r.Intn(n)
		if v < 0 || v >= n {
			t.Fatalf("Intn(%d) returned %d, want [0, %d)", n, v, n)
		}
	}
}

func TestDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("two RNGs with the same seed diverged at draw %d", i)
		}
	}
}

func TestIntnDistribution(t *testing.T) {
	r := New(7)
	const n = 5
	counts := make([]int, n)
	const draws = 100000
	for i := 0; i < draws; i++ {
		counts[r.Intn(n)]++
	}
	for i, c := range counts {
		frac := float64(c) / draws
		if frac < 0.15 || frac > 0.25 {
			t.Errorf("bin %d got fraction %.3f, want roughly 0.2", i, frac)
		}
	}
}

func TestExpFloat64NonNegative(t *testing.T) {
	r := New(1)
	for i := 0; i < 1000; i++ {
		v := r.ExpFloat64(2.0)
		if v < 0 {
			t.Fatalf("ExpFloat64 returned negative value %v", v)
		}
	}
}

func TestExpFloat64ZeroRate(t *testing.T) {
	r := New(1)
	v := r.ExpFloat64(0)
	if !math.IsInf(v, 1) {
		t.Fatalf("ExpFloat64(0) = %v, want +Inf", v)
	}
}

func BenchmarkFloat64(b *testing.B) {
	r := New(1)
	for i := 0; i < b.N; i++ {
		r.Float64()
	}
}

func BenchmarkIntn(b *testing.B) {
	r := New(1)
	for i := 0; i < b.N; i++ {
		r.Intn(1000)
	}
}
