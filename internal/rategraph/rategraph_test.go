package rategraph

import (
	"testing"
	"time"

	"github.com/nasedkinpv/numr"
)

func mustBuild(t *testing.T, edges []Edge) *Graph {
	t.Helper()
	g, err := Build(edges)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func TestConvert_DirectEdge(t *testing.T) {
	g := mustBuild(t, []Edge{{From: numr.USD, To: numr.EUR, Factor: 0.9, FetchedAt: time.Now()}})

	got, err := g.Convert(100, numr.USD, numr.EUR)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != 90 {
		t.Errorf("Convert(100 USD -> EUR) = %v, want 90", got)
	}
}

func TestConvert_InverseEdge(t *testing.T) {
	g := mustBuild(t, []Edge{{From: numr.USD, To: numr.EUR, Factor: 0.9, FetchedAt: time.Now()}})

	got, err := g.Convert(90, numr.EUR, numr.USD)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if diff := got - 100; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Convert(90 EUR -> USD) = %v, want ~100", got)
	}
}

func TestConvert_SameCurrency(t *testing.T) {
	g := mustBuild(t, nil)
	got, err := g.Convert(42, numr.USD, numr.USD)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if got != 42 {
		t.Errorf("Convert(42 USD -> USD) = %v, want 42", got)
	}
}

func TestConvert_MultiHop(t *testing.T) {
	now := time.Now()
	g := mustBuild(t, []Edge{
		{From: numr.USD, To: numr.EUR, Factor: 0.9, FetchedAt: now},
		{From: numr.EUR, To: numr.GBP, Factor: 0.85, FetchedAt: now},
	})

	got, err := g.Convert(100, numr.USD, numr.GBP)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	want := 100 * 0.9 * 0.85
	if diff := got - want; diff > 1e-6 || diff < -1e-6 {
		t.Errorf("Convert(100 USD -> GBP) = %v, want ~%v", got, want)
	}
}

// A multi-hop path through a zero-scale intermediate currency (JPY)
// must not round at that intermediate hop: the true product of the
// edge factors is the only thing that matters, not what each hop's
// amount would round to if it were briefly materialized as Money.
func TestConvert_MultiHop_NoIntermediateRounding(t *testing.T) {
	now := time.Now()
	g := mustBuild(t, []Edge{
		{From: numr.USD, To: numr.JPY, Factor: 3.335, FetchedAt: now},
		{From: numr.JPY, To: numr.EUR, Factor: 7, FetchedAt: now},
	})

	got, err := g.Convert(100, numr.USD, numr.EUR)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	want := 100 * 3.335 * 7 // 2334.5; rounding the JPY hop to 334 would give 2338
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Convert(100 USD -> EUR via JPY) = %v, want %v", got, want)
	}
}

func TestConvert_NoPath(t *testing.T) {
	g := mustBuild(t, []Edge{{From: numr.USD, To: numr.EUR, Factor: 0.9, FetchedAt: time.Now()}})
	_, err := g.Convert(100, numr.USD, numr.JPY)
	if err != ErrRateUnavailable {
		t.Errorf("Convert with no path error = %v, want ErrRateUnavailable", err)
	}
}

func TestEdge_IsStale(t *testing.T) {
	e := Edge{FetchedAt: time.Now().Add(-2 * time.Hour)}
	if !e.IsStale(time.Now()) {
		t.Error("IsStale(2h old) = false, want true")
	}
	fresh := Edge{FetchedAt: time.Now()}
	if fresh.IsStale(time.Now()) {
		t.Error("IsStale(fresh) = true, want false")
	}
}
