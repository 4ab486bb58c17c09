package keyword

import (
	"reflect"
	"strings"
	"testing"
)

func TestHeuristicRanksByFrequencyThenFirstOccurrence(t *testing.T) {
	h := NewHeuristic(10)
	text := "Rent rent RENT. Subway delays and subway fares. Landlord called. Broker fee."

	got := h.Extract(text)
	want := []string{"#rent", "#subway", "#delays", "#fares", "#landlord", "#called", "#broker", "#fee"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Extract() = %v, want %v", got, want)
	}
}

func TestHeuristicDropsStopWordsAndShortTokens(t *testing.T) {
	h := NewHeuristic(10)
	got := h.Extract("the and for it is at go ok")
	if len(got) != 0 {
		t.Fatalf("expected no keywords, got %v", got)
	}
}

func TestHeuristicCapsOutput(t *testing.T) {
	h := NewHeuristic(10)
	words := []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
		"golf", "hotel", "india", "juliet", "kilo", "lima",
	}
	got := h.Extract(strings.Join(words, " "))
	if len(got) != 10 {
		t.Fatalf("expected cap of 10, got %d", len(got))
	}
	if got[0] != "#alpha" || got[9] != "#juliet" {
		t.Fatalf("ties must keep first-occurrence order, got %v", got)
	}
}

func TestHeuristicIsDeterministic(t *testing.T) {
	h := NewHeuristic(10)
	text := "Luxury penthouse tour with a marble pool and a rooftop pool view of the skyline"
	first := h.Extract(text)
	second := h.Extract(text)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("non-deterministic output: %v vs %v", first, second)
	}
}

func TestHeuristicDegenerateInput(t *testing.T) {
	h := NewHeuristic(10)
	for _, in := range []string{"", "   ", "1234 5678", "!!! ???"} {
		if got := h.Extract(in); got == nil || len(got) != 0 {
			t.Fatalf("Extract(%q) = %v, want empty non-nil slice", in, got)
		}
	}
}

func TestHeuristicKeepsAccentedWordsWhole(t *testing.T) {
	h := NewHeuristic(10)

	got := h.Extract("Café café résumé naïve")
	want := []string{"#café", "#résumé", "#naïve"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Extract() = %v, want %v", got, want)
	}

	if got := h.Extract("abc123 x_y_z 2fast"); len(got) != 0 {
		t.Fatalf("words touching digits or underscores must be skipped, got %v", got)
	}
}
