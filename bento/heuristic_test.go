package bento

import (
	"errors"
	"testing"
)

func TestParseHeuristic_RoundTrip(t *testing.T) {
	for _, h := range Heuristics {
		parsed, err := ParseHeuristic(h.String())
		if err != nil {
			t.Fatalf("Couldn't parse %q: %s", h.String(), err)
		}
		if parsed != h {
			t.Fatalf("Parsed %q to %d, expected %d!", h.String(), parsed, h)
		}
	}
}

func TestParseHeuristic_Unknown(t *testing.T) {
	_, err := ParseHeuristic("worst-fit")
	if err == nil {
		t.Fatal("Didn't throw error on unknown heuristic!")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Wrong error kind: %s", err)
	}
}
