package spellbook

import (
	"errors"
	"testing"
)

func TestBlockHeight(t *testing.T) {
	tests := []struct {
		n       int
		newline float64
		lineH   float64
		want    float64
	}{
		{0, 5, 3, 0},
		{1, 5, 3, 3},
		{2, 5, 3, 8},
		{5, 7, 3, 31},
	}
	for _, tt := range tests {
		got := blockHeight(tt.n, tt.newline, tt.lineH)
		if got != tt.want {
			t.Fatalf("blockHeight(%d, %g, %g) = %g, want %g", tt.n, tt.newline, tt.lineH, got, tt.want)
		}
	}
}

func TestMeasurerAppliesScalars(t *testing.T) {
	m := newMeasurer(fakeMetrics{charW: 2, lineH: 4}, [numFontStyles]float64{1, 1.5, 1, 1})
	w, err := m.width("ab", Bold, 12)
	if err != nil {
		t.Fatalf("width: %v", err)
	}
	if w != 6 {
		t.Fatalf("calibrated bold width = %g, want 6", w)
	}
	w, err = m.width("ab", Regular, 12)
	if err != nil {
		t.Fatalf("width: %v", err)
	}
	if w != 4 {
		t.Fatalf("calibrated regular width = %g, want 4", w)
	}
	h, err := m.lineHeight(Bold, 12)
	if err != nil {
		t.Fatalf("lineHeight: %v", err)
	}
	if h != 6 {
		t.Fatalf("calibrated bold line height = %g, want 6", h)
	}
}

func TestMeasurerEmptyTextIsFree(t *testing.T) {
	m := newMeasurer(failingMetrics{}, [numFontStyles]float64{1, 1, 1, 1})
	w, err := m.width("", Regular, 12)
	if err != nil {
		t.Fatalf("empty text should not consult the provider: %v", err)
	}
	if w != 0 {
		t.Fatalf("empty text width = %g, want 0", w)
	}
}

type failingMetrics struct{}

func (failingMetrics) TextWidth(string, FontStyle, float64) (float64, error) {
	return 0, ErrNoMetrics
}

func (failingMetrics) LineHeight(FontStyle, float64) (float64, error) {
	return 0, ErrNoMetrics
}

func TestMeasurerWrapsProviderError(t *testing.T) {
	m := newMeasurer(failingMetrics{}, [numFontStyles]float64{1, 1, 1, 1})
	_, err := m.width("x", Regular, 12)
	if !errors.Is(err, ErrNoMetrics) {
		t.Fatalf("expected ErrNoMetrics, got %v", err)
	}
	_, err = m.lineHeight(Italic, 12)
	if !errors.Is(err, ErrNoMetrics) {
		t.Fatalf("expected ErrNoMetrics, got %v", err)
	}
}
