package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestChangePercent(t *testing.T) {
	tests := []struct {
		current, previous string
		want              string
	}{
		{current: "110", previous: "100", want: "10"},
		{current: "71500", previous: "72000", want: "-0.69"},
		{current: "5", previous: "0", want: "0"},
	}

	for _, tt := range tests {
		got := ChangePercent(decimal.RequireFromString(tt.current), decimal.RequireFromString(tt.previous))
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ChangePercent(%s, %s) = %s; want %s", tt.current, tt.previous, got, tt.want)
		}
	}
}

func TestVolumeRatio(t *testing.T) {
	if got := VolumeRatio(300, 100); got != 3 {
		t.Errorf("VolumeRatio(300, 100) = %v", got)
	}
	if got := VolumeRatio(0, 0); got != 1 {
		t.Errorf("VolumeRatio(0, 0) = %v", got)
	}
	if got := VolumeRatio(40, 0); got != 40 {
		t.Errorf("VolumeRatio(40, 0) = %v", got)
	}
}

func TestCorrelation(t *testing.T) {
	if got := Correlation([]float64{1, 2, 3}, []float64{2, 4, 6}); got < 0.9999 {
		t.Errorf("perfect correlation = %v", got)
	}
	if got := Correlation([]float64{1, 2, 3}, []float64{3, 2, 1}); got > -0.9999 {
		t.Errorf("perfect anti-correlation = %v", got)
	}
	if got := Correlation([]float64{1, 1, 1}, []float64{1, 2, 3}); got != 0 {
		t.Errorf("flat series correlation = %v", got)
	}
	if got := Correlation([]float64{1}, []float64{1}); got != 0 {
		t.Errorf("single point correlation = %v", got)
	}
}
