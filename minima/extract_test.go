package minima

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line     string
		ceiling  float64
		vis      float64
		atLeast  bool
		lessThan bool
	}{
		{"BKN020", 2000, Unlimited, false, false},
		{"FM011200 OVC008", 800, Unlimited, false, false},
		{"TEMPO 0112/0114 OVC003", 300, Unlimited, false, false},
		{"22012KT P6SM SCT040 BKN250", 25000, 6, true, false},
		{"OVC003 1/2SM FG", 300, 0.5, false, false},
		{"28010KT 2 1/2SM BR OVC007", 700, 2.5, false, false},
		{"VRB03KT M1/4SM FG VV001", 100, 0.25, false, true},
		{"TEMPO 1502/1506 2SM SHRA BR OVC008", 800, 2, false, false},
		{"10SM BKN015 OVC030", 1500, 10, false, false},
		{"SCT040 FEW100", Unlimited, Unlimited, false, false},
		{"24010KT 9999 SCT030", Unlimited, Unlimited, false, false},
		{"OVC003CB 3SM", 300, 3, false, false},
		{"", Unlimited, Unlimited, false, false},
	}

	for _, tt := range tests {
		got := Extract(tt.line)
		assert.Equal(t, tt.ceiling, got.CeilingFeet, tt.line, "ceiling")
		assert.Equal(t, tt.vis, got.VisibilityMiles, tt.line, "visibility")
		assert.Equal(t, tt.atLeast, got.VisibilityAtLeast, tt.line, "visibility at least")
		assert.Equal(t, tt.lessThan, got.VisibilityLessThan, tt.line, "visibility less than")
	}
}

func TestExtract_noGroupsIsUnlimited(t *testing.T) {
	t.Parallel()
	for _, line := range []string{"RMK AO2", "NOSIG", "CAVOK", "TAF KXXX 010600Z"} {
		got := Extract(line)
		assert.True(t, math.IsInf(got.CeilingFeet, 1), line)
		assert.True(t, math.IsInf(got.VisibilityMiles, 1), line)
		assert.False(t, got.Below(Minima{CeilingFeet: 100000, VisibilityMiles: 99}), line)
	}
}

func TestConditionBelow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		line  string
		m     Minima
		below bool
	}{
		{"P6SM never fails a minimum of 6", "P6SM SKC", Minima{VisibilityMiles: 6}, false},
		{"P6SM never fails a minimum under 6", "P6SM SKC", Minima{VisibilityMiles: 3}, false},
		{"visibility equal to minimum", "6SM", Minima{VisibilityMiles: 6}, false},
		{"visibility under minimum", "5SM", Minima{VisibilityMiles: 6}, true},
		{"ceiling equal to minimum", "BKN010", Minima{CeilingFeet: 1000}, false},
		{"ceiling under minimum", "OVC008", Minima{CeilingFeet: 1000}, true},
		{"both fine", "5SM BKN030", Minima{CeilingFeet: 1000, VisibilityMiles: 3}, false},
		{"fraction under minimum", "1/2SM FG", Minima{VisibilityMiles: 1}, true},
		{"less than at minimum", "M1/4SM", Minima{VisibilityMiles: 0.25}, true},
		{"less than above minimum", "M1/4SM", Minima{VisibilityMiles: 0.125}, false},
		{"unreported ceiling", "3SM SCT005", Minima{CeilingFeet: 1000, VisibilityMiles: 3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.line)
			assert.Equal(t, tt.below, got.Below(tt.m))
			assert.Equal(t, !tt.below, got.Meets(tt.m))
		})
	}
}

func TestConditionCategory(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "VFR", Extract("P6SM SKC").Category())
	assert.Equal(t, "MVFR", Extract("P6SM BKN020").Category())
	assert.Equal(t, "MVFR", Extract("5SM SCT040").Category())
	assert.Equal(t, "IFR", Extract("OVC008").Category())
	assert.Equal(t, "IFR", Extract("2SM BR").Category())
	assert.Equal(t, "LIFR", Extract("OVC003").Category())
	assert.Equal(t, "LIFR", Extract("1/2SM FG").Category())
}
