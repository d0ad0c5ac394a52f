package parsing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInchToken(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantTok string
		wantVal float64
	}{
		{name: "simple", code: "66-6B", wantTok: "6", wantVal: 6},
		{name: "fractional", code: "52-1 1/2B", wantTok: "1 1/2", wantVal: 1.5},
		{name: "bare fraction", code: "54A-3/4B", wantTok: "3/4", wantVal: 0.75},
		{name: "annotation excluded", code: "52-8B(A200)", wantTok: "8", wantVal: 8},
		{name: "spaced", code: "66 - 10 B", wantTok: "10", wantVal: 10},
		{name: "no token", code: "66", wantTok: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, val := InchToken(tt.code)
			assert.Equal(t, tt.wantTok, tok)
			if tt.wantTok == "" {
				assert.True(t, math.IsNaN(val))
			} else {
				assert.InDelta(t, tt.wantVal, val, 1e-9)
			}
		})
	}
}

func TestBandOf(t *testing.T) {
	assert.Equal(t, BandLT10, BandOf(6))
	assert.Equal(t, BandLT10, BandOf(9.99))
	assert.Equal(t, BandMid, BandOf(10))
	assert.Equal(t, BandMid, BandOf(12))
	assert.Equal(t, BandMid, BandOf(14))
	assert.Equal(t, BandHigh, BandOf(16))
	assert.Equal(t, BandHigh, BandOf(24))
	assert.Equal(t, BandUnknown, BandOf(math.NaN()))
}

func TestContainsInch(t *testing.T) {
	tests := []struct {
		name  string
		note  string
		token string
		want  bool
	}{
		{name: "match with inch mark", note: `padding plate 6" type 52&66`, token: "6", want: true},
		{name: "no inch mark", note: "padding plate 6 type 52&66", token: "6", want: false},
		{name: "digit prefix rejected", note: `plate 21"`, token: "1", want: false},
		{name: "fractional token", note: `clamp 1 1/2" type 54a,54b`, token: "1 1/2", want: true},
		{name: "unicode inch mark", note: "plate 8″", token: "8", want: true},
		{name: "sentinel note", note: "**", token: "6", want: false},
		{name: "empty token", note: `plate 6"`, token: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsInch(tt.note, tt.token))
		})
	}
}

func TestInchRangeFromNote(t *testing.T) {
	lo, hi, ok := InchRangeFromNote(`for pipe < 10"`)
	assert.True(t, ok)
	assert.Less(t, lo, -1e8)
	assert.InDelta(t, 10.0, hi, 1e-9)

	lo, hi, ok = InchRangeFromNote(`from 10" to 14" supports`)
	assert.True(t, ok)
	assert.InDelta(t, 10.0, lo, 1e-9)
	assert.InDelta(t, 14.0, hi, 1e-9)

	// Reversed bounds normalize.
	lo, hi, ok = InchRangeFromNote(`14" down to 10"`)
	assert.True(t, ok)
	assert.InDelta(t, 10.0, lo, 1e-9)
	assert.InDelta(t, 14.0, hi, 1e-9)

	_, _, ok = InchRangeFromNote(`single 8" mention`)
	assert.False(t, ok)

	_, _, ok = InchRangeFromNote("")
	assert.False(t, ok)
}

func TestALengthMM(t *testing.T) {
	n, ok := ALengthMM("52-8B(A200)")
	assert.True(t, ok)
	assert.Equal(t, 200, n)

	n, ok = ALengthMM("52-8B( a 150 )")
	assert.True(t, ok)
	assert.Equal(t, 150, n)

	_, ok = ALengthMM("52-8B")
	assert.False(t, ok)
}
