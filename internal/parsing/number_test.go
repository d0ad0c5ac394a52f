package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{name: "comma decimal", input: "0,5840", want: 0.5840, ok: true},
		{name: "comma thousands dot decimal", input: "1,234.5", want: 1234.5, ok: true},
		{name: "dot thousands comma decimal", input: "1.234,5", want: 1234.5, ok: true},
		{name: "plain integer", input: "950", want: 950, ok: true},
		{name: "plain decimal", input: "10.25", want: 10.25, ok: true},
		{name: "negative comma decimal", input: "-3,5", want: -3.5, ok: true},
		{name: "multi comma thousands", input: "1,234,567", want: 1234567, ok: true},
		{name: "internal spaces stripped", input: "1 234,5", want: 1234.5, ok: true},
		{name: "sentinel", input: "**", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "blank", input: "   ", ok: false},
		{name: "garbage", input: "n/a", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestRoundUpHundred(t *testing.T) {
	assert.Equal(t, 1000, RoundUpHundred(950))
	assert.Equal(t, 1100, RoundUpHundred(1020))
	assert.Equal(t, 100, RoundUpHundred(1))
	assert.Equal(t, 0, RoundUpHundred(0))
	assert.Equal(t, 0, RoundUpHundred(-250))

	// Idempotent on multiples of 100.
	for _, v := range []int{100, 500, 1000, 2300} {
		assert.Equal(t, v, RoundUpHundred(float64(v)))
	}

	// Monotonic non-decreasing.
	prev := 0
	for v := 0.0; v <= 500; v += 37.5 {
		got := RoundUpHundred(v)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestParseYes(t *testing.T) {
	for _, v := range []string{"yes", "Y", " TRUE ", "1", "是", "有", "v"} {
		assert.True(t, ParseYes(v), v)
	}
	for _, v := range []string{"", "no", "0", "x", "2"} {
		assert.False(t, ParseYes(v), v)
	}
}
