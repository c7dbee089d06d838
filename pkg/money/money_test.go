package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFloatRoundsHalfUp(t *testing.T) {
	assert.Equal(t, Cents(2000), FromFloat(19.995))
	assert.Equal(t, Cents(2000), FromFloat(20.0))
	assert.Equal(t, Cents(1999), FromFloat(19.994))
	assert.Equal(t, Cents(0), FromFloat(0))
	// Display-equal values must compare equal after rounding.
	assert.Equal(t, FromFloat(20.00), FromFloat(19.999999999997))
}

func TestParse(t *testing.T) {
	cases := map[string]Cents{
		"20":     2000,
		"19.99":  1999,
		"19.995": 2000,
		" 5.25 ": 525,
		"0.01":   1,
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "NaN", "Inf"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestApplyPercent(t *testing.T) {
	// 10% of 36.75 is 3.675, rounded to 3.68.
	assert.Equal(t, Cents(368), ApplyPercent(3675, 10))
	// 90% of 36.75 is 33.075, rounded to 33.08.
	assert.Equal(t, Cents(3308), ApplyPercent(3675, 90))
	assert.Equal(t, Cents(0), ApplyPercent(1000, 0))
}

func TestStringAndJSON(t *testing.T) {
	assert.Equal(t, "33.08", Cents(3308).String())
	assert.Equal(t, "0.00", Cents(0).String())

	data, err := json.Marshal(Cents(3308))
	require.NoError(t, err)
	assert.Equal(t, "33.08", string(data))

	var c Cents
	require.NoError(t, json.Unmarshal([]byte("50.00"), &c))
	assert.Equal(t, Cents(5000), c)
}
