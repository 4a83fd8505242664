package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMonthNilMeansFullYear(t *testing.T) {
	num, label, ok := ResolveMonth(nil)
	assert.True(t, ok)
	assert.Equal(t, 0, num)
	assert.Equal(t, "Full Year", label)
}

func TestResolveMonthLocalizedNames(t *testing.T) {
	cases := []struct {
		token string
		want  int
	}{
		{"január", 1},
		{"feb", 2},
		{"Már", 3},
		{"már.", 3},
		{"SZEPTEMBER", 9},
		{"okt", 10},
		{"dec", 12},
	}
	for _, tc := range cases {
		num, label, ok := ResolveMonth(tc.token)
		assert.True(t, ok, tc.token)
		assert.Equal(t, tc.want, num, tc.token)
		assert.Equal(t, tc.token, label, "label keeps the user's spelling")
	}
}

func TestResolveMonthUnresolvableString(t *testing.T) {
	num, label, ok := ResolveMonth("Q1")
	assert.False(t, ok)
	assert.Equal(t, 0, num)
	assert.Equal(t, "Q1", label)
}

func TestResolveMonthNumbersPassThroughUnvalidated(t *testing.T) {
	num, label, ok := ResolveMonth(float64(13))
	assert.True(t, ok)
	assert.Equal(t, 13, num)
	assert.Equal(t, "13", label)

	num, _, ok = ResolveMonth(2)
	assert.True(t, ok)
	assert.Equal(t, 2, num)
}
