package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndFormat(t *testing.T) {
	cases := []struct {
		str string
		row int
		col int
	}{
		{"A1", 0, 0},
		{"B1", 0, 1},
		{"A2", 1, 0},
		{"Z1", 0, 25},
		{"AA1", 0, 26},
		{"AA27", 26, 26},
		{"AB1", 0, 27},
		{"XFD1", 0, 16383},
		{"XFD16384", 16383, 16383},
	}
	for _, c := range cases {
		t.Run(c.str, func(t *testing.T) {
			p, err := Parse(c.str)
			require.NoError(t, err)
			assert.Equal(t, c.row, p.Row)
			assert.Equal(t, c.col, p.Col)
			assert.Equal(t, c.str, p.String())
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, str := range []string{
		"", "1", "A", "A0", "01A", "a1", "A1A", "AA", "A-1",
		"A 1", "XFE1", "A16385", "XFD16385",
	} {
		t.Run(str, func(t *testing.T) {
			_, err := Parse(str)
			assert.Error(t, err)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for row := 0; row < 30; row++ {
		for col := 0; col < 30; col++ {
			p := New(row, col)
			got, err := Parse(p.String())
			require.NoError(t, err)
			assert.Equal(t, p, got)
		}
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, New(0, 0).IsValid())
	assert.True(t, New(MaxRows-1, MaxCols-1).IsValid())
	assert.False(t, New(-1, 0).IsValid())
	assert.False(t, New(0, -1).IsValid())
	assert.False(t, New(MaxRows, 0).IsValid())
	assert.False(t, New(0, MaxCols).IsValid())
}

func TestLess(t *testing.T) {
	assert.True(t, New(0, 0).Less(New(0, 1)))
	assert.True(t, New(0, 5).Less(New(1, 0)))
	assert.False(t, New(1, 0).Less(New(0, 5)))
	assert.False(t, New(0, 0).Less(New(0, 0)))
}

func TestSizeGrow(t *testing.T) {
	var s Size
	s = s.Grow(New(2, 3))
	assert.Equal(t, Size{Rows: 3, Cols: 4}, s)
	s = s.Grow(New(0, 0))
	assert.Equal(t, Size{Rows: 3, Cols: 4}, s)
	s = s.Grow(New(5, 1))
	assert.Equal(t, Size{Rows: 6, Cols: 4}, s)
}

func TestSortPositions(t *testing.T) {
	in := []Position{New(1, 0), New(0, 5), New(0, 1), New(0, 1)}
	got := SortPositions(in)
	assert.Equal(t, []Position{New(0, 1), New(0, 5), New(1, 0)}, got)
}
