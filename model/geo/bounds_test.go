package geo

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestParseBoundingBox(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    *BoundingBox
		expectErr bool
	}{
		{
			name:   "israel extent",
			input:  "34.00842,29.32535,35.92745,33.39834",
			expect: &BoundingBox{MinLon: 34.00842, MinLat: 29.32535, MaxLon: 35.92745, MaxLat: 33.39834},
		},
		{
			name:      "missing component",
			input:     "34.0,29.3,35.9",
			expectErr: true,
		},
		{
			name:      "min exceeds max",
			input:     "35.9,29.3,34.0,33.4",
			expectErr: true,
		},
		{
			name:      "not a number",
			input:     "a,b,c,d",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseBoundingBox(tc.input)
			if tc.expectErr {
				assert.NotNil(t, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.expect, actual)
		})
	}
}

func TestBoundingBox_ExtendWith(t *testing.T) {
	box := &BoundingBox{}
	box.ExtendWith(&BoundingBox{MinLon: 34, MinLat: 29, MaxLon: 35, MaxLat: 30})
	box.ExtendWith(&BoundingBox{MinLon: 33, MinLat: 31, MaxLon: 36, MaxLat: 33})
	assert.Equal(t, &BoundingBox{MinLon: 33, MinLat: 29, MaxLon: 36, MaxLat: 33}, box)
	assert.True(t, box.Contains(34.5, 30))
	assert.False(t, box.Contains(40, 30))
}

func TestTile(t *testing.T) {
	x, y := Tile(0, 0, 1)
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)

	x, y = Tile(32.0, 35.0, 7)
	assert.Equal(t, 76, x)
	assert.Equal(t, 51, y)
}
