package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoom(t *testing.T) {
	testCases := []struct {
		name     string
		floor    int
		seq      int
		expected string
	}{
		{
			name:     "First room on first floor",
			floor:    1,
			seq:      1,
			expected: "101",
		},
		{
			name:     "Sequence is zero padded",
			floor:    3,
			seq:      7,
			expected: "307",
		},
		{
			name:     "Double digit sequence",
			floor:    2,
			seq:      12,
			expected: "212",
		},
		{
			name:     "Double digit floor",
			floor:    10,
			seq:      5,
			expected: "1005",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Room(tc.floor, tc.seq))
		})
	}
}

func TestFloor(t *testing.T) {
	testCases := []struct {
		name     string
		floor    int
		count    int
		expected []string
	}{
		{
			name:     "Zero count yields empty slice",
			floor:    2,
			count:    0,
			expected: []string{},
		},
		{
			name:     "Three rooms on first floor",
			floor:    1,
			count:    3,
			expected: []string{"101", "102", "103"},
		},
		{
			name:     "Sequence stays padded and increasing",
			floor:    4,
			count:    11,
			expected: []string{"401", "402", "403", "404", "405", "406", "407", "408", "409", "410", "411"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rooms := Floor(tc.floor, tc.count)
			assert.Equal(t, tc.expected, rooms)
			assert.Len(t, rooms, tc.count)
		})
	}
}

// Identical (floor, count) pairs must always synthesize identical labels.
func TestFloorIsDeterministic(t *testing.T) {
	assert.Equal(t, Floor(6, 9), Floor(6, 9))
}
