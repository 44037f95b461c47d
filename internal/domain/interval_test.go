package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 6, 10, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name     string
		aStart   time.Time
		aEnd     time.Time
		bStart   time.Time
		bEnd     time.Time
		expected bool
	}{
		{"partial overlap", at(10, 0), at(11, 0), at(10, 30), at(11, 30), true},
		{"b inside a", at(10, 0), at(12, 0), at(10, 30), at(11, 0), true},
		{"identical", at(8, 0), at(9, 0), at(8, 0), at(9, 0), true},
		{"b ends when a starts", at(11, 0), at(12, 0), at(10, 0), at(11, 0), false},
		{"b starts when a ends", at(10, 0), at(11, 0), at(11, 0), at(12, 0), false},
		{"disjoint", at(8, 0), at(9, 0), at(13, 0), at(14, 0), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Предикат симметричен
			assert.Equal(t, tc.expected, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestFindConflict(t *testing.T) {
	reservations := []*Reservation{
		{ID: 1, StartAt: at(8, 0), EndAt: at(9, 0), Status: StatusReserved},
		{ID: 2, StartAt: at(12, 0), EndAt: at(14, 0), Status: StatusCancelled},
		nil,
	}

	conflict := FindConflict(at(8, 30), at(9, 30), reservations)
	if assert.NotNil(t, conflict) {
		assert.Equal(t, int64(1), conflict.ID)
	}

	assert.Nil(t, FindConflict(at(9, 0), at(10, 0), reservations), "adjacent slot must be free")
	assert.Nil(t, FindConflict(at(12, 0), at(13, 0), reservations), "cancelled reservations are ignored")
	assert.Nil(t, FindConflict(at(8, 0), at(9, 0), nil))
}
