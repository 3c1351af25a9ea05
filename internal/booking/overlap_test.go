package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Ricaps/tennis-club-reservations-management/internal/model"
)

func at(h, m int) time.Time {
	return time.Date(2025, 5, 1, h, m, 0, 0, time.UTC)
}

func TestIntersects(t *testing.T) {
	tests := []struct {
		name                   string
		aFrom, aTo, bFrom, bTo time.Time
		want                   bool
	}{
		{name: "identical intervals", aFrom: at(10, 0), aTo: at(11, 0), bFrom: at(10, 0), bTo: at(11, 0), want: true},
		{name: "partial overlap", aFrom: at(10, 0), aTo: at(11, 0), bFrom: at(10, 30), bTo: at(11, 30), want: true},
		{name: "a contains b", aFrom: at(9, 0), aTo: at(12, 0), bFrom: at(10, 0), bTo: at(11, 0), want: true},
		{name: "b contains a", aFrom: at(10, 0), aTo: at(11, 0), bFrom: at(9, 0), bTo: at(12, 0), want: true},
		{name: "touching at a's end is inclusive", aFrom: at(10, 0), aTo: at(11, 0), bFrom: at(11, 0), bTo: at(12, 0), want: true},
		{name: "touching at a's start is inclusive", aFrom: at(11, 0), aTo: at(12, 0), bFrom: at(10, 0), bTo: at(11, 0), want: true},
		{name: "disjoint before", aFrom: at(8, 0), aTo: at(9, 0), bFrom: at(10, 0), bTo: at(11, 0), want: false},
		{name: "disjoint after", aFrom: at(12, 0), aTo: at(13, 0), bFrom: at(10, 0), bTo: at(11, 0), want: false},
		{name: "one minute gap", aFrom: at(10, 0), aTo: at(10, 59), bFrom: at(11, 0), bTo: at(12, 0), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Intersects(tt.aFrom, tt.aTo, tt.bFrom, tt.bTo))
			// Intersection is symmetric.
			require.Equal(t, tt.want, Intersects(tt.bFrom, tt.bTo, tt.aFrom, tt.aTo))
		})
	}
}

func TestHasConflict(t *testing.T) {
	candidate := &model.Reservation{UID: uuid.New()}
	other := &model.Reservation{UID: uuid.New()}

	require.False(t, hasConflict(candidate, nil))
	require.False(t, hasConflict(candidate, []*model.Reservation{}))

	// A single hit under the candidate's own UID is the re-save
	// exemption, not a conflict.
	self := &model.Reservation{UID: candidate.UID}
	require.False(t, hasConflict(candidate, []*model.Reservation{self}))

	require.True(t, hasConflict(candidate, []*model.Reservation{other}))
	require.True(t, hasConflict(candidate, []*model.Reservation{self, other}))
}
