package domain

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishigaki-sys/school-booking-v2/pkg/types"
)

const testDate = types.DateString("2025-06-01")

func testSlot(t *testing.T, id, start, end string, capacity int) Slot {
	t.Helper()
	return Slot{
		ID:        id,
		ContentID: "contentA",
		StartTime: mustTime(t, start),
		EndTime:   mustTime(t, end),
		Capacity:  capacity,
		Grades:    []Grade{GradeLower},
	}
}

func TestUpsertSlotValidation(t *testing.T) {
	tests := []struct {
		name    string
		slot    Slot
		wantErr error
	}{
		{
			name:    "end before start",
			slot:    testSlot(t, "s1", "10:00", "09:00", 5),
			wantErr: ErrInvalidSlotTime,
		},
		{
			name:    "zero width",
			slot:    testSlot(t, "s1", "10:00", "10:00", 5),
			wantErr: ErrInvalidSlotTime,
		},
		{
			name:    "zero capacity",
			slot:    testSlot(t, "s1", "09:00", "10:00", 0),
			wantErr: ErrInvalidCapacity,
		},
		{
			name: "empty grades",
			slot: Slot{
				ID: "s1", ContentID: "contentA",
				StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "10:00"),
				Capacity: 5,
			},
			wantErr: ErrEmptyGrades,
		},
		{
			name: "unknown grade",
			slot: Slot{
				ID: "s1", ContentID: "contentA",
				StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "10:00"),
				Capacity: 5, Grades: []Grade{"grade9"},
			},
			wantErr: ErrUnknownGrade,
		},
		{
			name: "missing content id",
			slot: Slot{
				ID:        "s1",
				StartTime: mustTime(t, "09:00"), EndTime: mustTime(t, "10:00"),
				Capacity: 5, Grades: []Grade{GradeLower},
			},
			wantErr: ErrMissingContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched := Schedule{}
			err := sched.UpsertSlot(testDate, tt.slot, -1)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, sched.SlotsOn(testDate), "failed upsert must not mutate")
		})
	}
}

func TestUpsertSlotConflict(t *testing.T) {
	sched := Schedule{}
	require.NoError(t, sched.UpsertSlot(testDate, testSlot(t, "s1", "09:00", "10:00", 5), -1))

	err := sched.UpsertSlot(testDate, testSlot(t, "s2", "09:30", "10:30", 5), -1)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, testDate, conflict.Date)
	assert.Equal(t, "s1", conflict.Existing.ID)

	// The date's slot list must be unchanged after a rejected upsert.
	require.Len(t, sched.SlotsOn(testDate), 1)
	assert.Equal(t, "s1", sched.SlotsOn(testDate)[0].ID)
}

func TestUpsertSlotAbuttingSucceeds(t *testing.T) {
	sched := Schedule{}
	require.NoError(t, sched.UpsertSlot(testDate, testSlot(t, "s1", "09:00", "10:00", 5), -1))
	require.NoError(t, sched.UpsertSlot(testDate, testSlot(t, "s2", "10:00", "11:00", 5), -1))
	require.NoError(t, sched.UpsertSlot(testDate, testSlot(t, "s3", "08:00", "09:00", 5), -1))

	slots := sched.SlotsOn(testDate)
	require.Len(t, slots, 3)
	// Sorted by start time.
	assert.Equal(t, []string{"s3", "s1", "s2"}, []string{slots[0].ID, slots[1].ID, slots[2].ID})
}

func TestUpsertSlotEditKeepsIDAndSkipsSelfOverlap(t *testing.T) {
	sched := Schedule{}
	require.NoError(t, sched.UpsertSlot(testDate, testSlot(t, "s1", "09:00", "10:00", 5), -1))

	// Widening the slot in place overlaps only itself and must succeed.
	edited := testSlot(t, "ignored", "09:00", "10:30", 8)
	require.NoError(t, sched.UpsertSlot(testDate, edited, 0))

	slots := sched.SlotsOn(testDate)
	require.Len(t, slots, 1)
	assert.Equal(t, "s1", slots[0].ID, "edit must keep the original id")
	assert.Equal(t, 8, slots[0].Capacity)
	assert.Equal(t, mustTime(t, "10:30"), slots[0].EndTime)
}

func TestUpsertSlotEditIndexOutOfRange(t *testing.T) {
	sched := Schedule{}
	err := sched.UpsertSlot(testDate, testSlot(t, "s1", "09:00", "10:00", 5), 3)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestUpsertSlotOtherDatesAreIndependent(t *testing.T) {
	sched := Schedule{}
	require.NoError(t, sched.UpsertSlot(testDate, testSlot(t, "s1", "09:00", "10:00", 5), -1))
	// Same interval on another date never conflicts.
	require.NoError(t, sched.UpsertSlot("2025-06-08", testSlot(t, "s2", "09:00", "10:00", 5), -1))
}

func TestRemoveSlot(t *testing.T) {
	sched := Schedule{}
	require.NoError(t, sched.UpsertSlot(testDate, testSlot(t, "s1", "09:00", "10:00", 5), -1))

	removed, err := sched.RemoveSlot(testDate, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", removed.ID)
	assert.Nil(t, sched.SlotsOn(testDate), "empty date key is dropped")

	_, err = sched.RemoveSlot(testDate, "s1")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

// Randomized sequences of upserts must never leave two overlapping slots on
// a date, regardless of which inserts were accepted.
func TestUpsertSlotInvariantRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	minuteToTime := func(m int) types.TimeString {
		ts, err := types.NewTimeStringFromString(fmt.Sprintf("%02d:%02d", m/60, m%60))
		require.NoError(t, err)
		return ts
	}

	for run := 0; run < 50; run++ {
		sched := Schedule{}
		for n := 0; n < 40; n++ {
			start := rng.Intn(21 * 60)
			length := 15 + rng.Intn(119)
			slot := Slot{
				ID:        fmt.Sprintf("r%02d", n),
				ContentID: "contentA",
				StartTime: minuteToTime(start),
				EndTime:   minuteToTime(start + length),
				Capacity:  1 + rng.Intn(10),
				Grades:    []Grade{AllGrades[rng.Intn(len(AllGrades))]},
			}
			// Accepted or rejected, the invariant must hold afterwards.
			_ = sched.UpsertSlot(testDate, slot, -1)

			slots := sched.SlotsOn(testDate)
			for i := range slots {
				for j := i + 1; j < len(slots); j++ {
					assert.False(t, slots[i].Range().Overlaps(slots[j].Range()),
						"run %d: slots %s and %s overlap", run, slots[i].ID, slots[j].ID)
				}
				if i > 0 {
					assert.False(t, slots[i].StartTime.IsBefore(slots[i-1].StartTime),
						"run %d: slot list not sorted by start time", run)
				}
			}
		}
	}
}
