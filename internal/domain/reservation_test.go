package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAcquisitionLabel(t *testing.T) {
	tests := []struct {
		name string
		res  Reservation
		want string
	}{
		{
			name: "admin entry",
			res:  Reservation{SourceType: SourceAdmin, UTMSource: "newsletter"},
			want: AcquisitionLabelAdmin,
		},
		{
			name: "utm source with medium",
			res:  Reservation{SourceType: SourceWeb, UTMSource: "line", UTMMedium: "social"},
			want: "line (social)",
		},
		{
			name: "utm source without medium",
			res:  Reservation{SourceType: SourceWeb, UTMSource: "flyer"},
			want: "flyer",
		},
		{
			name: "unattributed web",
			res:  Reservation{SourceType: SourceWeb},
			want: AcquisitionLabelDirect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.res.AcquisitionLabel())
		})
	}
}

func TestDateFieldModeEffectiveDate(t *testing.T) {
	created := time.Date(2025, 6, 3, 23, 30, 0, 0, time.Local)
	res := &Reservation{Date: "2025-06-10", CreatedAt: created}

	assert.Equal(t, res.Date, DateFieldEvent.EffectiveDate(res))
	assert.Equal(t, "2025-06-03", DateFieldCreated.EffectiveDate(res).String())
}

func TestDateFieldModeValid(t *testing.T) {
	assert.True(t, DateFieldCreated.Valid())
	assert.True(t, DateFieldEvent.Valid())
	assert.False(t, DateFieldMode("both").Valid())
}

func TestReservationKey(t *testing.T) {
	res := &Reservation{VenueID: "v1", Date: "2025-06-01", StartTime: "09:00", ContentID: "contentA"}
	slot := Slot{ContentID: "contentA", StartTime: "09:00", EndTime: "10:00"}

	assert.Equal(t, slot.KeyOn("v1", "2025-06-01"), res.Key())
}
