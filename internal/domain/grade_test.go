package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorForGrades(t *testing.T) {
	tests := []struct {
		name   string
		grades []Grade
		want   GradeColor
	}{
		{"preschool only", []Grade{GradePreschool}, ColorPreschool},
		{"lower only", []Grade{GradeLower}, ColorLower},
		{"upper only", []Grade{GradeUpper}, ColorUpper},
		{"all three", []Grade{GradePreschool, GradeLower, GradeUpper}, ColorAllGrades},
		{"preschool wins mixed pair", []Grade{GradeLower, GradePreschool}, ColorPreschool},
		{"lower wins over upper", []Grade{GradeUpper, GradeLower}, ColorLower},
		{"empty set falls back", nil, ColorFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorForGrades(tt.grades))
		})
	}
}

func TestGradeValid(t *testing.T) {
	for _, g := range AllGrades {
		assert.True(t, g.Valid())
	}
	assert.False(t, Grade("grade4").Valid())
	assert.False(t, Grade("").Valid())
}
