package domain

// Grade is the closed set of eligibility bands a slot can accept.
type Grade string

const (
	GradePreschool Grade = "preschool"
	GradeLower     Grade = "grade1_2"
	GradeUpper     Grade = "grade3_plus"
)

// AllGrades lists every grade in display order.
var AllGrades = []Grade{GradePreschool, GradeLower, GradeUpper}

// Valid reports whether g is one of the known grades.
func (g Grade) Valid() bool {
	switch g {
	case GradePreschool, GradeLower, GradeUpper:
		return true
	}
	return false
}

// GradeColor is the display classification derived from a slot's grade set.
type GradeColor string

const (
	ColorPreschool GradeColor = "#ff91aa"
	ColorLower     GradeColor = "#ffac2d"
	ColorUpper     GradeColor = "#00b4dc"
	ColorAllGrades GradeColor = "#5abe50"
	// ColorFallback covers an empty or unrecognized grade set. Unreachable
	// while the non-empty-grades invariant holds; documents written by older
	// clients can still carry empty sets.
	ColorFallback GradeColor = "#9ca3af"
)

// ColorForGrades classifies a grade set: one fixed color per single grade,
// a distinct color when all three are eligible, and the fallback otherwise.
// Mixed two-grade sets take the color of the highest-priority member, in the
// order preschool, lower, upper.
func ColorForGrades(grades []Grade) GradeColor {
	if len(grades) == 0 {
		return ColorFallback
	}
	if len(grades) == len(AllGrades) {
		return ColorAllGrades
	}
	if containsGrade(grades, GradePreschool) {
		return ColorPreschool
	}
	if containsGrade(grades, GradeLower) {
		return ColorLower
	}
	if containsGrade(grades, GradeUpper) {
		return ColorUpper
	}
	return ColorFallback
}

func containsGrade(grades []Grade, g Grade) bool {
	for _, x := range grades {
		if x == g {
			return true
		}
	}
	return false
}
