package academic

// 10-point to 4-point conversion table, descending.
var gpa4Steps = []struct {
	min, gpa4 float64
}{
	{8.5, 4.0},
	{8.0, 3.7},
	{7.5, 3.3},
	{7.0, 3.0},
	{6.5, 2.7},
	{6.0, 2.3},
	{5.5, 2.0},
	{5.0, 1.7},
	{4.0, 1.0},
}

// GPA10 is the credit weighted mean of the final scores of grades.
// It is 0 when there are no grades (or no credits to weigh them with).
func GPA10(grades []Grade) float64 {
	var points, credits float64
	for _, g := range grades {
		points += g.Final * float64(g.Subject.Credits)
		credits += float64(g.Subject.Credits)
	}
	if credits <= 0 {
		return 0
	}
	return points / credits
}

// GPA4 converts a 10-point GPA to the 4-point scale.
func GPA4(gpa10 float64) float64 {
	for _, step := range gpa4Steps {
		if gpa10 >= step.min {
			return step.gpa4
		}
	}
	return 0
}

// Rank is the letter grade of a 10-point GPA.
func Rank(gpa10 float64) string {
	return Letter(gpa10)
}

// TotalCredits sums the credits of subjects, graded or not.
func TotalCredits(subjects []Subject) int {
	var total int
	for _, sub := range subjects {
		total += sub.Credits
	}
	return total
}

type Transcript struct {
	GPA10           float64 `json:"gpa10"`
	GPA4            float64 `json:"gpa4"`
	Rank            string  `json:"rank"`
	TotalCredits    int     `json:"total_credits"`
	RequiredCredits int     `json:"required_credits"`
	Grades          []Grade `json:"grades"`
}

// Summarize computes the Transcript of a student enrolled in subjects with grades.
func Summarize(subjects []Subject, grades []Grade, requiredCredits int) Transcript {
	gpa := GPA10(grades)
	return Transcript{
		GPA10:           gpa,
		GPA4:            GPA4(gpa),
		Rank:            Rank(gpa),
		TotalCredits:    TotalCredits(subjects),
		RequiredCredits: requiredCredits,
		Grades:          grades,
	}
}
