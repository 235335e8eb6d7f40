package academic

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core"
)

// Component weights of a subject's average.
const (
	AssignmentWeight = 0.2
	MidtermWeight    = 0.2
	AttendanceWeight = 0.1
	FinalWeight      = 0.5
)

// Letter grades
const (
	LetterA = "A"
	LetterB = "B"
	LetterC = "C"
	LetterD = "D"
	LetterF = "F"
)

var (
	errNotANumber = errors.New("must be a number")

	// descending; first matching threshold wins
	letterThresholds = []struct {
		min    float64
		letter string
	}{
		{8.5, LetterA},
		{7.0, LetterB},
		{5.5, LetterC},
		{4.0, LetterD},
	}
)

// Scores are the raw component scores of a Grade, nominally on a 0-10 scale.
// They are not range checked.
type Scores struct {
	Assignment float64 `json:"assignment"`
	Midterm    float64 `json:"midterm"`
	Attendance float64 `json:"attendance"`
	Final      float64 `json:"final"`
}

// Average returns the weighted average of the component scores.
func Average(s Scores) float64 {
	return AssignmentWeight*s.Assignment +
		MidtermWeight*s.Midterm +
		AttendanceWeight*s.Attendance +
		FinalWeight*s.Final
}

// Letter maps a 10-point score to a letter grade. Lower edges are inclusive.
func Letter(score float64) string {
	for _, th := range letterThresholds {
		if score >= th.min {
			return th.letter
		}
	}
	return LetterF
}

type Grade struct {
	StudentID string  `json:"student_id"`
	Subject   Subject `json:"subject"`
	Scores
}

func (g Grade) Average() float64 { return Average(g.Scores) }
func (g Grade) Letter() string   { return Letter(g.Average()) }

// ParseScore parses a score typed in by a user.
// Non-numeric and non-finite input is reported as a *core.ValidationError on `field`.
func ParseScore(field, s string) (float64, error) {
	score, err := strconv.ParseFloat(core.CleanString(s), 64)
	if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, core.NewValidationError(errNotANumber, core.FieldError{Field: field, Error: errNotANumber.Error()})
	}
	return score, nil
}

// ParseScores parses the four component scores, in Scores field order.
func ParseScores(assignment, midterm, attendance, final string) (Scores, error) {
	var (
		s   Scores
		err error
	)
	if s.Assignment, err = ParseScore("assignment", assignment); err != nil {
		return Scores{}, err
	}
	if s.Midterm, err = ParseScore("midterm", midterm); err != nil {
		return Scores{}, err
	}
	if s.Attendance, err = ParseScore("attendance", attendance); err != nil {
		return Scores{}, err
	}
	if s.Final, err = ParseScore("final", final); err != nil {
		return Scores{}, err
	}
	return s, nil
}
