package campus

import (
	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core/academic"
)

type MajorCount struct {
	Major string  `json:"major"`
	Count int     `json:"count"`
	Share float64 `json:"share"` // 0-1
}

// TeacherOverview is the home screen of teachers.
type TeacherOverview struct {
	TotalStudents   int          `json:"total_students"`
	PendingProjects int          `json:"pending_projects"`
	UnpaidFees      float64      `json:"unpaid_fees"`
	AverageGPA      float64      `json:"average_gpa"`
	Majors          []MajorCount `json:"majors"` // in order of first appearance
}

// StudentOverview is the home screen of students.
type StudentOverview struct {
	Transcript      academic.Transcript `json:"transcript"`
	CurrentSubjects int                 `json:"current_subjects"`
	ProjectProgress int                 `json:"project_progress"`
}

func (svc *Service) TeacherOverview() (TeacherOverview, error) {
	var (
		ov  TeacherOverview
		err error
	)
	students, err := svc.users.QueryAllStudents()
	if err != nil {
		return ov, errors.Wrap(err, "querying students")
	}
	if ov.PendingProjects, err = svc.PendingProjects(); err != nil {
		return ov, errors.Wrap(err, "counting pending projects")
	}
	if ov.UnpaidFees, err = svc.UnpaidTotal(); err != nil {
		return ov, errors.Wrap(err, "summing unpaid fees")
	}

	ov.TotalStudents = len(students)
	ov.Majors = make([]MajorCount, 0)
	majorIdx := make(map[string]int)
	var gpaSum float64
	for _, s := range students {
		gpaSum += s.GPA10()
		i, ok := majorIdx[s.Major]
		if !ok {
			i = len(ov.Majors)
			majorIdx[s.Major] = i
			ov.Majors = append(ov.Majors, MajorCount{Major: s.Major})
		}
		ov.Majors[i].Count++
	}
	if ov.TotalStudents > 0 {
		ov.AverageGPA = gpaSum / float64(ov.TotalStudents)
		for i := range ov.Majors {
			ov.Majors[i].Share = float64(ov.Majors[i].Count) / float64(ov.TotalStudents)
		}
	}
	return ov, nil
}

func (svc *Service) StudentOverview(studentID string) (StudentOverview, error) {
	s, err := svc.getStudent(studentID)
	if err != nil {
		return StudentOverview{}, err
	}
	ov := StudentOverview{
		Transcript:      s.Transcript(svc.conf.RequiredCredits),
		CurrentSubjects: len(s.Subjects),
	}
	p, err := svc.ProjectOf(s.ID)
	switch errors.Cause(err) {
	case nil:
		ov.ProjectProgress = p.Progress
	case ErrProjectNotFound:
	default:
		return StudentOverview{}, err
	}
	return ov, nil
}
