package campus

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/user"
)

// Attendance is the presence of a student at one session of a subject.
type Attendance struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	SubjectID string    `json:"subject_id"`
	Date      time.Time `json:"date"`
	Present   bool      `json:"present"`
}

type AttendanceSummary struct {
	StudentID string  `json:"student_id"`
	SubjectID string  `json:"subject_id"`
	Sessions  int     `json:"sessions"`
	Attended  int     `json:"attended"`
	Rate      float64 `json:"rate"` // 0-1; 1 when no session was recorded
}

// SessionEntry is a student of a session roster.
type SessionEntry struct {
	Student  user.Student
	Present  bool
	Recorded bool
}

// RecordAttendance records the presence of an enrolled student at the session of date.
// A second record for the same day replaces the first.
func (svc *Service) RecordAttendance(studentID, subjectID string, date time.Time, present bool) (Attendance, error) {
	records, err := svc.RecordSessionAttendance([]string{studentID}, subjectID, date, present)
	if err != nil {
		return Attendance{}, err
	}
	return records[0], nil
}

// RecordSessionAttendance records the same presence for several students of a session.
// Nothing is recorded unless every student exists and is enrolled in the subject.
func (svc *Service) RecordSessionAttendance(studentIDs []string, subjectID string, date time.Time, present bool) ([]Attendance, error) {
	type entry struct {
		studentID string
		subjectID string
	}
	entries := make([]entry, 0, len(studentIDs))
	for _, id := range studentIDs {
		s, err := svc.getStudent(id)
		if err != nil {
			return nil, err
		}
		sub, err := svc.getEnrolledSubject(s, subjectID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{studentID: s.ID, subjectID: sub.ID})
	}

	records := make([]Attendance, 0, len(entries))
	for _, e := range entries {
		a, err := svc.saveAttendance(e.studentID, e.subjectID, date, present)
		if err != nil {
			return records, err
		}
		records = append(records, a)
	}
	return records, nil
}

func (svc *Service) saveAttendance(studentID, subjectID string, date time.Time, present bool) (Attendance, error) {
	if a, err := svc.findAttendance(studentID, subjectID, date); err == nil {
		a.Present = present
		return svc.repo.UpdateAttendance(a)
	} else if errors.Cause(err) != ErrAttendanceNotFound {
		return Attendance{}, err
	}

	return svc.repo.CreateAttendance(Attendance{
		ID:        uuid.New().String(),
		StudentID: studentID,
		SubjectID: subjectID,
		Date:      date,
		Present:   present,
	})
}

func (svc *Service) findAttendance(studentID, subjectID string, date time.Time) (Attendance, error) {
	records, err := svc.repo.QueryAllAttendance()
	if err != nil {
		return Attendance{}, err
	}
	for _, a := range records {
		if a.StudentID == studentID && a.SubjectID == subjectID && core.SameDay(a.Date, date) {
			return a, nil
		}
	}
	return Attendance{}, ErrAttendanceNotFound
}

// Presence tells whether a student attended the session of date. Students are present unless recorded otherwise.
func (svc *Service) Presence(studentID, subjectID string, date time.Time) (present, recorded bool, err error) {
	a, err := svc.findAttendance(core.CleanString(studentID), core.CleanString(subjectID), date)
	switch errors.Cause(err) {
	case nil:
		return a.Present, true, nil
	case ErrAttendanceNotFound:
		return true, false, nil
	default:
		return false, false, err
	}
}

// AttendanceOf returns the attendance records of a student, in store order.
func (svc *Service) AttendanceOf(studentID string) ([]Attendance, error) {
	records, err := svc.repo.QueryAllAttendance()
	if err != nil {
		return nil, err
	}
	studentID = core.CleanString(studentID)
	result := make([]Attendance, 0)
	for _, a := range records {
		if a.StudentID == studentID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (svc *Service) AttendanceSummary(studentID, subjectID string) (AttendanceSummary, error) {
	records, err := svc.AttendanceOf(studentID)
	if err != nil {
		return AttendanceSummary{}, err
	}
	sum := AttendanceSummary{
		StudentID: core.CleanString(studentID),
		SubjectID: core.CleanString(subjectID),
		Rate:      1,
	}
	for _, a := range records {
		if a.SubjectID != sum.SubjectID {
			continue
		}
		sum.Sessions++
		if a.Present {
			sum.Attended++
		}
	}
	if sum.Sessions > 0 {
		sum.Rate = float64(sum.Attended) / float64(sum.Sessions)
	}
	return sum, nil
}

// SessionRoster lists the students enrolled in a subject with their presence at the session of date.
func (svc *Service) SessionRoster(subjectID string, date time.Time) ([]SessionEntry, error) {
	sub, err := svc.subjects.GetSubjectByID(core.CleanString(subjectID))
	if err != nil {
		return nil, errors.Wrap(err, "getting subject")
	}
	students, err := svc.users.QueryAllStudents()
	if err != nil {
		return nil, err
	}
	roster := make([]SessionEntry, 0)
	for _, s := range students {
		if !s.HasSubject(sub.ID) {
			continue
		}
		present, recorded, err := svc.Presence(s.ID, sub.ID, date)
		if err != nil {
			return nil, err
		}
		roster = append(roster, SessionEntry{Student: s, Present: present, Recorded: recorded})
	}
	return roster, nil
}
