package user

import (
	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/academic"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrIDExists           = errors.New("a user with this id already exists")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrNotEnrolled        = errors.New("student is not enrolled in this subject")
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type (
	Repository interface {
		CheckUniqueness(id, email string) error
		CreateTeacher(t Teacher) (Teacher, error)
		CreateStudent(s Student) (Student, error)
		// QueryAllUsers returns teachers and students in insertion order.
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		QueryAllTeachers() ([]Teacher, error)
		GetTeacherByID(id string) (Teacher, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id string) (Student, error)
		// FilterStudents applies AND operation on set QueryFilter fields, keeping insertion order.
		FilterStudents(filter QueryFilter) ([]Student, error)
		UpdateTeacher(t Teacher) (Teacher, error)
		UpdateStudent(s Student) (Student, error)
		UpdatePassword(id string, hash []byte) error
	}

	Service struct {
		repo     Repository
		subjects academic.Repository
	}
)

func NewService(repo Repository, subjects academic.Repository) *Service {
	return &Service{repo: repo, subjects: subjects}
}

func (svc *Service) checkUniqueness(id, email string) error {
	if err := svc.repo.CheckUniqueness(id, email); err != nil {
		var field string
		switch err {
		case ErrIDExists:
			field = "id"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *Service) CreateTeacher(nt NewTeacher) (Teacher, error) {
	t := Teacher{
		User: User{
			ID:    nt.ID,
			Name:  nt.Name,
			Email: nt.Email,
			Kind:  KindTeacher,
		},
	}
	if err := t.SetPassword(nt.Password); err != nil {
		return Teacher{}, errors.Wrap(err, "setting password")
	}
	return svc.repo.CreateTeacher(t)
}

func (svc *Service) CreateStudent(ns NewStudent) (Student, error) {
	s := Student{
		User: User{
			ID:    ns.ID,
			Name:  ns.Name,
			Email: ns.Email,
			Kind:  KindStudent,
		},
		Class:   ns.Class,
		Major:   ns.Major,
		Course:  ns.Course,
		Profile: ns.Profile,
	}
	if err := s.SetPassword(ns.Password); err != nil {
		return Student{}, errors.Wrap(err, "setting password")
	}
	return svc.repo.CreateStudent(s)
}

// CreateSubject creates a subject and adds it to its teacher's subjects.
func (svc *Service) CreateSubject(ns academic.NewSubject) (academic.Subject, error) {
	t, err := svc.repo.GetTeacherByID(ns.TeacherID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return academic.Subject{}, core.NewValidationError(err, core.FieldError{Field: "teacher_id", Error: "teacher not found"})
		}
		return academic.Subject{}, errors.Wrap(err, "getting teacher")
	}

	sub, err := academic.NewService(svc.subjects).Create(ns)
	if err != nil {
		return academic.Subject{}, err
	}
	if t.AddSubject(sub) {
		if _, err = svc.repo.UpdateTeacher(t); err != nil {
			return academic.Subject{}, errors.Wrap(err, "updating teacher")
		}
	}
	return sub, nil
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(core.CleanString(id))
}

func (svc *Service) QueryTeachers() ([]Teacher, error) {
	return svc.repo.QueryAllTeachers()
}

func (svc *Service) GetTeacher(id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(core.CleanString(id))
}

func (svc *Service) QueryStudents() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetStudent(id string) (Student, error) {
	return svc.repo.GetStudentByID(core.CleanString(id))
}

func (svc *Service) Filter(filter QueryFilter) ([]Student, error) {
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllStudents()
	}
	return svc.repo.FilterStudents(filter)
}

// Enroll adds the subject to the student's subjects. Enrolling twice is a no-op.
func (svc *Service) Enroll(studentID, subjectID string) (Student, error) {
	s, err := svc.GetStudent(studentID)
	if err != nil {
		return Student{}, err
	}
	sub, err := svc.subjects.GetSubjectByID(core.CleanString(subjectID))
	if err != nil {
		return Student{}, err
	}
	if !s.Enroll(sub) {
		return s, nil
	}
	return svc.repo.UpdateStudent(s)
}

// RecordGrade sets the grade of a student in a subject they are enrolled in.
func (svc *Service) RecordGrade(studentID, subjectID string, scores academic.Scores) (academic.Grade, error) {
	s, err := svc.GetStudent(studentID)
	if err != nil {
		return academic.Grade{}, err
	}
	subjectID = core.CleanString(subjectID)
	if !s.HasSubject(subjectID) {
		return academic.Grade{}, core.NewValidationError(ErrNotEnrolled, core.FieldError{Field: "subject", Error: ErrNotEnrolled.Error()})
	}
	sub, err := svc.subjects.GetSubjectByID(subjectID)
	if err != nil {
		return academic.Grade{}, err
	}

	g := academic.Grade{StudentID: s.ID, Subject: sub, Scores: scores}
	s.SetGrade(g)
	if _, err = svc.repo.UpdateStudent(s); err != nil {
		return academic.Grade{}, errors.Wrap(err, "updating student")
	}
	return g, nil
}

// RosterEntry is a student enrolled in a subject, with their grade in it.
type RosterEntry struct {
	Student Student
	Grade   academic.Grade
	Graded  bool
}

// Roster lists the students enrolled in a subject, in store order.
// Ungraded students get a zero Grade.
func (svc *Service) Roster(subjectID string) ([]RosterEntry, error) {
	sub, err := svc.subjects.GetSubjectByID(core.CleanString(subjectID))
	if err != nil {
		return nil, err
	}
	students, err := svc.repo.QueryAllStudents()
	if err != nil {
		return nil, err
	}

	roster := make([]RosterEntry, 0)
	for _, s := range students {
		if !s.HasSubject(sub.ID) {
			continue
		}
		g, ok := s.GradeFor(sub.ID)
		if !ok {
			g = academic.Grade{StudentID: s.ID, Subject: sub}
		}
		roster = append(roster, RosterEntry{Student: s, Grade: g, Graded: ok})
	}
	return roster, nil
}

func (svc *Service) ChangePassword(id string, cp ChangePassword) error {
	usr := User{ID: id}
	if err := usr.SetPassword(cp.Password); err != nil {
		return errors.Wrap(err, "setting password")
	}
	return svc.repo.UpdatePassword(id, usr.PasswordHash)
}
