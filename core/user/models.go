package user

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/academic"
)

// Kind tells which variant a User is.
type Kind string

const (
	KindTeacher Kind = "Teacher"
	KindStudent Kind = "Student"
)

var (
	Kinds = []Kind{KindTeacher, KindStudent}

	passwordCost = bcrypt.DefaultCost
)

// ParseKind matches role case-insensitively against the known kinds.
func ParseKind(role string) (Kind, bool) {
	role = core.CleanString(role)
	for _, k := range Kinds {
		if strings.EqualFold(string(k), role) {
			return k, true
		}
	}
	return "", false
}

// SetPasswordCost sets the bcrypt cost of new password hashes.
func SetPasswordCost(cost int) { passwordCost = cost }

func (k Kind) String() string { return string(k) }

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Kind         Kind   `json:"kind"`
	PasswordHash []byte `json:"-"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), passwordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u User) IsTeacher() bool { return u.Kind == KindTeacher }
func (u User) IsStudent() bool { return u.Kind == KindStudent }

// Profile holds a student's optional demographic fields.
type Profile struct {
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Gender        string `json:"gender,omitempty"`
	ParentName    string `json:"parent_name,omitempty"`
	ParentContact string `json:"parent_contact,omitempty"`
	Address       string `json:"address,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

type Student struct {
	User
	Class   string  `json:"class"`
	Major   string  `json:"major"`
	Course  string  `json:"course"` // cohort years, eg. 2021-2025
	Profile Profile `json:"profile"`

	// Subjects and Grades are expected to line up (one Grade per enrolled Subject) but a subject may be ungraded.
	Subjects []academic.Subject `json:"subjects"`
	Grades   []academic.Grade   `json:"grades"`
}

// HasSubject reports whether the student is enrolled in the subject with id.
func (s *Student) HasSubject(id string) bool {
	return academic.ContainsSubject(s.Subjects, id)
}

// Enroll adds sub to the student's subjects unless already enrolled. It reports whether sub was added.
func (s *Student) Enroll(sub academic.Subject) bool {
	if s.HasSubject(sub.ID) {
		return false
	}
	s.Subjects = append(s.Subjects, sub)
	return true
}

// GradeFor returns the student's grade in the subject with id.
func (s *Student) GradeFor(subjectID string) (academic.Grade, bool) {
	for _, g := range s.Grades {
		if g.Subject.ID == subjectID {
			return g, true
		}
	}
	return academic.Grade{}, false
}

// SetGrade replaces the grade of the same subject, or appends it.
func (s *Student) SetGrade(g academic.Grade) {
	g.StudentID = s.ID
	for i := range s.Grades {
		if s.Grades[i].Subject.ID == g.Subject.ID {
			s.Grades[i] = g
			return
		}
	}
	s.Grades = append(s.Grades, g)
}

func (s *Student) GPA10() float64    { return academic.GPA10(s.Grades) }
func (s *Student) TotalCredits() int { return academic.TotalCredits(s.Subjects) }

func (s *Student) Transcript(requiredCredits int) academic.Transcript {
	return academic.Summarize(s.Subjects, s.Grades, requiredCredits)
}

// Clone returns a copy of s that shares no slices with it.
func (s Student) Clone() Student {
	s.PasswordHash = append([]byte(nil), s.PasswordHash...)
	s.Subjects = append([]academic.Subject(nil), s.Subjects...)
	s.Grades = append([]academic.Grade(nil), s.Grades...)
	return s
}

type Teacher struct {
	User
	Subjects []academic.Subject `json:"subjects"`
}

// AddSubject adds sub to the subjects taught unless already there.
func (t *Teacher) AddSubject(sub academic.Subject) bool {
	if academic.ContainsSubject(t.Subjects, sub.ID) {
		return false
	}
	t.Subjects = append(t.Subjects, sub)
	return true
}

// Clone returns a copy of t that shares no slices with it.
func (t Teacher) Clone() Teacher {
	t.PasswordHash = append([]byte(nil), t.PasswordHash...)
	t.Subjects = append([]academic.Subject(nil), t.Subjects...)
	return t
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	ID       string `json:"id" validate:"required,alphanum_"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate, svc *Service) error {
	nt.ID = core.CleanString(nt.ID)
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)

	if err := validate.Struct(nt); err != nil {
		return err
	}
	return svc.checkUniqueness(nt.ID, nt.Email)
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	ID       string  `json:"id" validate:"required,alphanum_"`
	Name     string  `json:"name" validate:"required"`
	Class    string  `json:"class" validate:"required,alphanum_"`
	Major    string  `json:"major" validate:"required"`
	Course   string  `json:"course"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	Profile  Profile `json:"profile"`
}

func (ns *NewStudent) Validate(validate *validator.Validate, svc *Service) error {
	ns.ID = core.CleanString(ns.ID)
	ns.Name = core.CleanString(ns.Name)
	ns.Class = core.CleanString(ns.Class)
	ns.Major = core.CleanString(ns.Major)
	ns.Course = core.CleanString(ns.Course)
	ns.Email = core.CleanString(ns.Email, true /* lower */)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.checkUniqueness(ns.ID, ns.Email)
}

// LoginRequest holds the credentials typed in at login.
type LoginRequest struct {
	Role     string `json:"role" validate:"required,kind"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (lr LoginRequest) Validate(validate *validator.Validate) error { return validate.Struct(lr) }

// ChangePassword holds a password change request of an authenticated User.
type ChangePassword struct {
	Name            string `json:"-"`
	Email           string `json:"-"`
	OldPassword     string `json:"old_password" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

func (cp *ChangePassword) Validate(validate *validator.Validate, usr User) error {
	cp.Name = usr.Name
	cp.Email = usr.Email
	if err := validate.Struct(cp); err != nil {
		return err
	}
	if err := usr.CheckPassword(cp.OldPassword); err != nil {
		return core.NewValidationError(ErrWrongPassword, core.FieldError{Field: "old_password", Error: ErrWrongPassword.Error()})
	}
	return nil
}

// QueryFilter selects students; all set fields must match.
type QueryFilter struct {
	Major  string `json:"major"`
	Class  string `json:"class"`
	Search string `json:"search"` // case-insensitive substring of name or id
}

const filterAll = "all"

func (qf *QueryFilter) Clean() {
	qf.Major = core.CleanString(qf.Major)
	qf.Class = core.CleanString(qf.Class)
	qf.Search = core.CleanString(qf.Search)
	if strings.EqualFold(qf.Major, filterAll) {
		qf.Major = ""
	}
	if strings.EqualFold(qf.Class, filterAll) {
		qf.Class = ""
	}
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Major == "" && qf.Class == "" && qf.Search == ""
}

// Match reports whether s satisfies every set field of the filter.
func (qf *QueryFilter) Match(s Student) bool {
	if qf.Major != "" && s.Major != qf.Major {
		return false
	}
	if qf.Class != "" && s.Class != qf.Class {
		return false
	}
	if qf.Search != "" && !(core.ContainsFold(s.Name, qf.Search) || core.ContainsFold(s.ID, qf.Search)) {
		return false
	}
	return true
}
