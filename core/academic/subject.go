package academic

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core"
)

var (
	// errors
	ErrSubjectNotFound = errors.New("subject not found")
	ErrSubjectExists   = errors.New("a subject with this id already exists")
)

type Subject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Credits   int    `json:"credits"`
	TeacherID string `json:"teacher_id"`
}

// ContainsSubject reports whether a subject with id is in subjects.
func ContainsSubject(subjects []Subject, id string) bool {
	for _, s := range subjects {
		if s.ID == id {
			return true
		}
	}
	return false
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	ID        string `json:"id" validate:"required,alphanum_"`
	Name      string `json:"name" validate:"required"`
	Credits   int    `json:"credits" validate:"min=1"`
	TeacherID string `json:"teacher_id" validate:"required"`
}

func (ns *NewSubject) Validate(validate *validator.Validate, svc *Service) error {
	ns.ID = core.CleanString(ns.ID)
	ns.Name = core.CleanString(ns.Name)
	ns.TeacherID = core.CleanString(ns.TeacherID)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	if _, err := svc.GetByID(ns.ID); err == nil {
		return core.NewValidationError(ErrSubjectExists, core.FieldError{Field: "id", Error: ErrSubjectExists.Error()})
	} else if errors.Cause(err) != ErrSubjectNotFound {
		return err
	}
	return nil
}

type (
	Repository interface {
		CreateSubject(sub Subject) (Subject, error)
		// QueryAllSubjects returns subjects in insertion order.
		QueryAllSubjects() ([]Subject, error)
		GetSubjectByID(id string) (Subject, error)
		GetSubjectByName(name string) (Subject, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ns NewSubject) (Subject, error) {
	sub, err := svc.repo.CreateSubject(Subject{
		ID:        ns.ID,
		Name:      ns.Name,
		Credits:   ns.Credits,
		TeacherID: ns.TeacherID,
	})
	if err != nil {
		return Subject{}, errors.Wrap(err, "creating subject")
	}
	return sub, nil
}

func (svc *Service) GetByID(id string) (Subject, error) {
	return svc.repo.GetSubjectByID(core.CleanString(id))
}

// GetByName finds a subject by its exact name.
func (svc *Service) GetByName(name string) (Subject, error) {
	return svc.repo.GetSubjectByName(core.CleanString(name))
}

// Lookup finds a subject by ID, falling back to its name.
func (svc *Service) Lookup(idOrName string) (Subject, error) {
	sub, err := svc.GetByID(idOrName)
	if errors.Cause(err) == ErrSubjectNotFound {
		return svc.GetByName(idOrName)
	}
	return sub, err
}

// TaughtBy returns the subjects owned by the teacher with teacherID.
func (svc *Service) TaughtBy(teacherID string) ([]Subject, error) {
	all, err := svc.repo.QueryAllSubjects()
	if err != nil {
		return nil, err
	}
	subjects := make([]Subject, 0)
	for _, sub := range all {
		if sub.TeacherID == teacherID {
			subjects = append(subjects, sub)
		}
	}
	return subjects, nil
}
