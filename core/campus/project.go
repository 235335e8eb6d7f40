package campus

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/academic"
	"github.com/vku/studentrecords/core/user"
)

type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	StudentIDs   []string `json:"student_ids"`
	SupervisorID string   `json:"supervisor_id"`
	Deadline     string   `json:"deadline"`
	Progress     int      `json:"progress"` // percent
	Grade        float64  `json:"grade"`
	Approved     bool     `json:"approved"` // topic approved by the supervisor
}

// HasStudent reports whether the student with id belongs to the project group.
func (p Project) HasStudent(id string) bool {
	for _, sid := range p.StudentIDs {
		if sid == id {
			return true
		}
	}
	return false
}

func (p Project) IsPending() bool { return p.Progress < 100 }

// NewProject contains information needed to create a new Project.
type NewProject struct {
	ID           string   `json:"id" validate:"required,alphanum_"`
	Name         string   `json:"name" validate:"required"`
	StudentIDs   []string `json:"student_ids" validate:"required,min=1,dive,required"`
	SupervisorID string   `json:"supervisor_id" validate:"required"`
	Deadline     string   `json:"deadline" validate:"omitempty,datetime=2006-01-02"`
}

func (np *NewProject) Validate(validate *validator.Validate, svc *Service) error {
	np.ID = core.CleanString(np.ID)
	np.Name = core.CleanString(np.Name)
	np.SupervisorID = core.CleanString(np.SupervisorID)
	np.Deadline = core.CleanString(np.Deadline)
	for i := range np.StudentIDs {
		np.StudentIDs[i] = core.CleanString(np.StudentIDs[i])
	}

	if err := validate.Struct(np); err != nil {
		return err
	}
	if _, err := svc.repo.GetProjectByID(np.ID); err == nil {
		return core.NewValidationError(ErrProjectExists, core.FieldError{Field: "id", Error: ErrProjectExists.Error()})
	} else if errors.Cause(err) != ErrProjectNotFound {
		return err
	}

	if _, err := svc.users.GetTeacherByID(np.SupervisorID); err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return core.NewValidationError(ErrSupervisorNotTeacher, core.FieldError{Field: "supervisor_id", Error: ErrSupervisorNotTeacher.Error()})
		}
		return err
	}
	for _, sid := range np.StudentIDs {
		if _, err := svc.users.GetStudentByID(sid); err != nil {
			if errors.Cause(err) == user.ErrNotFound {
				return core.NewValidationError(err, core.FieldError{Field: "student_ids", Error: "student " + sid + " not found"})
			}
			return err
		}
	}
	return nil
}

func (svc *Service) CreateProject(np NewProject) (Project, error) {
	return svc.repo.CreateProject(Project{
		ID:           np.ID,
		Name:         np.Name,
		StudentIDs:   append([]string(nil), np.StudentIDs...),
		SupervisorID: np.SupervisorID,
		Deadline:     np.Deadline,
	})
}

func (svc *Service) Projects() ([]Project, error) {
	return svc.repo.QueryAllProjects()
}

func (svc *Service) GetProject(id string) (Project, error) {
	return svc.repo.GetProjectByID(core.CleanString(id))
}

// ProjectOf returns the first project, in store order, the student belongs to.
func (svc *Service) ProjectOf(studentID string) (Project, error) {
	projects, err := svc.repo.QueryAllProjects()
	if err != nil {
		return Project{}, err
	}
	studentID = core.CleanString(studentID)
	for _, p := range projects {
		if p.HasStudent(studentID) {
			return p, nil
		}
	}
	return Project{}, ErrProjectNotFound
}

func (svc *Service) SupervisedBy(teacherID string) ([]Project, error) {
	projects, err := svc.repo.QueryAllProjects()
	if err != nil {
		return nil, err
	}
	teacherID = core.CleanString(teacherID)
	result := make([]Project, 0)
	for _, p := range projects {
		if p.SupervisorID == teacherID {
			result = append(result, p)
		}
	}
	return result, nil
}

// PendingProjects counts projects with progress under 100%.
func (svc *Service) PendingProjects() (int, error) {
	projects, err := svc.repo.QueryAllProjects()
	if err != nil {
		return 0, err
	}
	var n int
	for _, p := range projects {
		if p.IsPending() {
			n++
		}
	}
	return n, nil
}

func (svc *Service) UpdateProgress(id string, progress int) (Project, error) {
	if progress < 0 || progress > 100 {
		return Project{}, core.NewValidationError(ErrProgressOutOfBounds, core.FieldError{Field: "progress", Error: ErrProgressOutOfBounds.Error()})
	}
	p, err := svc.GetProject(id)
	if err != nil {
		return Project{}, err
	}
	p.Progress = progress
	return svc.repo.UpdateProject(p)
}

// ApproveTopic marks the topic of a project approved. Approving twice is a no-op.
func (svc *Service) ApproveTopic(id string) (Project, error) {
	p, err := svc.GetProject(id)
	if err != nil {
		return Project{}, err
	}
	if p.Approved {
		return p, nil
	}
	p.Approved = true
	return svc.repo.UpdateProject(p)
}

// SetProjectGrade sets the grade of a project from user input. Non-numeric input leaves the project unchanged.
func (svc *Service) SetProjectGrade(id, input string) (Project, error) {
	grade, err := academic.ParseScore("grade", input)
	if err != nil {
		return Project{}, err
	}
	p, err := svc.GetProject(id)
	if err != nil {
		return Project{}, err
	}
	p.Grade = grade
	return svc.repo.UpdateProject(p)
}
