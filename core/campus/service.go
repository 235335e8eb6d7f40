package campus

import (
	"time"

	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/academic"
	"github.com/vku/studentrecords/core/user"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrFeeNotFound          = errors.New("fee not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectExists        = errors.New("a project with this id already exists")
	ErrAttendanceNotFound   = errors.New("attendance record not found")
	ErrEmptyMessage         = errors.New("please enter a message")
	ErrProgressOutOfBounds  = errors.New("progress must be between 0 and 100")
	ErrSupervisorNotTeacher = errors.New("supervisor must be a teacher")
)

type (
	AttendanceRepository interface {
		CreateAttendance(a Attendance) (Attendance, error)
		UpdateAttendance(a Attendance) (Attendance, error)
		// QueryAllAttendance returns records in insertion order.
		QueryAllAttendance() ([]Attendance, error)
	}

	FeeRepository interface {
		// SaveFee creates the fee of a student, or replaces it.
		SaveFee(f Fee) (Fee, error)
		QueryAllFees() ([]Fee, error)
		GetFeeByStudentID(studentID string) (Fee, error)
	}

	ProjectRepository interface {
		CreateProject(p Project) (Project, error)
		UpdateProject(p Project) (Project, error)
		GetProjectByID(id string) (Project, error)
		QueryAllProjects() ([]Project, error)
	}

	NotificationRepository interface {
		CreateNotification(n Notification) (Notification, error)
		QueryAllNotifications() ([]Notification, error)
	}

	Repository interface {
		AttendanceRepository
		FeeRepository
		ProjectRepository
		NotificationRepository
	}

	Service struct {
		repo     Repository
		users    user.Repository
		subjects academic.Repository
		conf     *core.Config
	}
)

func NewService(repo Repository, users user.Repository, subjects academic.Repository, conf *core.Config) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		subjects: subjects,
		conf:     conf,
	}
}

func (svc *Service) getStudent(id string) (user.Student, error) {
	s, err := svc.users.GetStudentByID(core.CleanString(id))
	if err != nil {
		return user.Student{}, errors.Wrap(err, "getting student")
	}
	return s, nil
}

func (svc *Service) getEnrolledSubject(s user.Student, subjectID string) (academic.Subject, error) {
	sub, err := svc.subjects.GetSubjectByID(core.CleanString(subjectID))
	if err != nil {
		return academic.Subject{}, errors.Wrap(err, "getting subject")
	}
	if !s.HasSubject(sub.ID) {
		return academic.Subject{}, core.NewValidationError(user.ErrNotEnrolled, core.FieldError{Field: "subject", Error: user.ErrNotEnrolled.Error()})
	}
	return sub, nil
}
