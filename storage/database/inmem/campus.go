package inmemdb

import (
	"github.com/vku/studentrecords/core/campus"
)

type campusRepository struct {
	attendance   *attendanceTable
	fee          *feeTable
	project      *projectTable
	notification *notificationTable
}

var _ campus.Repository = (*campusRepository)(nil) // interface compliance check

func NewCampusRepository(db *DB) campus.Repository {
	return &campusRepository{
		attendance:   db.attendance,
		fee:          db.fee,
		project:      db.project,
		notification: db.notification,
	}
}

// Attendance

func (repo *campusRepository) CreateAttendance(a campus.Attendance) (campus.Attendance, error) {
	repo.attendance.Lock()
	defer repo.attendance.Unlock()

	repo.attendance.idx[a.ID] = len(repo.attendance.rows)
	repo.attendance.rows = append(repo.attendance.rows, a)
	return a, nil
}

func (repo *campusRepository) UpdateAttendance(a campus.Attendance) (campus.Attendance, error) {
	repo.attendance.Lock()
	defer repo.attendance.Unlock()

	i, ok := repo.attendance.idx[a.ID]
	if !ok {
		return campus.Attendance{}, campus.ErrAttendanceNotFound
	}
	repo.attendance.rows[i] = a
	return a, nil
}

func (repo *campusRepository) QueryAllAttendance() ([]campus.Attendance, error) {
	repo.attendance.RLock()
	defer repo.attendance.RUnlock()
	return append([]campus.Attendance(nil), repo.attendance.rows...), nil
}

// Fees

func (repo *campusRepository) SaveFee(f campus.Fee) (campus.Fee, error) {
	repo.fee.Lock()
	defer repo.fee.Unlock()

	if i, ok := repo.fee.idx[f.StudentID]; ok {
		repo.fee.rows[i] = f
		return f, nil
	}
	repo.fee.idx[f.StudentID] = len(repo.fee.rows)
	repo.fee.rows = append(repo.fee.rows, f)
	return f, nil
}

func (repo *campusRepository) QueryAllFees() ([]campus.Fee, error) {
	repo.fee.RLock()
	defer repo.fee.RUnlock()
	return append([]campus.Fee(nil), repo.fee.rows...), nil
}

func (repo *campusRepository) GetFeeByStudentID(studentID string) (campus.Fee, error) {
	repo.fee.RLock()
	defer repo.fee.RUnlock()

	if i, ok := repo.fee.idx[studentID]; ok {
		return repo.fee.rows[i], nil
	}
	return campus.Fee{}, campus.ErrFeeNotFound
}

// Projects

func cloneProject(p campus.Project) campus.Project {
	p.StudentIDs = append([]string(nil), p.StudentIDs...)
	return p
}

func (repo *campusRepository) CreateProject(p campus.Project) (campus.Project, error) {
	repo.project.Lock()
	defer repo.project.Unlock()

	if _, ok := repo.project.idx[p.ID]; ok {
		return campus.Project{}, campus.ErrProjectExists
	}
	repo.project.idx[p.ID] = len(repo.project.rows)
	repo.project.rows = append(repo.project.rows, cloneProject(p))
	return cloneProject(p), nil
}

func (repo *campusRepository) UpdateProject(p campus.Project) (campus.Project, error) {
	repo.project.Lock()
	defer repo.project.Unlock()

	i, ok := repo.project.idx[p.ID]
	if !ok {
		return campus.Project{}, campus.ErrProjectNotFound
	}
	repo.project.rows[i] = cloneProject(p)
	return cloneProject(p), nil
}

func (repo *campusRepository) GetProjectByID(id string) (campus.Project, error) {
	repo.project.RLock()
	defer repo.project.RUnlock()

	if i, ok := repo.project.idx[id]; ok {
		return cloneProject(repo.project.rows[i]), nil
	}
	return campus.Project{}, campus.ErrProjectNotFound
}

func (repo *campusRepository) QueryAllProjects() ([]campus.Project, error) {
	repo.project.RLock()
	defer repo.project.RUnlock()

	projects := make([]campus.Project, 0, len(repo.project.rows))
	for _, p := range repo.project.rows {
		projects = append(projects, cloneProject(p))
	}
	return projects, nil
}

// Notifications

func (repo *campusRepository) CreateNotification(n campus.Notification) (campus.Notification, error) {
	repo.notification.Lock()
	defer repo.notification.Unlock()

	repo.notification.rows = append(repo.notification.rows, n)
	return n, nil
}

func (repo *campusRepository) QueryAllNotifications() ([]campus.Notification, error) {
	repo.notification.RLock()
	defer repo.notification.RUnlock()
	return append([]campus.Notification(nil), repo.notification.rows...), nil
}
