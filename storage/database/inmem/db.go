package inmemdb

import (
	"sync"

	"github.com/vku/studentrecords/core/academic"
	"github.com/vku/studentrecords/core/campus"
	"github.com/vku/studentrecords/core/user"
)

// Tables keep their rows in insertion order.
type (
	DB struct {
		user         *userTable
		subject      *subjectTable
		attendance   *attendanceTable
		fee          *feeTable
		project      *projectTable
		notification *notificationTable
	}

	userTable struct {
		sync.RWMutex
		order    []string // user IDs
		teachers map[string]*user.Teacher
		students map[string]*user.Student
	}

	subjectTable struct {
		sync.RWMutex
		order []string
		table map[string]*academic.Subject
	}

	attendanceTable struct {
		sync.RWMutex
		rows []campus.Attendance
		idx  map[string]int // by ID
	}

	feeTable struct {
		sync.RWMutex
		rows []campus.Fee
		idx  map[string]int // by student ID
	}

	projectTable struct {
		sync.RWMutex
		rows []campus.Project
		idx  map[string]int // by ID
	}

	notificationTable struct {
		sync.RWMutex
		rows []campus.Notification
	}
)

func Open() (*DB, error) {
	db := &DB{
		user: &userTable{
			teachers: make(map[string]*user.Teacher),
			students: make(map[string]*user.Student),
		},
		subject:      &subjectTable{table: make(map[string]*academic.Subject)},
		attendance:   &attendanceTable{idx: make(map[string]int)},
		fee:          &feeTable{idx: make(map[string]int)},
		project:      &projectTable{idx: make(map[string]int)},
		notification: &notificationTable{},
	}
	return db, nil
}
