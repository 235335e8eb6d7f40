package inmemdb

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/academic"
	"github.com/vku/studentrecords/core/campus"
	"github.com/vku/studentrecords/core/user"
)

// sample data
var (
	SampleTeachers = []user.NewTeacher{
		{ID: "T001", Name: "Nguyen Van Teacher", Email: "teacher1@vku.vn", Password: "teacher123"},
		{ID: "T002", Name: "Tran Thi Lecturer", Email: "teacher2@vku.vn", Password: "teacher123"},
	}

	SampleStudents = []user.NewStudent{
		{
			ID: "S001", Name: "Nguyen Van A", Class: "K41A", Major: "Information Technology", Course: "2021-2025",
			Email: "student1@vku.vn", Password: "student123",
			Profile: user.Profile{
				DateOfBirth:   "2003-05-15",
				Gender:        "Male",
				ParentName:    "Nguyen Van Parent",
				ParentContact: "0123456789",
				Address:       "123 ABC Street, Da Nang",
				Phone:         "0987654321",
			},
		},
		{ID: "S002", Name: "Tran Thi B", Class: "K41A", Major: "Information Technology", Course: "2021-2025", Email: "student2@vku.vn", Password: "student123"},
		{ID: "S003", Name: "Le Van C", Class: "K42B", Major: "Business Administration", Course: "2022-2026", Email: "student3@vku.vn", Password: "student123"},
		{ID: "S004", Name: "Pham Thi D", Class: "K40C", Major: "Design", Course: "2020-2024", Email: "student4@vku.vn", Password: "student123"},
		{ID: "S005", Name: "Hoang Van E", Class: "K42B", Major: "Business Administration", Course: "2022-2026", Email: "student5@vku.vn", Password: "student123"},
	}

	SampleSubjects = []academic.NewSubject{
		{ID: "SUB001", Name: "Java Programming", Credits: 3, TeacherID: "T001"},
		{ID: "SUB002", Name: "Web Development", Credits: 3, TeacherID: "T001"},
		{ID: "SUB003", Name: "Business Management", Credits: 2, TeacherID: "T002"},
	}

	SampleGrades = []struct {
		StudentID, SubjectID string
		academic.Scores
	}{
		{"S001", "SUB001", academic.Scores{Assignment: 8.5, Midterm: 8.0, Attendance: 9.0, Final: 8.2}},
		{"S001", "SUB002", academic.Scores{Assignment: 7.5, Midterm: 8.5, Attendance: 8.0, Final: 7.9}},
		{"S002", "SUB001", academic.Scores{Assignment: 7.0, Midterm: 6.5, Attendance: 7.5, Final: 7.2}},
		{"S002", "SUB002", academic.Scores{Assignment: 8.0, Midterm: 7.5, Attendance: 8.5, Final: 8.1}},
		{"S003", "SUB003", academic.Scores{Assignment: 9.0, Midterm: 8.5, Attendance: 9.5, Final: 9.2}},
		{"S004", "SUB003", academic.Scores{Assignment: 8.5, Midterm: 8.0, Attendance: 8.0, Final: 8.1}},
		{"S005", "SUB003", academic.Scores{Assignment: 7.5, Midterm: 7.0, Attendance: 7.0, Final: 7.1}},
	}

	SampleProjects = []struct {
		campus.NewProject
		Progress int
		Grade    string
	}{
		{
			NewProject: campus.NewProject{ID: "P001", Name: "Student Management System", StudentIDs: []string{"S001", "S002"}, SupervisorID: "T001", Deadline: "2023-12-31"},
			Progress:   75,
			Grade:      "8.5",
		},
		{
			NewProject: campus.NewProject{ID: "P002", Name: "Business Analysis Tool", StudentIDs: []string{"S003", "S004", "S005"}, SupervisorID: "T002", Deadline: "2023-12-15"},
			Progress:   60,
			Grade:      "7.8",
		},
	}

	// students who paid their fees
	samplePaid = map[string]bool{"S001": true, "S003": true}
)

// Seed loads the sample university into db through the services, so every record is validated.
// Sample passwords are below the password policy, which only applies to password changes.
func Seed(db *DB, validate *validator.Validate, conf *core.Config) error {
	usrRepo := NewUserRepository(db)
	subRepo := NewSubjectRepository(db)
	usrSvc := user.NewService(usrRepo, subRepo)
	campusSvc := campus.NewService(NewCampusRepository(db), usrRepo, subRepo, conf)

	for _, nt := range SampleTeachers {
		if err := nt.Validate(validate, usrSvc); err != nil {
			return errors.Wrapf(err, "validating teacher %s", nt.ID)
		}
		if _, err := usrSvc.CreateTeacher(nt); err != nil {
			return errors.Wrapf(err, "creating teacher %s", nt.ID)
		}
	}
	for _, ns := range SampleStudents {
		if err := ns.Validate(validate, usrSvc); err != nil {
			return errors.Wrapf(err, "validating student %s", ns.ID)
		}
		if _, err := usrSvc.CreateStudent(ns); err != nil {
			return errors.Wrapf(err, "creating student %s", ns.ID)
		}
	}
	academicSvc := academic.NewService(subRepo)
	for _, nsub := range SampleSubjects {
		if err := nsub.Validate(validate, academicSvc); err != nil {
			return errors.Wrapf(err, "validating subject %s", nsub.ID)
		}
		if _, err := usrSvc.CreateSubject(nsub); err != nil {
			return errors.Wrapf(err, "creating subject %s", nsub.ID)
		}
	}

	today := time.Now()
	for _, g := range SampleGrades {
		if _, err := usrSvc.Enroll(g.StudentID, g.SubjectID); err != nil {
			return errors.Wrapf(err, "enrolling %s in %s", g.StudentID, g.SubjectID)
		}
		if _, err := usrSvc.RecordGrade(g.StudentID, g.SubjectID, g.Scores); err != nil {
			return errors.Wrapf(err, "grading %s in %s", g.StudentID, g.SubjectID)
		}
		if _, err := campusSvc.RecordAttendance(g.StudentID, g.SubjectID, today, true); err != nil {
			return errors.Wrapf(err, "recording attendance of %s in %s", g.StudentID, g.SubjectID)
		}
	}

	for _, sp := range SampleProjects {
		np := sp.NewProject
		np.StudentIDs = append([]string(nil), np.StudentIDs...)
		if err := np.Validate(validate, campusSvc); err != nil {
			return errors.Wrapf(err, "validating project %s", np.ID)
		}
		if _, err := campusSvc.CreateProject(np); err != nil {
			return errors.Wrapf(err, "creating project %s", np.ID)
		}
		if _, err := campusSvc.UpdateProgress(np.ID, sp.Progress); err != nil {
			return errors.Wrapf(err, "updating progress of %s", np.ID)
		}
		if _, err := campusSvc.SetProjectGrade(np.ID, sp.Grade); err != nil {
			return errors.Wrapf(err, "grading project %s", np.ID)
		}
	}

	for _, ns := range SampleStudents {
		if _, err := campusSvc.AssessFee(ns.ID, samplePaid[ns.ID]); err != nil {
			return errors.Wrapf(err, "assessing fee of %s", ns.ID)
		}
	}

	notifications := []campus.NewNotification{
		{Message: "Welcome to VKU Student Management System!"},
		{
			Sender:    SampleTeachers[0].Name,
			Message:   "Java Programming final project submission deadline is approaching.",
			SubjectID: SampleSubjects[0].ID,
		},
	}
	for _, nn := range notifications {
		if _, err := campusSvc.PostNotification(nn); err != nil {
			return errors.Wrap(err, "posting notification")
		}
	}
	return nil
}
