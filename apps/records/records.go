package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/academic"
	"github.com/vku/studentrecords/core/user"
)

var errNotYourSubject = errors.New("you do not teach this subject")

// ownSubject finds one of the subjects taught by usr, by ID or name.
func (cli *commandLine) ownSubject(usr user.User, idOrName string) (academic.Subject, error) {
	sub, err := cli.app.subjects.Lookup(idOrName)
	if err != nil {
		return academic.Subject{}, err
	}
	if sub.TeacherID != usr.ID {
		return academic.Subject{}, errNotYourSubject
	}
	return sub, nil
}

// targetStudent is the student a command is about: the given ID for teachers, themselves for students.
func (cli *commandLine) targetStudent(usr user.User, args []string, name string) (user.Student, error) {
	id := usr.ID
	if usr.IsTeacher() {
		if len(args) == 0 {
			cli.printf("Usage: %s\n", commands[name].usage)
			return user.Student{}, errHelp
		}
		id = args[0]
	} else if len(args) > 0 && !strings.EqualFold(core.CleanString(args[0]), usr.ID) {
		return user.Student{}, errForbidden
	}
	return cli.app.users.GetStudent(id)
}

func (cli *commandLine) home(usr user.User, _ []string) error {
	if usr.IsTeacher() {
		ov, err := cli.app.campus.TeacherOverview()
		if err != nil {
			return err
		}
		cli.printf("Total students:    %d\n", ov.TotalStudents)
		cli.printf("Pending projects:  %d\n", ov.PendingProjects)
		cli.printf("Unpaid fees:       %s\n", cli.money(ov.UnpaidFees))
		cli.printf("Average GPA:       %s\n", score(ov.AverageGPA))
		rows := make([][]string, 0, len(ov.Majors))
		for _, m := range ov.Majors {
			rows = append(rows, []string{m.Major, fmt.Sprint(m.Count), percent(m.Share)})
		}
		cli.table([]string{"MAJOR", "STUDENTS", "SHARE"}, rows)
		return nil
	}

	ov, err := cli.app.campus.StudentOverview(usr.ID)
	if err != nil {
		return err
	}
	cli.printf("GPA:               %s / 10  (%.1f / 4, %s)\n", score(ov.Transcript.GPA10), ov.Transcript.GPA4, ov.Transcript.Rank)
	cli.printf("Credits:           %d / %d\n", ov.Transcript.TotalCredits, ov.Transcript.RequiredCredits)
	cli.printf("Current subjects:  %d\n", ov.CurrentSubjects)
	cli.printf("Project progress:  %d%%\n", ov.ProjectProgress)
	return nil
}

func (cli *commandLine) students(_ user.User, args []string) error {
	fs := cli.flagSet("students")
	major := fs.String("major", "", "Only students of this major (All for any).")
	class := fs.String("class", "", "Only students of this class (All for any).")
	if err := cli.parse(fs, args); err != nil {
		return err
	}

	students, err := cli.app.users.Filter(user.QueryFilter{
		Major:  *major,
		Class:  *class,
		Search: strings.Join(fs.Args(), " "),
	})
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{s.ID, s.Name, s.Class, s.Major, score(s.GPA10())})
	}
	cli.table([]string{"ID", "NAME", "CLASS", "MAJOR", "GPA"}, rows)
	return nil
}

func (cli *commandLine) student(usr user.User, args []string) error {
	s, err := cli.targetStudent(usr, args, "student")
	if err != nil {
		return err
	}
	p := s.Profile
	lines := [][2]string{
		{"ID", s.ID},
		{"Name", s.Name},
		{"Email", s.Email},
		{"Class", s.Class},
		{"Major", s.Major},
		{"Course", s.Course},
		{"Date of birth", p.DateOfBirth},
		{"Gender", p.Gender},
		{"Phone", p.Phone},
		{"Address", p.Address},
		{"Parent", p.ParentName},
		{"Parent contact", p.ParentContact},
	}
	for _, l := range lines {
		if l[1] != "" {
			cli.printf("%-15s %s\n", l[0]+":", l[1])
		}
	}
	return nil
}

func (cli *commandLine) subjects(usr user.User, _ []string) error {
	var subjects []academic.Subject
	if usr.IsTeacher() {
		var err error
		if subjects, err = cli.app.subjects.TaughtBy(usr.ID); err != nil {
			return err
		}
	} else {
		s, err := cli.app.users.GetStudent(usr.ID)
		if err != nil {
			return err
		}
		subjects = s.Subjects
	}

	rows := make([][]string, 0, len(subjects))
	for _, sub := range subjects {
		rows = append(rows, []string{sub.ID, sub.Name, fmt.Sprint(sub.Credits)})
	}
	cli.table([]string{"ID", "NAME", "CREDITS"}, rows)
	return nil
}

func (cli *commandLine) enroll(usr user.User, args []string) error {
	fs := cli.flagSet("enroll")
	studentID := fs.String("student", "", "The student's ID.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if *studentID == "" || fs.NArg() != 1 {
		fs.Usage()
		return errHelp
	}

	sub, err := cli.ownSubject(usr, fs.Arg(0))
	if err != nil {
		return err
	}
	s, err := cli.app.users.Enroll(*studentID, sub.ID)
	if err != nil {
		return err
	}
	if _, err := cli.app.campus.AssessFee(s.ID); err != nil {
		return err
	}
	cli.printf("%s is enrolled in %s.\n", s.Name, sub.Name)
	return nil
}

func (cli *commandLine) roster(usr user.User, args []string) error {
	if len(args) == 0 {
		cli.printf("Usage: %s\n", commands["roster"].usage)
		return errHelp
	}
	sub, err := cli.ownSubject(usr, strings.Join(args, " "))
	if err != nil {
		return err
	}
	roster, err := cli.app.users.Roster(sub.ID)
	if err != nil {
		return err
	}

	cli.printf("%s - %s (%d credits)\n", sub.ID, sub.Name, sub.Credits)
	rows := make([][]string, 0, len(roster))
	for _, e := range roster {
		g := e.Grade
		rows = append(rows, []string{
			e.Student.ID, e.Student.Name,
			score(g.Assignment), score(g.Midterm), score(g.Attendance), score(g.Final),
			score(g.Average()), g.Letter(),
		})
	}
	cli.table([]string{"ID", "NAME", "ASSIGNMENT", "MIDTERM", "ATTENDANCE", "FINAL", "AVERAGE", "LETTER"}, rows)
	return nil
}

func (cli *commandLine) grades(usr user.User, args []string) error {
	s, err := cli.targetStudent(usr, args, "grades")
	if err != nil {
		return err
	}
	tr := s.Transcript(cli.app.conf.RequiredCredits)

	rows := make([][]string, 0, len(tr.Grades))
	for _, g := range tr.Grades {
		rows = append(rows, []string{
			g.Subject.Name, fmt.Sprint(g.Subject.Credits),
			score(g.Assignment), score(g.Midterm), score(g.Attendance), score(g.Final),
			score(g.Average()), g.Letter(),
		})
	}
	cli.printf("%s - %s\n", s.ID, s.Name)
	cli.table([]string{"SUBJECT", "CREDITS", "ASSIGNMENT", "MIDTERM", "ATTENDANCE", "FINAL", "AVERAGE", "LETTER"}, rows)
	cli.printf("GPA: %s / 10  (%.1f / 4)  Rank: %s  Credits: %d / %d\n",
		score(tr.GPA10), tr.GPA4, tr.Rank, tr.TotalCredits, tr.RequiredCredits)
	return nil
}

func (cli *commandLine) grade(usr user.User, args []string) error {
	fs := cli.flagSet("grade")
	studentID := fs.String("student", "", "The student's ID.")
	subject := fs.String("subject", "", "The subject's ID or name.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if *studentID == "" || *subject == "" || fs.NArg() != 4 {
		fs.Usage()
		return errHelp
	}

	scores, err := academic.ParseScores(fs.Arg(0), fs.Arg(1), fs.Arg(2), fs.Arg(3))
	if err != nil {
		return err
	}
	sub, err := cli.ownSubject(usr, *subject)
	if err != nil {
		return err
	}
	g, err := cli.app.users.RecordGrade(*studentID, sub.ID, scores)
	if err != nil {
		return err
	}
	cli.printf("Grade recorded: average %s (%s).\n", score(g.Average()), g.Letter())
	return nil
}
