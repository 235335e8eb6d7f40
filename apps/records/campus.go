package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/campus"
	"github.com/vku/studentrecords/core/user"
)

var (
	nowFunc = time.Now // mockable

	errNotYourProject = errors.New("you do not supervise this project")
)

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return nowFunc(), nil
	}
	d, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, core.NewValidationError(err, core.FieldError{Field: "date", Error: "must be a date like " + dateLayout})
	}
	return d, nil
}

func (cli *commandLine) attendance(usr user.User, args []string) error {
	fs := cli.flagSet("attendance")
	date := fs.String("date", "", "The session date (default today).")
	if err := cli.parse(fs, args); err != nil {
		return err
	}

	if usr.IsStudent() {
		s, err := cli.app.users.GetStudent(usr.ID)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(s.Subjects))
		for _, sub := range s.Subjects {
			sum, err := cli.app.campus.AttendanceSummary(s.ID, sub.ID)
			if err != nil {
				return err
			}
			rows = append(rows, []string{sub.Name, fmt.Sprint(sum.Sessions), fmt.Sprint(sum.Attended), percent(sum.Rate)})
		}
		cli.table([]string{"SUBJECT", "SESSIONS", "ATTENDED", "RATE"}, rows)
		return nil
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return errHelp
	}
	day, err := parseDate(*date)
	if err != nil {
		return err
	}
	sub, err := cli.ownSubject(usr, strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}
	roster, err := cli.app.campus.SessionRoster(sub.ID, day)
	if err != nil {
		return err
	}

	cli.printf("%s - %s, %s\n", sub.ID, sub.Name, day.Format(dateLayout))
	rows := make([][]string, 0, len(roster))
	for _, e := range roster {
		rows = append(rows, []string{e.Student.ID, e.Student.Name, yesNo(e.Present), yesNo(e.Recorded)})
	}
	cli.table([]string{"ID", "NAME", "PRESENT", "RECORDED"}, rows)
	return nil
}

func (cli *commandLine) attend(usr user.User, args []string) error {
	fs := cli.flagSet("attend")
	subject := fs.String("subject", "", "The subject's ID or name.")
	date := fs.String("date", "", "The session date (default today).")
	absent := fs.Bool("absent", false, "Mark the students absent.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}
	if *subject == "" || fs.NArg() == 0 {
		fs.Usage()
		return errHelp
	}

	day, err := parseDate(*date)
	if err != nil {
		return err
	}
	sub, err := cli.ownSubject(usr, *subject)
	if err != nil {
		return err
	}
	records, err := cli.app.campus.RecordSessionAttendance(fs.Args(), sub.ID, day, !*absent)
	if err != nil {
		return err
	}
	for _, a := range records {
		cli.printf("%s: present=%s\n", a.StudentID, yesNo(a.Present))
	}
	return nil
}

func (cli *commandLine) fees(usr user.User, _ []string) error {
	if usr.IsTeacher() {
		fees, err := cli.app.campus.Fees()
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(fees))
		for _, f := range fees {
			rows = append(rows, []string{f.StudentID, cli.money(f.Amount), yesNo(f.Paid)})
		}
		cli.table([]string{"STUDENT", "AMOUNT", "PAID"}, rows)
		total, err := cli.app.campus.UnpaidTotal()
		if err != nil {
			return err
		}
		cli.printf("Unpaid total: %s\n", cli.money(total))
		return nil
	}

	st, err := cli.app.campus.FeeStatement(usr.ID)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(st.Lines))
	for _, l := range st.Lines {
		rows = append(rows, []string{l.Subject.Name, fmt.Sprint(l.Subject.Credits), cli.money(l.Amount)})
	}
	cli.table([]string{"SUBJECT", "CREDITS", "FEE"}, rows)
	cli.printf("Total: %s  Paid: %s\n", cli.money(st.Total), yesNo(st.Paid))
	if !st.Paid && st.Total > 0 {
		cli.println("Type `pay` to get the payment QR code.")
	}
	return nil
}

func (cli *commandLine) pay(usr user.User, args []string) error {
	fs := cli.flagSet("pay")
	output := fs.String("o", "", "Write the payment QR code to this PNG file.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}

	if usr.IsTeacher() {
		if fs.NArg() != 1 {
			fs.Usage()
			return errHelp
		}
		fee, err := cli.app.campus.SetFeePaid(fs.Arg(0), true)
		if err != nil {
			return err
		}
		cli.app.logger.Info("fee paid", usr, map[string]interface{}{"student": fee.StudentID, "amount": fee.Amount})
		cli.printf("Fee of %s marked paid (%s).\n", fee.StudentID, cli.money(fee.Amount))
		return nil
	}

	fee, err := cli.app.campus.FeeOf(usr.ID)
	if err != nil {
		return err
	}
	if *output != "" {
		if err := cli.app.qr.WriteFile(fee, *output); err != nil {
			return err
		}
		cli.printf("Payment QR code written to %s.\n", *output)
		return nil
	}
	qr, err := cli.app.qr.Terminal(fee)
	if err != nil {
		return err
	}
	cli.printf("Scan to pay %s:\n%s", cli.money(fee.Amount), qr)
	return nil
}

func (cli *commandLine) printProject(p campus.Project) {
	cli.printf("%s - %s\n", p.ID, p.Name)
	cli.printf("  Students:   %s\n", strings.Join(p.StudentIDs, ", "))
	cli.printf("  Supervisor: %s\n", p.SupervisorID)
	cli.printf("  Deadline:   %s\n", p.Deadline)
	cli.printf("  Approved:   %s\n", yesNo(p.Approved))
	cli.printf("  Progress:   %d%%\n", p.Progress)
	cli.printf("  Grade:      %s\n", score(p.Grade))
}

func (cli *commandLine) projects(usr user.User, _ []string) error {
	if usr.IsStudent() {
		p, err := cli.app.campus.ProjectOf(usr.ID)
		if err != nil {
			if err == campus.ErrProjectNotFound {
				cli.println("You have no project.")
				return nil
			}
			return err
		}
		cli.printProject(p)
		return nil
	}

	projects, err := cli.app.campus.SupervisedBy(usr.ID)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.ID, p.Name, strings.Join(p.StudentIDs, ","), p.Deadline, yesNo(p.Approved), fmt.Sprintf("%d%%", p.Progress), score(p.Grade)})
	}
	cli.table([]string{"ID", "NAME", "STUDENTS", "DEADLINE", "APPROVED", "PROGRESS", "GRADE"}, rows)
	return nil
}

// ownProject finds a project supervised by usr.
func (cli *commandLine) ownProject(usr user.User, id string) (campus.Project, error) {
	p, err := cli.app.campus.GetProject(id)
	if err != nil {
		return campus.Project{}, err
	}
	if p.SupervisorID != usr.ID {
		return campus.Project{}, errNotYourProject
	}
	return p, nil
}

func (cli *commandLine) progress(usr user.User, args []string) error {
	if len(args) != 2 {
		cli.printf("Usage: %s\n", commands["progress"].usage)
		return errHelp
	}
	pct, err := strconv.Atoi(strings.TrimSuffix(args[1], "%"))
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "progress", Error: "must be a whole number"})
	}
	p, err := cli.ownProject(usr, args[0])
	if err != nil {
		return err
	}
	if p, err = cli.app.campus.UpdateProgress(p.ID, pct); err != nil {
		return err
	}
	cli.printf("%s progress: %d%%\n", p.ID, p.Progress)
	return nil
}

func (cli *commandLine) approve(usr user.User, args []string) error {
	if len(args) != 1 {
		cli.printf("Usage: %s\n", commands["approve"].usage)
		return errHelp
	}
	p, err := cli.ownProject(usr, args[0])
	if err != nil {
		return err
	}
	if p, err = cli.app.campus.ApproveTopic(p.ID); err != nil {
		return err
	}
	cli.printf("Topic approved for project: %s\n", p.Name)
	return nil
}

func (cli *commandLine) projectGrade(usr user.User, args []string) error {
	if len(args) != 2 {
		cli.printf("Usage: %s\n", commands["projectgrade"].usage)
		return errHelp
	}
	p, err := cli.ownProject(usr, args[0])
	if err != nil {
		return err
	}
	if p, err = cli.app.campus.SetProjectGrade(p.ID, args[1]); err != nil {
		return err
	}
	cli.printf("%s grade: %s\n", p.ID, score(p.Grade))
	return nil
}

func (cli *commandLine) notifications(usr user.User, _ []string) error {
	var (
		ns  []campus.Notification
		err error
	)
	if usr.IsStudent() {
		ns, err = cli.app.campus.Feed(usr.ID)
	} else {
		if ns, err = cli.app.campus.Notifications(); err == nil {
			campus.NewestFirst(ns)
		}
	}
	if err != nil {
		return err
	}

	if len(ns) == 0 {
		cli.println("No notifications.")
	}
	for _, n := range ns {
		tag := ""
		if !n.IsGeneral() {
			tag = " [" + n.SubjectID + "]"
		}
		cli.printf("%s  %s%s\n  %s\n", n.Date.Format("2006-01-02 15:04"), n.Sender, tag, n.Message)
	}
	return nil
}

func (cli *commandLine) notify(usr user.User, args []string) error {
	fs := cli.flagSet("notify")
	subject := fs.String("subject", "", "Only for the students of this subject (ID or name).")
	if err := cli.parse(fs, args); err != nil {
		return err
	}

	nn := campus.NewNotification{Sender: usr.Name, Message: strings.Join(fs.Args(), " ")}
	if *subject != "" {
		sub, err := cli.ownSubject(usr, *subject)
		if err != nil {
			return err
		}
		nn.SubjectID = sub.ID
	}
	n, err := cli.app.campus.PostNotification(nn)
	if err != nil {
		return err
	}
	cli.printf("Notification posted at %s.\n", n.Date.Format("2006-01-02 15:04"))
	return nil
}
