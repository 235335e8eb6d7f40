package main

import (
	"strings"

	"github.com/vku/studentrecords/core/campus"
	"github.com/vku/studentrecords/core/user"
)

func (cli *commandLine) teachers(_ user.User, _ []string) error {
	teachers, err := cli.app.users.QueryTeachers()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(teachers))
	for _, t := range teachers {
		names := make([]string, 0, len(t.Subjects))
		for _, sub := range t.Subjects {
			names = append(names, sub.Name)
		}
		rows = append(rows, []string{t.ID, t.Name, t.Email, strings.Join(names, ", ")})
	}
	cli.table([]string{"ID", "NAME", "EMAIL", "SUBJECTS"}, rows)
	return nil
}

func (cli *commandLine) message(usr user.User, args []string) error {
	fs := cli.flagSet("message")
	teacher := fs.String("teacher", "", "The teacher's ID, see `teachers`.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}

	msg, err := cli.app.messenger.MessageTeacher(usr, campus.NewMessage{
		TeacherID: *teacher,
		Message:   strings.Join(fs.Args(), " "),
	})
	if err != nil {
		return err
	}
	cli.app.logger.Info("message sent", usr, map[string]interface{}{"to": msg.To[0].Address})
	cli.printf("Message sent to %s.\n", msg.To[0].Name)
	return nil
}
