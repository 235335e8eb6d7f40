package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp             = errors.New("help provided")
	errNotAuthenticated = errors.New("please log in first")
	errForbidden        = errors.New("this command is not available for your role")
)

type (
	commandLine struct {
		app         *application
		scanner     *bufio.Scanner
		out         io.Writer
		interactive bool // passwords are read from the terminal without echo
	}

	command struct {
		usage string
		roles []user.Kind // nil: anyone, logged in or not
		run   func(cli *commandLine, usr user.User, args []string) error
	}
)

var commands map[string]command

func init() {
	anyone := []user.Kind(nil)
	authenticated := user.Kinds
	teacher := []user.Kind{user.KindTeacher}
	student := []user.Kind{user.KindStudent}

	commands = map[string]command{
		"help":          {"help - list the available commands", anyone, (*commandLine).help},
		"exit":          {"exit - quit the program", anyone, (*commandLine).exit},
		"login":         {"login -role Teacher|Student -email EMAIL - log in; the password is prompted next", anyone, (*commandLine).login},
		"logout":        {"logout - log out", authenticated, (*commandLine).logout},
		"whoami":        {"whoami - show the logged in user", authenticated, (*commandLine).whoami},
		"passwd":        {"passwd - change your password", authenticated, (*commandLine).passwd},
		"home":          {"home - show your overview", authenticated, (*commandLine).home},
		"students":      {"students [-major MAJOR] [-class CLASS] [SEARCH] - list students", teacher, (*commandLine).students},
		"student":       {"student [ID] - show a student's profile", authenticated, (*commandLine).student},
		"subjects":      {"subjects - list your subjects", authenticated, (*commandLine).subjects},
		"enroll":        {"enroll -student ID SUBJECT - enroll a student in one of your subjects", teacher, (*commandLine).enroll},
		"roster":        {"roster SUBJECT - list the students of one of your subjects with their grades", teacher, (*commandLine).roster},
		"grades":        {"grades [ID] - show a transcript", authenticated, (*commandLine).grades},
		"grade":         {"grade -student ID -subject SUBJECT ASSIGNMENT MIDTERM ATTENDANCE FINAL - record a grade", teacher, (*commandLine).grade},
		"attendance":    {"attendance [-date YYYY-MM-DD] [SUBJECT] - show attendance", authenticated, (*commandLine).attendance},
		"attend":        {"attend -subject SUBJECT [-date YYYY-MM-DD] [-absent] ID... - record attendance", teacher, (*commandLine).attend},
		"fees":          {"fees - show fees", authenticated, (*commandLine).fees},
		"pay":           {"pay [-o FILE] [ID] - mark a fee paid (teacher) or show the payment QR code (student)", authenticated, (*commandLine).pay},
		"projects":      {"projects - show projects", authenticated, (*commandLine).projects},
		"progress":      {"progress PROJECT PERCENT - update the progress of a project you supervise", teacher, (*commandLine).progress},
		"approve":       {"approve PROJECT - approve the topic of a project you supervise", teacher, (*commandLine).approve},
		"projectgrade":  {"projectgrade PROJECT GRADE - grade a project you supervise", teacher, (*commandLine).projectGrade},
		"notifications": {"notifications - show notifications, newest first", authenticated, (*commandLine).notifications},
		"notify":        {"notify [-subject SUBJECT] MESSAGE - post a notification", teacher, (*commandLine).notify},
		"teachers":      {"teachers - list the teachers with their contact details", authenticated, (*commandLine).teachers},
		"message":       {"message -teacher ID MESSAGE - email a message to a teacher", student, (*commandLine).message},
	}
}

func newCommandLine(app *application, in io.Reader, out io.Writer) *commandLine {
	return &commandLine{
		app:     app,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (cli *commandLine) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, a...)
}

func (cli *commandLine) println(a ...interface{}) {
	_, _ = fmt.Fprintln(cli.out, a...)
}

func (cli *commandLine) prompt() {
	name := "guest"
	if usr, ok := cli.app.session.Current(); ok {
		name = usr.ID
	}
	cli.printf("%s> ", name)
}

// loop runs commands read line by line until exit or end of input.
func (cli *commandLine) loop() error {
	cli.printf("%s (%s)\n", cli.app.conf.AppName, cli.app.conf.Build)
	cli.println("Type `help` for the list of commands.")
	cli.prompt()
	for cli.scanner.Scan() {
		err := cli.exec(cli.scanner.Text())
		if core.IsShutdown(err) {
			cli.println(err)
			return nil
		}
		cli.prompt()
	}
	return cli.scanner.Err()
}

// exec runs one input line and reports its error, if any.
func (cli *commandLine) exec(line string) error {
	args, err := splitArgs(line)
	if err == nil {
		if len(args) == 0 {
			return nil
		}
		err = cli.run(args)
	}
	if err != nil && err != errHelp && !core.IsShutdown(err) {
		cli.printError(err)
	}
	return err
}

func (cli *commandLine) printError(err error) {
	if fields, ok := core.TranslateError(err, cli.app.translator); ok {
		keys := make([]string, 0, len(fields))
		for field := range fields {
			keys = append(keys, field)
		}
		sort.Strings(keys)
		for _, field := range keys {
			if field == "" {
				cli.printf("error: %s\n", fields[field])
			} else {
				cli.printf("error: %s: %s\n", field, fields[field])
			}
		}
		return
	}

	switch err {
	case errNotAuthenticated, errForbidden, errBadQuoting, user.ErrInvalidCredentials:
	default:
		usr, _ := cli.app.session.Current()
		cli.app.logger.Error(err.Error(), usr)
	}
	cli.printf("error: %s\n", err)
}

func (cli *commandLine) printUsage() {
	usr, authenticated := cli.app.session.Current()
	names := make([]string, 0, len(commands))
	for name, cmd := range commands {
		if cmd.roles == nil || (authenticated && hasKind(cmd.roles, usr.Kind)) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	cli.println("Usage:")
	for _, name := range names {
		cli.printf("  %s\n", commands[name].usage)
	}
}

func hasKind(kinds []user.Kind, kind user.Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// run dispatches args[0] to its command, checking the role of the logged in user.
func (cli *commandLine) run(args []string) error {
	if len(args) < 1 {
		cli.printUsage()
		return errHelp
	}
	cmd, ok := commands[strings.ToLower(args[0])]
	if !ok {
		cli.printf("unknown command %q\n", args[0])
		cli.printUsage()
		return errHelp
	}

	usr, authenticated := cli.app.session.Current()
	if cmd.roles != nil {
		if !authenticated {
			return errNotAuthenticated
		}
		if !hasKind(cmd.roles, usr.Kind) {
			return errForbidden
		}
	}
	return cmd.run(cli, usr, args[1:])
}

// flagSet returns a flag set writing its usage to the command line output.
func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	fs.Usage = func() { cli.printf("Usage: %s\n", commands[name].usage) }
	return fs
}

func (cli *commandLine) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errHelp // already reported by fs
	}
	return nil
}

// readPassword reads a password without echo on terminals, else a plain line of input.
func (cli *commandLine) readPassword(prompt string) (string, error) {
	cli.printf("%s: ", prompt)
	if cli.interactive {
		pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
		cli.println()
		if err != nil {
			return "", err
		}
		return string(pwd), nil
	}
	if !cli.scanner.Scan() {
		if err := cli.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return cli.scanner.Text(), nil
}

func (cli *commandLine) help(_ user.User, _ []string) error {
	cli.printUsage()
	return nil
}

func (cli *commandLine) exit(_ user.User, _ []string) error {
	return core.NewShutdownError("Goodbye!")
}
