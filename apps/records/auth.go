package main

import (
	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/user"
)

func (cli *commandLine) login(_ user.User, args []string) error {
	fs := cli.flagSet("login")
	role := fs.String("role", "", "Teacher or Student.")
	email := fs.String("email", "", "The user's email. The password will be prompted next.")
	if err := cli.parse(fs, args); err != nil {
		return err
	}

	lr := user.LoginRequest{Role: core.CleanString(*role), Email: core.CleanString(*email)}
	if lr.Email == "" {
		fs.Usage()
		return errHelp
	}
	pwd, err := cli.readPassword("Password")
	if err != nil {
		return err
	}
	lr.Password = pwd
	if err := lr.Validate(cli.app.validate); err != nil {
		return err
	}

	usr, err := cli.app.session.Login(lr.Role, lr.Email, lr.Password)
	if err != nil {
		return err
	}
	cli.app.logger.Info("login", usr)
	cli.printf("Welcome, %s (%s)!\n", usr.Name, usr.Kind)
	return nil
}

func (cli *commandLine) logout(usr user.User, _ []string) error {
	cli.app.session.Logout()
	cli.app.logger.Info("logout", usr)
	cli.println("Logged out.")
	return nil
}

func (cli *commandLine) whoami(usr user.User, _ []string) error {
	cli.printf("%s  %s  %s  %s\n", usr.ID, usr.Name, usr.Email, usr.Kind)
	return nil
}

func (cli *commandLine) passwd(usr user.User, _ []string) error {
	var (
		cp  user.ChangePassword
		err error
	)
	if cp.OldPassword, err = cli.readPassword("Current password"); err != nil {
		return err
	}
	if cp.Password, err = cli.readPassword("New password"); err != nil {
		return err
	}
	if cp.PasswordConfirm, err = cli.readPassword("Confirm new password"); err != nil {
		return err
	}

	// the session copy may predate an earlier change
	current, err := cli.app.users.GetByID(usr.ID)
	if err != nil {
		return errors.Wrap(err, "getting user")
	}
	if err := cp.Validate(cli.app.validate, current); err != nil {
		return err
	}
	if err := cli.app.users.ChangePassword(usr.ID, cp); err != nil {
		return err
	}
	cli.app.logger.Info("password changed", usr)
	cli.println("Password changed.")
	return nil
}
