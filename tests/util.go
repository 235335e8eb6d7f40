package testutil

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/user"
	"github.com/vku/studentrecords/storage/database/inmem"
)

func init() {
	user.SetPasswordCost(bcrypt.MinCost)
}

// NewConfig returns the configuration used by tests: default fees, no Rollbar.
func NewConfig() *core.Config {
	return &core.Config{
		Debug:           true,
		TestMode:        true,
		AppName:         "VKU Student Records",
		Env:             "TEST",
		Build:           "test",
		FeePerCredit:    1000000,
		Currency:        "VND",
		RequiredCredits: 120,
		PaymentQRSize:   64,
	}
}

func NewValidator() *validator.Validate {
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)
	return validate
}

func PrepareDB(t *testing.T) *inmemdb.DB {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	return db
}

// PrepareSeededDB returns a store loaded with the sample university.
func PrepareSeededDB(t *testing.T, conf *core.Config) *inmemdb.DB {
	db := PrepareDB(t)
	if err := inmemdb.Seed(db, NewValidator(), conf); err != nil {
		t.Fatalf("inmemdb.Seed() failed: %v", err)
	}
	return db
}

func CreateTeacher(t *testing.T, repo user.Repository, id, name, email, pwd string) user.Teacher {
	tchr := user.Teacher{User: user.User{ID: id, Name: name, Email: email, Kind: user.KindTeacher}}
	if pwd != "" {
		if err := tchr.SetPassword(pwd); err != nil {
			t.Fatalf("createTeacher() failed: %v", err)
		}
	}
	tchr, err := repo.CreateTeacher(tchr)
	if err != nil {
		t.Fatalf("createTeacher() failed: %v", err)
	}
	return tchr
}

func CreateStudent(t *testing.T, repo user.Repository, id, name, email, pwd, class, major string) user.Student {
	s := user.Student{
		User:  user.User{ID: id, Name: name, Email: email, Kind: user.KindStudent},
		Class: class,
		Major: major,
	}
	if pwd != "" {
		if err := s.SetPassword(pwd); err != nil {
			t.Fatalf("createStudent() failed: %v", err)
		}
	}
	s, err := repo.CreateStudent(s)
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return s
}
