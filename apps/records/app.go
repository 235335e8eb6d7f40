package main

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vku/studentrecords/core"
	"github.com/vku/studentrecords/core/academic"
	"github.com/vku/studentrecords/core/campus"
	"github.com/vku/studentrecords/core/user"
	"github.com/vku/studentrecords/services/payment"
	"github.com/vku/studentrecords/storage/database/inmem"
)

// application owns the store, the services and the session of the running program.
type application struct {
	conf       *core.Config
	logger     core.Logger
	validate   *validator.Validate
	translator ut.Translator

	session   *user.Session
	users     *user.Service
	subjects  *academic.Service
	campus    *campus.Service
	messenger *campus.Messenger
	qr        *paysvc.QRService
}

func newApplication(conf *core.Config, logger core.Logger, emails core.EmailService) (*application, error) {
	validate, translator := core.NewValidator()
	user.InitValidators(validate, translator)

	db, err := inmemdb.Open()
	if err != nil {
		return nil, errors.Wrap(err, "opening store")
	}
	if conf.SeedSampleData {
		if err := inmemdb.Seed(db, validate, conf); err != nil {
			return nil, errors.Wrap(err, "seeding store")
		}
	}

	usrRepo := inmemdb.NewUserRepository(db)
	subRepo := inmemdb.NewSubjectRepository(db)
	usrSvc := user.NewService(usrRepo, subRepo)
	return &application{
		conf:       conf,
		logger:     logger,
		validate:   validate,
		translator: translator,
		session:    user.NewSession(usrRepo),
		users:      usrSvc,
		subjects:   academic.NewService(subRepo),
		campus:     campus.NewService(inmemdb.NewCampusRepository(db), usrRepo, subRepo, conf),
		messenger:  campus.NewMessenger(usrSvc, emails),
		qr:         paysvc.NewQRService(conf),
	}, nil
}
